package model

import "time"

/*

NewsFeed is a derived, append-only notification record. Rows are only
created by the feed generator as a side effect of tweet/reply creation,
never directly by a client.

FromUserID:
FromUser: the acting user the entry is attributed to

Description: human readable summary, body truncated to 30 characters
IsRead: read marker, flipped by the owner

ToUserID:
ToUser: set only for targeted entries (reply-to-reply); nil means the
entry is a broadcast

*/
type NewsFeed struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	FromUserID  string `gorm:"index;not null"`
	FromUser    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Description string
	IsRead      bool

	ToUserID *string `gorm:"index"`
	ToUser   *User   `gorm:"foreignKey:ToUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
