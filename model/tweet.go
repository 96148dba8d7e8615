package model

import "time"

/*

Tweet is a top-level piece of content, the root of a reply forest.

Id: primary key, use to identify a tweet
CreatedAt: time when entity is created, default read order is newest first
UpdatedAt: time of the last mutation
Context: the tweet body in plain text
File: optional attachment reference handed out by the file store

UserID:
User: the author, "belongs-to" relation

PeopleYouFollow: when true the tweet is restricted, only accounts the
author follows may post a root reply

QuestionID:
Question: optional attached poll, "has-one" relation

*/
type Tweet struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	Context   string `gorm:"not null"`
	File      string

	UserID string `gorm:"index;not null"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	PeopleYouFollow bool

	QuestionID *string
	Question   *Question `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
