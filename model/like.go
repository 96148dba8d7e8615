package model

import (
	"time"

	"gorm.io/gorm"
)

// LikeTargetKind tags which entity kind a like points at.
type LikeTargetKind string

const (
	LikeTargetTweet LikeTargetKind = "tweet"
	LikeTargetReply LikeTargetKind = "reply"
)

// LikeTarget is the tagged variant {Tweet(id) | Reply(id)} used by the
// engagement operations. Storage keeps two nullable foreign keys, the
// variant keeps the mutual exclusivity structural at the API boundary.
type LikeTarget struct {
	Kind LikeTargetKind
	Id   string
}

// TweetTarget returns a like target pointing at a tweet.
func TweetTarget(id string) LikeTarget {
	return LikeTarget{Kind: LikeTargetTweet, Id: id}
}

// ReplyTarget returns a like target pointing at a reply.
func ReplyTarget(id string) LikeTarget {
	return LikeTarget{Kind: LikeTargetReply, Id: id}
}

// Validate rejects unknown kinds and empty ids.
func (t LikeTarget) Validate() error {
	if t.Id == "" {
		return NewValidationError("like target id is required")
	}
	if t.Kind != LikeTargetTweet && t.Kind != LikeTargetReply {
		return NewValidationError("like target kind must be tweet or reply")
	}
	return nil
}

/*

Like is a toggle engagement record: it exists 0 or 1 times per
(user, target) pair.

UserID: the liking user
TweetID / ReplyID: exactly one is set, selected by the LikeTarget kind

The partial composite unique indexes (user_id, tweet_id) and
(user_id, reply_id) serialize concurrent likes at the storage layer:
a race between two like calls yields one row and one AlreadyLiked.
NULLs never collide, so a user's tweet likes don't conflict with their
reply likes.

*/
type Like struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID  string  `gorm:"not null;uniqueIndex:idx_like_user_tweet,priority:1;uniqueIndex:idx_like_user_reply,priority:1"`
	User    User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TweetID *string `gorm:"uniqueIndex:idx_like_user_tweet,priority:2"`
	ReplyID *string `gorm:"uniqueIndex:idx_like_user_reply,priority:2"`
}

// BeforeCreate enforces that a like points at exactly one target.
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if (l.TweetID == nil) == (l.ReplyID == nil) {
		return NewValidationError("a like must reference exactly one of tweet or reply")
	}
	return nil
}
