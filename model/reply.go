package model

import "time"

/*

Reply is a node in the threaded-reply forest rooted at Tweets.

Id: primary key
CreatedAt: time when entity is created
UpdatedAt: time of the last mutation
Context: the reply body in plain text
File: optional attachment reference

TweetID:
Tweet: the root tweet of the whole thread, set on every node of the
subtree so a thread is a single indexed range scan

ParentID:
Parent: the parent reply, nil for a direct reply to the tweet

UserID:
User: the author, "belongs-to" relation

Path: materialized tree path. Each node contributes one fixed-width
segment, segments are joined with ".". A segment is the node's creation
sequence inverted against the maximum value, so a plain ascending sort
on (tweet_id, path) is exactly a pre-order depth-first walk with the
newest sibling first. Descendant reads and subtree deletes become a
single prefix match instead of a recursive join per level.

*/
type Reply struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Context   string `gorm:"not null"`
	File      string

	TweetID string `gorm:"index:idx_replies_thread,priority:1;not null"`
	Tweet   Tweet  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	ParentID *string
	Parent   *Reply `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	UserID string `gorm:"index;not null"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Path string `gorm:"index:idx_replies_thread,priority:2;not null"`
}

// Depth is the nesting level of the reply, 0 for a direct reply to a
// tweet. Derived from the materialized path.
func (r *Reply) Depth() int {
	if r.Path == "" {
		return 0
	}
	depth := 0
	for _, c := range r.Path {
		if c == '.' {
			depth++
		}
	}
	return depth
}
