package model

import "time"

/*

UserFollow is a directed "many-to-many" follow edge between two users.

FollowerID: the user who follows
FolloweeID: the user being followed
CreatedAt: time when the edge is created, follower/following lists are
read back in this insertion order

The composite primary key doubles as the uniqueness constraint: two
concurrent follow calls for the same pair can only produce one row, the
loser surfaces as AlreadyFollowing.

*/
type UserFollow struct {
	FollowerID string `gorm:"primaryKey"`
	FolloweeID string `gorm:"primaryKey"`
	CreatedAt  time.Time
}
