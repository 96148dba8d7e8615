package model

import "time"

/*

User is an account on the platform.

Id: primary key, use to identify a user
CreatedAt: time when entity is created
UpdatedAt: time of the last mutation
Username: display handle, unique across all users
Email: login identity, unique across all users
PasswordHash: bcrypt hash of the user's password, never serialized
IsActive: deactivated accounts cannot authenticate
IsOnline: presence flag toggled by the client

ProfileID:
Profile: the user's profile, "has-one" relation

Following: users this user follows, "many-to-many" self reference
Followers: users following this user, the reverse side of the same edge set

Follower counts are never cached, always derive them by counting
UserFollow rows.

*/
type User struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-"`
	IsActive     bool   `gorm:"default:true"`
	IsOnline     bool

	ProfileID *string
	Profile   *Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`

	Following []*User `json:"following" gorm:"many2many:user_follows;joinForeignKey:FollowerID;joinReferences:FolloweeID"`
	Followers []*User `json:"followers" gorm:"many2many:user_follows;joinForeignKey:FolloweeID;joinReferences:FollowerID"`
}
