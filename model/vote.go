package model

import "time"

/*

Vote is a toggle engagement record on a poll choice, 0 or 1 rows per
(user, choice) pair. Same storage-layer uniqueness contract as Like.

*/
type Vote struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID   string `gorm:"not null;uniqueIndex:idx_vote_user_choice,priority:1"`
	User     User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ChoiceID string `gorm:"not null;uniqueIndex:idx_vote_user_choice,priority:2"`
	Choice   Choice `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
