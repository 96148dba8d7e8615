package model

import "time"

// ProfileImage holds the stored references of a profile's picture pair.
// The backend only keeps the file store references, never the bytes.
type ProfileImage struct {
	Id                string `gorm:"primaryKey"`
	Picture           string
	BackgroundPicture string
}

/*

Profile is the public-facing detail page of a user, "has-one" from User.

Bio: free-form text, at most 160 characters
Location: free-form location string
Website: personal website, validated as url on input
BirthDate: date of birth

ImagesID:
Images: profile picture references, "has-one" relation

*/
type Profile struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Bio       string
	Location  string
	Website   string
	BirthDate time.Time

	ImagesID *string
	Images   *ProfileImage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
