package model

import "time"

/*

Question is the poll attached to a tweet.

Id: primary key
Text: the poll question in plain text
PubDate: time when the poll is published
Choices: the poll's options, "has-many" relation

The creation flow validates exactly two choices per poll; the schema
itself stays N-ary.

*/
type Question struct {
	Id      string `gorm:"primaryKey"`
	Text    string
	PubDate time.Time

	Choices []Choice `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Choice is one option of a poll. Vote counts are always a live count of
// Vote rows, never denormalized onto the choice.
type Choice struct {
	Id         string `gorm:"primaryKey"`
	QuestionID string `gorm:"index;not null"`
	Text       string
}
