package rest

import (
	"time"

	"github.com/Luismorlan/chirper/model"
	"github.com/jinzhu/copier"
)

// Wire shapes for the REST surface. Domain structs never leave the
// process directly, they are copied into these DTOs so the JSON
// contract stays stable when the storage model moves.

type UserDTO struct {
	Id        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	IsOnline  bool      `json:"is_online"`
	CreatedAt time.Time `json:"created_at"`

	Profile *ProfileDTO `json:"profile,omitempty"`
}

type ProfileDTO struct {
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Website   string    `json:"website"`
	BirthDate time.Time `json:"birth_date"`
}

type TweetDTO struct {
	Id              string    `json:"id"`
	Context         string    `json:"context"`
	File            string    `json:"file,omitempty"`
	UserID          string    `json:"user_id"`
	PeopleYouFollow bool      `json:"people_you_follow"`
	CreatedAt       time.Time `json:"created_at"`

	Question *QuestionDTO `json:"question,omitempty"`
}

type QuestionDTO struct {
	Id      string      `json:"id"`
	Text    string      `json:"text"`
	PubDate time.Time   `json:"pub_date"`
	Choices []ChoiceDTO `json:"choices"`
}

type ChoiceDTO struct {
	Id   string `json:"id"`
	Text string `json:"text"`
}

type ReplyDTO struct {
	Id        string    `json:"id"`
	Context   string    `json:"context"`
	File      string    `json:"file,omitempty"`
	TweetID   string    `json:"tweet_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Depth     int       `json:"depth"`
}

type LikeDTO struct {
	Id      string  `json:"id"`
	UserID  string  `json:"user_id"`
	TweetID *string `json:"tweet_id,omitempty"`
	ReplyID *string `json:"reply_id,omitempty"`
}

type VoteDTO struct {
	Id       string `json:"id"`
	UserID   string `json:"user_id"`
	ChoiceID string `json:"choice_id"`
}

type NewsFeedDTO struct {
	Id          string    `json:"id"`
	FromUserID  string    `json:"from_user_id"`
	Description string    `json:"description"`
	IsRead      bool      `json:"is_read"`
	ToUserID    *string   `json:"to_user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserDTO(u *model.User) UserDTO {
	var dto UserDTO
	copier.Copy(&dto, u)
	if u.Profile != nil {
		var p ProfileDTO
		copier.Copy(&p, u.Profile)
		dto.Profile = &p
	}
	return dto
}

func toUserDTOs(users []model.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, toUserDTO(&users[i]))
	}
	return dtos
}

func toTweetDTO(t *model.Tweet) TweetDTO {
	var dto TweetDTO
	copier.Copy(&dto, t)
	if t.Question != nil {
		var q QuestionDTO
		copier.Copy(&q, t.Question)
		dto.Question = &q
	}
	return dto
}

func toTweetDTOs(tweets []model.Tweet) []TweetDTO {
	dtos := make([]TweetDTO, 0, len(tweets))
	for i := range tweets {
		dtos = append(dtos, toTweetDTO(&tweets[i]))
	}
	return dtos
}

func toReplyDTO(r *model.Reply) ReplyDTO {
	var dto ReplyDTO
	copier.Copy(&dto, r)
	dto.Depth = r.Depth()
	return dto
}

func toReplyDTOs(replies []model.Reply) []ReplyDTO {
	dtos := make([]ReplyDTO, 0, len(replies))
	for i := range replies {
		dtos = append(dtos, toReplyDTO(&replies[i]))
	}
	return dtos
}

func toLikeDTO(l *model.Like) LikeDTO {
	var dto LikeDTO
	copier.Copy(&dto, l)
	return dto
}

func toVoteDTO(v *model.Vote) VoteDTO {
	var dto VoteDTO
	copier.Copy(&dto, v)
	return dto
}

func toNewsFeedDTO(n *model.NewsFeed) NewsFeedDTO {
	var dto NewsFeedDTO
	copier.Copy(&dto, n)
	return dto
}

func toNewsFeedDTOs(entries []model.NewsFeed) []NewsFeedDTO {
	dtos := make([]NewsFeedDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, toNewsFeedDTO(&entries[i]))
	}
	return dtos
}
