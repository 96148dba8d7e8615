package store

import (
	"fmt"
	"math"
	"time"

	"github.com/Luismorlan/chirper/feed"
	"github.com/Luismorlan/chirper/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// pollChoiceCount is the number of options a poll must carry. The
// schema is N-ary, the creation flow pins it down.
const pollChoiceCount = 2

// PollInput attaches a poll to a new tweet.
type PollInput struct {
	Question string   `validate:"required,max=200"`
	Choices  []string `validate:"required,dive,required,max=25"`
}

type CreateTweetInput struct {
	UserID          string `validate:"required"`
	Context         string `validate:"required"`
	File            string
	PeopleYouFollow bool
	Poll            *PollInput
}

// CreateTweet persists a tweet (and its optional poll) and emits one
// content-created event after commit. The event is fire and forget: the
// tweet is created even if feed generation never happens.
func (s *Store) CreateTweet(input CreateTweetInput) (*model.Tweet, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if input.Poll != nil && len(input.Poll.Choices) != pollChoiceCount {
		return nil, model.NewValidationError(
			fmt.Sprintf("a poll must have exactly %d choices", pollChoiceCount))
	}
	if _, err := s.GetUser(input.UserID); err != nil {
		return nil, err
	}

	tweet := model.Tweet{
		Id:              uuid.New().String(),
		Context:         input.Context,
		File:            input.File,
		UserID:          input.UserID,
		PeopleYouFollow: input.PeopleYouFollow,
	}

	var question model.Question
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if input.Poll != nil {
			question = model.Question{
				Id:      uuid.New().String(),
				Text:    input.Poll.Question,
				PubDate: time.Now(),
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			for _, text := range input.Poll.Choices {
				choice := model.Choice{
					Id:         uuid.New().String(),
					QuestionID: question.Id,
					Text:       text,
				}
				if err := tx.Create(&choice).Error; err != nil {
					return err
				}
				question.Choices = append(question.Choices, choice)
			}
			tweet.QuestionID = &question.Id
		}
		return tx.Create(&tweet).Error
	})
	if err != nil {
		return nil, model.NewInternalError(err)
	}
	if input.Poll != nil {
		tweet.Question = &question
	}

	feed.PublishContentEvent(s.bus, feed.ContentEvent{
		Kind:      feed.ContentKindTweet,
		ActorID:   tweet.UserID,
		SubjectID: tweet.Id,
	})

	return &tweet, nil
}

func (s *Store) GetTweet(id string) (*model.Tweet, error) {
	var tweet model.Tweet
	err := s.db.Preload("User").Preload("Question.Choices").
		Where("id = ?", id).First(&tweet).Error
	if err != nil {
		if isNotFound(err) {
			return nil, model.NewNotFoundError("tweet", id)
		}
		return nil, model.NewInternalError(err)
	}
	return &tweet, nil
}

// ListTweets returns all tweets, newest first.
func (s *Store) ListTweets() ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := s.db.Preload("User").Order("created_at DESC").Find(&tweets).Error
	if err != nil {
		return nil, model.NewInternalError(err)
	}
	return tweets, nil
}

func (s *Store) TweetsByUser(userID string) ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&tweets).Error
	if err != nil {
		return nil, model.NewInternalError(err)
	}
	return tweets, nil
}

// DeleteTweet physically removes the tweet and everything it owns: the
// whole reply forest, likes on the tweet and its replies, and the poll
// with its votes.
func (s *Store) DeleteTweet(id string) error {
	tweet, err := s.GetTweet(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		replyIDs := tx.Model(&model.Reply{}).Select("id").Where("tweet_id = ?", id)
		if err := tx.Where("tweet_id = ? OR reply_id IN (?)", id, replyIDs).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", id).Delete(&model.Reply{}).Error; err != nil {
			return err
		}

		if tweet.QuestionID != nil {
			choiceIDs := tx.Model(&model.Choice{}).Select("id").
				Where("question_id = ?", *tweet.QuestionID)
			if err := tx.Where("choice_id IN (?)", choiceIDs).Delete(&model.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id = ?", *tweet.QuestionID).
				Delete(&model.Choice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", *tweet.QuestionID).
				Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&model.Tweet{}).Error
	})
	if err != nil {
		return model.NewInternalError(err)
	}
	return nil
}

// Retweet reposts an existing tweet under a new author, keeping the
// body, attachment and original creation time.
func (s *Store) Retweet(userID, tweetID string) (*model.Tweet, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	original, err := s.GetTweet(tweetID)
	if err != nil {
		return nil, err
	}

	tweet := model.Tweet{
		Id:        uuid.New().String(),
		Context:   original.Context,
		File:      original.File,
		UserID:    userID,
		CreatedAt: original.CreatedAt,
	}
	if err := s.db.Create(&tweet).Error; err != nil {
		return nil, model.NewInternalError(err)
	}

	feed.PublishContentEvent(s.bus, feed.ContentEvent{
		Kind:      feed.ContentKindTweet,
		ActorID:   userID,
		SubjectID: tweet.Id,
	})
	return &tweet, nil
}

// RetweetReply promotes a reply into a standalone tweet under a new
// author.
func (s *Store) RetweetReply(userID, replyID string) (*model.Tweet, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	reply, err := s.GetReply(replyID)
	if err != nil {
		return nil, err
	}

	tweet := model.Tweet{
		Id:        uuid.New().String(),
		Context:   reply.Context,
		File:      reply.File,
		UserID:    userID,
		CreatedAt: reply.CreatedAt,
	}
	if err := s.db.Create(&tweet).Error; err != nil {
		return nil, model.NewInternalError(err)
	}

	feed.PublishContentEvent(s.bus, feed.ContentEvent{
		Kind:      feed.ContentKindTweet,
		ActorID:   userID,
		SubjectID: tweet.Id,
	})
	return &tweet, nil
}

type CreateReplyInput struct {
	TweetID  string `validate:"required"`
	ParentID *string
	UserID   string `validate:"required"`
	Context  string `validate:"required"`
	File     string
}

// CreateReply creates a node in the reply forest.
//
// A root reply (no parent) to a restricted tweet is only allowed when
// the tweet owner follows the replying user; every other root reply is
// unconditional. A reply to a reply inherits no gating at all, the
// restriction is only checked at the root. The asymmetry is deliberate
// and matches the long-standing behavior of the product.
func (s *Store) CreateReply(input CreateReplyInput) (*model.Reply, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.GetUser(input.UserID); err != nil {
		return nil, err
	}

	reply := model.Reply{
		Id:      uuid.New().String(),
		Context: input.Context,
		File:    input.File,
		UserID:  input.UserID,
	}

	if input.ParentID == nil {
		tweet, err := s.GetTweet(input.TweetID)
		if err != nil {
			return nil, err
		}
		if tweet.PeopleYouFollow && !s.follows(tweet.UserID, input.UserID) {
			return nil, model.NewError(model.ErrVisibilityDenied,
				"this tweet only accepts replies from people its owner follows")
		}
		reply.TweetID = tweet.Id
		reply.Path = pathSegment(time.Now())
	} else {
		parent, err := s.GetReply(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.TweetID != input.TweetID {
			return nil, model.NewValidationError("parent reply belongs to a different tweet")
		}
		reply.TweetID = parent.TweetID
		reply.ParentID = &parent.Id
		reply.Path = parent.Path + "." + pathSegment(time.Now())
	}

	if err := s.db.Create(&reply).Error; err != nil {
		return nil, model.NewInternalError(err)
	}

	feed.PublishContentEvent(s.bus, feed.ContentEvent{
		Kind:      feed.ContentKindReply,
		ActorID:   reply.UserID,
		SubjectID: reply.Id,
	})

	return &reply, nil
}

// pathSegment encodes a creation instant as a fixed-width, inverted
// path segment: later instants produce lexicographically smaller
// segments, so ascending path order reads newest sibling first.
func pathSegment(t time.Time) string {
	return fmt.Sprintf("%019d", math.MaxInt64-t.UnixNano())
}

func (s *Store) GetReply(id string) (*model.Reply, error) {
	var reply model.Reply
	err := s.db.Preload("User").Where("id = ?", id).First(&reply).Error
	if err != nil {
		if isNotFound(err) {
			return nil, model.NewNotFoundError("reply", id)
		}
		return nil, model.NewInternalError(err)
	}
	return &reply, nil
}

// Descendants returns the full subtree beneath the reply, excluding the
// node itself. One indexed prefix scan; ascending path order is exactly
// the pre-order depth-first walk with the newest sibling first.
func (s *Store) Descendants(replyID string) ([]model.Reply, error) {
	reply, err := s.GetReply(replyID)
	if err != nil {
		return nil, err
	}

	var descendants []model.Reply
	err = s.db.Preload("User").
		Where("tweet_id = ? AND path LIKE ?", reply.TweetID, reply.Path+".%").
		Order("path ASC").
		Find(&descendants).Error
	if err != nil {
		return nil, model.NewInternalError(err)
	}
	return descendants, nil
}

// RepliesForTweet returns the tweet's whole reply forest in thread
// order (pre-order, newest root first).
func (s *Store) RepliesForTweet(tweetID string) ([]model.Reply, error) {
	var replies []model.Reply
	err := s.db.Preload("User").
		Where("tweet_id = ?", tweetID).
		Order("path ASC").
		Find(&replies).Error
	if err != nil {
		return nil, model.NewInternalError(err)
	}
	return replies, nil
}

// Children returns the direct children of a reply, newest first.
func (s *Store) Children(replyID string) ([]model.Reply, error) {
	var children []model.Reply
	err := s.db.Preload("User").
		Where("parent_id = ?", replyID).
		Order("path ASC").
		Find(&children).Error
	if err != nil {
		return nil, model.NewInternalError(err)
	}
	return children, nil
}

// DeleteReply removes the reply with its entire subtree and all likes
// attached to any node in it.
func (s *Store) DeleteReply(id string) error {
	reply, err := s.GetReply(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		subtree := tx.Model(&model.Reply{}).Select("id").
			Where("tweet_id = ? AND (id = ? OR path LIKE ?)", reply.TweetID, reply.Id, reply.Path+".%")
		if err := tx.Where("reply_id IN (?)", subtree).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.
			Where("tweet_id = ? AND (id = ? OR path LIKE ?)", reply.TweetID, reply.Id, reply.Path+".%").
			Delete(&model.Reply{}).Error
	})
	if err != nil {
		return model.NewInternalError(err)
	}
	return nil
}
