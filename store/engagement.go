package store

import (
	"github.com/Luismorlan/chirper/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like records a toggle engagement on a tweet or a reply. Exactly one
// Like row may exist per (user, target); a second call fails
// AlreadyLiked. The existence pre-check gives the common case a clean
// error, the unique index settles races.
func (s *Store) Like(userID string, target model.LikeTarget) (*model.Like, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}

	like := model.Like{
		Id:     uuid.New().String(),
		UserID: userID,
	}
	switch target.Kind {
	case model.LikeTargetTweet:
		tweet, err := s.GetTweet(target.Id)
		if err != nil {
			return nil, err
		}
		like.TweetID = &tweet.Id
	case model.LikeTargetReply:
		reply, err := s.GetReply(target.Id)
		if err != nil {
			return nil, err
		}
		like.ReplyID = &reply.Id
	}

	var count int64
	s.likeQuery(userID, target).Count(&count)
	if count > 0 {
		return nil, model.NewError(model.ErrAlreadyLiked, "user already liked that "+string(target.Kind))
	}

	if err := s.db.Create(&like).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, model.NewError(model.ErrAlreadyLiked, "user already liked that "+string(target.Kind))
		}
		return nil, model.NewInternalError(err)
	}
	return &like, nil
}

// Unlike removes the Like row, failing NotLiked when there is none.
func (s *Store) Unlike(userID string, target model.LikeTarget) error {
	if err := target.Validate(); err != nil {
		return err
	}

	res := s.likeQuery(userID, target).Delete(&model.Like{})
	if res.Error != nil {
		return model.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.NewError(model.ErrNotLiked, "user has not liked that "+string(target.Kind))
	}
	return nil
}

// LikeCount is a live count of Like rows for the target, never cached.
func (s *Store) LikeCount(target model.LikeTarget) (int64, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	var count int64
	var err error
	switch target.Kind {
	case model.LikeTargetTweet:
		err = s.db.Model(&model.Like{}).Where("tweet_id = ?", target.Id).Count(&count).Error
	case model.LikeTargetReply:
		err = s.db.Model(&model.Like{}).Where("reply_id = ?", target.Id).Count(&count).Error
	}
	if err != nil {
		return 0, model.NewInternalError(err)
	}
	return count, nil
}

func (s *Store) likeQuery(userID string, target model.LikeTarget) *gorm.DB {
	q := s.db.Model(&model.Like{}).Where("user_id = ?", userID)
	if target.Kind == model.LikeTargetTweet {
		return q.Where("tweet_id = ?", target.Id)
	}
	return q.Where("reply_id = ?", target.Id)
}

// Vote records a toggle engagement on a poll choice, one row per
// (user, choice).
func (s *Store) Vote(userID, choiceID string) (*model.Vote, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	var choice model.Choice
	if err := s.db.Where("id = ?", choiceID).First(&choice).Error; err != nil {
		if isNotFound(err) {
			return nil, model.NewNotFoundError("choice", choiceID)
		}
		return nil, model.NewInternalError(err)
	}

	var count int64
	s.db.Model(&model.Vote{}).
		Where("user_id = ? AND choice_id = ?", userID, choiceID).
		Count(&count)
	if count > 0 {
		return nil, model.NewError(model.ErrAlreadyVoted, "user already voted for that choice")
	}

	vote := model.Vote{
		Id:       uuid.New().String(),
		UserID:   userID,
		ChoiceID: choiceID,
	}
	if err := s.db.Create(&vote).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, model.NewError(model.ErrAlreadyVoted, "user already voted for that choice")
		}
		return nil, model.NewInternalError(err)
	}
	return &vote, nil
}

// Unvote removes the Vote row, failing NotVoted when there is none.
func (s *Store) Unvote(userID, choiceID string) error {
	res := s.db.Where("user_id = ? AND choice_id = ?", userID, choiceID).
		Delete(&model.Vote{})
	if res.Error != nil {
		return model.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.NewError(model.ErrNotVoted, "user has not voted for that choice")
	}
	return nil
}

// VoteCount is a live count of Vote rows for the choice.
func (s *Store) VoteCount(choiceID string) (int64, error) {
	var count int64
	if err := s.db.Model(&model.Vote{}).Where("choice_id = ?", choiceID).Count(&count).Error; err != nil {
		return 0, model.NewInternalError(err)
	}
	return count, nil
}
