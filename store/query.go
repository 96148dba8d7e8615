package store

import (
	"github.com/Luismorlan/chirper/model"
)

// Home assembles the user's home timeline: the union of tweets authored
// by accounts the user follows and the user's own tweets, newest first.
// A plain set union over one table scan, no ranking and no duplicates
// by construction.
func (s *Store) Home(userID string) ([]model.Tweet, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}

	followees := s.db.Model(&model.UserFollow{}).
		Select("followee_id").
		Where("follower_id = ?", userID)

	var tweets []model.Tweet
	err := s.db.Preload("User").
		Where("user_id IN (?) OR user_id = ?", followees, userID).
		Order("created_at DESC").
		Find(&tweets).Error
	if err != nil {
		return nil, model.NewInternalError(err)
	}
	return tweets, nil
}

// NewsFeedFor returns the user's news feed: targeted entries addressed
// to them plus all broadcast entries, newest first.
func (s *Store) NewsFeedFor(userID string) ([]model.NewsFeed, error) {
	var entries []model.NewsFeed
	err := s.db.Preload("FromUser").Preload("ToUser").
		Where("to_user_id = ? OR to_user_id IS NULL", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, model.NewInternalError(err)
	}
	return entries, nil
}

// MarkNewsFeedRead flips the read marker on a single entry.
func (s *Store) MarkNewsFeedRead(id string) (*model.NewsFeed, error) {
	var entry model.NewsFeed
	if err := s.db.Where("id = ?", id).First(&entry).Error; err != nil {
		if isNotFound(err) {
			return nil, model.NewNotFoundError("news feed entry", id)
		}
		return nil, model.NewInternalError(err)
	}
	if !entry.IsRead {
		entry.IsRead = true
		if err := s.db.Model(&entry).Update("is_read", true).Error; err != nil {
			return nil, model.NewInternalError(err)
		}
	}
	return &entry, nil
}
