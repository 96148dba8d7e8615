package store

import (
	"fmt"
	"testing"

	"github.com/Luismorlan/chirper/model"
	"github.com/Luismorlan/chirper/utils"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(utils.NewTestDB(t), nil)
}

// mustCreateUser registers a user with defaulted profile fields.
func mustCreateUser(t *testing.T, s *Store, username string) *model.User {
	t.Helper()
	user, err := s.CreateUser(CreateUserInput{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func mustCreateTweet(t *testing.T, s *Store, userID, context string) *model.Tweet {
	t.Helper()
	tweet, err := s.CreateTweet(CreateTweetInput{
		UserID:  userID,
		Context: context,
	})
	require.NoError(t, err)
	return tweet
}

func mustCreateReply(t *testing.T, s *Store, input CreateReplyInput) *model.Reply {
	t.Helper()
	reply, err := s.CreateReply(input)
	require.NoError(t, err)
	return reply
}
