package store

import (
	"testing"

	"github.com/Luismorlan/chirper/model"
	"github.com/Luismorlan/chirper/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeTimeline(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")
	carol := mustCreateUser(t, s, "carol")

	require.NoError(t, s.Follow(alice.Id, bob.Id))

	own := mustCreateTweet(t, s, alice.Id, "my own")
	followed := mustCreateTweet(t, s, bob.Id, "from bob")
	mustCreateTweet(t, s, carol.Id, "from carol")

	tweets, err := s.Home(alice.Id)
	require.NoError(t, err)
	require.Len(t, tweets, 2)

	// Newest first; carol's tweet is absent because alice doesn't
	// follow her.
	assert.Equal(t, followed.Id, tweets[0].Id)
	assert.Equal(t, own.Id, tweets[1].Id)

	_, err = s.Home("no-such-user")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrNotFound))
}

func TestNewsFeedForUnionOfTargetedAndBroadcast(t *testing.T) {
	db := utils.NewTestDB(t)
	s := NewStore(db, nil)
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	broadcast := model.NewsFeed{Id: uuid.New().String(), FromUserID: bob.Id, Description: "bob tweeted hi..."}
	toAlice := model.NewsFeed{Id: uuid.New().String(), FromUserID: bob.Id, Description: "bob replied...", ToUserID: &alice.Id}
	toBob := model.NewsFeed{Id: uuid.New().String(), FromUserID: alice.Id, Description: "alice replied...", ToUserID: &bob.Id}
	require.NoError(t, db.Create(&broadcast).Error)
	require.NoError(t, db.Create(&toAlice).Error)
	require.NoError(t, db.Create(&toBob).Error)

	entries, err := s.NewsFeedFor(alice.Id)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotEqual(t, toBob.Id, e.Id)
	}
}

func TestMarkNewsFeedRead(t *testing.T) {
	db := utils.NewTestDB(t)
	s := NewStore(db, nil)
	alice := mustCreateUser(t, s, "alice")

	entry := model.NewsFeed{Id: uuid.New().String(), FromUserID: alice.Id, Description: "alice tweeted hi..."}
	require.NoError(t, db.Create(&entry).Error)

	updated, err := s.MarkNewsFeedRead(entry.Id)
	require.NoError(t, err)
	assert.True(t, updated.IsRead)

	// Marking twice is a no-op, not an error.
	updated, err = s.MarkNewsFeedRead(entry.Id)
	require.NoError(t, err)
	assert.True(t, updated.IsRead)

	_, err = s.MarkNewsFeedRead("no-such-entry")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrNotFound))
}
