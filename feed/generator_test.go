package feed_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Luismorlan/chirper/feed"
	"github.com/Luismorlan/chirper/model"
	"github.com/Luismorlan/chirper/store"
	"github.com/Luismorlan/chirper/utils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestGenerator(t *testing.T) (*feed.Generator, *store.Store, *gorm.DB) {
	t.Helper()
	db := utils.NewTestDB(t)
	return feed.NewGenerator(db, nil, nil), store.NewStore(db, nil), db
}

func createUser(t *testing.T, s *store.Store, username string) *model.User {
	t.Helper()
	user, err := s.CreateUser(store.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func feedEntries(t *testing.T, db *gorm.DB) []model.NewsFeed {
	t.Helper()
	var entries []model.NewsFeed
	require.NoError(t, db.Find(&entries).Error)
	return entries
}

func TestHandleTweetEmitsBroadcastEntry(t *testing.T) {
	g, s, db := newTestGenerator(t)
	alice := createUser(t, s, "alice")
	tweet, err := s.CreateTweet(store.CreateTweetInput{UserID: alice.Id, Context: "hello world"})
	require.NoError(t, err)

	require.NoError(t, g.Handle(feed.ContentEvent{Kind: feed.ContentKindTweet, ActorID: alice.Id, SubjectID: tweet.Id}))

	entries := feedEntries(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice tweeted hello world...", entries[0].Description)
	assert.Equal(t, alice.Id, entries[0].FromUserID)
	assert.Nil(t, entries[0].ToUserID)
	assert.False(t, entries[0].IsRead)
}

func TestHandleTweetTruncatesLongBody(t *testing.T) {
	g, s, db := newTestGenerator(t)
	alice := createUser(t, s, "alice")

	body := strings.Repeat("x", 100)
	tweet, err := s.CreateTweet(store.CreateTweetInput{UserID: alice.Id, Context: body})
	require.NoError(t, err)

	require.NoError(t, g.Handle(feed.ContentEvent{Kind: feed.ContentKindTweet, SubjectID: tweet.Id}))

	entries := feedEntries(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice tweeted "+strings.Repeat("x", 30)+"...", entries[0].Description)
}

func TestHandleRootReplyEmitsBroadcastEntry(t *testing.T) {
	g, s, db := newTestGenerator(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	tweet, err := s.CreateTweet(store.CreateTweetInput{UserID: alice.Id, Context: "root"})
	require.NoError(t, err)
	reply, err := s.CreateReply(store.CreateReplyInput{TweetID: tweet.Id, UserID: bob.Id, Context: "nice one"})
	require.NoError(t, err)

	require.NoError(t, g.Handle(feed.ContentEvent{Kind: feed.ContentKindReply, SubjectID: reply.Id}))

	entries := feedEntries(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob replied with nice one...", entries[0].Description)
	assert.Nil(t, entries[0].ToUserID)
}

func TestHandleNestedReplyEmitsTargetedEntry(t *testing.T) {
	g, s, db := newTestGenerator(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	tweet, err := s.CreateTweet(store.CreateTweetInput{UserID: alice.Id, Context: "root"})
	require.NoError(t, err)
	parent, err := s.CreateReply(store.CreateReplyInput{TweetID: tweet.Id, UserID: alice.Id, Context: "parent"})
	require.NoError(t, err)
	nested, err := s.CreateReply(store.CreateReplyInput{TweetID: tweet.Id, ParentID: &parent.Id, UserID: bob.Id, Context: "nested"})
	require.NoError(t, err)

	require.NoError(t, g.Handle(feed.ContentEvent{Kind: feed.ContentKindReply, SubjectID: nested.Id}))

	entries := feedEntries(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob replied with nested to alice...", entries[0].Description)
	require.NotNil(t, entries[0].ToUserID)
	assert.Equal(t, alice.Id, *entries[0].ToUserID)
}

func TestHandleUnknownKind(t *testing.T) {
	g, _, _ := newTestGenerator(t)
	assert.Error(t, g.Handle(feed.ContentEvent{Kind: "poll", SubjectID: "x"}))
}

func TestHandleMissingSubject(t *testing.T) {
	g, _, db := newTestGenerator(t)
	assert.Error(t, g.Handle(feed.ContentEvent{Kind: feed.ContentKindTweet, SubjectID: "gone"}))
	assert.Empty(t, feedEntries(t, db))
}

// End to end through the in-process bus: a store create call must
// eventually show up as a news-feed row without the caller waiting on
// generation.
func TestGeneratorRunConsumesStoreEvents(t *testing.T) {
	db := utils.NewTestDB(t)
	// Persistent so the event is not lost if the publish lands before
	// the subscription is fully established.
	bus := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	defer bus.Close()

	g := feed.NewGenerator(db, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = g.Run(ctx, bus)
	}()

	s := store.NewStore(db, bus)
	alice := createUser(t, s, "alice")
	_, err := s.CreateTweet(store.CreateTweetInput{UserID: alice.Id, Context: "hello"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(feedEntries(t, db)) == 1
	}, 3*time.Second, 10*time.Millisecond)
}
