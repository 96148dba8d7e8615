package feed_test

import (
	"encoding/json"
	"testing"

	"github.com/Luismorlan/chirper/feed"
	"github.com/Luismorlan/chirper/store"
	"github.com/Luismorlan/chirper/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMessageQueueReader struct {
	msgs    []*utils.MessageQueueMessage
	deleted []*utils.MessageQueueMessage
}

func (reader *testMessageQueueReader) DeleteMessage(msg *utils.MessageQueueMessage) error {
	reader.deleted = append(reader.deleted, msg)
	return nil
}

// Always return all messages
func (reader *testMessageQueueReader) ReceiveMessages(maxNumberOfMessages int64) ([]*utils.MessageQueueMessage, error) {
	return reader.msgs, nil
}

func newTestMessageQueueReader(events []feed.ContentEvent) *testMessageQueueReader {
	var reader testMessageQueueReader
	for _, ev := range events {
		data, _ := json.Marshal(&ev)
		body := string(data)
		reader.msgs = append(reader.msgs, &utils.MessageQueueMessage{Message: &body})
	}
	return &reader
}

func TestProcessorHandlesQueuedEvent(t *testing.T) {
	db := utils.NewTestDB(t)
	s := store.NewStore(db, nil)
	alice := createUser(t, s, "alice")
	tweet, err := s.CreateTweet(store.CreateTweetInput{UserID: alice.Id, Context: "hello"})
	require.NoError(t, err)

	reader := newTestMessageQueueReader([]feed.ContentEvent{
		{Kind: feed.ContentKindTweet, ActorID: alice.Id, SubjectID: tweet.Id},
	})
	processor := feed.NewProcessor(reader, feed.NewGenerator(db, nil, nil))

	processor.ReadAndProcessMessages(1)

	entries := feedEntries(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice tweeted hello...", entries[0].Description)
	// Handled messages are deleted from the queue.
	assert.Len(t, reader.deleted, 1)
}

func TestProcessorDropsMalformedMessage(t *testing.T) {
	db := utils.NewTestDB(t)

	body := "not json"
	reader := &testMessageQueueReader{
		msgs: []*utils.MessageQueueMessage{{Message: &body}},
	}
	processor := feed.NewProcessor(reader, feed.NewGenerator(db, nil, nil))

	processor.ReadAndProcessMessages(1)

	assert.Empty(t, feedEntries(t, db))
	// Malformed payloads never become valid, they must not be retried.
	assert.Len(t, reader.deleted, 1)
}

func TestProcessorKeepsFailedMessageForRetry(t *testing.T) {
	db := utils.NewTestDB(t)

	reader := newTestMessageQueueReader([]feed.ContentEvent{
		{Kind: feed.ContentKindTweet, SubjectID: "missing-tweet"},
	})
	processor := feed.NewProcessor(reader, feed.NewGenerator(db, nil, nil))

	processor.ReadAndProcessMessages(1)

	assert.Empty(t, feedEntries(t, db))
	assert.Empty(t, reader.deleted)
}
