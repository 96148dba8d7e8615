package feed

import (
	"encoding/json"

	Logger "github.com/Luismorlan/chirper/utils/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// TopicContentCreated carries one event per created tweet or reply.
const TopicContentCreated = "content.created"

type ContentKind string

const (
	ContentKindTweet ContentKind = "tweet"
	ContentKindReply ContentKind = "reply"
)

// ContentEvent is the news-feed trigger emitted after a content row is
// committed. SubjectID is the created tweet/reply id; the generator
// re-reads the row so the payload stays minimal.
type ContentEvent struct {
	Kind      ContentKind `json:"kind"`
	ActorID   string      `json:"actor_id"`
	SubjectID string      `json:"subject_id"`
}

// PublishContentEvent pushes the event onto the bus. Feed generation is
// fire and forget: a publish failure is logged and dropped, it must
// never fail the content creation that triggered it. A nil publisher
// disables feed generation entirely (some tests run without it).
func PublishContentEvent(bus message.Publisher, ev ContentEvent) {
	if bus == nil {
		return
	}
	data, err := json.Marshal(&ev)
	if err != nil {
		Logger.Log.Errorf("fail to marshal content event %+v, error: %s", ev, err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := bus.Publish(TopicContentCreated, msg); err != nil {
		Logger.Log.Errorf("fail to publish content event %+v, error: %s", ev, err)
	}
}
