package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/Luismorlan/chirper/model"
	"github.com/Luismorlan/chirper/utils"
	Logger "github.com/Luismorlan/chirper/utils/log"
	"github.com/ThreeDotsLabs/watermill/message"
	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// descriptionRunes is how much of the content body makes it into a
// news-feed description.
const descriptionRunes = 30

const feedGeneratedCounter = "chirper.feed.generated"

/*

Generator consumes content-creation events and derives news-feed rows,
exactly one per event.

On tweet creation it emits a broadcast entry attributed to the author.
On root-reply creation it emits the same broadcast-style entry for the
replying user. On reply-to-reply it emits a targeted entry whose to_user
is the parent reply's author.

Generation runs outside the creating transaction: an error here is
logged, counted and dropped, never surfaced to the creating caller.

*/
type Generator struct {
	DB *gorm.DB

	// Statsd counts generated/failed entries; nil disables metrics.
	Statsd *statsd.Client

	// Redis fans freshly created entries out over pub/sub for realtime
	// delivery; nil disables fanout.
	Redis *goredis.Client
}

func NewGenerator(db *gorm.DB, statsdClient *statsd.Client, redisClient *goredis.Client) *Generator {
	return &Generator{DB: db, Statsd: statsdClient, Redis: redisClient}
}

// Run subscribes to the content-created topic and handles events until
// ctx is canceled. Handling failures are logged and the message is
// acked anyway: feed generation is at most once per creation.
func (g *Generator) Run(ctx context.Context, bus message.Subscriber) error {
	messages, err := bus.Subscribe(ctx, TopicContentCreated)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		var ev ContentEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			Logger.Log.Errorf("fail to decode content event, error: %s", err)
			g.count("decode_failure")
			continue
		}

		if err := g.Handle(ev); err != nil {
			Logger.Log.Errorf("fail to generate news feed for event %+v, error: %s", ev, err)
			g.count("failure")
			continue
		}
		g.count("success")
	}

	return nil
}

// Handle derives and persists the news-feed row for a single event.
// Exported so the standalone SQS-fed generator and tests can drive it
// synchronously.
func (g *Generator) Handle(ev ContentEvent) error {
	switch ev.Kind {
	case ContentKindTweet:
		return g.handleTweet(ev)
	case ContentKindReply:
		return g.handleReply(ev)
	default:
		return errors.Errorf("unknown content kind %q", ev.Kind)
	}
}

func (g *Generator) handleTweet(ev ContentEvent) error {
	var tweet model.Tweet
	if err := g.DB.Preload("User").Where("id = ?", ev.SubjectID).First(&tweet).Error; err != nil {
		return errors.Wrap(err, "fail to load tweet")
	}

	entry := model.NewsFeed{
		Id:          uuid.New().String(),
		FromUserID:  tweet.UserID,
		Description: fmt.Sprintf("%s tweeted %s...", tweet.User.Username, utils.TruncateRunes(tweet.Context, descriptionRunes)),
	}
	return g.persist(&entry)
}

func (g *Generator) handleReply(ev ContentEvent) error {
	var reply model.Reply
	if err := g.DB.Preload("User").Where("id = ?", ev.SubjectID).First(&reply).Error; err != nil {
		return errors.Wrap(err, "fail to load reply")
	}

	text := utils.TruncateRunes(reply.Context, descriptionRunes)

	if reply.ParentID == nil {
		entry := model.NewsFeed{
			Id:          uuid.New().String(),
			FromUserID:  reply.UserID,
			Description: fmt.Sprintf("%s replied with %s...", reply.User.Username, text),
		}
		return g.persist(&entry)
	}

	var parent model.Reply
	if err := g.DB.Preload("User").Where("id = ?", *reply.ParentID).First(&parent).Error; err != nil {
		return errors.Wrap(err, "fail to load parent reply")
	}

	entry := model.NewsFeed{
		Id:          uuid.New().String(),
		FromUserID:  reply.UserID,
		Description: fmt.Sprintf("%s replied with %s to %s...", reply.User.Username, text, parent.User.Username),
		ToUserID:    &parent.UserID,
	}
	return g.persist(&entry)
}

func (g *Generator) persist(entry *model.NewsFeed) error {
	if err := g.DB.Create(entry).Error; err != nil {
		return errors.Wrap(err, "fail to create news feed entry")
	}
	g.fanout(entry)
	return nil
}

// fanout publishes the fresh entry over redis pub/sub. Best effort, a
// fanout failure doesn't undo the persisted entry.
func (g *Generator) fanout(entry *model.NewsFeed) {
	if g.Redis == nil {
		return
	}
	channel := utils.NewsFeedBroadcastChannel
	if entry.ToUserID != nil {
		channel = utils.NewsFeedChannel(*entry.ToUserID)
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := g.Redis.Publish(context.Background(), channel, payload).Err(); err != nil {
		Logger.Log.Infof("fail to fan out news feed entry %s, error: %s", entry.Id, err)
	}
}

func (g *Generator) count(result string) {
	if g.Statsd == nil {
		return
	}
	if err := g.Statsd.Incr(feedGeneratedCounter, []string{"result:" + result}, 1); err != nil {
		Logger.Log.Infoln("cannot report feed generation metric")
	}
}
