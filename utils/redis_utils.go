package utils

import (
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
)

// GetRedisClient builds a client from the REDIS_* env vars. The feed
// generator uses it to fan out fresh news-feed entries over pub/sub;
// callers must treat a nil client as "fanout disabled".
func GetRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
}

// NewsFeedChannel is the pub/sub channel carrying news-feed entries for
// a single user. Broadcast entries go to NewsFeedBroadcastChannel.
func NewsFeedChannel(userId string) string {
	return fmt.Sprintf("news_feed:%s", userId)
}

const NewsFeedBroadcastChannel = "news_feed:all"
