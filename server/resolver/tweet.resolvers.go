package resolver

import (
	"github.com/Luismorlan/chirper/model"
	"github.com/Luismorlan/chirper/store"
	graphql "github.com/graph-gophers/graphql-go"
)

// TweetResolver wraps a tweet row.
type TweetResolver struct {
	s *store.Store
	t model.Tweet
}

func wrapTweets(s *store.Store, tweets []model.Tweet) []*TweetResolver {
	resolvers := make([]*TweetResolver, 0, len(tweets))
	for _, t := range tweets {
		resolvers = append(resolvers, &TweetResolver{s: s, t: t})
	}
	return resolvers
}

func (r *TweetResolver) ID() graphql.ID {
	return graphql.ID(r.t.Id)
}

func (r *TweetResolver) Context() string {
	return r.t.Context
}

func (r *TweetResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.t.CreatedAt}
}

func (r *TweetResolver) File() string {
	return r.t.File
}

func (r *TweetResolver) Restricted() bool {
	return r.t.PeopleYouFollow
}

func (r *TweetResolver) User() (*UserResolver, error) {
	user, err := r.s.GetUser(r.t.UserID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{s: r.s, u: *user}, nil
}

func (r *TweetResolver) Question() *QuestionResolver {
	if r.t.Question == nil {
		return nil
	}
	return &QuestionResolver{s: r.s, q: *r.t.Question}
}

func (r *TweetResolver) Replies() ([]*ReplyResolver, error) {
	replies, err := r.s.RepliesForTweet(r.t.Id)
	if err != nil {
		return nil, err
	}
	return wrapReplies(r.s, replies), nil
}

func (r *TweetResolver) LikeCount() (int32, error) {
	count, err := r.s.LikeCount(model.TweetTarget(r.t.Id))
	return int32(count), err
}

// QuestionResolver wraps the poll attached to a tweet.
type QuestionResolver struct {
	s *store.Store
	q model.Question
}

func (r *QuestionResolver) ID() graphql.ID {
	return graphql.ID(r.q.Id)
}

func (r *QuestionResolver) Text() string {
	return r.q.Text
}

func (r *QuestionResolver) PubDate() graphql.Time {
	return graphql.Time{Time: r.q.PubDate}
}

func (r *QuestionResolver) Choices() []*ChoiceResolver {
	resolvers := make([]*ChoiceResolver, 0, len(r.q.Choices))
	for _, c := range r.q.Choices {
		resolvers = append(resolvers, &ChoiceResolver{s: r.s, c: c})
	}
	return resolvers
}

// ChoiceResolver wraps one poll option. The vote count is always a live
// count, never a cached column.
type ChoiceResolver struct {
	s *store.Store
	c model.Choice
}

func (r *ChoiceResolver) ID() graphql.ID {
	return graphql.ID(r.c.Id)
}

func (r *ChoiceResolver) Text() string {
	return r.c.Text
}

func (r *ChoiceResolver) VoteCount() (int32, error) {
	count, err := r.s.VoteCount(r.c.Id)
	return int32(count), err
}
