package resolver

import (
	"github.com/Luismorlan/chirper/model"
	"github.com/Luismorlan/chirper/store"
	graphql "github.com/graph-gophers/graphql-go"
)

// LikeResolver wraps a like row.
type LikeResolver struct {
	l model.Like
}

func (r *LikeResolver) ID() graphql.ID {
	return graphql.ID(r.l.Id)
}

func (r *LikeResolver) UserID() graphql.ID {
	return graphql.ID(r.l.UserID)
}

func (r *LikeResolver) TweetID() *graphql.ID {
	if r.l.TweetID == nil {
		return nil
	}
	id := graphql.ID(*r.l.TweetID)
	return &id
}

func (r *LikeResolver) ReplyID() *graphql.ID {
	if r.l.ReplyID == nil {
		return nil
	}
	id := graphql.ID(*r.l.ReplyID)
	return &id
}

// VoteResolver wraps a vote row.
type VoteResolver struct {
	v model.Vote
}

func (r *VoteResolver) ID() graphql.ID {
	return graphql.ID(r.v.Id)
}

func (r *VoteResolver) UserID() graphql.ID {
	return graphql.ID(r.v.UserID)
}

func (r *VoteResolver) ChoiceID() graphql.ID {
	return graphql.ID(r.v.ChoiceID)
}

// NewsFeedResolver wraps one derived feed entry.
type NewsFeedResolver struct {
	s *store.Store
	n model.NewsFeed
}

func (r *NewsFeedResolver) ID() graphql.ID {
	return graphql.ID(r.n.Id)
}

func (r *NewsFeedResolver) Description() string {
	return r.n.Description
}

func (r *NewsFeedResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.n.CreatedAt}
}

func (r *NewsFeedResolver) IsRead() bool {
	return r.n.IsRead
}

func (r *NewsFeedResolver) FromUser() (*UserResolver, error) {
	user, err := r.s.GetUser(r.n.FromUserID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{s: r.s, u: *user}, nil
}

func (r *NewsFeedResolver) ToUser() (*UserResolver, error) {
	if r.n.ToUserID == nil {
		return nil, nil
	}
	user, err := r.s.GetUser(*r.n.ToUserID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{s: r.s, u: *user}, nil
}
