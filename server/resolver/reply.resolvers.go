package resolver

import (
	"github.com/Luismorlan/chirper/model"
	"github.com/Luismorlan/chirper/store"
	graphql "github.com/graph-gophers/graphql-go"
)

// ReplyResolver wraps one node of a reply thread.
type ReplyResolver struct {
	s  *store.Store
	rp model.Reply
}

func wrapReplies(s *store.Store, replies []model.Reply) []*ReplyResolver {
	resolvers := make([]*ReplyResolver, 0, len(replies))
	for _, rp := range replies {
		resolvers = append(resolvers, &ReplyResolver{s: s, rp: rp})
	}
	return resolvers
}

func (r *ReplyResolver) ID() graphql.ID {
	return graphql.ID(r.rp.Id)
}

func (r *ReplyResolver) Context() string {
	return r.rp.Context
}

func (r *ReplyResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.rp.CreatedAt}
}

func (r *ReplyResolver) File() string {
	return r.rp.File
}

func (r *ReplyResolver) User() (*UserResolver, error) {
	user, err := r.s.GetUser(r.rp.UserID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{s: r.s, u: *user}, nil
}

func (r *ReplyResolver) TweetID() graphql.ID {
	return graphql.ID(r.rp.TweetID)
}

func (r *ReplyResolver) ParentID() *graphql.ID {
	if r.rp.ParentID == nil {
		return nil
	}
	id := graphql.ID(*r.rp.ParentID)
	return &id
}

func (r *ReplyResolver) Depth() int32 {
	return int32(r.rp.Depth())
}

func (r *ReplyResolver) Children() ([]*ReplyResolver, error) {
	children, err := r.s.Children(r.rp.Id)
	if err != nil {
		return nil, err
	}
	return wrapReplies(r.s, children), nil
}

func (r *ReplyResolver) Descendants() ([]*ReplyResolver, error) {
	descendants, err := r.s.Descendants(r.rp.Id)
	if err != nil {
		return nil, err
	}
	return wrapReplies(r.s, descendants), nil
}

func (r *ReplyResolver) LikeCount() (int32, error) {
	count, err := r.s.LikeCount(model.ReplyTarget(r.rp.Id))
	return int32(count), err
}
