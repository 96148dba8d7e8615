package resolver

import (
	"github.com/Luismorlan/chirper/auth"
	"github.com/Luismorlan/chirper/model"
	"github.com/Luismorlan/chirper/store"
	graphql "github.com/graph-gophers/graphql-go"
)

// UserResolver wraps a user row. Relations and counts are resolved
// lazily so a flat user list stays a single query.
type UserResolver struct {
	s *store.Store
	u model.User
}

func wrapUsers(s *store.Store, users []model.User) []*UserResolver {
	resolvers := make([]*UserResolver, 0, len(users))
	for _, u := range users {
		resolvers = append(resolvers, &UserResolver{s: s, u: u})
	}
	return resolvers
}

func (r *UserResolver) ID() graphql.ID {
	return graphql.ID(r.u.Id)
}

func (r *UserResolver) Username() string {
	return r.u.Username
}

func (r *UserResolver) Email() string {
	return r.u.Email
}

func (r *UserResolver) IsActive() bool {
	return r.u.IsActive
}

func (r *UserResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.u.CreatedAt}
}

func (r *UserResolver) Profile() *ProfileResolver {
	if r.u.Profile != nil {
		return &ProfileResolver{p: *r.u.Profile}
	}
	user, err := r.s.GetUser(r.u.Id)
	if err != nil || user.Profile == nil {
		return nil
	}
	return &ProfileResolver{p: *user.Profile}
}

func (r *UserResolver) Followers() ([]*UserResolver, error) {
	followers, err := r.s.Followers(r.u.Id)
	if err != nil {
		return nil, err
	}
	return wrapUsers(r.s, followers), nil
}

func (r *UserResolver) Following() ([]*UserResolver, error) {
	following, err := r.s.Following(r.u.Id)
	if err != nil {
		return nil, err
	}
	return wrapUsers(r.s, following), nil
}

func (r *UserResolver) FollowerCount() (int32, error) {
	count, err := r.s.FollowersCount(r.u.Id)
	return int32(count), err
}

func (r *UserResolver) FollowingCount() (int32, error) {
	count, err := r.s.FollowingCount(r.u.Id)
	return int32(count), err
}

func (r *UserResolver) Tweets() ([]*TweetResolver, error) {
	tweets, err := r.s.TweetsByUser(r.u.Id)
	if err != nil {
		return nil, err
	}
	return wrapTweets(r.s, tweets), nil
}

// ProfileResolver wraps the public-facing detail page of a user.
type ProfileResolver struct {
	p model.Profile
}

func (r *ProfileResolver) ID() graphql.ID {
	return graphql.ID(r.p.Id)
}

func (r *ProfileResolver) Bio() string {
	return r.p.Bio
}

func (r *ProfileResolver) Location() string {
	return r.p.Location
}

func (r *ProfileResolver) Website() string {
	return r.p.Website
}

func (r *ProfileResolver) BirthDate() graphql.Time {
	return graphql.Time{Time: r.p.BirthDate}
}

// TokenBundleResolver wraps the token triple handed out on login.
type TokenBundleResolver struct {
	b auth.TokenBundle
}

func (r *TokenBundleResolver) AccessToken() string {
	return r.b.AccessToken
}

func (r *TokenBundleResolver) RefreshToken() string {
	return r.b.RefreshToken
}

func (r *TokenBundleResolver) CSRFToken() string {
	return r.b.CSRFToken
}
