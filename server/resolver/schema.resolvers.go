package resolver

import (
	"github.com/Luismorlan/chirper/model"
	"github.com/Luismorlan/chirper/store"
	graphql "github.com/graph-gophers/graphql-go"
)

// ---- Query ----

func (r *Resolver) Users() ([]*UserResolver, error) {
	users, err := r.Store.ListUsers()
	if err != nil {
		return nil, err
	}
	return wrapUsers(r.Store, users), nil
}

func (r *Resolver) User(args struct{ ID graphql.ID }) (*UserResolver, error) {
	user, err := r.Store.GetUser(string(args.ID))
	if err != nil {
		return nil, err
	}
	return &UserResolver{s: r.Store, u: *user}, nil
}

func (r *Resolver) Tweets() ([]*TweetResolver, error) {
	tweets, err := r.Store.ListTweets()
	if err != nil {
		return nil, err
	}
	return wrapTweets(r.Store, tweets), nil
}

func (r *Resolver) Tweet(args struct{ ID graphql.ID }) (*TweetResolver, error) {
	tweet, err := r.Store.GetTweet(string(args.ID))
	if err != nil {
		return nil, err
	}
	return &TweetResolver{s: r.Store, t: *tweet}, nil
}

func (r *Resolver) Reply(args struct{ ID graphql.ID }) (*ReplyResolver, error) {
	reply, err := r.Store.GetReply(string(args.ID))
	if err != nil {
		return nil, err
	}
	return &ReplyResolver{s: r.Store, rp: *reply}, nil
}

func (r *Resolver) Descendants(args struct{ ReplyID graphql.ID }) ([]*ReplyResolver, error) {
	replies, err := r.Store.Descendants(string(args.ReplyID))
	if err != nil {
		return nil, err
	}
	return wrapReplies(r.Store, replies), nil
}

func (r *Resolver) NewsFeed(args struct{ UserID graphql.ID }) ([]*NewsFeedResolver, error) {
	entries, err := r.Store.NewsFeedFor(string(args.UserID))
	if err != nil {
		return nil, err
	}
	resolvers := make([]*NewsFeedResolver, 0, len(entries))
	for _, entry := range entries {
		resolvers = append(resolvers, &NewsFeedResolver{s: r.Store, n: entry})
	}
	return resolvers, nil
}

func (r *Resolver) Home(args struct{ UserID graphql.ID }) ([]*TweetResolver, error) {
	tweets, err := r.Store.Home(string(args.UserID))
	if err != nil {
		return nil, err
	}
	return wrapTweets(r.Store, tweets), nil
}

// ---- Mutation ----

type SignUpInput struct {
	Username          string
	Email             string
	Password          string
	Bio               *string
	Location          *string
	Website           *string
	BirthDate         *graphql.Time
	Picture           *string
	BackgroundPicture *string
}

func (r *Resolver) SignUp(args struct{ Input SignUpInput }) (*UserResolver, error) {
	input := store.CreateUserInput{
		Username: args.Input.Username,
		Email:    args.Input.Email,
		Password: args.Input.Password,
	}
	if args.Input.Bio != nil {
		input.Bio = *args.Input.Bio
	}
	if args.Input.Location != nil {
		input.Location = *args.Input.Location
	}
	if args.Input.Website != nil {
		input.Website = *args.Input.Website
	}
	if args.Input.BirthDate != nil {
		input.BirthDate = &args.Input.BirthDate.Time
	}
	if args.Input.Picture != nil {
		input.Picture = *args.Input.Picture
	}
	if args.Input.BackgroundPicture != nil {
		input.BackgroundPicture = *args.Input.BackgroundPicture
	}

	user, err := r.Store.CreateUser(input)
	if err != nil {
		return nil, err
	}
	return &UserResolver{s: r.Store, u: *user}, nil
}

func (r *Resolver) LogIn(args struct{ Email, Password string }) (*TokenBundleResolver, error) {
	user, err := r.Store.Authenticate(args.Email, args.Password)
	if err != nil {
		return nil, err
	}
	bundle, err := r.Auth.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenBundleResolver{b: *bundle}, nil
}

func (r *Resolver) Follow(args struct{ UserID, TargetID graphql.ID }) (*UserResolver, error) {
	if err := r.Store.Follow(string(args.UserID), string(args.TargetID)); err != nil {
		return nil, err
	}
	return r.User(struct{ ID graphql.ID }{ID: args.UserID})
}

func (r *Resolver) Unfollow(args struct{ UserID, TargetID graphql.ID }) (*UserResolver, error) {
	if err := r.Store.Unfollow(string(args.UserID), string(args.TargetID)); err != nil {
		return nil, err
	}
	return r.User(struct{ ID graphql.ID }{ID: args.UserID})
}

type PollInput struct {
	Question string
	Choices  []string
}

type CreateTweetInput struct {
	UserID          graphql.ID
	Context         string
	File            *string
	PeopleYouFollow bool
	Poll            *PollInput
}

func (r *Resolver) CreateTweet(args struct{ Input CreateTweetInput }) (*TweetResolver, error) {
	input := store.CreateTweetInput{
		UserID:          string(args.Input.UserID),
		Context:         args.Input.Context,
		PeopleYouFollow: args.Input.PeopleYouFollow,
	}
	if args.Input.File != nil {
		input.File = *args.Input.File
	}
	if args.Input.Poll != nil {
		input.Poll = &store.PollInput{
			Question: args.Input.Poll.Question,
			Choices:  args.Input.Poll.Choices,
		}
	}

	tweet, err := r.Store.CreateTweet(input)
	if err != nil {
		return nil, err
	}
	return &TweetResolver{s: r.Store, t: *tweet}, nil
}

func (r *Resolver) DeleteTweet(args struct{ ID graphql.ID }) (bool, error) {
	if err := r.Store.DeleteTweet(string(args.ID)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Resolver) Retweet(args struct{ UserID, TweetID graphql.ID }) (*TweetResolver, error) {
	tweet, err := r.Store.Retweet(string(args.UserID), string(args.TweetID))
	if err != nil {
		return nil, err
	}
	return &TweetResolver{s: r.Store, t: *tweet}, nil
}

func (r *Resolver) RetweetReply(args struct{ UserID, ReplyID graphql.ID }) (*TweetResolver, error) {
	tweet, err := r.Store.RetweetReply(string(args.UserID), string(args.ReplyID))
	if err != nil {
		return nil, err
	}
	return &TweetResolver{s: r.Store, t: *tweet}, nil
}

type CreateReplyInput struct {
	TweetID  graphql.ID
	ParentID *graphql.ID
	UserID   graphql.ID
	Context  string
	File     *string
}

func (r *Resolver) CreateReply(args struct{ Input CreateReplyInput }) (*ReplyResolver, error) {
	input := store.CreateReplyInput{
		TweetID: string(args.Input.TweetID),
		UserID:  string(args.Input.UserID),
		Context: args.Input.Context,
	}
	if args.Input.ParentID != nil {
		parentID := string(*args.Input.ParentID)
		input.ParentID = &parentID
	}
	if args.Input.File != nil {
		input.File = *args.Input.File
	}

	reply, err := r.Store.CreateReply(input)
	if err != nil {
		return nil, err
	}
	return &ReplyResolver{s: r.Store, rp: *reply}, nil
}

func (r *Resolver) DeleteReply(args struct{ ID graphql.ID }) (bool, error) {
	if err := r.Store.DeleteReply(string(args.ID)); err != nil {
		return false, err
	}
	return true, nil
}

type LikeTargetInput struct {
	Kind string
	ID   graphql.ID
}

func (in LikeTargetInput) toTarget() model.LikeTarget {
	kind := model.LikeTargetTweet
	if in.Kind == "REPLY" {
		kind = model.LikeTargetReply
	}
	return model.LikeTarget{Kind: kind, Id: string(in.ID)}
}

func (r *Resolver) Like(args struct {
	UserID graphql.ID
	Target LikeTargetInput
}) (*LikeResolver, error) {
	like, err := r.Store.Like(string(args.UserID), args.Target.toTarget())
	if err != nil {
		return nil, err
	}
	return &LikeResolver{l: *like}, nil
}

func (r *Resolver) Unlike(args struct {
	UserID graphql.ID
	Target LikeTargetInput
}) (bool, error) {
	if err := r.Store.Unlike(string(args.UserID), args.Target.toTarget()); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Resolver) Vote(args struct{ UserID, ChoiceID graphql.ID }) (*VoteResolver, error) {
	vote, err := r.Store.Vote(string(args.UserID), string(args.ChoiceID))
	if err != nil {
		return nil, err
	}
	return &VoteResolver{v: *vote}, nil
}

func (r *Resolver) Unvote(args struct{ UserID, ChoiceID graphql.ID }) (bool, error) {
	if err := r.Store.Unvote(string(args.UserID), string(args.ChoiceID)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Resolver) MarkNewsFeedRead(args struct{ ID graphql.ID }) (*NewsFeedResolver, error) {
	entry, err := r.Store.MarkNewsFeedRead(string(args.ID))
	if err != nil {
		return nil, err
	}
	return &NewsFeedResolver{s: r.Store, n: *entry}, nil
}
