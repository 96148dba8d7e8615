package resolver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Luismorlan/chirper/auth"
	gqlschema "github.com/Luismorlan/chirper/server/graphql"
	"github.com/Luismorlan/chirper/store"
	"github.com/Luismorlan/chirper/utils"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSchema(t *testing.T) (*graphql.Schema, *store.Store) {
	t.Helper()
	s := store.NewStore(utils.NewTestDB(t), nil)
	provider, err := auth.NewProvider("test-secret")
	require.NoError(t, err)

	schema := graphql.MustParseSchema(gqlschema.GetGQLSchema(), &Resolver{Store: s, Auth: provider})
	return schema, s
}

// exec runs a query and decodes the data payload, failing on resolver
// errors.
func exec(t *testing.T, schema *graphql.Schema, query string, vars map[string]interface{}, out interface{}) {
	t.Helper()
	resp := schema.Exec(context.Background(), query, "", vars)
	require.Empty(t, resp.Errors, "unexpected resolver errors: %+v", resp.Errors)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func createUser(t *testing.T, s *store.Store, username string) string {
	t.Helper()
	user, err := s.CreateUser(store.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user.Id
}

func TestSchemaParses(t *testing.T) {
	newTestSchema(t)
}

func TestSignUpMutation(t *testing.T) {
	schema, _ := newTestSchema(t)

	var out struct {
		SignUp struct {
			Username string
			IsActive bool
			Profile  *struct{ Bio string }
		}
	}
	exec(t, schema, `
		mutation {
			signUp(input: {username: "alice", email: "alice@example.com", password: "password123", bio: "hi"}) {
				username
				isActive
				profile { bio }
			}
		}`, nil, &out)

	assert.Equal(t, "alice", out.SignUp.Username)
	assert.True(t, out.SignUp.IsActive)
	require.NotNil(t, out.SignUp.Profile)
	assert.Equal(t, "hi", out.SignUp.Profile.Bio)
}

func TestLogInMutation(t *testing.T) {
	schema, s := newTestSchema(t)
	createUser(t, s, "alice")

	var out struct {
		LogIn struct {
			AccessToken  string
			RefreshToken string
		}
	}
	exec(t, schema, `
		mutation {
			logIn(email: "alice@example.com", password: "password123") {
				accessToken
				refreshToken
			}
		}`, nil, &out)
	assert.NotEmpty(t, out.LogIn.AccessToken)

	resp := schema.Exec(context.Background(), `
		mutation {
			logIn(email: "alice@example.com", password: "wrong") { accessToken }
		}`, "", nil)
	assert.NotEmpty(t, resp.Errors)
}

func TestCreateTweetAndQuery(t *testing.T) {
	schema, s := newTestSchema(t)
	userID := createUser(t, s, "alice")

	var created struct {
		CreateTweet struct {
			Id      graphql.ID
			Context string
		}
	}
	exec(t, schema, `
		mutation($userId: ID!) {
			createTweet(input: {userId: $userId, context: "hello", peopleYouFollow: false}) {
				id
				context
			}
		}`, map[string]interface{}{"userId": userID}, &created)
	assert.Equal(t, "hello", created.CreateTweet.Context)

	var queried struct {
		Tweet struct {
			Context   string
			LikeCount int32
			User      struct{ Username string }
		}
	}
	exec(t, schema, `
		query($id: ID!) {
			tweet(id: $id) {
				context
				likeCount
				user { username }
			}
		}`, map[string]interface{}{"id": string(created.CreateTweet.Id)}, &queried)
	assert.Equal(t, "hello", queried.Tweet.Context)
	assert.EqualValues(t, 0, queried.Tweet.LikeCount)
	assert.Equal(t, "alice", queried.Tweet.User.Username)
}

func TestCreateTweetWithPollAndVote(t *testing.T) {
	schema, s := newTestSchema(t)
	userID := createUser(t, s, "alice")

	var created struct {
		CreateTweet struct {
			Question *struct {
				Choices []struct {
					Id        graphql.ID
					Text      string
					VoteCount int32
				}
			}
		}
	}
	exec(t, schema, `
		mutation($userId: ID!) {
			createTweet(input: {
				userId: $userId,
				context: "which?",
				peopleYouFollow: false,
				poll: {question: "tabs or spaces", choices: ["tabs", "spaces"]}
			}) {
				question {
					choices { id text voteCount }
				}
			}
		}`, map[string]interface{}{"userId": userID}, &created)
	require.NotNil(t, created.CreateTweet.Question)
	require.Len(t, created.CreateTweet.Question.Choices, 2)

	choiceID := string(created.CreateTweet.Question.Choices[0].Id)
	var voted struct {
		Vote struct{ ChoiceId graphql.ID }
	}
	exec(t, schema, `
		mutation($userId: ID!, $choiceId: ID!) {
			vote(userId: $userId, choiceId: $choiceId) { choiceId }
		}`, map[string]interface{}{"userId": userID, "choiceId": choiceID}, &voted)
	assert.EqualValues(t, choiceID, voted.Vote.ChoiceId)
}

func TestReplyTreeQuery(t *testing.T) {
	schema, s := newTestSchema(t)
	userID := createUser(t, s, "alice")

	tweet, err := s.CreateTweet(store.CreateTweetInput{UserID: userID, Context: "root"})
	require.NoError(t, err)
	parent, err := s.CreateReply(store.CreateReplyInput{TweetID: tweet.Id, UserID: userID, Context: "parent"})
	require.NoError(t, err)
	_, err = s.CreateReply(store.CreateReplyInput{TweetID: tweet.Id, ParentID: &parent.Id, UserID: userID, Context: "child"})
	require.NoError(t, err)

	var out struct {
		Reply struct {
			Depth    int32
			Children []struct {
				Context string
				Depth   int32
			}
		}
	}
	exec(t, schema, `
		query($id: ID!) {
			reply(id: $id) {
				depth
				children { context depth }
			}
		}`, map[string]interface{}{"id": parent.Id}, &out)

	assert.EqualValues(t, 0, out.Reply.Depth)
	require.Len(t, out.Reply.Children, 1)
	assert.Equal(t, "child", out.Reply.Children[0].Context)
	assert.EqualValues(t, 1, out.Reply.Children[0].Depth)
}

func TestFollowMutationAndCounts(t *testing.T) {
	schema, s := newTestSchema(t)
	aliceID := createUser(t, s, "alice")
	bobID := createUser(t, s, "bob")

	var out struct {
		Follow struct {
			FollowingCount int32
			Following      []struct{ Username string }
		}
	}
	exec(t, schema, `
		mutation($userId: ID!, $targetId: ID!) {
			follow(userId: $userId, targetId: $targetId) {
				followingCount
				following { username }
			}
		}`, map[string]interface{}{"userId": aliceID, "targetId": bobID}, &out)

	assert.EqualValues(t, 1, out.Follow.FollowingCount)
	require.Len(t, out.Follow.Following, 1)
	assert.Equal(t, "bob", out.Follow.Following[0].Username)
}

func TestLikeMutation(t *testing.T) {
	schema, s := newTestSchema(t)
	userID := createUser(t, s, "alice")
	tweet, err := s.CreateTweet(store.CreateTweetInput{UserID: userID, Context: "hello"})
	require.NoError(t, err)

	var out struct {
		Like struct {
			TweetId *graphql.ID
			ReplyId *graphql.ID
		}
	}
	exec(t, schema, `
		mutation($userId: ID!, $id: ID!) {
			like(userId: $userId, target: {kind: TWEET, id: $id}) {
				tweetId
				replyId
			}
		}`, map[string]interface{}{"userId": userID, "id": tweet.Id}, &out)

	require.NotNil(t, out.Like.TweetId)
	assert.EqualValues(t, tweet.Id, *out.Like.TweetId)
	assert.Nil(t, out.Like.ReplyId)

	// Second like surfaces as a resolver error.
	resp := schema.Exec(context.Background(), `
		mutation($userId: ID!, $id: ID!) {
			like(userId: $userId, target: {kind: TWEET, id: $id}) { id }
		}`, "", map[string]interface{}{"userId": userID, "id": tweet.Id})
	assert.NotEmpty(t, resp.Errors)
}

func TestDeleteMutations(t *testing.T) {
	schema, s := newTestSchema(t)
	userID := createUser(t, s, "alice")
	tweet, err := s.CreateTweet(store.CreateTweetInput{UserID: userID, Context: "hello"})
	require.NoError(t, err)

	var out struct{ DeleteTweet bool }
	exec(t, schema, `
		mutation($id: ID!) { deleteTweet(id: $id) }`,
		map[string]interface{}{"id": tweet.Id}, &out)
	assert.True(t, out.DeleteTweet)

	_, err = s.GetTweet(tweet.Id)
	assert.Error(t, err)
}
