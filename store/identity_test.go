package store

import (
	"testing"
	"time"

	"github.com/Luismorlan/chirper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	user, err := s.CreateUser(CreateUserInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "password123",
		Bio:       "hello there",
		Location:  "SF",
		Website:   "https://alice.example.com",
		BirthDate: &birth,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.Id)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.PasswordHash, "password must never be stored in clear")
	require.NotNil(t, user.Profile)
	assert.Equal(t, "hello there", user.Profile.Bio)
	assert.Equal(t, birth.Unix(), user.Profile.BirthDate.Unix())
}

func TestCreateUserRejectsDuplicateIdentity(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, "alice")

	// Same username, different email.
	_, err := s.CreateUser(CreateUserInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrDuplicateIdentity))

	// Same email, different username.
	_, err = s.CreateUser(CreateUserInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrDuplicateIdentity))
}

func TestCreateUserValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateUser(CreateUserInput{
		Username: "bob",
		Email:    "not-an-email",
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrValidation))

	_, err = s.CreateUser(CreateUserInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrValidation))
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)
	created := mustCreateUser(t, s, "alice")

	user, err := s.Authenticate("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.Id, user.Id)

	_, err = s.Authenticate("alice@example.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrInvalidCredentials))

	_, err = s.Authenticate("nobody@example.com", "password123")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrInvalidCredentials))
}

func TestAuthenticateDeactivatedUser(t *testing.T) {
	s := newTestStore(t)
	user := mustCreateUser(t, s, "alice")

	_, err := s.DeactivateUser(user.Id)
	require.NoError(t, err)

	// A deactivated account fails exactly like a bad password, the
	// caller cannot probe account state.
	_, err = s.Authenticate("alice@example.com", "password123")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrInvalidCredentials))

	_, err = s.ActivateUser(user.Id)
	require.NoError(t, err)
	_, err = s.Authenticate("alice@example.com", "password123")
	assert.NoError(t, err)
}

func TestActivateDeactivateStateGuards(t *testing.T) {
	s := newTestStore(t)
	user := mustCreateUser(t, s, "alice")

	_, err := s.ActivateUser(user.Id)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrValidation))

	_, err = s.DeactivateUser(user.Id)
	require.NoError(t, err)
	_, err = s.DeactivateUser(user.Id)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrValidation))
}

func TestFollowUnfollow(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	require.NoError(t, s.Follow(alice.Id, bob.Id))

	following, err := s.Following(alice.Id)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.Id, following[0].Id)

	followers, err := s.Followers(bob.Id)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, alice.Id, followers[0].Id)

	count, err := s.FollowersCount(bob.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// The edge is directed: bob does not follow alice.
	count, err = s.FollowingCount(bob.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	require.NoError(t, s.Unfollow(alice.Id, bob.Id))
	count, err = s.FollowersCount(bob.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestFollowToggleGuards(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	require.NoError(t, s.Follow(alice.Id, bob.Id))

	err := s.Follow(alice.Id, bob.Id)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrAlreadyFollowing))

	err = s.Unfollow(bob.Id, alice.Id)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrNotFollowing))
}

func TestSelfFollowIsAllowed(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")

	// Historical behavior: a user following itself is not rejected.
	require.NoError(t, s.Follow(alice.Id, alice.Id))

	count, err := s.FollowersCount(alice.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestFollowUnknownTarget(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")

	err := s.Follow(alice.Id, "no-such-user")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrNotFound))
}

func TestChangePassword(t *testing.T) {
	s := newTestStore(t)
	user := mustCreateUser(t, s, "alice")

	err := s.ChangePassword(user.Id, "password123", "newpassword1", "mismatch")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrValidation))

	err = s.ChangePassword(user.Id, "wrong-old", "newpassword1", "newpassword1")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrValidation))

	require.NoError(t, s.ChangePassword(user.Id, "password123", "newpassword1", "newpassword1"))

	_, err = s.Authenticate("alice@example.com", "password123")
	require.Error(t, err)
	_, err = s.Authenticate("alice@example.com", "newpassword1")
	assert.NoError(t, err)
}
