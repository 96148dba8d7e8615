package auth

import (
	"testing"
	"time"

	"github.com/Luismorlan/chirper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	return &model.User{Id: "user-1", Username: "alice"}
}

func TestNewProviderRequiresSecret(t *testing.T) {
	_, err := NewProvider("")
	assert.Error(t, err)
}

func TestIssueAndVerifyToken(t *testing.T) {
	p, err := NewProvider("test-secret")
	require.NoError(t, err)

	bundle, err := p.IssueToken(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.AccessToken)
	assert.NotEmpty(t, bundle.RefreshToken)
	assert.NotEmpty(t, bundle.CSRFToken)

	claims, err := p.VerifyToken(bundle.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
}

func TestVerifyTokenRejectsRefreshToken(t *testing.T) {
	p, err := NewProvider("test-secret")
	require.NoError(t, err)

	bundle, err := p.IssueToken(testUser())
	require.NoError(t, err)

	_, err = p.VerifyToken(bundle.RefreshToken)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrInvalidToken))
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	p, err := NewProvider("test-secret")
	require.NoError(t, err)

	_, err = p.VerifyToken("not.a.token")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrInvalidToken))
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	p1, err := NewProvider("secret-one")
	require.NoError(t, err)
	p2, err := NewProvider("secret-two")
	require.NoError(t, err)

	bundle, err := p1.IssueToken(testUser())
	require.NoError(t, err)

	_, err = p2.VerifyToken(bundle.AccessToken)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrInvalidToken))
}

func TestVerifyTokenExpired(t *testing.T) {
	p, err := NewProvider("test-secret")
	require.NoError(t, err)
	p.accessTTL = -time.Minute

	bundle, err := p.IssueToken(testUser())
	require.NoError(t, err)

	_, err = p.VerifyToken(bundle.AccessToken)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrExpiredToken))
}

func TestRefresh(t *testing.T) {
	p, err := NewProvider("test-secret")
	require.NoError(t, err)

	bundle, err := p.IssueToken(testUser())
	require.NoError(t, err)

	claims, err := p.Refresh(bundle.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	// An access token can not be used to refresh.
	_, err = p.Refresh(bundle.AccessToken)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrInvalidToken))
}
