// Package auth issues and verifies the opaque tokens the API surfaces
// hand out. The rest of the system only ever sees a verified subject
// id; no other component touches token mechanics.
package auth

import (
	"os"
	"time"

	"github.com/Luismorlan/chirper/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenBundle is what a successful login hands back.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	CSRFToken    string `json:"csrf_token"`
}

// Claims carried inside both token types. Username rides along so the
// client can render without an extra round trip.
type Claims struct {
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 tokens.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(secret string) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &Provider{
		secret:     []byte(secret),
		accessTTL:  defaultAccessTTL,
		refreshTTL: defaultRefreshTTL,
	}, nil
}

// NewProviderFromEnv reads JWT_SECRET.
func NewProviderFromEnv() (*Provider, error) {
	return NewProvider(os.Getenv("JWT_SECRET"))
}

// IssueToken mints an access/refresh pair plus a random csrf token for
// the given user.
func (p *Provider) IssueToken(user *model.User) (*TokenBundle, error) {
	access, err := p.sign(user, tokenTypeAccess, p.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := p.sign(user, tokenTypeRefresh, p.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenBundle{
		AccessToken:  access,
		RefreshToken: refresh,
		CSRFToken:    uuid.New().String(),
	}, nil
}

func (p *Provider) sign(user *model.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// VerifyToken parses and validates an access token, returning its
// claims. Expiry surfaces as ExpiredToken, everything else as
// InvalidToken.
func (p *Provider) VerifyToken(tokenString string) (*Claims, error) {
	claims, err := p.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, model.NewError(model.ErrInvalidToken, "not an access token")
	}
	return claims, nil
}

// Refresh exchanges a valid refresh token for a fresh bundle.
func (p *Provider) Refresh(refreshToken string) (*Claims, error) {
	claims, err := p.parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, model.NewError(model.ErrInvalidToken, "not a refresh token")
	}
	return claims, nil
}

func (p *Provider) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.NewError(model.ErrExpiredToken, "token expired")
		}
		return nil, model.NewError(model.ErrInvalidToken, "invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, model.NewError(model.ErrInvalidToken, "invalid token")
	}
	return claims, nil
}
