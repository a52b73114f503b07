package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ErrInvalidToken covers signature mismatch, malformed tokens and expiry.
// Callers never learn which; tampering and staleness look identical.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates the session token pair. Access and
// refresh tokens are signed with distinct secrets and carry distinct TTLs.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	accessTTL := time.Duration(cfg.AccessTokenTTLMinutes) * time.Minute
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := time.Duration(cfg.RefreshTokenTTLDays) * 24 * time.Hour
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Claims describes the JWT payload shared by access and refresh tokens.
type Claims struct {
	UserID string      `json:"uid"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair bundles a freshly issued session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// IssueSessionTokens signs a new access/refresh pair for the user. The
// refresh token carries a unique JTI so it can be revoked server-side.
func (tm *TokenManager) IssueSessionTokens(user *domain.User) (*TokenPair, error) {
	access, err := tm.sign(user, tm.accessSecret, tm.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := tm.sign(user, tm.refreshSecret, tm.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(tm.accessTTL.Seconds()),
	}, nil
}

// ParseAccess validates an access token and returns its claims.
func (tm *TokenManager) ParseAccess(tokenStr string) (*Claims, error) {
	return parse(tokenStr, tm.accessSecret)
}

// ParseRefresh validates a refresh token and returns its claims.
func (tm *TokenManager) ParseRefresh(tokenStr string) (*Claims, error) {
	return parse(tokenStr, tm.refreshSecret)
}

// RefreshTTL returns the refresh token validity window.
func (tm *TokenManager) RefreshTTL() time.Duration {
	return tm.refreshTTL
}

func (tm *TokenManager) sign(user *domain.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parse(tokenStr string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
