package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"food-order-system/internal/config"
	"food-order-system/internal/errs"
	"food-order-system/internal/models"
)

// Claims is the payload carried by both session tokens.
type Claims struct {
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the short-lived access token and the
// long-lived refresh token, each with its own secret.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager creates a token manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL(),
		refreshTTL:    cfg.RefreshTTL(),
	}
}

// NewAccessToken issues a signed access token for the user.
func (tm *TokenManager) NewAccessToken(user *models.User) (string, error) {
	return tm.sign(user, tm.accessSecret, tm.accessTTL, uuid.NewString())
}

// NewRefreshToken issues a signed refresh token and returns it with its jti,
// which the session store tracks for revocation.
func (tm *TokenManager) NewRefreshToken(user *models.User) (token, jti string, err error) {
	jti = uuid.NewString()
	token, err = tm.sign(user, tm.refreshSecret, tm.refreshTTL, jti)
	return token, jti, err
}

func (tm *TokenManager) sign(user *models.User, secret []byte, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccess validates an access token and returns its claims.
func (tm *TokenManager) VerifyAccess(token string) (*Claims, error) {
	return tm.verify(token, tm.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (tm *TokenManager) VerifyRefresh(token string) (*Claims, error) {
	return tm.verify(token, tm.refreshSecret)
}

func (tm *TokenManager) verify(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, errs.E(errs.Unauthorized, "token is invalid or expired")
	}
	return claims, nil
}
