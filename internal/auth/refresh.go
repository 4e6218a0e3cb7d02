package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"shoetracker/internal/logging"
)

// Tokens are refreshed this long before they expire
const refreshMargin = 60 * time.Second

// TokenStore persists refreshed tokens
type TokenStore interface {
	UpdateTokens(accessToken, refreshToken string, expiresAt time.Time) error
}

// TokenSource hands out valid Strava tokens, refreshing and persisting them
// when they are about to expire
type TokenSource struct {
	config *oauth2.Config
	store  TokenStore
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	token *oauth2.Token
}

// NewTokenSource creates a TokenSource starting from token
func NewTokenSource(cfg *oauth2.Config, token *oauth2.Token, tokens TokenStore, logger *zap.Logger) *TokenSource {
	return &TokenSource{
		config: cfg,
		token:  token,
		store:  tokens,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
}

// Token returns a valid token, refreshing if necessary
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if !expiringSoon(ts.token, ts.now()) {
		return ts.token, nil
	}

	newToken, err := ts.config.TokenSource(context.Background(), ts.token).Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing strava token: %w", err)
	}

	if ts.store != nil {
		if err := ts.store.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry); err != nil {
			return nil, fmt.Errorf("saving refreshed token: %w", err)
		}
	}

	ts.logger.Debug("refreshed strava token", zap.Time("expires_at", newToken.Expiry))
	ts.token = newToken
	return newToken, nil
}

// IsExpired checks if the current token is expired or will expire within the margin
func (ts *TokenSource) IsExpired() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return expiringSoon(ts.token, ts.now())
}
