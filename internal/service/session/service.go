// Package session issues anonymous cart sessions. Sessions live in memory
// and slide their expiry on every use.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidToken = errors.New("invalid session token")

type Service struct {
	tokens *tokenManager
	ttl    time.Duration
	now    func() time.Time
	logger *zap.SugaredLogger
}

// Session is handed to the client; Token goes into the cart session header.
type Session struct {
	Token     string    `json:"token"`
	ID        string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func New(ttl time.Duration, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		tokens: newTokenManager(),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (s *Service) Issue(_ context.Context, companyID string) (*Session, error) {
	id := uuid.NewString()
	expiresAt := s.now().Add(s.ttl)
	token, err := s.tokens.Issue(companyID, id, expiresAt)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ID: id, ExpiresAt: expiresAt}, nil
}

// Lookup returns the session id bound to token within companyID.
func (s *Service) Lookup(_ context.Context, companyID, token string) (string, error) {
	meta, ok := s.tokens.Touch(token, s.now(), s.ttl)
	if !ok || meta.CompanyID != companyID {
		return "", ErrInvalidToken
	}
	return meta.SessionID, nil
}

// Sweep removes expired sessions and returns their ids.
func (s *Service) Sweep() []string {
	expired := s.tokens.Sweep(s.now())
	if len(expired) > 0 {
		s.logger.Infow("session: swept expired sessions", "count", len(expired), "active", s.tokens.Len())
	}
	return expired
}

// Run sweeps every interval until ctx is done, passing expired ids to onExpire.
func (s *Service) Run(ctx context.Context, interval time.Duration, onExpire func(ids []string)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ids := s.Sweep(); len(ids) > 0 && onExpire != nil {
				onExpire(ids)
			}
		}
	}
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
