package session

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type tokenMeta struct {
	SessionID string
	CompanyID string
	ExpiresAt time.Time
}

type tokenManager struct {
	mu     sync.RWMutex
	tokens map[string]tokenMeta
}

func newTokenManager() *tokenManager {
	return &tokenManager{
		tokens: make(map[string]tokenMeta),
	}
}

func (m *tokenManager) Issue(companyID, sessionID string, expiresAt time.Time) (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.tokens[token] = tokenMeta{SessionID: sessionID, CompanyID: companyID, ExpiresAt: expiresAt}
	m.mu.Unlock()
	return token, nil
}

// Touch validates token at now and, when valid, moves its expiry to
// now+ttl. Expired tokens are removed.
func (m *tokenManager) Touch(token string, now time.Time, ttl time.Duration) (tokenMeta, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	meta, ok := m.tokens[token]
	if !ok {
		return tokenMeta{}, false
	}
	if now.After(meta.ExpiresAt) {
		delete(m.tokens, token)
		return tokenMeta{}, false
	}
	meta.ExpiresAt = now.Add(ttl)
	m.tokens[token] = meta
	return meta, true
}

// Sweep drops every token expired at now and returns their session ids.
func (m *tokenManager) Sweep(now time.Time) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired []string
	for token, meta := range m.tokens {
		if now.After(meta.ExpiresAt) {
			expired = append(expired, meta.SessionID)
			delete(m.tokens, token)
		}
	}
	return expired
}

func (m *tokenManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tokens)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
