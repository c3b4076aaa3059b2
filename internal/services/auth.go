package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "session_token"

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type session struct {
	userID    uint64
	expiresAt time.Time
}

// SessionManager issues and resolves opaque session tokens. Sessions live
// in process memory, matching the ephemeral entity store.
type SessionManager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]session
}

// NewSessionManager creates a manager whose sessions expire after ttl.
func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		ttl:      ttl,
		sessions: make(map[string]session),
	}
}

// Create issues a fresh token bound to userID.
func (m *SessionManager) Create(userID uint64) string {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = session{
		userID:    userID,
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
	return token
}

// Resolve returns the user id bound to token. Expired sessions are removed
// on sight.
func (m *SessionManager) Resolve(token string) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return 0, false
	}
	if time.Now().After(s.expiresAt) {
		delete(m.sessions, token)
		return 0, false
	}
	return s.userID, true
}

// Destroy invalidates token. Destroying an unknown token is a no-op.
func (m *SessionManager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
