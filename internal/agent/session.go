package agent

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
)

// Session binds one enrichment run's state to an app/user/session identity.
type Session struct {
	App       string
	UserID    string
	ID        string
	State     *State
	CreatedAt time.Time
}

// SessionService stores sessions in memory. Sessions live for exactly one
// enrichment call and are never shared across calls.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionService creates an empty in-memory session service.
func NewSessionService() *SessionService {
	return &SessionService{sessions: make(map[string]*Session)}
}

func sessionKey(app, userID, id string) string {
	return app + "/" + userID + "/" + id
}

// Create registers a new session seeded with the given inputs.
func (s *SessionService) Create(app, userID, id string, in Inputs) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(app, userID, id)
	if _, ok := s.sessions[key]; ok {
		return nil, eris.Errorf("session: %s already exists", id)
	}

	sess := &Session{
		App:       app,
		UserID:    userID,
		ID:        id,
		State:     NewState(in),
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[key] = sess
	return sess, nil
}

// Get returns an existing session.
func (s *SessionService) Get(app, userID, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionKey(app, userID, id)]
	if !ok {
		return nil, eris.Errorf("session: %s not found", id)
	}
	return sess, nil
}

// Delete discards a session at the end of its run.
func (s *SessionService) Delete(app, userID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey(app, userID, id))
}
