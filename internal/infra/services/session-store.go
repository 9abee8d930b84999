package services

import (
	"sync"
	"time"

	"hrbot-connector/internal/domain/entities"
)

// SessionStore holds every per-party conversational datum: state, last-menu
// hint, display name and holerite session. All state is in-memory and
// process-scoped; a restart resets every conversation. Mutation goes through
// accessors so a transition can update everything it touches in one place.
type SessionStore struct {
	mu      sync.Mutex
	states  map[string]entities.ConversationState
	menuCtx map[string]entities.MenuContext
	names   map[string]string
	topics  map[string]entities.TopicSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		states:  make(map[string]entities.ConversationState),
		menuCtx: make(map[string]entities.MenuContext),
		names:   make(map[string]string),
		topics:  make(map[string]entities.TopicSession),
	}
}

// State returns the party's conversation state. Absence means StateIdle.
func (s *SessionStore) State(waID string) entities.ConversationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[waID]
	if !ok {
		return entities.StateIdle
	}
	return st
}

func (s *SessionStore) SetState(waID string, st entities.ConversationState) {
	s.mu.Lock()
	s.states[waID] = st
	s.mu.Unlock()
}

// MenuContext returns the last-menu recovery hint, if one was recorded.
func (s *SessionStore) MenuContext(waID string) (entities.MenuContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, ok := s.menuCtx[waID]
	return ctx, ok
}

func (s *SessionStore) SetMenuContext(waID, menu string) {
	s.mu.Lock()
	s.menuCtx[waID] = entities.MenuContext{Menu: menu, At: time.Now()}
	s.mu.Unlock()
}

// Name returns the display name collected before the first escalation, or "".
func (s *SessionStore) Name(waID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.names[waID]
}

func (s *SessionStore) SetName(waID, name string) {
	s.mu.Lock()
	s.names[waID] = name
	s.mu.Unlock()
}

// Topic returns the party's holerite session, zero-valued when absent.
func (s *SessionStore) Topic(waID string) entities.TopicSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topics[waID]
}

func (s *SessionStore) SetTopic(waID string, sess entities.TopicSession) {
	s.mu.Lock()
	s.topics[waID] = sess
	s.mu.Unlock()
}

// ClearTopic drops the holerite session once it was forwarded.
func (s *SessionStore) ClearTopic(waID string) {
	s.mu.Lock()
	delete(s.topics, waID)
	s.mu.Unlock()
}
