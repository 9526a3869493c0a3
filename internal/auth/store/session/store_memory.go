package session

import (
	"context"
	"sync"
	"time"

	"givebridge/internal/auth/models"
	id "givebridge/pkg/domain"
	"givebridge/pkg/platform/sentinel"
)

// InMemorySessionStore keeps sessions in process memory. Expired sessions are
// dropped lazily on access.
type InMemorySessionStore struct {
	mu        sync.RWMutex
	sessions  map[id.SessionID]*models.Session
	byAccount map[id.AccountID]map[id.SessionID]struct{}
}

func New() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions:  make(map[id.SessionID]*models.Session),
		byAccount: make(map[id.AccountID]map[id.SessionID]struct{}),
	}
}

func (s *InMemorySessionStore) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *session
	s.sessions[session.ID] = &stored
	ids, ok := s.byAccount[session.Account.ID]
	if !ok {
		ids = make(map[id.SessionID]struct{})
		s.byAccount[session.Account.ID] = ids
	}
	ids[session.ID] = struct{}{}
	return nil
}

func (s *InMemorySessionStore) FindByID(_ context.Context, sessionID id.SessionID) (*models.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if session.IsExpiredAt(time.Now()) {
		s.mu.Lock()
		s.deleteLocked(sessionID)
		s.mu.Unlock()
		return nil, sentinel.ErrNotFound
	}
	found := *session
	return &found, nil
}

func (s *InMemorySessionStore) Delete(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return sentinel.ErrNotFound
	}
	s.deleteLocked(sessionID)
	return nil
}

func (s *InMemorySessionStore) DeleteByAccount(_ context.Context, accountID id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, ok := s.byAccount[accountID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for sid := range ids {
		delete(s.sessions, sid)
	}
	delete(s.byAccount, accountID)
	return nil
}

func (s *InMemorySessionStore) deleteLocked(sessionID id.SessionID) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	delete(s.sessions, sessionID)
	if ids, ok := s.byAccount[session.Account.ID]; ok {
		delete(ids, sessionID)
		if len(ids) == 0 {
			delete(s.byAccount, session.Account.ID)
		}
	}
}
