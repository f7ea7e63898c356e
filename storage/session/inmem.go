package sessionstore

import (
	"context"
	"sync"

	"github.com/Rodert/learn-hub/core/session"
)

// MemoryStore forgets the session when the process exits.
type MemoryStore struct {
	mutex sync.RWMutex
	sess  *session.Session
}

var _ session.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (session.Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.sess == nil {
		return session.Session{}, session.ErrNoSession
	}
	return *s.sess, nil
}

func (s *MemoryStore) Save(ctx context.Context, sess session.Session) error {
	s.mutex.Lock()
	s.sess = &sess
	s.mutex.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mutex.Lock()
	s.sess = nil
	s.mutex.Unlock()
	return nil
}
