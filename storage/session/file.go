package sessionstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core/session"
)

// FileStore keeps the session as a JSON document readable only by its owner.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

var _ session.Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (session.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var sess session.Session
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sess, session.ErrNoSession
		}
		return sess, errors.Wrapf(err, "reading %s", s.path)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return sess, errors.Wrapf(err, "parsing %s", s.path)
	}
	if raw, ok := doc[session.TokenKey]; ok {
		if err := json.Unmarshal(raw, &sess.Token); err != nil {
			return sess, errors.Wrap(err, "parsing token")
		}
	}
	if raw, ok := doc[session.UserKey]; ok {
		if err := json.Unmarshal(raw, &sess.User); err != nil {
			return sess, errors.Wrap(err, "parsing user")
		}
	}
	if !sess.Valid() {
		return session.Session{}, session.ErrNoSession
	}
	return sess, nil
}

func (s *FileStore) Save(ctx context.Context, sess session.Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(s.path))
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, s.path), "replacing %s", s.path)
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", s.path)
	}
	return nil
}
