package sessionstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/auth"
	"github.com/Rodert/learn-hub/core/session"
)

func testStore(t *testing.T, store session.Store) {
	ctx := context.Background()

	if _, err := store.Load(ctx); err != session.ErrNoSession {
		t.Fatalf("Load() on empty store error = %v, want %v", err, session.ErrNoSession)
	}

	want := session.Session{Token: "tok", User: auth.Profile{ID: 3, Username: "admin", Nickname: "Boss", Status: "active"}}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() unexpected error = %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() unexpected error = %v", err)
	}
	if _, err := store.Load(ctx); err != session.ErrNoSession {
		t.Errorf("Load() after Clear() error = %v, want %v", err, session.ErrNoSession)
	}
	if err := store.Clear(ctx); err != nil {
		t.Errorf("second Clear() unexpected error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)
	testStore(t, store)

	if err := store.Save(context.Background(), session.Session{Token: "t"}); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

func TestFileStore_Load_corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); err == nil || err == session.ErrNoSession {
		t.Errorf("Load() error = %v, want a parse error", err)
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("HUBADMIN_TEST_REDIS_URL")
	if url == "" {
		t.Skip("HUBADMIN_TEST_REDIS_URL not set")
	}
	store, err := NewRedisStore(context.Background(), url, "hubadmin-test")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	testStore(t, store)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		wantErr bool
	}{
		{name: "default", store: ""},
		{name: "file", store: core.SessionStoreFile},
		{name: "memory", store: core.SessionStoreMemory},
		{name: "unknown", store: "etcd", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &core.Config{Session: core.SessionConfig{Store: tt.store, File: filepath.Join(t.TempDir(), "s.json")}}
			store, err := New(context.Background(), conf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && store == nil {
				t.Error("New() returned a nil store")
			}
		})
	}
}
