// Package testutil starts seeded dev API servers and records operator feedback for tests.
package testutil

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	echoapi "github.com/Rodert/learn-hub/apps/devapi/echo"
	"github.com/Rodert/learn-hub/core/auth"
	"github.com/Rodert/learn-hub/services/apiclient"
)

// AdminPassword is the password of the seeded `admin` account.
const AdminPassword = "admin123"

// NewAPIServer starts a seeded dev API and returns its base URL (mount path included).
func NewAPIServer(t *testing.T) string {
	t.Helper()
	store := echoapi.NewStore()
	if err := store.Seed(AdminPassword); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	srv := httptest.NewServer(echoapi.NewServer(echoapi.Options{
		DisableReqLogs:     true,
		SecretKey:          "test-secret",
		JWTExpirationDelta: time.Hour,
		Store:              store,
	}))
	t.Cleanup(srv.Close)
	return srv.URL + echoapi.BasePath
}

// NewAdminClient starts a seeded dev API and returns a client logged in as `admin`.
func NewAdminClient(t *testing.T) *apiclient.Client {
	t.Helper()
	baseURL := NewAPIServer(t)

	var token string
	c := apiclient.New(apiclient.Options{BaseURL: baseURL, TokenSource: func() string { return token }})
	res, err := auth.NewService(c).Login(context.Background(), auth.LoginRequest{Username: "admin", Password: AdminPassword})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	token = res.Token
	return c
}

// Notices records the notices shown to the operator.
type Notices struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (n *Notices) Success(msg string) {
	n.mu.Lock()
	n.Successes = append(n.Successes, msg)
	n.mu.Unlock()
}

func (n *Notices) Error(msg string) {
	n.mu.Lock()
	n.Errors = append(n.Errors, msg)
	n.mu.Unlock()
}

// Confirmer answers confirmations with Answer and records the prompts.
type Confirmer struct {
	Answer  bool
	Prompts []string
}

func (c *Confirmer) Confirm(_ context.Context, prompt string) bool {
	c.Prompts = append(c.Prompts, prompt)
	return c.Answer
}
