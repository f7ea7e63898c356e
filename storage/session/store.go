// Package sessionstore persists the admin session between runs.
package sessionstore

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/session"
)

// New returns the store selected by conf.Session.Store.
func New(ctx context.Context, conf *core.Config) (session.Store, error) {
	switch conf.Session.Store {
	case core.SessionStoreMemory:
		return NewMemoryStore(), nil
	case core.SessionStoreRedis:
		return NewRedisStore(ctx, conf.Session.RedisURL, conf.Session.RedisPrefix)
	case core.SessionStoreFile, "":
		return NewFileStore(conf.Session.File), nil
	default:
		return nil, errors.Errorf("unknown session store %q", conf.Session.Store)
	}
}
