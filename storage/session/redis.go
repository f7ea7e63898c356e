package sessionstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Rodert/learn-hub/core/session"
)

const defaultRedisPrefix = "hubadmin:session"

// RedisStore shares one session between every shell pointed at the same Redis.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ session.Store = (*RedisStore)(nil)

// NewRedisStore connects to url (redis://[:password@]host:port/db) and checks the connection.
func NewRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing redis url %q", url)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "connecting to redis")
	}
	return NewRedisStoreWithClient(rdb, prefix), nil
}

func NewRedisStoreWithClient(rdb redis.UniversalClient, prefix string) *RedisStore {
	prefix = strings.TrimRight(prefix, ":")
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":" + name
}

func (s *RedisStore) Load(ctx context.Context) (session.Session, error) {
	var sess session.Session
	vals, err := s.rdb.MGet(ctx, s.key(session.TokenKey), s.key(session.UserKey)).Result()
	if err != nil {
		return sess, errors.Wrap(err, "reading session from redis")
	}
	token, _ := vals[0].(string)
	if token == "" {
		return sess, session.ErrNoSession
	}
	sess.Token = token
	if raw, ok := vals[1].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &sess.User); err != nil {
			return sess, errors.Wrap(err, "parsing user")
		}
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess session.Session) error {
	usr, err := json.Marshal(sess.User)
	if err != nil {
		return errors.Wrap(err, "encoding user")
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(session.TokenKey), sess.Token, 0)
		pipe.Set(ctx, s.key(session.UserKey), usr, 0)
		return nil
	})
	return errors.Wrap(err, "writing session to redis")
}

func (s *RedisStore) Clear(ctx context.Context) error {
	err := s.rdb.Del(ctx, s.key(session.TokenKey), s.key(session.UserKey)).Err()
	return errors.Wrap(err, "clearing session in redis")
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
