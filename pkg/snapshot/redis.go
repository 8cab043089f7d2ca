package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps snapshots as Redis strings. Each snapshot is written
// together with a companion hash holding its write time, since Redis keeps
// no modification time of its own.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a store using keys under prefix. A zero ttl keeps
// snapshots until they are overwritten.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Put stores a snapshot and its metadata in one transaction.
func (s *RedisStore) Put(ctx context.Context, name string, html []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(name), html, s.ttl)
		pipe.HSet(ctx, s.metaKey(name), "modTime", now.Format(time.RFC3339Nano))
		if s.ttl > 0 {
			pipe.Expire(ctx, s.metaKey(name), s.ttl)
		} else {
			pipe.Persist(ctx, s.metaKey(name))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put %s: %w", name, err)
	}
	return nil
}

// Get returns a snapshot body.
func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	html, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", name, err)
	}
	return html, nil
}

// List scans the prefix for snapshot bodies and reads their metadata.
func (s *RedisStore) List(ctx context.Context) ([]Info, error) {
	var infos []Info
	seen := make(map[string]bool)
	iter := s.client.Scan(ctx, 0, s.pattern(), 100).Iterator()
	for iter.Next(ctx) {
		// SCAN may return a key more than once.
		name := strings.TrimSuffix(strings.TrimPrefix(iter.Val(), s.prefix), ext)
		if seen[name] || ValidateName(name) != nil {
			continue
		}
		seen[name] = true
		size, err := s.client.StrLen(ctx, iter.Val()).Result()
		if err != nil {
			return nil, fmt.Errorf("redis list %s: %w", name, err)
		}
		info := Info{Name: name, Size: size}
		modTime, err := s.client.HGet(ctx, s.metaKey(name), "modTime").Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis list %s: %w", name, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, modTime); err == nil {
			info.ModTime = t
		}
		infos = append(infos, info)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name + ext
}

// pattern matches every snapshot body under the prefix. Glob
// metacharacters in the prefix are escaped so they match literally.
func (s *RedisStore) pattern() string {
	var b strings.Builder
	for _, r := range s.prefix {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteString("*" + ext)
	return b.String()
}

func (s *RedisStore) metaKey(name string) string {
	return s.prefix + "meta:" + name
}
