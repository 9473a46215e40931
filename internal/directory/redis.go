package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Directory is the cross-process session registry. It maps users to the
// processes hosting their live connections so distribution consumers can
// decide ownership.
type Directory interface {
	Register(ctx context.Context, userID, sessionID string) error
	Deregister(ctx context.Context, userID, sessionID string) error
	Refresh(ctx context.Context, userID string) error
	Lookup(ctx context.Context, userID string) ([]string, error)
	ProcessSessions(ctx context.Context, processID string) ([]string, error)
}

// RedisDirectory stores membership in per-key Redis sets with a refreshable
// TTL. All mutations are single-key SADD/SREM, never read-modify-write, so
// concurrent connects and disconnects for one user cannot lose entries. A
// process that dies uncleanly simply stops refreshing and its entries expire
// within the TTL window.
type RedisDirectory struct {
	client    *redis.Client
	processID string
	ttl       time.Duration
}

// NewRedisDirectory connects to Redis and returns the directory bound to the
// local process id.
func NewRedisDirectory(ctx context.Context, redisURL, processID string, ttl time.Duration) (*RedisDirectory, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisDirectory{client: client, processID: processID, ttl: ttl}, nil
}

// Close closes the Redis connection.
func (d *RedisDirectory) Close() error {
	return d.client.Close()
}

func userKey(userID string) string {
	return fmt.Sprintf("chat:dir:user:%s", userID)
}

func processKey(processID string) string {
	return fmt.Sprintf("chat:dir:process:%s", processID)
}

func member(a, b string) string {
	return a + "/" + b
}

// Register adds the (process, session) pair under the user key and the
// reverse (user, session) pair under the process key.
func (d *RedisDirectory) Register(ctx context.Context, userID, sessionID string) error {
	pipe := d.client.Pipeline()
	pipe.SAdd(ctx, userKey(userID), member(d.processID, sessionID))
	pipe.Expire(ctx, userKey(userID), d.ttl)
	pipe.SAdd(ctx, processKey(d.processID), member(userID, sessionID))
	pipe.Expire(ctx, processKey(d.processID), d.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Deregister removes one session's entries. Other sessions of the same user,
// on this or any other process, are untouched.
func (d *RedisDirectory) Deregister(ctx context.Context, userID, sessionID string) error {
	pipe := d.client.Pipeline()
	pipe.SRem(ctx, userKey(userID), member(d.processID, sessionID))
	pipe.SRem(ctx, processKey(d.processID), member(userID, sessionID))
	_, err := pipe.Exec(ctx)
	return err
}

// Refresh renews the TTL on the user and process keys. Called on every
// heartbeat; a process that stops heartbeating lets its entries expire.
func (d *RedisDirectory) Refresh(ctx context.Context, userID string) error {
	pipe := d.client.Pipeline()
	pipe.Expire(ctx, userKey(userID), d.ttl)
	pipe.Expire(ctx, processKey(d.processID), d.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Lookup returns the distinct process ids currently hosting live sessions
// for the user.
func (d *RedisDirectory) Lookup(ctx context.Context, userID string) ([]string, error) {
	members, err := d.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(members))
	processes := make([]string, 0, len(members))
	for _, m := range members {
		processID, _, ok := splitMember(m)
		if !ok {
			continue
		}
		if _, dup := seen[processID]; dup {
			continue
		}
		seen[processID] = struct{}{}
		processes = append(processes, processID)
	}
	return processes, nil
}

// ProcessSessions returns the session ids registered under one process,
// mainly for diagnostics.
func (d *RedisDirectory) ProcessSessions(ctx context.Context, processID string) ([]string, error) {
	members, err := d.client.SMembers(ctx, processKey(processID)).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]string, 0, len(members))
	for _, m := range members {
		_, sessionID, ok := splitMember(m)
		if !ok {
			continue
		}
		sessions = append(sessions, sessionID)
	}
	return sessions, nil
}

func splitMember(m string) (string, string, bool) {
	idx := strings.IndexByte(m, '/')
	if idx <= 0 || idx == len(m)-1 {
		return "", "", false
	}
	return m[:idx], m[idx+1:], true
}
