package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-queue/internal/metrics"
)

// QueueCache holds rendered queue snapshots for polling clients.
// A cache failure is never fatal: callers fall back to the store.
//
// Readers take Version before reading the store and hand it back to Set,
// so a snapshot read before an Invalidate is never stored after it.
type QueueCache interface {
	Get(ctx context.Context, salonID string) ([]byte, bool)
	Version(ctx context.Context, salonID string) (int64, bool)
	Set(ctx context.Context, salonID string, version int64, snapshot []byte)
	Invalidate(ctx context.Context, salonID string)
}

var errStaleSnapshot = errors.New("queue changed while rendering")

// ===============================
// Redis
// ===============================

type RedisQueueCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Ping checks the connection at startup.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping")
	}
	return nil
}

func NewRedisQueueCache(client *redis.Client, ttl time.Duration) *RedisQueueCache {
	return &RedisQueueCache{client: client, ttl: ttl}
}

func queueKey(salonID string) string {
	return fmt.Sprintf("salon:%s:queue", salonID)
}

func versionKey(salonID string) string {
	return fmt.Sprintf("salon:%s:queue:version", salonID)
}

func (c *RedisQueueCache) Get(ctx context.Context, salonID string) ([]byte, bool) {
	b, err := c.client.Get(ctx, queueKey(salonID)).Bytes()
	if err == redis.Nil {
		metrics.QueueCache.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		metrics.QueueCache.WithLabelValues("error").Inc()
		zlog.Warn().Err(err).Str("salon_id", salonID).Msg("queue cache get failed")
		return nil, false
	}

	metrics.QueueCache.WithLabelValues("hit").Inc()
	return b, true
}

func (c *RedisQueueCache) Version(ctx context.Context, salonID string) (int64, bool) {
	v, err := c.client.Get(ctx, versionKey(salonID)).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		zlog.Warn().Err(err).Str("salon_id", salonID).Msg("queue cache version failed")
		return 0, false
	}
	return v, true
}

// Set writes the snapshot only while the version key still holds version.
func (c *RedisQueueCache) Set(ctx context.Context, salonID string, version int64, snapshot []byte) {
	vKey := versionKey(salonID)

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, vKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if cur != version {
			return errStaleSnapshot
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, queueKey(salonID), snapshot, c.ttl)
			return nil
		})
		return err
	}, vKey)

	switch {
	case err == nil:
	case err == errStaleSnapshot || err == redis.TxFailedErr:
		metrics.QueueCache.WithLabelValues("stale").Inc()
	default:
		zlog.Warn().Err(err).Str("salon_id", salonID).Msg("queue cache set failed")
	}
}

func (c *RedisQueueCache) Invalidate(ctx context.Context, salonID string) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(salonID))
		pipe.Del(ctx, queueKey(salonID))
		return nil
	})
	if err != nil {
		zlog.Warn().Err(err).Str("salon_id", salonID).Msg("queue cache invalidate failed")
	}
}

// ===============================
// Nop
// ===============================

// Nop is used when no Redis is configured.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)    { return nil, false }
func (Nop) Version(context.Context, string) (int64, bool) { return 0, false }
func (Nop) Set(context.Context, string, int64, []byte)    {}
func (Nop) Invalidate(context.Context, string)            {}

var (
	_ QueueCache = (*RedisQueueCache)(nil)
	_ QueueCache = Nop{}
)
