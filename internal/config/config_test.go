package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("QUEUE_WAITING_TTL", "")
	t.Setenv("SERVER_PORT", "")

	cfg := Load()

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 12*time.Hour, cfg.QueueWaitingTTL)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "sq_auth", cfg.AuthCookieName)
	assert.False(t, cfg.MediaEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("QUEUE_CACHE_TTL", "10s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg := Load()

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 10*time.Second, cfg.QueueCacheTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("QUEUE_WAITING_TTL", "forever")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()

	assert.Equal(t, 12*time.Hour, cfg.QueueWaitingTTL)
	assert.Equal(t, 0, cfg.RedisDB)
}
