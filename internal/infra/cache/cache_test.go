package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestQueueKeys(t *testing.T) {
	assert.Equal(t, "salon:abc:queue", queueKey("abc"))
	assert.Equal(t, "salon:abc:queue:version", versionKey("abc"))
}

func TestNopNeverHits(t *testing.T) {
	var c QueueCache = Nop{}
	_, versioned := c.Version(context.Background(), "s1")
	assert.False(t, versioned)

	c.Set(context.Background(), "s1", 0, []byte("x"))
	_, ok := c.Get(context.Background(), "s1")
	assert.False(t, ok)
}

func TestRedisCacheDegradesWhenUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisQueueCache(client, time.Second)
	ctx := context.Background()

	_, versioned := c.Version(ctx, "s1")
	assert.False(t, versioned)

	c.Set(ctx, "s1", 0, []byte("x"))
	c.Invalidate(ctx, "s1")
	_, ok := c.Get(ctx, "s1")
	assert.False(t, ok)
	assert.Error(t, Ping(ctx, client))
}
