package embeddings

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/Abraxas-365/careerlens/pkg/logx"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/blake2b"
)

const cacheKeyPrefix = "emb:"

// CachedEmbedder is a read-through Redis cache in front of an Embedder.
// Redis failures are logged and fall through to the provider.
type CachedEmbedder struct {
	next  ai.Embedder
	redis *redis.Client
	ttl   time.Duration
	model string
}

func NewCachedEmbedder(next ai.Embedder, client *redis.Client, model string, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		next:  next,
		redis: client,
		ttl:   ttl,
		model: model,
	}
}

// CacheKey derives the Redis key for text embedded with model
func CacheKey(model, text string) string {
	sum := blake2b.Sum256([]byte(model + "\x00" + text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ai.ErrEmptyInput()
	}
	key := CacheKey(c.model, text)

	raw, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var vec []float32
		if jsonErr := json.Unmarshal(raw, &vec); jsonErr == nil && len(vec) > 0 {
			return vec, nil
		}
		logx.Warnf("Discarding corrupt embedding cache entry %s", key)
	case err != redis.Nil:
		logx.Warnf("Embedding cache read failed: %v", err)
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vec); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			logx.Warnf("Embedding cache write failed: %v", err)
		}
	}
	return vec, nil
}
