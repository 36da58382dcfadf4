package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lakshya4568/food-Prediction/models"
)

// NutritionCache fronts the upstream nutrition providers with a Redis cache.
// Keys are short hashes of the semantic request, so equivalent requests hit
// the same entry regardless of argument order. When Redis is unreachable the
// cache disables itself and every lookup is a miss; callers never fail
// because of it.
type NutritionCache struct {
	rdb        *redis.Client
	defaultTTL time.Duration
	enabled    bool
}

// NewNutritionCache connects to REDIS_URL (default localhost) and pings once.
func NewNutritionCache(defaultTTL time.Duration) *NutritionCache {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL %q: %v - caching disabled", redisURL, err)
		return &NutritionCache{defaultTTL: defaultTTL}
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 5 * time.Second

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v - caching disabled", redisURL, err)
		return &NutritionCache{defaultTTL: defaultTTL}
	}

	return &NutritionCache{rdb: rdb, defaultTTL: defaultTTL, enabled: true}
}

func (c *NutritionCache) Enabled() bool { return c.enabled }

// cacheKey hashes the sorted key components so the key stays short and
// stable for the same semantic request.
func cacheKey(keyData map[string]any) string {
	keys := make([]string, 0, len(keyData))
	for k := range keyData {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]any, 0, len(keyData)*2)
	for _, k := range keys {
		ordered = append(ordered, k, keyData[k])
	}
	b, _ := json.Marshal(ordered)
	sum := sha256.Sum256(b)
	return fmt.Sprintf("nutri:%x", sum[:8])
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// GetSearchResults returns cached search results, or nil on miss.
func (c *NutritionCache) GetSearchResults(ctx context.Context, query, source string, limit int) []models.NutritionData {
	if !c.enabled {
		return nil
	}
	key := cacheKey(map[string]any{"type": "search", "query": normalizeQuery(query), "source": source, "limit": limit})
	var results []models.NutritionData
	if !c.getJSON(ctx, key, &results) {
		return nil
	}
	return results
}

// SetSearchResults caches search results under the semantic search key.
func (c *NutritionCache) SetSearchResults(ctx context.Context, query, source string, limit int,
	results []models.NutritionData, ttl time.Duration) bool {

	if !c.enabled {
		return false
	}
	key := cacheKey(map[string]any{"type": "search", "query": normalizeQuery(query), "source": source, "limit": limit})
	return c.setJSON(ctx, key, results, ttl)
}

// GetFoodDetails returns a cached unified record, or nil on miss.
func (c *NutritionCache) GetFoodDetails(ctx context.Context, foodID string) *models.NutritionData {
	if !c.enabled {
		return nil
	}
	key := cacheKey(map[string]any{"type": "details", "food_id": foodID})
	var data models.NutritionData
	if !c.getJSON(ctx, key, &data) {
		return nil
	}
	return &data
}

func (c *NutritionCache) SetFoodDetails(ctx context.Context, foodID string, data *models.NutritionData, ttl time.Duration) bool {
	if !c.enabled {
		return false
	}
	key := cacheKey(map[string]any{"type": "details", "food_id": foodID})
	return c.setJSON(ctx, key, data, ttl)
}

// GetComparison returns a cached comparison keyed by the sorted food id list.
func (c *NutritionCache) GetComparison(ctx context.Context, foodIDs []string) map[string]any {
	if !c.enabled {
		return nil
	}
	sorted := append([]string(nil), foodIDs...)
	sort.Strings(sorted)
	key := cacheKey(map[string]any{"type": "comparison", "food_ids": sorted})
	var result map[string]any
	if !c.getJSON(ctx, key, &result) {
		return nil
	}
	return result
}

func (c *NutritionCache) SetComparison(ctx context.Context, foodIDs []string, result map[string]any, ttl time.Duration) bool {
	if !c.enabled {
		return false
	}
	sorted := append([]string(nil), foodIDs...)
	sort.Strings(sorted)
	key := cacheKey(map[string]any{"type": "comparison", "food_ids": sorted})
	return c.setJSON(ctx, key, result, ttl)
}

// InvalidateFood drops the cached details entry for a food. Hash keys don't
// embed the id, so search/comparison entries age out by TTL instead of being
// pattern-deleted.
func (c *NutritionCache) InvalidateFood(ctx context.Context, foodID string) (int64, error) {
	if !c.enabled {
		return 0, nil
	}
	key := cacheKey(map[string]any{"type": "details", "food_id": foodID})
	return c.rdb.Del(ctx, key).Result()
}

// ClearAll removes every nutrition cache entry.
func (c *NutritionCache) ClearAll(ctx context.Context) (int64, error) {
	if !c.enabled {
		return 0, nil
	}
	keys, err := c.rdb.Keys(ctx, "nutri:*").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list cache keys: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	return c.rdb.Del(ctx, keys...).Result()
}

// Stats reports entry counts and hit rate from Redis INFO.
func (c *NutritionCache) Stats(ctx context.Context) map[string]any {
	if !c.enabled {
		return map[string]any{"enabled": false}
	}
	nutriKeys, err := c.rdb.Keys(ctx, "nutri:*").Result()
	if err != nil {
		return map[string]any{"enabled": true, "error": err.Error()}
	}
	hits, _ := c.rdb.Info(ctx, "stats").Result()
	return map[string]any{
		"enabled":        true,
		"nutrition_keys": len(nutriKeys),
		"stats":          hits,
	}
}

// Healthy pings Redis.
func (c *NutritionCache) Healthy(ctx context.Context) bool {
	if !c.enabled {
		return false
	}
	return c.rdb.Ping(ctx).Err() == nil
}

func (c *NutritionCache) getJSON(ctx context.Context, key string, dest any) bool {
	raw, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("cache get error: %v", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("cache deserialization error: %v", err)
		return false
	}
	return true
}

func (c *NutritionCache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) bool {
	b, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache serialization error: %v", err)
		return false
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		log.Printf("cache set error: %v", err)
		return false
	}
	return true
}
