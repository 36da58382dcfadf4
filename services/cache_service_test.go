package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyStableAcrossKeyOrder(t *testing.T) {
	a := cacheKey(map[string]any{"type": "search", "query": "apple", "limit": 10})
	b := cacheKey(map[string]any{"limit": 10, "query": "apple", "type": "search"})
	assert.Equal(t, a, b)
}

func TestCacheKeyDiffersPerRequest(t *testing.T) {
	a := cacheKey(map[string]any{"type": "search", "query": "apple", "limit": 10})
	b := cacheKey(map[string]any{"type": "search", "query": "apple", "limit": 20})
	c := cacheKey(map[string]any{"type": "details", "query": "apple", "limit": 10})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheKeyFormat(t *testing.T) {
	key := cacheKey(map[string]any{"type": "details", "food_id": "usda_1"})
	assert.True(t, strings.HasPrefix(key, "nutri:"))
	// 8 hash bytes render as 16 hex chars
	assert.Len(t, key, len("nutri:")+16)
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "brown rice", normalizeQuery("  Brown RICE "))
}

func TestDisabledCacheIsAlwaysAMiss(t *testing.T) {
	c := &NutritionCache{} // no redis connection
	ctx := context.Background()

	assert.Nil(t, c.GetSearchResults(ctx, "apple", "both", 10))
	assert.Nil(t, c.GetFoodDetails(ctx, "usda_1"))
	assert.False(t, c.SetFoodDetails(ctx, "usda_1", nil, 0))

	deleted, err := c.ClearAll(ctx)
	assert.NoError(t, err)
	assert.Zero(t, deleted)
	assert.False(t, c.Healthy(ctx))
}
