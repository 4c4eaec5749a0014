package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelops/infras/otel/mocks"
	"hotelops/shared/cache"
)

func TestNewRedisCacheWithoutClient(t *testing.T) {
	c := cache.NewRedisCache(nil, mocks.NewOtel())
	ctx := context.Background()

	var out map[string]int

	assert.NoError(t, c.Save(ctx, "report:summary", map[string]int{"a": 1}, 60))
	assert.True(t, errors.Is(c.Get(ctx, "report:summary", &out), cache.Nil))
	assert.Nil(t, out)
	assert.NoError(t, c.Delete(ctx, "report:summary"))
	assert.NoError(t, c.Clear(ctx, "report:*"))
}
