package middleware

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	redisclient "github.com/joy095/consult/config/redis"
	"github.com/joy095/consult/logger"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewRateLimiter limits a route to the given rate (e.g. "10-2m" = ten requests
// per two minutes). Counters live in Redis so limits hold across instances;
// when Redis is unavailable the limiter falls back to an in-memory store.
func NewRateLimiter(rateStr, routeID string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		panic(fmt.Errorf("invalid rate %q for route %s: %w", rateStr, routeID, err))
	}

	store := newStore(routeID)
	return ginmiddleware.NewMiddleware(limiter.New(store, rate))
}

func newStore(routeID string) limiter.Store {
	rdb, err := redisclient.GetRedisClient(context.Background())
	if err != nil {
		logger.WarnLogger.Warnf("Rate limiter for %s using in-memory store: %v", routeID, err)
		return memorystore.NewStore()
	}

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:   fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry: 3,
	})
	if err != nil {
		logger.WarnLogger.Warnf("Rate limiter for %s using in-memory store: %v", routeID, err)
		return memorystore.NewStore()
	}
	return store
}
