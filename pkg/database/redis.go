package database

import (
	"context"
	"fmt"
	"log"

	"student_portal_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects the cache behind the dashboard snapshots. The portal
// treats it as optional: callers that get an error run uncached instead.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	log.Println("Redis connection established")
	return rdb, nil
}
