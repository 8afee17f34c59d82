package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisOptions parses the URI and applies the pool settings. The events
// subscriber holds one connection for its whole lifetime, so the pool keeps
// headroom above the request load.
func redisOptions(redisURI string) (*redis.Options, error) {
	opt, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, err
	}
	opt.PoolSize = 20
	opt.MinIdleConns = 4
	opt.MaxRetries = 2
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 2 * time.Second
	opt.WriteTimeout = 2 * time.Second
	opt.PoolTimeout = 3 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute
	return opt, nil
}

// ConnectRedis opens the client used for sessions, the stats cache, events
// and rate limiting, and checks it with a PING.
func ConnectRedis(redisURI string) (*redis.Client, error) {
	opt, err := redisOptions(redisURI)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), opt.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Printf("✅ Connected to Redis (db %d)", opt.DB)
	return client, nil
}

func DisconnectRedis(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
