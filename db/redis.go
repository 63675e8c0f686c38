package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

const (
	FetchLockKey = "autonews:fetch:lock"
	LastFetchKey = "autonews:fetch:last"
)

func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// IngestTracker guards the ingestion cycle against overlapping runs and keeps
// the time of the last completed cycle. The lock TTL bounds how long a crashed
// fetcher can block the next cycle.
type IngestTracker struct{}

func (IngestTracker) TryLock(ttl time.Duration) (bool, error) {
	return Redis.SetNX(Ctx, FetchLockKey, "1", ttl).Result()
}

func (IngestTracker) Unlock() error {
	return Redis.Del(Ctx, FetchLockKey).Err()
}

func (IngestTracker) RecordCycle(t time.Time) error {
	return Redis.Set(Ctx, LastFetchKey, t.Format(time.RFC3339), 0).Err()
}

func (IngestTracker) LastFetch() (time.Time, error) {
	val, err := Redis.Get(Ctx, LastFetchKey).Result()
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, val)
}
