package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "gameroom:feed:"

// FeedCache короткоживущий кэш ответов внешней системы учёта в Redis
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Options параметры подключения
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// New подключается к Redis и проверяет соединение
func New(ctx context.Context, opts Options) (*FeedCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping %s: %w", opts.Addr, err)
	}

	return NewWithClient(client, opts.TTL), nil
}

// NewWithClient оборачивает готовый клиент
func NewWithClient(client *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{client: client, ttl: ttl}
}

// Get возвращает закэшированное тело ответа; ok == false при промахе
func (c *FeedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return data, true, nil
}

// Set сохраняет тело ответа на TTL
func (c *FeedCache) Set(ctx context.Context, key string, data []byte) error {
	if c.ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

func (c *FeedCache) Close() error {
	return c.client.Close()
}
