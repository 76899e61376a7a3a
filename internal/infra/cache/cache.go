package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is a thin JSON key/value cache on top of redis. It plays the
// role the browser's localStorage played for the old dashboard: the
// stored license key and the settings fallback copy live here.
type Client struct {
	rdb    *redis.Client
	prefix string
}

func New(addr string, db int, prefix string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Client{rdb: rdb, prefix: prefix}, nil
}

func (c *Client) key(k string) string { return c.prefix + ":" + k }

func (c *Client) SetJSON(ctx context.Context, k string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(k), data, ttl).Err()
}

// GetJSON returns false without error when the key is absent.
func (c *Client) GetJSON(ctx context.Context, k string, dest any) (bool, error) {
	data, err := c.rdb.Get(ctx, c.key(k)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) SetString(ctx context.Context, k, v string) error {
	return c.rdb.Set(ctx, c.key(k), v, 0).Err()
}

func (c *Client) GetString(ctx context.Context, k string) (string, error) {
	v, err := c.rdb.Get(ctx, c.key(k)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

func (c *Client) Del(ctx context.Context, k string) error {
	return c.rdb.Del(ctx, c.key(k)).Err()
}

func (c *Client) Close() error { return c.rdb.Close() }
