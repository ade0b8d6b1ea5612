// Package redis wraps the shared datastore the dashboard reads from. Keys are
// slash-joined paths; device registry entries are hashes.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	goredis "github.com/redis/go-redis/v9"
)

type clientConfig struct {
	Address     string        `env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password    string        `env:"REDIS_PASSWORD" env-default:""`
	Database    int           `env:"REDIS_DATABASE" env-default:"0"`
	DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	Timeout     time.Duration `env:"REDIS_TIMEOUT" env-default:"3s"`
}

// Client is a thin wrapper around go-redis scoped to the operations the
// poller needs.
type Client struct {
	rdb *goredis.Client
}

// NewClient reads the connection settings from the environment and verifies
// the server is reachable before returning.
func NewClient() (*Client, error) {
	var config clientConfig
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("redis config read failed: %w", err)
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         config.Address,
		Password:     config.Password,
		DB:           config.Database,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.Timeout,
		WriteTimeout: config.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), config.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// ScanKeys returns all keys matching the pattern, walking the keyspace with
// SCAN so large registries do not block the server.
func (c *Client) ScanKeys(ctx context.Context, match string, count int64) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		batch, next, err := c.rdb.Scan(ctx, cursor, match, count).Result()
		if err != nil {
			return nil, err
		}

		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// HGetAll reads one hash entry in full.
func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return c.rdb.HGetAll(ctx, key).Result()
}

// Get reads one plain key. A missing key is returned as an empty string.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	value, err := c.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", nil
	}

	return value, err
}

// SetMulti writes all given key/value pairs in one pipelined round trip. The
// write is best-effort atomic: a reader may observe a torn update but will
// converge on the next one.
func (c *Client) SetMulti(ctx context.Context, values map[string]string) error {
	pipe := c.rdb.TxPipeline()
	for key, value := range values {
		pipe.Set(ctx, key, value, 0)
	}

	_, err := pipe.Exec(ctx)
	return err
}
