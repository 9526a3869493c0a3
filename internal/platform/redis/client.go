// Package redis connects the session store and the postal cache to Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"givebridge/internal/platform/config"
)

type Client struct {
	*redis.Client
}

// Options turns cfg into go-redis options. Zero values keep the URL's or the
// library's defaults.
func Options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	override(&opts.PoolSize, cfg.PoolSize)
	override(&opts.MinIdleConns, cfg.MinIdleConns)
	override(&opts.DialTimeout, cfg.DialTimeout)
	override(&opts.ReadTimeout, cfg.ReadTimeout)
	override(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func override[T int | time.Duration](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}

// New dials and pings Redis. It returns nil, nil when no URL is configured.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{Client: client}, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
