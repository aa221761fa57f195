package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/doconnect/doconnect-web/config"
	"github.com/doconnect/doconnect-web/internal/adapters/doconnect"
	redisstore "github.com/doconnect/doconnect-web/internal/adapters/redis"
	"github.com/doconnect/doconnect-web/internal/observability/statsd"
)

// ConnectRedis establishes the connection backing the session store.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support open.
func ConnectRedis(cfg config.SessionConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if logger != nil {
		// Log the address without credentials
		addr := cfg.Redis.Addr
		if i := strings.LastIndex(addr, "@"); i > -1 {
			addr = addr[i+1:]
		}
		logger.Info("redis connected", "addr", addr)
	}

	return client, nil
}

// NewSessionStore builds the Redis-backed session store.
func NewSessionStore(client redis.UniversalClient, cfg config.SessionConfig) *redisstore.SessionStore {
	return redisstore.NewSessionStoreWithPrefix(client, cfg.KeyPrefix)
}

// NewMetricsClient builds the StatsD client. A disabled configuration
// yields a client that swallows writes, so callers can wire it
// unconditionally.
func NewMetricsClient(cfg config.MetricsConfig, logger *slog.Logger) (*statsd.Client, error) {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Enabled,
		Address: cfg.Address,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create statsd client: %w", err)
	}
	if client.Enabled() && logger != nil {
		logger.Info("statsd metrics enabled", "addr", cfg.Address, "prefix", cfg.Prefix)
	}
	return client, nil
}

// NewAPIClient builds the client for the remote DoConnect API.
func NewAPIClient(cfg config.APIConfig) (*doconnect.Client, error) {
	client, err := doconnect.NewClient(doconnect.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	return client, nil
}
