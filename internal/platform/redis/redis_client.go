// Package redis opens the shared Redis client.
package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const pingTimeout = 3 * time.Second

// Options identifies the Redis server.
type Options struct {
	Host     string
	Port     string
	Password string
}

// NewClient connects to Redis and pings it. The client is closed again when
// the ping fails.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	addr := net.JoinHostPort(opts.Host, opts.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.WithFields(log.Fields{"address": addr, "error": err}).Error("redis connection failed")
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	log.WithField("address", addr).Info("redis connection successful")
	return rdb, nil
}
