// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/constants"
)

// Throttle counts failed logins per client in Redis.
//
// Each client key lives for one window from its first failure. Once the count
// reaches the limit, [Throttle.Check] rejects the client until the key expires.
//
// A nil *Throttle is valid and never rejects anyone; it is what the server
// runs with when Redis is not configured.
type Throttle struct {
	client redis.UniversalClient
	limit  int64
	window time.Duration
}

// NewThrottle creates a Throttle allowing limit failures per window.
func NewThrottle(client redis.UniversalClient, limit int, window time.Duration) *Throttle {
	return &Throttle{
		client: client,
		limit:  int64(limit),
		window: window,
	}
}

func (throttle *Throttle) key(clientID string) string {
	return constants.RedisPrefixLoginFailures + clientID
}

// Check returns a RateLimited error once clientID has used up its failures.
func (throttle *Throttle) Check(context context.Context, clientID string) error {
	if throttle == nil {
		return nil
	}

	key := throttle.key(clientID)

	failures, err := throttle.client.Get(context, key).Int64()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("auth: read login failures: %w", err)
	}

	if failures < throttle.limit {
		return nil
	}

	ttl, err := throttle.client.TTL(context, key).Result()
	if err != nil || ttl <= 0 {
		ttl = throttle.window
	}
	return apperr.RateLimited(int(math.Ceil(ttl.Seconds())))
}

// RecordFailure adds one failure for clientID, starting the window on the first.
//
// The window key is created with SET NX EX and then incremented inside one
// MULTI/EXEC, so a counter never exists without its expiry.
func (throttle *Throttle) RecordFailure(context context.Context, clientID string) error {
	if throttle == nil {
		return nil
	}

	key := throttle.key(clientID)

	_, err := throttle.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.SetNX(context, key, 0, throttle.window)
		pipe.Incr(context, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("auth: count login failure: %w", err)
	}

	return nil
}

// Reset forgets the failures of clientID.
func (throttle *Throttle) Reset(context context.Context, clientID string) error {
	if throttle == nil {
		return nil
	}

	if err := throttle.client.Del(context, throttle.key(clientID)).Err(); err != nil {
		return fmt.Errorf("auth: reset login failures: %w", err)
	}
	return nil
}
