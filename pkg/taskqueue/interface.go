package taskqueue

import (
	"context"
	"fmt"
	"time"

	pkgRedis "careersight-srv/pkg/redis"
)

// IQueue is a multi-producer/multi-consumer work queue with at-least-once
// delivery. A worker must Claim an item exclusively before processing and
// Complete it only after finishing; Release (or the visibility sweep) puts
// it back for retry. Implementations are safe for concurrent use.
type IQueue interface {
	// Enqueue adds a payload that becomes claimable after the given delay.
	Enqueue(ctx context.Context, payload []byte, delay time.Duration) error
	// Claim atomically takes the oldest due item, or returns nil when none is due.
	Claim(ctx context.Context) ([]byte, error)
	// Complete removes a claimed item permanently.
	Complete(ctx context.Context, payload []byte) error
	// Release puts a claimed item back on the ready queue immediately.
	Release(ctx context.Context, payload []byte) error
	// RequeueExpired moves items whose claim deadline passed back to ready.
	// Returns the number of items moved.
	RequeueExpired(ctx context.Context) (int, error)
	// PendingCount returns the number of items waiting to be claimed.
	PendingCount(ctx context.Context) (int64, error)
}

// New creates a new Redis-backed task queue.
func New(redis pkgRedis.IRedis, cfg QueueConfig) (IQueue, error) {
	if redis == nil {
		return nil, fmt.Errorf("taskqueue: redis client is required")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("taskqueue: queue name is required")
	}
	if cfg.VisibilityTimeout <= 0 {
		cfg.VisibilityTimeout = DefaultVisibilityTimeout
	}

	return &queueImpl{
		redis:             redis,
		readyKey:          cfg.Name + ":ready",
		inflightKey:       cfg.Name + ":inflight",
		visibilityTimeout: cfg.VisibilityTimeout,
	}, nil
}
