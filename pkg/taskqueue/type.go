package taskqueue

import (
	"time"

	pkgRedis "careersight-srv/pkg/redis"
)

// QueueConfig holds configuration for a task queue.
type QueueConfig struct {
	// Name prefixes the Redis keys for this queue.
	Name string
	// VisibilityTimeout is how long a claimed item stays invisible before a
	// sweep puts it back on the ready queue. Zero means DefaultVisibilityTimeout.
	VisibilityTimeout time.Duration
}

// queueImpl implements IQueue on two Redis sorted sets: a ready set scored by
// ready-at time (which makes delayed enqueueing plain scheduling) and an
// in-flight set scored by the claim's visibility deadline.
type queueImpl struct {
	redis             pkgRedis.IRedis
	readyKey          string
	inflightKey       string
	visibilityTimeout time.Duration
}
