package taskqueue

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// claimScript atomically moves the oldest due member from the ready set to
// the in-flight set. Atomicity is what gives exclusive claims across workers.
var claimScript = goredis.NewScript(`
local items = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, 1)
if #items == 0 then
	return false
end
redis.call('ZREM', KEYS[1], items[1])
redis.call('ZADD', KEYS[2], ARGV[2], items[1])
return items[1]
`)

// requeueScript moves expired in-flight members back to the ready set.
var requeueScript = goredis.NewScript(`
local items = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, tonumber(ARGV[2]))
for _, item in ipairs(items) do
	redis.call('ZREM', KEYS[1], item)
	redis.call('ZADD', KEYS[2], ARGV[1], item)
end
return #items
`)

// Enqueue adds a payload scored by its ready-at time.
func (q *queueImpl) Enqueue(ctx context.Context, payload []byte, delay time.Duration) error {
	readyAt := time.Now().Add(delay).Unix()
	err := q.redis.GetClient().ZAdd(ctx, q.readyKey, goredis.Z{
		Score:  float64(readyAt),
		Member: string(payload),
	}).Err()
	if err != nil {
		return fmt.Errorf("taskqueue: failed to enqueue: %w", err)
	}
	return nil
}

// Claim atomically takes the oldest due item. Returns nil when nothing is due.
func (q *queueImpl) Claim(ctx context.Context) ([]byte, error) {
	now := time.Now().Unix()
	deadline := time.Now().Add(q.visibilityTimeout).Unix()

	res, err := claimScript.Run(ctx, q.redis.GetClient(),
		[]string{q.readyKey, q.inflightKey}, now, deadline).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("taskqueue: failed to claim: %w", err)
	}

	payload, ok := res.(string)
	if !ok {
		return nil, fmt.Errorf("taskqueue: unexpected claim result type %T", res)
	}
	return []byte(payload), nil
}

// Complete removes a claimed item permanently.
func (q *queueImpl) Complete(ctx context.Context, payload []byte) error {
	if err := q.redis.GetClient().ZRem(ctx, q.inflightKey, string(payload)).Err(); err != nil {
		return fmt.Errorf("taskqueue: failed to complete: %w", err)
	}
	return nil
}

// Release puts a claimed item back on the ready queue immediately.
func (q *queueImpl) Release(ctx context.Context, payload []byte) error {
	client := q.redis.GetClient()
	pipe := client.TxPipeline()
	pipe.ZRem(ctx, q.inflightKey, string(payload))
	pipe.ZAdd(ctx, q.readyKey, goredis.Z{
		Score:  float64(time.Now().Unix()),
		Member: string(payload),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("taskqueue: failed to release: %w", err)
	}
	return nil
}

// RequeueExpired moves items whose claim deadline passed back to ready.
func (q *queueImpl) RequeueExpired(ctx context.Context) (int, error) {
	now := time.Now().Unix()
	res, err := requeueScript.Run(ctx, q.redis.GetClient(),
		[]string{q.inflightKey, q.readyKey}, now, RequeueBatchSize).Int()
	if err != nil {
		return 0, fmt.Errorf("taskqueue: failed to requeue expired: %w", err)
	}
	return res, nil
}

// PendingCount returns the number of items waiting to be claimed.
func (q *queueImpl) PendingCount(ctx context.Context) (int64, error) {
	count, err := q.redis.GetClient().ZCard(ctx, q.readyKey).Result()
	if err != nil {
		return 0, fmt.Errorf("taskqueue: failed to count pending: %w", err)
	}
	return count, nil
}
