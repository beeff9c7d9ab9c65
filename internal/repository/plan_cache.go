package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/budget-planner/pkg/payoff"
)

type redisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanCache stores plans in Redis. Each user has a debts version counter;
// bumping it orphans every plan cached under the previous version. Callers
// read the version once before loading debts and use it for both Get and Set,
// so a plan computed from a stale snapshot only lands under a retired version.
func NewPlanCache(client *redis.Client, ttl time.Duration) PlanCache {
	return &redisPlanCache{client: client, ttl: ttl}
}

func versionKey(userID uuid.UUID) string {
	return fmt.Sprintf("debts:version:%s", userID)
}

func planKey(userID uuid.UUID, version int64, key string) string {
	return fmt.Sprintf("plan:%s:%d:%s", userID, version, key)
}

func (c *redisPlanCache) Version(ctx context.Context, userID uuid.UUID) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

func (c *redisPlanCache) Get(ctx context.Context, userID uuid.UUID, version int64, key string) (*payoff.Result, error) {
	data, err := c.client.Get(ctx, planKey(userID, version, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result payoff.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *redisPlanCache) Set(ctx context.Context, userID uuid.UUID, version int64, key string, result *payoff.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, planKey(userID, version, key), data, c.ttl).Err()
}

func (c *redisPlanCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.client.Incr(ctx, versionKey(userID)).Err()
}
