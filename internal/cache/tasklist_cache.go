package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "Dayflow/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "tasklist:list:"

// TaskListCache caches each user's ordered task list collection in Redis.
// Invalidated on every write, including reorders.
type TaskListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskListCache returns a new TaskListCache.
func NewTaskListCache(rdb *redis.Client, ttl time.Duration) *TaskListCache {
	return &TaskListCache{rdb: rdb, ttl: ttl}
}

func listKey(userID uuid.UUID) string {
	return keyListPrefix + userID.String()
}

// GetList returns the cached collection or nil on miss.
func (c *TaskListCache) GetList(ctx context.Context, userID uuid.UUID) ([]dom.TaskList, error) {
	b, err := c.rdb.Get(ctx, listKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.TaskList
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the collection.
func (c *TaskListCache) SetList(ctx context.Context, userID uuid.UUID, list []dom.TaskList) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(userID), b, c.ttl).Err()
}

// Invalidate drops the user's cached collection.
func (c *TaskListCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, listKey(userID)).Err()
}
