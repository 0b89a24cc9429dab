// Package cache holds the Redis fast lane: graded reads go through a
// short-lived quiz document cache, and grade records travel to the
// persistence worker over a Redis list.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/acadsphere/acadsphere-backend/internal/config"
	"github.com/acadsphere/acadsphere-backend/internal/model"
)

// QuizCache is a read-through cache of quiz documents keyed by quiz id.
type QuizCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewQuizCache creates a QuizCache with the given document TTL.
func NewQuizCache(rdb *redis.Client, ttl time.Duration) *QuizCache {
	return &QuizCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached quiz, or (nil, nil) on a miss.
func (c *QuizCache) Get(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.QuizDocKey(id.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	quiz := &model.Quiz{}
	if err := json.Unmarshal(raw, quiz); err != nil {
		// A corrupt entry behaves like a miss; the caller reloads.
		return nil, nil
	}
	return quiz, nil
}

// Set stores the quiz document under its id for the configured TTL.
func (c *QuizCache) Set(ctx context.Context, quiz *model.Quiz) error {
	raw, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("encode quiz: %w", err)
	}
	return c.rdb.Set(ctx, config.CacheKey.QuizDocKey(quiz.ID.String()), raw, c.ttl).Err()
}

// Invalidate drops the cached document for a quiz id.
func (c *QuizCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.rdb.Del(ctx, config.CacheKey.QuizDocKey(id.String())).Err()
}

// ResultQueue publishes grade records for the persistence worker.
type ResultQueue struct {
	rdb *redis.Client
}

// NewResultQueue creates a ResultQueue.
func NewResultQueue(rdb *redis.Client) *ResultQueue {
	return &ResultQueue{rdb: rdb}
}

// Enqueue pushes a grade record onto the persistence queue.
func (q *ResultQueue) Enqueue(ctx context.Context, rec model.GradeRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode grade record: %w", err)
	}
	return q.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw).Err()
}
