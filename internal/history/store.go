// Package history caches the latest prediction per user in Redis. The
// prediction core itself stays pure; this cache only lets clients re-read the
// most recent result without re-submitting their logs. The service runs fine
// without Redis: a nil store silently no-ops.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/mindfulme/ml-service/internal/predictive"
)

const predictionKeyPrefix = "prediction:"

// ErrNotFound is returned when no cached prediction exists for a user.
var ErrNotFound = errors.New("history: prediction not found")

// Snapshot is one cached prediction run.
type Snapshot struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Result      predictive.Result `json:"result"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// Store keeps the latest prediction snapshot per user with a TTL.
type Store struct {
	redis  *redis.Client
	tracer trace.Tracer
	ttl    time.Duration
}

// NewStore creates a prediction history store. A nil client disables caching.
func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	if redisClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{
		redis:  redisClient,
		tracer: otel.Tracer("mindfulme.internal.history"),
		ttl:    ttl,
	}
}

// Save stores the latest prediction for a user, replacing any previous one.
func (s *Store) Save(ctx context.Context, userID string, result predictive.Result) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if userID == "" {
		return errors.New("history: userID required")
	}

	snapshot := Snapshot{
		ID:          uuid.NewString(),
		UserID:      userID,
		Result:      result,
		GeneratedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("history: marshal snapshot: %w", err)
	}

	ctx, span := s.tracer.Start(ctx, "history.save")
	defer span.End()

	if err := s.redis.Set(ctx, predictionKey(userID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("history: save snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recent cached prediction for a user.
func (s *Store) Latest(ctx context.Context, userID string) (*Snapshot, error) {
	if s == nil || s.redis == nil {
		return nil, ErrNotFound
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if userID == "" {
		return nil, errors.New("history: userID required")
	}

	ctx, span := s.tracer.Start(ctx, "history.latest")
	defer span.End()

	raw, err := s.redis.Get(ctx, predictionKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("history: read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("history: decode snapshot: %w", err)
	}
	return &snapshot, nil
}

// Purge removes a user's cached prediction. Missing keys are not an error.
func (s *Store) Purge(ctx context.Context, userID string) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if userID == "" {
		return errors.New("history: userID required")
	}

	ctx, span := s.tracer.Start(ctx, "history.purge")
	defer span.End()

	if err := s.redis.Del(ctx, predictionKey(userID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("history: purge snapshot: %w", err)
	}
	return nil
}

func predictionKey(userID string) string {
	return predictionKeyPrefix + userID
}
