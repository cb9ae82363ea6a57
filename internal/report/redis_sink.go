package report

import (
	"context"
	"fmt"
	"time"

	"voyage-booking/utils"

	"github.com/redis/go-redis/v9"
)

// RedisSink appends transcript lines to the list "transcript:<session>".
// Writes go through a circuit breaker so an unreachable Redis is skipped quickly.
type RedisSink struct {
	client  *redis.Client
	key     string
	ttl     time.Duration
	breaker *utils.CircuitBreaker
}

func NewRedisSink(client *redis.Client, sessionID string, ttl time.Duration, breaker *utils.CircuitBreaker) *RedisSink {
	return &RedisSink{
		client:  client,
		key:     TranscriptKey(sessionID),
		ttl:     ttl,
		breaker: breaker,
	}
}

// TranscriptKey is the Redis list holding a session transcript.
func TranscriptKey(sessionID string) string {
	return fmt.Sprintf("transcript:%s", sessionID)
}

func (s *RedisSink) Key() string {
	return s.key
}

func (s *RedisSink) Emit(ctx context.Context, lines ...string) error {
	if len(lines) == 0 {
		return nil
	}
	values := make([]any, len(lines))
	for i, line := range lines {
		values[i] = line
	}

	return s.breaker.Do(ctx, func(ctx context.Context) error {
		if err := s.client.RPush(ctx, s.key, values...).Err(); err != nil {
			return fmt.Errorf("rpush %s: %w", s.key, err)
		}
		if s.ttl > 0 {
			if err := s.client.Expire(ctx, s.key, s.ttl).Err(); err != nil {
				return fmt.Errorf("expire %s: %w", s.key, err)
			}
		}
		return nil
	})
}
