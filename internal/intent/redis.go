package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"slotcal-service/pkg/response"
)

// Store holds deferred-booking intents: a booking captured before the
// caller authenticated, replayed exactly once afterwards. No TTL is set;
// the read is a GETDEL, so the intent is cleared regardless of whether the
// replayed booking succeeds.
type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Put(ctx context.Context, payload any) (string, error) {
	const op = "intent.Store.Put"

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, intentKey(token), data, 0).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// Take reads an intent once and deletes it atomically.
func (s *Store) Take(ctx context.Context, token string, dst any) error {
	const op = "intent.Store.Take"

	data, err := s.client.GetDel(ctx, intentKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func intentKey(token string) string {
	return fmt.Sprintf("intent:%s", token)
}
