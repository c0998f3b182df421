package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freshkart/storefront/internal/domain"
)

// cartTTL keeps abandoned carts around long enough to come back to, without
// accumulating them forever.
const cartTTL = 30 * 24 * time.Hour

// RedisStore stores each cart as a JSON value under cart:<userID>.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.Cart{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart for %s: %w", userID, err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("decode cart for %s: %w", userID, err)
	}

	return &cart, nil
}

func (s *RedisStore) Save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart for %s: %w", cart.UserID, err)
	}

	if err := s.client.Set(ctx, cartKey(cart.UserID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("save cart for %s: %w", cart.UserID, err)
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete cart for %s: %w", userID, err)
	}
	return nil
}

func cartKey(userID string) string {
	return "cart:" + userID
}
