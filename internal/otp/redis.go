package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/trovelabs/storefront-api.git/internal/redisx"
)

// RedisStore keeps pending records in redis, one key per phone. The key TTL is
// longer than the logical expiry so the ledger can tell expired from missing.
type RedisStore struct {
	Client *redis.Client
}

func (s *RedisStore) key(phone string) string {
	return fmt.Sprintf(redisx.KeyOTP, phone)
}

func (s *RedisStore) Save(ctx context.Context, p Pending) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(p.Phone), b, redisx.TTLOTPRecord).Err()
}

func (s *RedisStore) Load(ctx context.Context, phone string) (Pending, bool, error) {
	var p Pending
	b, err := s.Client.Get(ctx, s.key(phone)).Bytes()
	if errors.Is(err, redis.Nil) {
		return p, false, nil
	}
	if err != nil {
		return p, false, err
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, false, err
	}
	return p, true, nil
}

func (s *RedisStore) IncrementAttempts(ctx context.Context, phone string) error {
	p, ok, err := s.Load(ctx, phone)
	if err != nil || !ok {
		return err
	}
	p.Attempts++
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(phone), b, redis.KeepTTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	return s.Client.Del(ctx, s.key(phone)).Err()
}
