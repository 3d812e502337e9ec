package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

const (
	// DefaultKeyPrefix префикс ключей сессий в redis
	DefaultKeyPrefix = "reschedule:session:"

	maxUpdateRetries = 10
	retryBaseDelay   = 2 * time.Millisecond
	retryMaxDelay    = 50 * time.Millisecond

	scanBatchSize = 100
)

// RedisRepository хранилище сессий в redis. TTL ключа совпадает со сроком жизни сессии,
// Update выполняется через WATCH/MULTI с повтором при конфликте.
type RedisRepository struct {
	client    redis.UniversalClient
	keyPrefix string
	clock     TimeProvider
}

// NewRedisRepository создает новое хранилище в redis
func NewRedisRepository(client redis.UniversalClient, keyPrefix string, clock TimeProvider) *RedisRepository {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if clock == nil {
		clock = realTimeProvider{}
	}
	return &RedisRepository{
		client:    client,
		keyPrefix: keyPrefix,
		clock:     clock,
	}
}

// Create сохраняет новую сессию
func (r *RedisRepository) Create(ctx context.Context, s *domain.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, r.key(s.ID), data, r.ttl(s)).Result()
	if err != nil {
		return fmt.Errorf("%w: Create - setnx: %v", ErrExecQuery, err)
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

// Get получает сессию по id
func (r *RedisRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get: %v", ErrExecQuery, err)
	}
	return decode(data)
}

// Update применяет fn к сессии в оптимистичной транзакции
func (r *RedisRepository) Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	key := r.key(id)

	var updated *domain.Session
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: Update - get: %v", ErrExecQuery, err)
		}

		s, err := decode(data)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}

		payload, err := encode(s)
		if err != nil {
			return err
		}

		// Если ключ изменили после WATCH, EXEC вернет redis.TxFailedErr
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl(s))
			return nil
		})
		if err != nil {
			return err
		}
		updated = s
		return nil
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}

		// Разводим конкурирующих писателей по времени, иначе они снова столкнутся на EXEC
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: Update - %v", ErrConflict, ctx.Err())
		case <-time.After(retryDelay(attempt)):
		}
	}
	return nil, fmt.Errorf("%w: Update - %d attempts for session %s", ErrConflict, maxUpdateRetries, id)
}

// Delete удаляет сессию
func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("%w: Delete - del: %v", ErrExecQuery, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// CountActive считает ключи сессий через SCAN. Истекшие ключи redis удаляет сам
func (r *RedisRepository) CountActive(ctx context.Context) (int64, error) {
	var active int64
	iter := r.client.Scan(ctx, 0, r.keyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		active++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan: %v", ErrExecQuery, err)
	}
	return active, nil
}

func (r *RedisRepository) key(id string) string {
	return r.keyPrefix + id
}

// retryDelay экспоненциальная задержка со случайной половиной
func retryDelay(attempt int) time.Duration {
	d := retryBaseDelay << attempt
	if d <= 0 || d > retryMaxDelay {
		d = retryMaxDelay
	}
	return d/2 + time.Duration(rand.Int63n(int64(d/2+1)))
}

// ttl оставшийся срок жизни сессии; не меньше секунды, чтобы SET не снял TTL
func (r *RedisRepository) ttl(s *domain.Session) time.Duration {
	ttl := s.ExpiresAt.Sub(r.clock.Now())
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}
