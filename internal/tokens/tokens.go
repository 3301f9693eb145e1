// tokens — хранилище аутентификационных токенов на Redis.
// Контракт: SET token -> username с TTL; GET token -> username или
// отсутствие. Токен — непрозрачная строка; никакой идентичности внутри
// него не зашито.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound — токен отсутствует в хранилище (не выпускался,
// истёк или отозван).
var ErrTokenNotFound = errors.New("token not found")

// Store — минимальный контракт хранилища токенов.
type Store interface {
	// Issue сохраняет отображение token -> username с TTL.
	Issue(ctx context.Context, token, username string, ttl time.Duration) error
	// Lookup возвращает принципала токена. Чтение не потребляет токен.
	Lookup(ctx context.Context, token string) (string, error)
	// Revoke удаляет токен. Отсутствие токена — не ошибка.
	Revoke(ctx context.Context, token string) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisStore struct {
	rdb    *redis.Client
	prefix string
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "blend:tok:".
func New(redisURL, prefix string) (Store, error) {
	if prefix == "" {
		prefix = "blend:tok:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisStore{rdb: rdb, prefix: prefix}, nil
}

func (s *redisStore) key(token string) string { return s.prefix + token }

func (s *redisStore) Issue(ctx context.Context, token, username string, ttl time.Duration) error {
	const op = "tokens/Issue"

	if token == "" || username == "" {
		return fmt.Errorf("%s: empty token or username", op)
	}

	if err := s.rdb.Set(ctx, s.key(token), username, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *redisStore) Lookup(ctx context.Context, token string) (string, error) {
	const op = "tokens/Lookup"

	username, err := s.rdb.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%s: %w", op, ErrTokenNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return username, nil
}

func (s *redisStore) Revoke(ctx context.Context, token string) error {
	const op = "tokens/Revoke"

	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *redisStore) Close() error { return s.rdb.Close() }
