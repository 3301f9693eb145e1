package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-readlater/internal/models"
	"github.com/pribylovaa/go-readlater/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Проверка выполнения контракта верхнего уровня.
var _ storage.Storage = (*Mongo)(nil)

// UserByUsername возвращает документ пользователя и его Presence.
// При withHash=false поле hash исключается проекцией запроса — секрет
// аутентификации не покидает хранилище на пути чтения.
func (m *Mongo) UserByUsername(ctx context.Context, username string, withHash bool) (*models.User, storage.Presence, error) {
	const op = "storage/mongo/UserByUsername"

	opts := options.FindOne()
	if !withHash {
		opts.SetProjection(bson.D{{Key: "hash", Value: 0}})
	}

	var out models.User
	err := m.users.FindOne(ctx, bson.D{{Key: "username", Value: username}}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, storage.Absent, nil
		}

		return nil, storage.Absent, fmt.Errorf("%s: %w", op, err)
	}

	presence := storage.Incomplete
	if out.Complete() {
		presence = storage.Complete
	}

	return &out, presence, nil
}

// SaveUser перезаписывает документ по ключу username (upsert).
// Повторная доставка той же команды создания даёт ту же конечную
// запись, а не ошибку дублирования ключа.
func (m *Mongo) SaveUser(ctx context.Context, user models.User) error {
	const op = "storage/mongo/SaveUser"

	if user.Username == "" {
		return fmt.Errorf("%s: empty username", op)
	}

	_, err := m.users.ReplaceOne(ctx,
		bson.D{{Key: "username", Value: user.Username}},
		user,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RenameUser переносит документ под новый ключ: запись под user.Username,
// затем удаление старого ключа. Операции атомарны по отдельности; при
// повторной доставке второй проход находит старый ключ уже пустым и
// завершается тем же конечным состоянием.
func (m *Mongo) RenameUser(ctx context.Context, oldUsername string, user models.User) error {
	const op = "storage/mongo/RenameUser"

	if err := m.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if oldUsername == user.Username {
		return nil
	}

	if _, err := m.users.DeleteOne(ctx, bson.D{{Key: "username", Value: oldUsername}}); err != nil {
		return fmt.Errorf("%s: delete old key: %w", op, err)
	}

	return nil
}

// DeleteUser удаляет документ по ключу. Отсутствие записи — не ошибка:
// удаление синхронно и обязано быть повторяемым.
func (m *Mongo) DeleteUser(ctx context.Context, username string) error {
	const op = "storage/mongo/DeleteUser"

	if _, err := m.users.DeleteOne(ctx, bson.D{{Key: "username", Value: username}}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
