package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-readlater/internal/models"
	"github.com/pribylovaa/go-readlater/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ArticleByID возвращает документ статьи и его Presence.
// Ключ — hex UUID без дефисов (см. models.ArticleKey).
func (m *Mongo) ArticleByID(ctx context.Context, id string) (*models.Article, storage.Presence, error) {
	const op = "storage/mongo/ArticleByID"

	var out models.Article
	err := m.articles.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, storage.Absent, nil
		}

		return nil, storage.Absent, fmt.Errorf("%s: %w", op, err)
	}

	// Нормализация времён.
	out.CreatedAt = out.CreatedAt.UTC()
	if out.ParsedAt != nil {
		t := out.ParsedAt.UTC()
		out.ParsedAt = &t
	}

	presence := storage.Incomplete
	if out.Readable() {
		presence = storage.Complete
	}

	return &out, presence, nil
}

// EnsureArticle вставляет заглушку {_id, url, created_at}, если записи
// ещё нет. $setOnInsert гарантирует идемпотентность: повторная доставка
// той же команды не создаёт дубликата и не затирает поля, дописанные
// стадиями fetch/sanitize.
func (m *Mongo) EnsureArticle(ctx context.Context, id, url string, createdAt time.Time) error {
	const op = "storage/mongo/EnsureArticle"

	if id == "" || url == "" {
		return fmt.Errorf("%s: empty id or url", op)
	}

	// MongoDB DateTime хранит миллисекунды.
	createdAt = createdAt.UTC().Truncate(time.Millisecond)

	_, err := m.articles.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$setOnInsert", Value: bson.D{
			{Key: "url", Value: url},
			{Key: "created_at", Value: createdAt},
			{Key: "schema_version", Value: models.ArticleSchemaVersion},
		}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
