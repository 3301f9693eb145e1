package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pribylovaa/go-readlater/internal/bus"
	"github.com/pribylovaa/go-readlater/internal/commands"
	logctx "github.com/pribylovaa/go-readlater/internal/pkg/log"
	"github.com/pribylovaa/go-readlater/internal/storage"
)

// Articles применяет команды articles.create.
// Стадии обогащения (fetch, sanitize) — внешние коллабораторы, они
// дописывают etag/size/text_* в тот же документ позже; здесь создаётся
// только заглушка.
type Articles struct {
	storage storage.ArticleStorage
	now     func() time.Time
}

// NewArticles собирает консьюмер статей.
func NewArticles(st storage.ArticleStorage) *Articles {
	return &Articles{storage: st, now: time.Now}
}

// Handle — bus.Handler: диспетчеризация по маршрутному ключу.
func (c *Articles) Handle(ctx context.Context, routingKey string, body []byte) error {
	const op = "consumers/articles/Handle"

	if routingKey != commands.ArticlesCreate {
		return fmt.Errorf("%s: %w: unknown routing key %q", op, bus.ErrUnprocessable, routingKey)
	}

	var cmd commands.ArticleCreate
	if err := json.Unmarshal(body, &cmd); err != nil {
		return fmt.Errorf("%s: %w: %v", op, bus.ErrUnprocessable, err)
	}

	if cmd.ID == "" || cmd.URL == "" {
		return fmt.Errorf("%s: %w: empty id or url", op, bus.ErrUnprocessable)
	}

	if err := c.storage.EnsureArticle(ctx, cmd.ID, cmd.URL, c.now().UTC()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logctx.From(ctx).Info("article ensured", "op", op, "article_id", cmd.ID)
	return nil
}
