package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-readlater/internal/commands"
	"github.com/pribylovaa/go-readlater/internal/models"
	logctx "github.com/pribylovaa/go-readlater/internal/pkg/log"
	"github.com/pribylovaa/go-readlater/internal/storage"
)

// ArticleView — ответ чтения полной статьи: метаданные документа плюс
// текст, извлечённый из объектного хранилища.
type ArticleView struct {
	models.Article
	Text string `json:"text"`
}

// SubmitArticle реализует POST /articles/: выводит детерминированный
// идентификатор из URL и публикует articles.create. Один и тот же URL
// всегда даёт один и тот же идентификатор, поэтому повторная отправка
// безвредна. Возвращённый id используется транспортом для Location.
func (s *Service) SubmitArticle(ctx context.Context, url string) (uuid.UUID, error) {
	const op = "service/articles/SubmitArticle"

	url = strings.TrimSpace(url)
	if url == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	id := models.ArticleID(url)

	cmd := commands.ArticleCreate{
		ID:            models.ArticleKey(id),
		URL:           url,
		SchemaVersion: models.ArticleSchemaVersion,
	}

	body, err := json.Marshal(cmd)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: marshal: %w", op, ErrInternal)
	}

	if err := s.bus.Publish(ctx, s.opts.ArticlesExchange, commands.ArticlesCreate, body); err != nil {
		logctx.From(ctx).Error("publish articles.create failed", "op", op, "err", err)
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return id, nil
}

// ReadArticle реализует GET /articles/{id}.
//
// Absent и Submitted/Incomplete для клиента неразличимы — оба дают
// ErrNotFound: статья без указателя на санированный текст ещё не
// читаема, и фронт честно не раскрывает внутренние стадии конвейера.
// Только Complete разворачивается в метаданные + текст из объектного
// хранилища.
func (s *Service) ReadArticle(ctx context.Context, id uuid.UUID) (*ArticleView, error) {
	const op = "service/articles/ReadArticle"

	lg := logctx.From(ctx).With("op", op, "article_id", id.String())

	article, presence, err := s.storage.ArticleByID(ctx, models.ArticleKey(id))
	if err != nil {
		lg.Error("storage error on ArticleByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if presence != storage.Complete {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	text, err := s.texts.Text(ctx, article.TextContainerName, article.TextObjectName)
	if err != nil {
		// Указатель есть, объекта нет — рассинхрон конвейера, не «нет статьи».
		lg.Error("text fetch failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return &ArticleView{Article: *article, Text: text}, nil
}

// MutateArticle — обновление/удаление статей через публичный API
// запрещено всегда: статьи неизменяемы после отправки, исправления
// делает только бэкенд-конвейер. Никаких команд и мутаций стораджа.
func (s *Service) MutateArticle(_ context.Context) error {
	return ErrMethodNotAllowed
}
