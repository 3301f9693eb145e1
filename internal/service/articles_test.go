package service

// Тесты пути статей: детерминированный идентификатор, публикация
// articles.create, коллапс Absent/Incomplete в NotFound при чтении
// и запрет мутаций через публичный API.

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-readlater/internal/commands"
	"github.com/pribylovaa/go-readlater/internal/models"
	"github.com/pribylovaa/go-readlater/internal/storage"
)

// POST одного и того же URL дважды даёт один и тот же идентификатор и
// две одинаковые команды: повторная отправка безвредна.
func TestService_SubmitArticle_DeterministicID(t *testing.T) {
	s, _, _, _, mp, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	const url = "https://en.wikipedia.org/wiki/Emulsion"
	want := models.ArticleID(url)

	var bodies [][]byte
	mp.EXPECT().
		Publish(gomock.Any(), "blend.articles.topic", commands.ArticlesCreate, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, body []byte) error {
			bodies = append(bodies, body)
			return nil
		}).
		Times(2)

	first, err := s.SubmitArticle(context.Background(), url)
	require.NoError(t, err)
	second, err := s.SubmitArticle(context.Background(), url)
	require.NoError(t, err)

	require.Equal(t, want, first)
	require.Equal(t, first, second)

	var cmd commands.ArticleCreate
	require.NoError(t, json.Unmarshal(bodies[0], &cmd))
	// в команде — плоский hex без дефисов, ключ документа в Mongo.
	require.Equal(t, models.ArticleKey(want), cmd.ID)
	require.Equal(t, url, cmd.URL)
	require.JSONEq(t, string(bodies[0]), string(bodies[1]))
}

// Пустой URL отвергается до публикации.
func TestService_SubmitArticle_EmptyURL(t *testing.T) {
	s, _, _, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.SubmitArticle(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Отказ шины — ErrInternal, идентификатор не возвращается.
func TestService_SubmitArticle_PublishFailure(t *testing.T) {
	s, _, _, _, mp, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mp.EXPECT().
		Publish(gomock.Any(), "blend.articles.topic", commands.ArticlesCreate, gomock.Any()).
		Return(errors.New("connection reset"))

	_, err := s.SubmitArticle(context.Background(), "https://example.com/article")
	require.ErrorIs(t, err, ErrInternal)
}

// Absent и Incomplete для читателя неразличимы: оба — NotFound,
// объектное хранилище не трогается.
func TestService_ReadArticle_NotReadable_NotFound(t *testing.T) {
	s, ms, _, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	id := models.ArticleID("https://example.com/pending")
	key := models.ArticleKey(id)

	ms.EXPECT().
		ArticleByID(gomock.Any(), key).
		Return(nil, storage.Absent, nil)

	_, err := s.ReadArticle(context.Background(), id)
	require.ErrorIs(t, err, ErrNotFound)

	ms.EXPECT().
		ArticleByID(gomock.Any(), key).
		Return(&models.Article{ID: key, URL: "https://example.com/pending"}, storage.Incomplete, nil)

	_, err = s.ReadArticle(context.Background(), id)
	require.ErrorIs(t, err, ErrNotFound)
}

// Complete: метаданные из документа плюс текст из объектного хранилища.
func TestService_ReadArticle_Complete_ReturnsView(t *testing.T) {
	s, ms, mtx, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	id := models.ArticleID("https://example.com/ready")
	key := models.ArticleKey(id)
	parsed := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)

	ms.EXPECT().
		ArticleByID(gomock.Any(), key).
		Return(&models.Article{
			ID:                key,
			URL:               "https://example.com/ready",
			ParsedAt:          &parsed,
			TextContainerName: "articles",
			TextObjectName:    key,
		}, storage.Complete, nil)

	mtx.EXPECT().
		Text(gomock.Any(), "articles", key).
		Return("<p>sanitized</p>", nil)

	view, err := s.ReadArticle(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, key, view.ID)
	require.Equal(t, "<p>sanitized</p>", view.Text)
}

// Указатель на текст есть, объекта нет — рассинхрон конвейера,
// внутренняя ошибка, а не NotFound.
func TestService_ReadArticle_TextMissing_Internal(t *testing.T) {
	s, ms, mtx, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	id := models.ArticleID("https://example.com/torn")
	key := models.ArticleKey(id)

	ms.EXPECT().
		ArticleByID(gomock.Any(), key).
		Return(&models.Article{
			ID:                key,
			URL:               "https://example.com/torn",
			TextContainerName: "articles",
			TextObjectName:    key,
		}, storage.Complete, nil)

	mtx.EXPECT().
		Text(gomock.Any(), "articles", key).
		Return("", storage.ErrNotFound)

	_, err := s.ReadArticle(context.Background(), id)
	require.ErrorIs(t, err, ErrInternal)
}

// PUT/DELETE статьи — всегда 405, безусловно.
func TestService_MutateArticle_MethodNotAllowed(t *testing.T) {
	s, _, _, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	require.ErrorIs(t, s.MutateArticle(context.Background()), ErrMethodNotAllowed)
}

// Идентификатор — UUIDv5 от URL в пространстве имён URL: проверяем на
// известном значении, чтобы зафиксировать совместимость с уже
// существующими документами.
func TestArticleID_KnownVector(t *testing.T) {
	id := models.ArticleID("http://www.example.com/")
	require.Equal(t, uuid.NewSHA1(uuid.NameSpaceURL, []byte("http://www.example.com/")), id)
	require.Equal(t, uuid.Version(5), id.Version())
}
