// minio предоставляет реализацию storage.TextStorage на базе MinIO/S3.
// Документ статьи несёт пару (container, object); адаптер забирает
// по ней санированный текст, записанный внешней стадией конвейера.
package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-readlater/internal/config"
	"github.com/pribylovaa/go-readlater/internal/storage"
)

// TextStorage — адаптер MinIO для чтения санированного текста статей.
type TextStorage struct {
	client *mclient.Client
}

// New создаёт и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему) и подбирает Secure по схеме.
// Бакеты здесь не проверяются: имена контейнеров приходят из документов
// статей и заранее не известны.
func New(_ context.Context, cfg *config.Config) (*TextStorage, error) {
	const op = "storage/minio/New"

	endpoint := cfg.S3.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.RootUser, cfg.S3.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &TextStorage{client: client}, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.TextStorage = (*TextStorage)(nil)

// Text возвращает содержимое объекта container/object.
// Отсутствие объекта транслируется в storage.ErrNotFound.
func (s *TextStorage) Text(ctx context.Context, container, object string) (string, error) {
	const op = "storage/minio/Text"

	obj, err := s.client.GetObject(ctx, container, object, mclient.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NoSuchBucket" || errResp.StatusCode == 404 {
			return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if len(data) == 0 {
		// GetObject ленивый: пустое тело без ошибки бывает и у
		// несуществующего объекта; отличим его от реально пустого.
		if _, statErr := s.client.StatObject(ctx, container, object, mclient.StatObjectOptions{}); statErr != nil {
			errResp := mclient.ToErrorResponse(statErr)
			if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
				return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
			}

			return "", fmt.Errorf("%s: %w", op, statErr)
		}
	}

	return string(data), nil
}
