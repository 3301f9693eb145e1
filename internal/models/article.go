package models

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// ArticleSchemaVersion — текущая версия схемы документа статьи.
const ArticleSchemaVersion = 1

// Article — проекция статьи в документном хранилище.
//
// Идентичность — детерминированный UUIDv5 от URL (одна и та же ссылка
// всегда даёт один и тот же идентификатор, что делает повторную
// отправку идемпотентной). В документе идентификатор лежит в _id как
// hex без дефисов.
//
// Поля etag/parsed_at/size/text_* заполняются внешними стадиями
// конвейера (fetch, sanitize); фронт только читает их. Сам
// санированный текст хранится в объектном хранилище, документ несёт
// лишь указатель (container, object).
type Article struct {
	ID                string     `bson:"_id" json:"_id"`
	URL               string     `bson:"url" json:"url"`
	CreatedAt         time.Time  `bson:"created_at" json:"created_at"`
	Etag              string     `bson:"etag,omitempty" json:"etag,omitempty"`
	ParsedAt          *time.Time `bson:"parsed_at,omitempty" json:"parsed_at,omitempty"`
	Size              int64      `bson:"size,omitempty" json:"size,omitempty"`
	TextContainerName string     `bson:"text_container_name,omitempty" json:"text_container_name,omitempty"`
	TextObjectName    string     `bson:"text_object_name,omitempty" json:"text_object_name,omitempty"`
	SchemaVersion     int        `bson:"schema_version" json:"-"`
}

// Readable сообщает, достигла ли статья состояния Submitted/Complete:
// санированный текст доступен по указателю (container, object).
func (a Article) Readable() bool {
	return a.TextContainerName != "" && a.TextObjectName != ""
}

// ArticleID выводит детерминированный идентификатор статьи из URL
// (UUIDv5 в пространстве имён URL).
func ArticleID(url string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url))
}

// ArticleKey приводит идентификатор к ключу документа: hex без дефисов.
func ArticleKey(id uuid.UUID) string {
	return hex.EncodeToString(id[:])
}
