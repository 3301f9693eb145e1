package storage

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/go-readlater/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
)

// Presence — явное трёхвариантное состояние проекции на границе
// read model: ресурс либо отсутствует, либо записан частично (команда
// принята, но конвейер ещё не довёл документ до полноты), либо
// материализован полностью. Фронт сам решает, как схлопывать эти
// состояния для клиента; запрос к хранилищу их не прячет.
type Presence int

const (
	Absent Presence = iota
	Incomplete
	Complete
)

// String — для логов.
func (p Presence) String() string {
	switch p {
	case Absent:
		return "absent"
	case Incomplete:
		return "incomplete"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// UserStorage описывает операции над документами пользователей.
// Все операции атомарны на уровне одного документа; межзаписных
// транзакций контракт не требует — корректность при конкурентных
// консьюмерах достигается идемпотентностью записей.
type UserStorage interface {
	// UserByUsername возвращает документ и его Presence.
	// При withHash=false поле hash исключается проекцией запроса.
	// Отсутствие записи — (nil, Absent, nil), а не ошибка.
	UserByUsername(ctx context.Context, username string, withHash bool) (*models.User, Presence, error)

	// SaveUser перезаписывает документ по ключу username (upsert).
	// Повторное применение той же команды не ошибка и не дубликат.
	SaveUser(ctx context.Context, user models.User) error

	// RenameUser записывает документ под новым ключом user.Username
	// и удаляет запись со старым ключом oldUsername.
	RenameUser(ctx context.Context, oldUsername string, user models.User) error

	// DeleteUser удаляет документ по ключу. Отсутствие записи — не ошибка.
	DeleteUser(ctx context.Context, username string) error
}

// ArticleStorage описывает операции над документами статей.
type ArticleStorage interface {
	// ArticleByID возвращает документ по ключу (hex UUID) и его Presence.
	// Отсутствие записи — (nil, Absent, nil).
	ArticleByID(ctx context.Context, id string) (*models.Article, Presence, error)

	// EnsureArticle вставляет заглушку {_id, url, created_at}, если её
	// ещё нет. Повторная доставка той же команды не создаёт дубликата и
	// не затирает поля, дописанные стадиями обогащения.
	EnsureArticle(ctx context.Context, id, url string, createdAt time.Time) error
}

// Storage — агрегированный контракт документного хранилища.
type Storage interface {
	UserStorage
	ArticleStorage

	// Close закрывает соединения хранилища.
	Close(ctx context.Context) error
}

// TextStorage — контракт объектного хранилища с санированным текстом
// статей. Документ статьи несёт пару (container, object); текст
// забирается отдельным обращением.
type TextStorage interface {
	// Text возвращает содержимое объекта. Отсутствие объекта — ErrNotFound.
	Text(ctx context.Context, container, object string) (string, error)
}
