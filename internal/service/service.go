// service содержит бизнес-логику front door («Blend»).
//
// Запись не применяется синхронно: фронт валидирует и авторизует
// намерение, публикует команду в шину и отвечает «принято». Чтение идёт
// напрямую в read model и отражает то состояние, которое уже успело
// материализоваться. Разрыв между ними — осознанная эвентуальная
// консистентность, выраженная машиной состояний
// Unsubmitted -> Submitted/Incomplete -> Submitted/Complete.
package service

import (
	"errors"

	"github.com/pribylovaa/go-readlater/internal/bus"
	"github.com/pribylovaa/go-readlater/internal/storage"
	"github.com/pribylovaa/go-readlater/internal/tokens"
)

var (
	// ErrNotFound — ресурс отсутствует или ещё не дорос до читаемого состояния.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized — токен отсутствует, не отображается в принципала
	// или принципал не владеет ресурсом. Запись при этом не публикуется.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMethodNotAllowed — попытка мутировать неизменяемый ресурс.
	ErrMethodNotAllowed = errors.New("method not allowed")
	// ErrInvalidArgument — неверные входные параметры запроса.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInternal — внутренняя ошибка (сторедж/шина/объектное хранилище).
	ErrInternal = errors.New("internal")
)

// Options — параметры сервиса, передаются явно при сборке.
type Options struct {
	// App — префикс имён обменников шины ({app}.users.topic).
	App string
	// UsersExchange/ArticlesExchange — готовые имена обменников.
	UsersExchange    string
	ArticlesExchange string
}

// Service — бизнес-логика front door поверх read model, хранилища
// токенов, объектного хранилища и издателя команд.
type Service struct {
	storage storage.Storage
	texts   storage.TextStorage
	tokens  tokens.Store
	bus     bus.Publisher
	opts    Options
}

// New собирает сервис из внешних коллабораторов.
func New(st storage.Storage, texts storage.TextStorage, tok tokens.Store, pub bus.Publisher, opts Options) *Service {
	if opts.App == "" {
		opts.App = "blend"
	}
	if opts.UsersExchange == "" {
		opts.UsersExchange = opts.App + ".users.topic"
	}
	if opts.ArticlesExchange == "" {
		opts.ArticlesExchange = opts.App + ".articles.topic"
	}

	return &Service{
		storage: st,
		texts:   texts,
		tokens:  tok,
		bus:     pub,
		opts:    opts,
	}
}
