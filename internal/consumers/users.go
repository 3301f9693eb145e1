// consumers — асинхронные обработчики команд шины. Каждый обработчик —
// чистая функция (текущее хранилище, тело команды) -> мутация хранилища,
// рассчитанная на доставку at-least-once: повторное применение одной
// команды даёт то же конечное состояние.
package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-readlater/internal/bus"
	"github.com/pribylovaa/go-readlater/internal/commands"
	"github.com/pribylovaa/go-readlater/internal/models"
	logctx "github.com/pribylovaa/go-readlater/internal/pkg/log"
	"github.com/pribylovaa/go-readlater/internal/storage"
	"github.com/pribylovaa/go-readlater/internal/tokens"
)

// Users применяет команды users.create / users.update.
type Users struct {
	storage  storage.UserStorage
	tokens   tokens.Store
	tokenTTL time.Duration
}

// NewUsers собирает консьюмер пользователей.
func NewUsers(st storage.UserStorage, tok tokens.Store, tokenTTL time.Duration) *Users {
	return &Users{storage: st, tokens: tok, tokenTTL: tokenTTL}
}

// Handle — bus.Handler: диспетчеризация по маршрутному ключу.
func (c *Users) Handle(ctx context.Context, routingKey string, body []byte) error {
	const op = "consumers/users/Handle"

	switch routingKey {
	case commands.UsersCreate:
		return c.create(ctx, body)
	case commands.UsersUpdate:
		return c.update(ctx, body)
	default:
		return fmt.Errorf("%s: %w: unknown routing key %q", op, bus.ErrUnprocessable, routingKey)
	}
}

// create применяет users.create: перезаписывающая вставка по ключу
// username (повтор команды — не ошибка дублирования), производный хэш
// секрета при наличии пароля, свежий токен в хранилище токенов.
func (c *Users) create(ctx context.Context, body []byte) error {
	const op = "consumers/users/create"

	var cmd commands.UserCreate
	if err := json.Unmarshal(body, &cmd); err != nil {
		return fmt.Errorf("%s: %w: %v", op, bus.ErrUnprocessable, err)
	}

	if cmd.Username == "" {
		return fmt.Errorf("%s: %w: empty username", op, bus.ErrUnprocessable)
	}

	lg := logctx.From(ctx).With("op", op, "username", cmd.Username)

	user := models.User{
		Username:      cmd.Username,
		Name:          cmd.Name,
		SchemaVersion: models.UserSchemaVersion,
	}
	if cmd.Email != nil {
		user.Email = *cmd.Email
	}

	if cmd.Password != nil && *cmd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*cmd.Password), bcrypt.DefaultCost)
		if err != nil {
			// bcrypt отказывает навсегда (пароль длиннее 72 байт или
			// некорректная стоимость) — requeue зациклил бы очередь.
			return fmt.Errorf("%s: %w: hash password: %v", op, bus.ErrUnprocessable, err)
		}
		user.Hash = string(hash)
	}

	if err := c.storage.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.mintToken(ctx, cmd.Username); err != nil {
		// Токен не выпущен — сообщение не подтверждаем, шина доставит повторно.
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("user created")
	return nil
}

// update применяет users.update: находит запись по original_username
// (или username, если переименования не было), сливает изменённые поля,
// при переименовании переносит документ под новый ключ и выпускает
// свежий токен для нового имени. Хэш не трогается, пока пароль не
// переустановлен явно.
func (c *Users) update(ctx context.Context, body []byte) error {
	const op = "consumers/users/update"

	var cmd commands.UserUpdate
	if err := json.Unmarshal(body, &cmd); err != nil {
		return fmt.Errorf("%s: %w: %v", op, bus.ErrUnprocessable, err)
	}

	if cmd.Username == "" {
		return fmt.Errorf("%s: %w: empty username", op, bus.ErrUnprocessable)
	}

	original := cmd.OriginalUsername
	if original == "" {
		original = cmd.Username
	}

	lg := logctx.From(ctx).With("op", op, "username", cmd.Username, "original_username", original)

	existing, presence, err := c.storage.UserByUsername(ctx, original, true)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if presence == storage.Absent {
		// FIFO в пределах очереди гарантирует, что create уже применён;
		// отсутствие записи означает удалённого пользователя — команда
		// устарела, повторная доставка ничего не изменит.
		lg.Warn("update for missing user, dropping")
		return fmt.Errorf("%s: %w: user %q is gone", op, bus.ErrUnprocessable, original)
	}

	user := *existing
	user.Username = cmd.Username
	user.Email = cmd.Email
	user.Name = cmd.Name
	user.SchemaVersion = models.UserSchemaVersion

	if cmd.Password != nil && *cmd.Password != "" {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(*cmd.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			// Отказ bcrypt постоянен для данного тела — дропаем без requeue.
			return fmt.Errorf("%s: %w: hash password: %v", op, bus.ErrUnprocessable, hashErr)
		}
		user.Hash = string(hash)
	}

	renamed := cmd.Username != original
	if renamed {
		if err := c.storage.RenameUser(ctx, original, user); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		// Старые токены продолжают отображаться в прежнее имя и потому
		// перестают проходить проверку владения — выпускаем свежий.
		if err := c.mintToken(ctx, cmd.Username); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		lg.Info("user renamed")
		return nil
	}

	if err := c.storage.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("user updated")
	return nil
}

// mintToken выпускает свежий токен с ограниченным TTL.
func (c *Users) mintToken(ctx context.Context, username string) error {
	token := uuid.NewString()
	if err := c.tokens.Issue(ctx, token, username, c.tokenTTL); err != nil {
		return fmt.Errorf("mint token: %w", err)
	}

	return nil
}
