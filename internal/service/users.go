package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-readlater/internal/commands"
	"github.com/pribylovaa/go-readlater/internal/models"
	logctx "github.com/pribylovaa/go-readlater/internal/pkg/log"
	"github.com/pribylovaa/go-readlater/internal/storage"
)

// maxPasswordBytes — предел входа bcrypt: более длинный пароль
// консьюмер захэшировать не сможет никогда.
const maxPasswordBytes = 72

// UpsertUserInput — входные данные PUT /users/{username}.
// Username всегда берётся из пути; RequestedUsername — поле username из
// тела, им клиент просит переименование. Token — X-Auth-Token (может
// быть пуст: для создания он не требуется).
type UpsertUserInput struct {
	Username          string
	RequestedUsername *string
	Email             *string
	Name              *string
	Password          *string
	Token             string
}

// UpsertUser реализует семантику PUT /users/{username}.
//
// Отсутствующий или не полностью материализованный документ — намерение
// создать: публикуется users.create без какой-либо авторизации (гонка
// двух одновременных создании одного имени разрешается идемпотентностью
// консьюмера). Полный документ — намерение обновить: требуется токен,
// отображающийся ровно в этого пользователя; команда несёт слитые
// публичные поля, original_username и (возможно новый) username.
//
// Возврат nil означает «принято, ещё не применено» (202).
func (s *Service) UpsertUser(ctx context.Context, in UpsertUserInput) error {
	const op = "service/users/UpsertUser"

	lg := logctx.From(ctx).With("op", op, "username", in.Username)

	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	// Нехэшируемый пароль отвергаем ещё до публикации: команду с ним
	// не смог бы применить ни один консьюмер.
	if in.Password != nil && len(*in.Password) > maxPasswordBytes {
		return fmt.Errorf("%s: password too long: %w", op, ErrInvalidArgument)
	}

	existing, presence, err := s.storage.UserByUsername(ctx, in.Username, false)
	if err != nil {
		lg.Error("storage error on UserByUsername", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if presence != storage.Complete {
		// Unsubmitted и Submitted/Incomplete эквивалентны: создание.
		return s.publishUserCreate(ctx, in)
	}

	return s.publishUserUpdate(ctx, in, existing)
}

// publishUserCreate публикует users.create с присланными полями,
// username — из пути.
func (s *Service) publishUserCreate(ctx context.Context, in UpsertUserInput) error {
	const op = "service/users/publishUserCreate"

	cmd := commands.UserCreate{
		Username:      in.Username,
		Email:         in.Email,
		Name:          in.Name,
		Password:      in.Password,
		SchemaVersion: models.UserSchemaVersion,
	}

	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, ErrInternal)
	}

	if err := s.bus.Publish(ctx, s.opts.UsersExchange, commands.UsersCreate, body); err != nil {
		logctx.From(ctx).Error("publish users.create failed", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

// publishUserUpdate авторизует намерение и публикует users.update.
// Любой сбой проверки токена (отсутствие, просрочка, таймаут стораджа)
// трактуется как неавторизованность — никогда как допуск по умолчанию.
func (s *Service) publishUserUpdate(ctx context.Context, in UpsertUserInput, existing *models.User) error {
	const op = "service/users/publishUserUpdate"

	lg := logctx.From(ctx).With("op", op, "username", in.Username)

	if err := s.authorize(ctx, in.Token, in.Username); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Слияние: существующие публичные поля + присланные изменения.
	email := existing.Email
	if in.Email != nil {
		email = *in.Email
	}

	name := existing.Name
	if in.Name != nil {
		name = in.Name
	}

	username := in.Username
	if in.RequestedUsername != nil && strings.TrimSpace(*in.RequestedUsername) != "" {
		username = strings.TrimSpace(*in.RequestedUsername)
	}

	cmd := commands.UserUpdate{
		OriginalUsername: in.Username,
		Username:         username,
		Email:            email,
		Name:             name,
		Password:         in.Password,
		SchemaVersion:    models.UserSchemaVersion,
	}

	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, ErrInternal)
	}

	if err := s.bus.Publish(ctx, s.opts.UsersExchange, commands.UsersUpdate, body); err != nil {
		lg.Error("publish users.update failed", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

// ReadUser реализует GET /users/{username}: отдаёт проекцию без поля
// hash. Отсутствие документа — ErrNotFound; частично материализованный
// документ читаем (в отличие от статей он уже несёт публичные поля).
func (s *Service) ReadUser(ctx context.Context, username string) (*models.User, error) {
	const op = "service/users/ReadUser"

	user, presence, err := s.storage.UserByUsername(ctx, strings.TrimSpace(username), false)
	if err != nil {
		logctx.From(ctx).Error("storage error on UserByUsername", "op", op, "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if presence == storage.Absent {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return user, nil
}

// DeleteUser реализует DELETE /users/{username}.
//
// Удаление — единственная операция записи, идущая в хранилище синхронно,
// мимо шины. Асимметрия сохранена сознательно: удаления редки, слияния
// с летящими по шине командами не требуют, а немедленный 200 — часть
// наблюдаемого контракта; прогон через шину изменил бы видимую
// латентность и консистентность.
func (s *Service) DeleteUser(ctx context.Context, username, token string) error {
	const op = "service/users/DeleteUser"

	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.authorize(ctx, token, username); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteUser(ctx, username); err != nil {
		logctx.From(ctx).Error("storage error on DeleteUser", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	// Предъявленный токен отзываем сразу, не дожидаясь истечения TTL:
	// владельца больше нет. Сбой отзыва не отменяет уже выполненное
	// удаление — токен всё равно умрёт по TTL.
	if err := s.tokens.Revoke(ctx, token); err != nil {
		logctx.From(ctx).Warn("token revoke failed", "op", op, "err", err)
	}

	return nil
}

// authorize проверяет, что токен отображается ровно в username.
// Пустой токен, неизвестный токен, чужой принципал и любая ошибка
// хранилища токенов (включая таймаут) дают ErrUnauthorized.
func (s *Service) authorize(ctx context.Context, token, username string) error {
	if token == "" {
		return ErrUnauthorized
	}

	principal, err := s.tokens.Lookup(ctx, token)
	if err != nil {
		logctx.From(ctx).Warn("token lookup failed", "err", err)
		return ErrUnauthorized
	}

	if principal != username {
		return ErrUnauthorized
	}

	return nil
}
