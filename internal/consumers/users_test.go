package consumers

// Тесты применения команд users.*: идемпотентность при повторной
// доставке, выпуск токенов, перенос документа при переименовании и
// классификация непригодных сообщений.

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-readlater/internal/bus"
	"github.com/pribylovaa/go-readlater/internal/commands"
	"github.com/pribylovaa/go-readlater/internal/models"
	"github.com/pribylovaa/go-readlater/internal/storage"
	"github.com/pribylovaa/go-readlater/mocks"
)

func newUsersConsumer(t *testing.T) (*Users, *mocks.MockUserStorage, *mocks.MockStore, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockUserStorage(ctrl)
	mt := mocks.NewMockStore(ctrl)
	return NewUsers(ms, mt, 12*time.Hour), ms, mt, ctrl
}

// users.create: перезаписывающая вставка, производный хэш, свежий токен.
// Повторная доставка того же тела приводит к тому же конечному документу.
func TestUsers_Create_IdempotentUpsert(t *testing.T) {
	c, ms, mt, ctrl := newUsersConsumer(t)
	defer ctrl.Finish()

	body := []byte(`{"username":"alunduil","email":"alunduil@alunduil.com","name":null,"password":"s3cret","schema_version":1}`)

	var saved []models.User
	ms.EXPECT().
		SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			saved = append(saved, u)
			return nil
		}).
		Times(2)

	mt.EXPECT().
		Issue(gomock.Any(), gomock.Any(), "alunduil", 12*time.Hour).
		Return(nil).
		Times(2)

	require.NoError(t, c.Handle(context.Background(), commands.UsersCreate, body))
	require.NoError(t, c.Handle(context.Background(), commands.UsersCreate, body))

	require.Len(t, saved, 2)
	for _, u := range saved {
		require.Equal(t, "alunduil", u.Username)
		require.Equal(t, "alunduil@alunduil.com", u.Email)
		require.Nil(t, u.Name)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte("s3cret")))
	}
}

// users.create без пароля: документ без хэша, токен всё равно выпускается.
func TestUsers_Create_NoPassword(t *testing.T) {
	c, ms, mt, ctrl := newUsersConsumer(t)
	defer ctrl.Finish()

	body := []byte(`{"username":"alunduil","email":null,"name":null,"password":null,"schema_version":1}`)

	ms.EXPECT().
		SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			require.Empty(t, u.Hash)
			require.Empty(t, u.Email)
			return nil
		})

	mt.EXPECT().
		Issue(gomock.Any(), gomock.Any(), "alunduil", 12*time.Hour).
		Return(nil)

	require.NoError(t, c.Handle(context.Background(), commands.UsersCreate, body))
}

// Битое тело и пустой username — ErrUnprocessable: повторная доставка
// не поможет, сообщение уходит из очереди без requeue.
func TestUsers_Create_Unprocessable(t *testing.T) {
	c, _, _, ctrl := newUsersConsumer(t)
	defer ctrl.Finish()

	err := c.Handle(context.Background(), commands.UsersCreate, []byte(`{not json`))
	require.ErrorIs(t, err, bus.ErrUnprocessable)

	err = c.Handle(context.Background(), commands.UsersCreate, []byte(`{"username":""}`))
	require.ErrorIs(t, err, bus.ErrUnprocessable)
}

// Пароль длиннее 72 байт bcrypt не захэширует никогда: команда
// дропается без requeue и без мутаций стораджа, очередь живёт дальше.
func TestUsers_Create_OverlongPassword_Dropped(t *testing.T) {
	c, _, _, ctrl := newUsersConsumer(t)
	defer ctrl.Finish()

	long := strings.Repeat("a", 100)
	body := []byte(`{"username":"alunduil","email":null,"name":null,"password":"` + long + `","schema_version":1}`)

	err := c.Handle(context.Background(), commands.UsersCreate, body)
	require.ErrorIs(t, err, bus.ErrUnprocessable)
}

// Та же классификация на пути обновления.
func TestUsers_Update_OverlongPassword_Dropped(t *testing.T) {
	c, ms, _, ctrl := newUsersConsumer(t)
	defer ctrl.Finish()

	ms.EXPECT().
		UserByUsername(gomock.Any(), "alunduil", true).
		Return(&models.User{
			Username: "alunduil",
			Email:    "alunduil@alunduil.com",
			Hash:     "old-hash",
		}, storage.Complete, nil)

	long := strings.Repeat("a", 100)
	body := []byte(`{"original_username":"alunduil","username":"alunduil","email":"alunduil@alunduil.com","name":null,"password":"` + long + `","schema_version":1}`)

	err := c.Handle(context.Background(), commands.UsersUpdate, body)
	require.ErrorIs(t, err, bus.ErrUnprocessable)
}

// Неизвестный маршрутный ключ — ErrUnprocessable.
func TestUsers_UnknownRoutingKey(t *testing.T) {
	c, _, _, ctrl := newUsersConsumer(t)
	defer ctrl.Finish()

	err := c.Handle(context.Background(), "users.destroy", []byte(`{}`))
	require.ErrorIs(t, err, bus.ErrUnprocessable)
}

// users.update без переименования: документ находится по username,
// поля заменяются, существующий хэш сохраняется, токен не выпускается
// (мок без EXPECT на Issue).
func TestUsers_Update_KeepsHashWithoutPassword(t *testing.T) {
	c, ms, _, ctrl := newUsersConsumer(t)
	defer ctrl.Finish()

	existingHash, err := bcrypt.GenerateFromPassword([]byte("old"), bcrypt.DefaultCost)
	require.NoError(t, err)

	ms.EXPECT().
		UserByUsername(gomock.Any(), "alunduil", true).
		Return(&models.User{
			Username: "alunduil",
			Email:    "alunduil@alunduil.com",
			Hash:     string(existingHash),
		}, storage.Complete, nil)

	ms.EXPECT().
		SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			require.Equal(t, "alunduil", u.Username)
			require.Equal(t, "new@alunduil.com", u.Email)
			require.Equal(t, string(existingHash), u.Hash)
			return nil
		})

	body := []byte(`{"original_username":"alunduil","username":"alunduil","email":"new@alunduil.com","name":null,"schema_version":1}`)
	require.NoError(t, c.Handle(context.Background(), commands.UsersUpdate, body))
}

// users.update с переименованием: поиск по original_username, перенос
// документа под новый ключ и свежий токен для нового имени.
func TestUsers_Update_Rename(t *testing.T) {
	c, ms, mt, ctrl := newUsersConsumer(t)
	defer ctrl.Finish()

	ms.EXPECT().
		UserByUsername(gomock.Any(), "alunduil", true).
		Return(&models.User{
			Username: "alunduil",
			Email:    "alunduil@alunduil.com",
			Hash:     "existing-hash",
		}, storage.Complete, nil)

	ms.EXPECT().
		RenameUser(gomock.Any(), "alunduil", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, u models.User) error {
			require.Equal(t, "abrandt", u.Username)
			require.Equal(t, "existing-hash", u.Hash)
			return nil
		})

	mt.EXPECT().
		Issue(gomock.Any(), gomock.Any(), "abrandt", 12*time.Hour).
		Return(nil)

	body := []byte(`{"original_username":"alunduil","username":"abrandt","email":"alunduil@alunduil.com","name":null,"schema_version":1}`)
	require.NoError(t, c.Handle(context.Background(), commands.UsersUpdate, body))
}

// users.update с переустановкой пароля: хэш пересчитывается.
func TestUsers_Update_RehashOnNewPassword(t *testing.T) {
	c, ms, _, ctrl := newUsersConsumer(t)
	defer ctrl.Finish()

	ms.EXPECT().
		UserByUsername(gomock.Any(), "alunduil", true).
		Return(&models.User{
			Username: "alunduil",
			Email:    "alunduil@alunduil.com",
			Hash:     "old-hash",
		}, storage.Complete, nil)

	ms.EXPECT().
		SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			require.NotEqual(t, "old-hash", u.Hash)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte("fresh")))
			return nil
		})

	body := []byte(`{"original_username":"alunduil","username":"alunduil","email":"alunduil@alunduil.com","name":null,"password":"fresh","schema_version":1}`)
	require.NoError(t, c.Handle(context.Background(), commands.UsersUpdate, body))
}

// users.update для исчезнувшего пользователя: команда устарела
// (пользователь удалён после её публикации) — дропаем без requeue.
func TestUsers_Update_MissingUser_Dropped(t *testing.T) {
	c, ms, _, ctrl := newUsersConsumer(t)
	defer ctrl.Finish()

	ms.EXPECT().
		UserByUsername(gomock.Any(), "ghost", true).
		Return(nil, storage.Absent, nil)

	body := []byte(`{"original_username":"ghost","username":"ghost","email":"ghost@example.com","name":null,"schema_version":1}`)
	err := c.Handle(context.Background(), commands.UsersUpdate, body)
	require.ErrorIs(t, err, bus.ErrUnprocessable)
}
