// commands описывает контракт сообщений шины: маршрутные ключи и
// строгие структуры тел команд. Команды неизменяемы после публикации;
// шина гарантирует доставку at-least-once, поэтому консьюмеры обязаны
// применять их идемпотентно.
package commands

// Маршрутные ключи команд.
const (
	UsersCreate    = "users.create"
	UsersUpdate    = "users.update"
	ArticlesCreate = "articles.create"
)

// UserCreate — намерение создать пользователя.
// Опциональные поля передаются указателями: отсутствующее значение
// сериализуется как null, как того требует контракт тела.
type UserCreate struct {
	Username      string  `json:"username"`
	Email         *string `json:"email"`
	Name          *string `json:"name"`
	Password      *string `json:"password"`
	SchemaVersion int     `json:"schema_version"`
}

// UserUpdate — намерение изменить пользователя.
//
// OriginalUsername несёт прежний ключ документа, Username — новый
// (совпадает со старым, если переименования не было): консьюмер находит
// запись по старому ключу и переписывает под новым. Email и Name — уже
// слитые фронтом значения (существующие поля + присланные изменения).
// Password присутствует только если секрет явно переустанавливается.
type UserUpdate struct {
	OriginalUsername string  `json:"original_username"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	Name             *string `json:"name"`
	Password         *string `json:"password,omitempty"`
	SchemaVersion    int     `json:"schema_version"`
}

// ArticleCreate — намерение зарегистрировать статью.
// ID — детерминированный ключ документа (hex UUIDv5 от URL).
type ArticleCreate struct {
	ID            string `json:"_id"`
	URL           string `json:"url"`
	SchemaVersion int    `json:"schema_version"`
}
