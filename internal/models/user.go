package models

// UserSchemaVersion — текущая версия схемы документа пользователя.
// Хранится вместе с документом, чтобы будущие консьюмеры могли
// распознать и мигрировать старые формы.
const UserSchemaVersion = 1

// User — проекция пользователя в документном хранилище.
//
// Идентичность — username (стабильный, выбранный человеком первичный
// ключ; суррогатный id сознательно не используется). Инвариант
// полностью материализованного документа: username и email непустые.
//
// Hash — производный секрет аутентификации; наружу не сериализуется
// никогда (json:"-"), а путь чтения дополнительно исключает его на
// уровне проекции запроса.
type User struct {
	Username      string  `bson:"username" json:"username"`
	Email         string  `bson:"email,omitempty" json:"email,omitempty"`
	Name          *string `bson:"name,omitempty" json:"name,omitempty"`
	Hash          string  `bson:"hash,omitempty" json:"-"`
	SchemaVersion int     `bson:"schema_version" json:"-"`
}

// Complete сообщает, достиг ли документ состояния Submitted/Complete.
func (u User) Complete() bool {
	return u.Username != "" && u.Email != ""
}
