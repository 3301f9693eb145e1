// config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
//
// Все параметры внешних систем (Mongo, Redis, RabbitMQ, S3, CORS)
// задаются здесь явно и передаются компонентам при сборке — никакого
// чтения глобального состояния процесса из глубины кода.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Ops      OpsConfig     `yaml:"ops"`
	API      APIConfig     `yaml:"api"`
	Mongo    MongoConfig   `yaml:"mongo"`
	Redis    RedisConfig   `yaml:"redis"`
	AMQP     AMQPConfig    `yaml:"amqp"`
	S3       S3Config      `yaml:"s3"`
	Auth     AuthConfig    `yaml:"auth"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки публичного HTTP-сервера (front door).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// OpsConfig — сетевые настройки служебного сервера (/livez, /healthz, /metrics).
type OpsConfig struct {
	Host string `yaml:"host" env:"OPS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"OPS_PORT" env-default:"9090"`
}

// APIConfig — параметры публичного контракта.
type APIConfig struct {
	// Version — префикс версии в путях, например "v1" -> /v1/users/{username}.
	Version string `yaml:"version" env:"API_VERSION" env-default:"v1"`
	// CORSOrigin — фиксированное значение Access-Control-Allow-Origin
	// для успешных чтений (публичный сайт деплоймента).
	CORSOrigin string `yaml:"cors_origin" env:"CORS_ORIGIN" env-default:"http://localhost:3000"`
}

// MongoConfig — настройки подключения к документному хранилищу.
type MongoConfig struct {
	URL string `yaml:"url" env:"MONGO_URL" env-required:"true"`
}

// RedisConfig — настройки хранилища токенов.
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL" env-required:"true"`
	// KeyPrefix — префикс ключей token -> username.
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"blend:tok:"`
}

// AMQPConfig — настройки шины команд.
type AMQPConfig struct {
	URL string `yaml:"url" env:"AMQP_URL" env-required:"true"`
	// App — префикс имён обменников: {app}.users.topic / {app}.articles.topic.
	App string `yaml:"app" env:"AMQP_APP" env-default:"blend"`
	// UsersQueue / ArticlesQueue — имена очередей консьюмеров.
	UsersQueue    string `yaml:"users_queue" env:"AMQP_USERS_QUEUE" env-default:"blend.users"`
	ArticlesQueue string `yaml:"articles_queue" env:"AMQP_ARTICLES_QUEUE" env-default:"blend.articles"`
}

// S3Config — настройки объектного хранилища с санированным текстом статей.
type S3Config struct {
	Endpoint     string `yaml:"endpoint" env:"S3_ENDPOINT" env-required:"true"`
	RootUser     string `yaml:"root_user" env:"S3_ROOT_USER" env-required:"true"`
	RootPassword string `yaml:"root_password" env:"S3_ROOT_PASSWORD" env-required:"true"`
}

// AuthConfig — параметры выпуска токенов.
type AuthConfig struct {
	// TokenTTL — срок жизни токена, выпускаемого консьюмером пользователей.
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"12h"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// Addr возвращает адрес в формате host:port.
func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Addr возвращает адрес в формате host:port.
func (c OpsConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// UsersExchange возвращает имя обменника команд пользователей.
func (c AMQPConfig) UsersExchange() string {
	return c.App + ".users.topic"
}

// ArticlesExchange возвращает имя обменника команд статей.
func (c AMQPConfig) ArticlesExchange() string {
	return c.App + ".articles.topic"
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %q: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
