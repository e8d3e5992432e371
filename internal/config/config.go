// Package config загружает настройки task-board.
//
// Источники по возрастанию приоритета: значения по умолчанию, config.yaml,
// переменные окружения TASKBOARD_* (в том числе из необязательного .env).
// Ключ api.base_url в окружении выглядит как TASKBOARD_API_BASE_URL.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix - префикс переменных окружения.
const EnvPrefix = "TASKBOARD"

// Config - настройки приложения.
type Config struct {
	API    API    `validate:"required"`
	Server Server `validate:"required"`
	Banner Banner `validate:"required"`
	Logger Logger `validate:"required"`
}

// API - удалённый REST API.
type API struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gte=0"`
	Breaker Breaker
}

// Breaker - параметры circuit breaker транспорта.
type Breaker struct {
	MaxRequests  uint32        `validate:"gte=1"`
	Interval     time.Duration `validate:"gte=0"`
	Timeout      time.Duration `validate:"gt=0"`
	MinRequests  uint32
	FailureRatio float64 `validate:"gt=0,lte=1"`
}

// Server - веб-интерфейс.
type Server struct {
	Addr           string        `validate:"required"`
	RequestTimeout time.Duration `validate:"gte=0"`
}

// Banner - сколько живут уведомления об успехе и ошибке.
type Banner struct {
	SuccessTTL time.Duration `validate:"gt=0"`
	ErrorTTL   time.Duration `validate:"gt=0"`
}

// Logger - настройки логирования.
type Logger struct {
	Level      string `validate:"oneof=trace debug info warn warning error fatal panic"`
	Format     string `validate:"oneof=text json"`
	Output     string `validate:"oneof=stdout stderr file"`
	OutputFile string `validate:"required_if=Output file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.breaker.max_requests", 1)
	v.SetDefault("api.breaker.interval", time.Minute)
	v.SetDefault("api.breaker.timeout", 30*time.Second)
	v.SetDefault("api.breaker.min_requests", 3)
	v.SetDefault("api.breaker.failure_ratio", 0.6)

	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.request_timeout", 20*time.Second)

	v.SetDefault("banner.success_ttl", 5*time.Second)
	v.SetDefault("banner.error_ttl", 7*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.output_file", "")
}

// Loader читает конфигурацию и следит за файлом.
type Loader struct {
	v *viper.Viper

	mu      sync.Mutex
	current *Config
}

// NewLoader читает конфигурацию.
//
// path пуст - config.yaml ищется в ./, $HOME/.task-board и /etc/task-board,
// а его отсутствие не ошибка. Явно указанный файл обязан существовать.
func NewLoader(path string) (*Loader, error) {
	// .env необязателен: без него работаем на переменных окружения.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.task-board")
		v.AddConfigPath("/etc/task-board")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	return &Loader{v: v, current: cfg}, nil
}

// Config возвращает последнюю успешно загруженную конфигурацию.
func (l *Loader) Config() *Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// File - путь к прочитанному файлу или "", если файла не было.
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

// Watch перечитывает файл при его изменении и вызывает onChange с новой
// конфигурацией. Невалидная конфигурация отбрасывается и уходит в onError,
// текущая остаётся прежней. Без файла Watch ничего не делает.
func (l *Loader) Watch(onChange func(*Config), onError func(error)) {
	if l.File() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		l.reload(onChange, onError)
	})
	l.v.WatchConfig()
}

func (l *Loader) reload(onChange func(*Config), onError func(error)) {
	cfg, err := fromViper(l.v)
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return
	}

	l.mu.Lock()
	l.current = cfg
	l.mu.Unlock()

	if onChange != nil {
		onChange(cfg)
	}
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: API{
			BaseURL: v.GetString("api.base_url"),
			Timeout: v.GetDuration("api.timeout"),
			Breaker: Breaker{
				MaxRequests:  v.GetUint32("api.breaker.max_requests"),
				Interval:     v.GetDuration("api.breaker.interval"),
				Timeout:      v.GetDuration("api.breaker.timeout"),
				MinRequests:  v.GetUint32("api.breaker.min_requests"),
				FailureRatio: v.GetFloat64("api.breaker.failure_ratio"),
			},
		},
		Server: Server{
			Addr:           v.GetString("server.addr"),
			RequestTimeout: v.GetDuration("server.request_timeout"),
		},
		Banner: Banner{
			SuccessTTL: v.GetDuration("banner.success_ttl"),
			ErrorTTL:   v.GetDuration("banner.error_ttl"),
		},
		Logger: Logger{
			Level:      strings.ToLower(v.GetString("logger.level")),
			Format:     strings.ToLower(v.GetString("logger.format")),
			Output:     strings.ToLower(v.GetString("logger.output")),
			OutputFile: v.GetString("logger.output_file"),
		},
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
