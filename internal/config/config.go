package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Провайдеры модели
const (
	ProviderGemini     = "gemini"
	ProviderGeminiREST = "gemini-rest"
	ProviderOpenAI     = "openai"
	ProviderStub       = "stub"
)

type Config struct {
	DebugMode             bool   `env:"DEBUG_MODE"`              //Режим дебага
	ModelProvider         string `env:"MODEL_PROVIDER"`          // gemini|gemini-rest|openai|stub
	RequestTimeoutSeconds int    `env:"REQUEST_TIMEOUT_SECONDS"` // Таймаут одного запроса к модели, в секундах
	OutputDir             string `env:"OUTPUT_DIR"`              // Куда сохранять картинки без фона

	Gemini GeminiConfig
	OpenAI OpenAIConfig

	// Локальный UI
	Server ServerConfig

	rest []string
}

// GeminiConfig настройки Gemini (SDK и REST используют одни и те же).
type GeminiConfig struct {
	APIKey   string `env:"GEMINI_API_KEY"`  // Ключ берём из .env/ENV
	Model    string `env:"GEMINI_MODEL"`    // Модель, умеющая отдавать картинки
	Endpoint string `env:"GEMINI_ENDPOINT"` // Базовый URL REST API, пусто: публичный v1beta
}

// OpenAIConfig настройки OpenAI Images.
type OpenAIConfig struct {
	APIKey string `env:"OPENAI_API_KEY"`
	Model  string `env:"OPENAI_IMAGE_MODEL"`
}

// ServerConfig настройки локального HTTP/WebSocket UI.
type ServerConfig struct {
	BindAddr       string `env:"SERVER_BIND_ADDR"`        // Адрес слушателя, напр. 127.0.0.1:8080
	MaxUploadBytes int64  `env:"SERVER_MAX_UPLOAD_BYTES"` // Максимальный размер загружаемого файла
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:             false,
		ModelProvider:         ProviderGemini,
		RequestTimeoutSeconds: 120,
		OutputDir:             "output",
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash-image-preview",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-image-1",
		},
		Server: ServerConfig{
			BindAddr:       "127.0.0.1:8080",
			MaxUploadBytes: 20 << 20,
		},
	}
}

// RequestTimeout таймаут запроса к модели.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(max(1, c.RequestTimeoutSeconds)) * time.Second
}

// NewConfig загружает конфигурацию приложения из аргументов командной строки процесса.
func NewConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load собирает конфиг: дефолты → .env → окружение → флаги, затем проверяет его.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	// Стартуем с дефолтов, затем перекрываем .env/окружением и флагами
	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	fs := flag.NewFlagSet("bgremove", flag.ContinueOnError)
	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага")
	fs.StringVar(&cfg.ModelProvider, "model-provider", cfg.ModelProvider, "провайдер модели: gemini|gemini-rest|openai|stub")
	fs.IntVar(&cfg.RequestTimeoutSeconds, "request-timeout-seconds", cfg.RequestTimeoutSeconds, "таймаут одного запроса к модели в секундах")
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "папка для сохранения результата")
	// Gemini
	fs.StringVar(&cfg.Gemini.APIKey, "gemini-api-key", cfg.Gemini.APIKey, "API ключ Gemini (перекрывает ENV)")
	fs.StringVar(&cfg.Gemini.Model, "gemini-model", cfg.Gemini.Model, "модель Gemini для редактирования изображений")
	fs.StringVar(&cfg.Gemini.Endpoint, "gemini-endpoint", cfg.Gemini.Endpoint, "базовый URL Gemini REST API")
	// OpenAI
	fs.StringVar(&cfg.OpenAI.APIKey, "openai-api-key", cfg.OpenAI.APIKey, "API ключ OpenAI (перекрывает ENV)")
	fs.StringVar(&cfg.OpenAI.Model, "openai-image-model", cfg.OpenAI.Model, "модель OpenAI Images, напр. gpt-image-1")
	// Server
	fs.StringVar(&cfg.Server.BindAddr, "server-bind-addr", cfg.Server.BindAddr, "адрес локального UI (напр. 127.0.0.1:8080)")
	fs.Int64Var(&cfg.Server.MaxUploadBytes, "server-max-upload-bytes", cfg.Server.MaxUploadBytes, "максимальный размер загружаемого файла в байтах")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: parse flags: %w", err)
	}
	cfg.rest = fs.Args()

	cfg.ModelProvider = strings.ToLower(strings.TrimSpace(cfg.ModelProvider))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Args позиционные аргументы, оставшиеся после флагов.
func (c *Config) Args() []string { return c.rest }

// Validate проверяет, что для выбранного провайдера заданы ключи.
func (c *Config) Validate() error {
	switch c.ModelProvider {
	case ProviderGemini, ProviderGeminiREST:
		if strings.TrimSpace(c.Gemini.APIKey) == "" {
			return errors.New("config: GEMINI_API_KEY is not set; укажите ENV или флаг -gemini-api-key")
		}
		if strings.TrimSpace(c.Gemini.Model) == "" {
			return errors.New("config: gemini model is empty")
		}
	case ProviderOpenAI:
		if strings.TrimSpace(c.OpenAI.APIKey) == "" {
			return errors.New("config: OPENAI_API_KEY is not set; укажите ENV или флаг -openai-api-key")
		}
	case ProviderStub:
	default:
		return fmt.Errorf("config: unknown model provider %q", c.ModelProvider)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: server max upload bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	return nil
}
