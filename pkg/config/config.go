package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Она зеркалит структуру config.yaml и после Load() не мутируется:
// все компоненты получают готовый снапшот, никто не читает ENV напрямую.
type AppConfig struct {
	Analyzer        AnalyzerConfig  `yaml:"analyzer"`
	Persist         PersistConfig   `yaml:"persist"`
	S3              S3Config        `yaml:"s3"`
	ImageProcessing ImageProcConfig `yaml:"image_processing"`
	App             AppSpecific     `yaml:"app"`
}

// AnalyzerConfig — настройки клиента анализа документов.
type AnalyzerConfig struct {
	Provider    string        `yaml:"provider"`    // "openai", "openrouter", "zai"
	APIKey      string        `yaml:"api_key"`     // Поддерживает ${VAR}
	BaseURL     string        `yaml:"base_url"`    // Базовый URL chat-completions API
	Model       string        `yaml:"model"`       // Реальное имя модели в API
	Timeout     time.Duration `yaml:"timeout"`     // Go умеет парсить строки вида "30s", "1m"
	MaxRetries  int           `yaml:"max_retries"` // Количество попыток вызова модели
	RetryDelay  time.Duration `yaml:"retry_delay"` // Базовая задержка между попытками
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	RateLimit   int           `yaml:"rate_limit"`  // Запросов в минуту, 0 = без лимита
	BurstLimit  int           `yaml:"burst_limit"` // Burst для rate limiter
}

// GetDefaults возвращает копию с дефолтными значениями для незаполненных полей.
//
// Temperature 0 трактуется как "не задана" и заменяется дефолтом 0.1 —
// детерминированный ноль при желании задается явно как 0.000001.
func (c AnalyzerConfig) GetDefaults() AnalyzerConfig {
	result := c

	if result.Provider == "" {
		result.Provider = "openai"
	}
	if result.Timeout == 0 {
		result.Timeout = 30 * time.Second
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = 3
	}
	if result.RetryDelay == 0 {
		result.RetryDelay = 1 * time.Second
	}
	if result.MaxTokens == 0 {
		result.MaxTokens = 4000
	}
	if result.Temperature == 0 {
		result.Temperature = 0.1
	}
	if result.RateLimit > 0 && result.BurstLimit == 0 {
		result.BurstLimit = 1
	}

	return result
}

// PersistConfig — настройки сохранения результатов анализа.
type PersistConfig struct {
	Enabled   bool   `yaml:"enabled"`    // По умолчанию false
	Dir       string `yaml:"dir"`        // Директория для response_*.json
	IndexPath string `yaml:"index_path"` // Путь к SQLite индексу, пусто = без индекса
}

// GetDefaults возвращает копию с дефолтными значениями.
func (c PersistConfig) GetDefaults() PersistConfig {
	result := c
	if result.Dir == "" {
		result.Dir = "./responses"
	}
	return result
}

// S3Config — настройки объектного хранилища (опционально, для batch режима).
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"` // Поддерживает ${VAR}
	SecretKey string `yaml:"secret_key"` // Поддерживает ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
}

// ImageProcConfig — настройки подготовки изображений перед отправкой.
type ImageProcConfig struct {
	MaxWidth int `yaml:"max_width"` // 0 = без ресайза
	Quality  int `yaml:"quality"`   // Качество JPEG при перекодировании
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Environment string `yaml:"environment"` // "development", "production" и т.д.
	LogLevel    string `yaml:"log_level"`   // error/warn/info/debug, дефолт info
	Debug       bool   `yaml:"debug"`
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
//
// Обязательность api_key/base_url/model здесь не проверяется — это зона
// ответственности конструктора анализатора, который собирает все
// отсутствующие поля в одну ошибку.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Применяем дефолты
	cfg.Analyzer = cfg.Analyzer.GetDefaults()
	cfg.Persist = cfg.Persist.GetDefaults()
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	return &cfg, nil
}
