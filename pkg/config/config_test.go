package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoad_Full проверяет загрузку полного конфига без дефолтов.
func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
analyzer:
  provider: openrouter
  api_key: sk-test
  base_url: https://openrouter.ai/api/v1
  model: qwen/qwen2.5-vl-72b-instruct
  timeout: 90s
  max_retries: 5
  retry_delay: 2s
  max_tokens: 8000
  temperature: 0.3
  rate_limit: 30
  burst_limit: 3

persist:
  enabled: true
  dir: /tmp/landdoc-responses
  index_path: /tmp/landdoc.db

image_processing:
  max_width: 1600
  quality: 80

app:
  environment: production
  log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := cfg.Analyzer
	if a.Provider != "openrouter" || a.APIKey != "sk-test" || a.Model != "qwen/qwen2.5-vl-72b-instruct" {
		t.Errorf("unexpected analyzer config: %+v", a)
	}
	if a.Timeout != 90*time.Second || a.MaxRetries != 5 || a.RetryDelay != 2*time.Second {
		t.Errorf("unexpected retry settings: %+v", a)
	}
	if a.MaxTokens != 8000 || a.Temperature != 0.3 {
		t.Errorf("unexpected generation settings: %+v", a)
	}
	if a.RateLimit != 30 || a.BurstLimit != 3 {
		t.Errorf("unexpected rate settings: %+v", a)
	}

	if !cfg.Persist.Enabled || cfg.Persist.Dir != "/tmp/landdoc-responses" || cfg.Persist.IndexPath != "/tmp/landdoc.db" {
		t.Errorf("unexpected persist config: %+v", cfg.Persist)
	}
	if cfg.ImageProcessing.MaxWidth != 1600 || cfg.ImageProcessing.Quality != 80 {
		t.Errorf("unexpected image processing config: %+v", cfg.ImageProcessing)
	}
	if cfg.App.Environment != "production" || cfg.App.LogLevel != "debug" {
		t.Errorf("unexpected app config: %+v", cfg.App)
	}
}

// TestLoad_Defaults: незаполненные поля получают дефолты.
func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
analyzer:
  api_key: sk-test
  base_url: https://api.example.com/v1
  model: test-vision
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := cfg.Analyzer
	if a.Provider != "openai" {
		t.Errorf("expected default provider openai, got %s", a.Provider)
	}
	if a.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", a.Timeout)
	}
	if a.MaxRetries != 3 {
		t.Errorf("expected default max_retries 3, got %d", a.MaxRetries)
	}
	if a.RetryDelay != time.Second {
		t.Errorf("expected default retry_delay 1s, got %v", a.RetryDelay)
	}
	if a.MaxTokens != 4000 {
		t.Errorf("expected default max_tokens 4000, got %d", a.MaxTokens)
	}
	if a.Temperature != 0.1 {
		t.Errorf("expected default temperature 0.1, got %f", a.Temperature)
	}

	if cfg.Persist.Enabled {
		t.Error("persist should be disabled by default")
	}
	if cfg.Persist.Dir != "./responses" {
		t.Errorf("expected default persist dir ./responses, got %s", cfg.Persist.Dir)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.App.LogLevel)
	}
	if cfg.App.Environment != "development" {
		t.Errorf("expected default environment development, got %s", cfg.App.Environment)
	}
}

// TestLoad_EnvExpansion: ${VAR} подставляется из окружения.
func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("LANDDOC_TEST_KEY", "sk-from-env")

	path := writeConfig(t, `
analyzer:
  api_key: ${LANDDOC_TEST_KEY}
  base_url: https://api.example.com/v1
  model: test-vision
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analyzer.APIKey != "sk-from-env" {
		t.Errorf("expected api key from env, got %q", cfg.Analyzer.APIKey)
	}
}

// TestLoad_MissingEnvVar: незаданная переменная становится пустой строкой.
func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
analyzer:
  api_key: ${LANDDOC_DEFINITELY_UNSET_VAR}
  base_url: https://api.example.com/v1
  model: test-vision
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analyzer.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.Analyzer.APIKey)
	}
}

// TestLoad_FileNotFound: отсутствие файла — явная ошибка с путем.
func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoad_InvalidYAML: битый YAML — ошибка парсинга.
func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "analyzer: [not: valid")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

// TestGetDefaults_BurstOnlyWithRateLimit: burst дефолтится только при лимите.
func TestGetDefaults_BurstOnlyWithRateLimit(t *testing.T) {
	withLimit := AnalyzerConfig{RateLimit: 10}.GetDefaults()
	if withLimit.BurstLimit != 1 {
		t.Errorf("expected default burst 1 with rate limit, got %d", withLimit.BurstLimit)
	}

	noLimit := AnalyzerConfig{}.GetDefaults()
	if noLimit.BurstLimit != 0 {
		t.Errorf("expected no burst without rate limit, got %d", noLimit.BurstLimit)
	}
}
