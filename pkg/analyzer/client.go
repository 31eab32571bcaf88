// Клиент анализа сканов вьетнамских свидетельств о праве на землю.
//
// Поток управления: EncodeImage → BuildMessages → вызов модели с
// ретраями → Normalize → (опционально) персист. Клиент не держит
// мутабельного состояния между вызовами — один экземпляр можно
// использовать из нескольких горутин.
package analyzer

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/landdoc/landdoc-ai/pkg/config"
	"github.com/landdoc/landdoc-ai/pkg/llm"
	"github.com/landdoc/landdoc-ai/pkg/store"
	"github.com/landdoc/landdoc-ai/pkg/utils"
)

// Client — клиент анализа документов поверх llm.Provider.
//
// Владеет своим снапшотом конфигурации на всё время жизни.
// Все поля после New() только читаются.
type Client struct {
	cfg      config.AnalyzerConfig
	imgCfg   config.ImageProcConfig
	env      string
	provider llm.Provider
	limiter  *rate.Limiter // nil если rate_limit не задан

	files *store.Files // nil если персист выключен
	index *store.Index // nil если индекс не настроен

	// IsRetryable — точка расширения политики ретраев.
	// nil (дефолт) = ретраить любую ошибку одинаково.
	// Вернула false — ошибка пробрасывается немедленно, без ретраев.
	IsRetryable func(error) bool
}

// New создает клиент анализа.
//
// Валидирует обязательные настройки и возвращает ConfigurationError
// со ВСЕМИ отсутствующими полями сразу. Провайдер передается снаружи
// (см. pkg/factory) — так клиент мокается в тестах.
func New(cfg *config.AppConfig, provider llm.Provider) (*Client, error) {
	var missing []string
	if cfg.Analyzer.APIKey == "" {
		missing = append(missing, "analyzer.api_key")
	}
	if cfg.Analyzer.BaseURL == "" {
		missing = append(missing, "analyzer.base_url")
	}
	if cfg.Analyzer.Model == "" {
		missing = append(missing, "analyzer.model")
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}

	if provider == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrConfiguration)
	}

	c := &Client{
		cfg:      cfg.Analyzer,
		imgCfg:   cfg.ImageProcessing,
		env:      cfg.App.Environment,
		provider: provider,
	}

	// Rate limiter опционален: запросов в минуту → запросов в секунду
	if cfg.Analyzer.RateLimit > 0 {
		ratePerSec := float64(cfg.Analyzer.RateLimit) / 60.0
		c.limiter = rate.NewLimiter(rate.Limit(ratePerSec), cfg.Analyzer.BurstLimit)
	}

	if cfg.Persist.Enabled {
		c.files = store.NewFiles(cfg.Persist.Dir)
		if cfg.Persist.IndexPath != "" {
			index, err := store.OpenIndex(cfg.Persist.IndexPath)
			if err != nil {
				// Индекс — удобство, не обязательство: работаем без него
				utils.Warn("result index unavailable", "error", err)
			} else {
				c.index = index
			}
		}
	}

	return c, nil
}

// Close освобождает ресурсы клиента (SQLite индекс).
func (c *Client) Close() error {
	if c.index != nil {
		return c.index.Close()
	}
	return nil
}

// mimeFromExtension выбирает MIME тип по расширению файла.
// Неизвестное или отсутствующее расширение трактуется как JPEG —
// сканы в пайплайне по умолчанию именно такие.
func mimeFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// EncodeImage читает локальный файл и возвращает self-contained
// inline ссылку: data:<mime>;base64,<payload>.
//
// Если в конфиге задан image_processing.max_width, скан предварительно
// ужимается (и тогда MIME всегда image/jpeg — ресайзер перекодирует).
// Ошибка ресайза не фатальна: отправляем оригинальные байты.
func (c *Client) EncodeImage(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ImageReadError{Path: absPath, Err: err}
	}

	return c.EncodeImageBytes(data, path), nil
}

// EncodeImageBytes кодирует уже прочитанные байты (например, скачанные
// из S3) в inline data-uri. MIME выбирается по расширению имени.
func (c *Client) EncodeImageBytes(data []byte, filename string) string {
	mimeType := mimeFromExtension(filename)

	if c.imgCfg.MaxWidth > 0 {
		quality := c.imgCfg.Quality
		if quality == 0 {
			quality = 85
		}
		resized, err := utils.ResizeImage(data, c.imgCfg.MaxWidth, quality)
		if err != nil {
			utils.Warn("image resize failed, sending original", "filename", filename, "error", err)
		} else {
			data = resized
			mimeType = "image/jpeg"
		}
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, encoded)
}

// BuildMessages собирает последовательность сообщений для модели.
//
// Чистая функция: без сайд-эффектов и сети. Порядок фиксирован:
//  1. user-сообщение: промпт (кастомный или дефолтный) + картинка
//  2. история вызывающего, как есть, в переданном порядке
//  3. follow-up сообщение, если не подавлено
func (c *Client) BuildMessages(imageRef string, options Options) []llm.Message {
	prompt := options.CustomPrompt
	if prompt == "" {
		prompt = defaultPrompt
	}

	messages := []llm.Message{llm.VisionMessage(prompt, imageRef)}
	messages = append(messages, options.History...)

	if options.IncludeFollowUp {
		messages = append(messages, llm.TextMessage(llm.RoleUser, followUpPrompt))
	}

	return messages
}

// invoke — ядро ретраев.
//
// Линейный backoff: после неудачной попытки N ждем retry_delay * N.
// По умолчанию ретраится ЛЮБАЯ ошибка одинаково, до max_retries попыток;
// последняя ошибка пробрасывается без обертки. Классификация ошибок —
// через опциональный предикат IsRetryable.
//
// Вызовы последовательны внутри одного invoke: никаких параллельных
// спекулятивных попыток.
func (c *Client) invoke(ctx context.Context, messages []llm.Message) (llm.Completion, error) {
	req := llm.ChatRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Messages:    messages,
	}

	var lastErr error

	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		// Ждем разрешения от лимитера (блокирует, если превысили лимит)
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return llm.Completion{}, fmt.Errorf("rate limiter wait: %w", err)
			}
		}

		utils.Debug("model invocation attempt", "attempt", attempt, "model", req.Model)

		completion, err := c.provider.Complete(ctx, req)
		if err == nil {
			return completion, nil
		}

		lastErr = err
		utils.Warn("model invocation failed", "attempt", attempt, "error", err)

		if c.IsRetryable != nil && !c.IsRetryable(err) {
			return llm.Completion{}, err
		}

		if attempt < c.cfg.MaxRetries {
			select {
			case <-time.After(c.cfg.RetryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return llm.Completion{}, ctx.Err()
			}
		}
	}

	return llm.Completion{}, lastErr
}

// Analyze выполняет полный цикл анализа одного изображения.
//
// imageRef — inline data-uri (см. EncodeImage) или http(s) ссылка.
// Любой сбой сборки сообщений или вызова модели возвращается как
// одна AnalysisError; сбои персиста логируются и глотаются.
func (c *Client) Analyze(ctx context.Context, imageRef string, opts ...Option) (*AnalysisResult, error) {
	return c.analyze(ctx, imageRef, indexSource(imageRef), opts)
}

// AnalyzeFile — удобная обертка: EncodeImage + Analyze.
// В индекс источником пишется путь файла, а не мегабайтный data-uri.
func (c *Client) AnalyzeFile(ctx context.Context, path string, opts ...Option) (*AnalysisResult, error) {
	imageRef, err := c.EncodeImage(path)
	if err != nil {
		return nil, err
	}
	return c.analyze(ctx, imageRef, path, opts)
}

func (c *Client) analyze(ctx context.Context, imageRef, source string, opts []Option) (*AnalysisResult, error) {
	options := buildOptions(opts)

	messages := c.BuildMessages(imageRef, options)

	completion, err := c.invoke(ctx, messages)
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}

	result := Normalize(completion)

	if c.files != nil {
		c.persistResult(source, &result)
	}

	return &result, nil
}

// persistResult сохраняет результат на диск и в индекс.
//
// Ошибки персиста НИКОГДА не валят анализ: логируем warn и едем дальше.
func (c *Client) persistResult(source string, result *AnalysisResult) {
	path, err := c.files.Save(result)
	if err != nil {
		utils.Warn("failed to persist analysis result", "error", err)
		return
	}
	utils.Debug("analysis result persisted", "path", path)

	if c.index == nil {
		return
	}

	rec := store.Record{
		Timestamp: time.Now(),
		Source:    indexSource(source),
		Model:     result.Model,
		Success:   result.Success,
		FilePath:  path,
	}
	if result.Usage != nil {
		rec.TotalTokens = result.Usage.TotalTokens
	}
	if err := c.index.Insert(rec); err != nil {
		utils.Warn("failed to index analysis result", "error", err)
	}
}

// indexSource обрезает data-uri до префикса — хранить мегабайты base64
// в индексе бессмысленно.
func indexSource(imageRef string) string {
	if strings.HasPrefix(imageRef, "data:") {
		if idx := strings.Index(imageRef, ";base64,"); idx != -1 {
			return imageRef[:idx] + ";base64,..."
		}
		return "data:..."
	}
	return imageRef
}

// IsValidImageReference проверяет что строка пригодна как ссылка на
// изображение: inline base64 data-uri или абсолютный http(s) URL.
//
// Всё остальное (другие схемы, пустые строки) — false, без ошибок.
func IsValidImageReference(s string) bool {
	if strings.HasPrefix(s, "data:image/") {
		return true
	}
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// HealthSnapshot — снимок состояния клиента для диагностики.
type HealthSnapshot struct {
	Status        string `json:"status"`
	Model         string `json:"model"`
	Endpoint      string `json:"endpoint"`
	HasCredential bool   `json:"has_credential"` // Только факт наличия, не значение
	Environment   string `json:"environment"`
}

// Health возвращает состояние клиента.
//
// Чистое чтение конфигурации, без сетевых проб: раз клиент
// сконструирован — обязательные настройки уже провалидированы.
func (c *Client) Health() HealthSnapshot {
	return HealthSnapshot{
		Status:        "healthy",
		Model:         c.cfg.Model,
		Endpoint:      c.cfg.BaseURL,
		HasCredential: c.cfg.APIKey != "",
		Environment:   c.env,
	}
}
