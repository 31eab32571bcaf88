// Package openai реализует адаптер LLM провайдера для OpenAI-совместимых API.
//
// Поддерживает Vision запросы (изображения) через MultiContent.
// Работает только через интерфейс llm.Provider.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/landdoc/landdoc-ai/pkg/config"
	"github.com/landdoc/landdoc-ai/pkg/llm"
	"github.com/landdoc/landdoc-ai/pkg/utils"
	openai "github.com/sashabaranov/go-openai"
)

// Client реализует интерфейс llm.Provider для OpenAI-совместимых API.
//
// Поддерживает:
//   - Базовую генерацию текста
//   - Vision запросы (изображения как data-uri или http ссылки)
//   - Кастомный BaseURL (OpenRouter, Zai и другие совместимые провайдеры)
type Client struct {
	api *openai.Client
}

// Проверка что Client реализует llm.Provider
var _ llm.Provider = (*Client)(nil)

// NewClient создает OpenAI клиент на основе конфигурации анализатора.
//
// Все настройки из конфигурации, никакого хардкода. Timeout запроса
// задается на уровне HTTP клиента SDK.
func NewClient(cfg config.AnalyzerConfig) *Client {
	return &Client{
		api: openai.NewClientWithConfig(newAPIConfig(cfg)),
	}
}

// newAPIConfig собирает конфигурацию SDK из настроек анализатора.
//
// SDK хранит HTTPClient как интерфейс HTTPDoer, поэтому timeout
// задается подменой клиента целиком, а не полем.
func newAPIConfig(cfg config.AnalyzerConfig) openai.ClientConfig {
	// Поддержка custom BaseURL для non-OpenAI провайдеров
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return apiCfg
}

// Complete выполняет один запрос к API и возвращает сырой ответ модели.
//
// Алгоритм:
//  1. Конвертирует внутренние сообщения в формат OpenAI SDK
//  2. Вызывает API (одна попытка, ретраи — забота вызывающего)
//  3. Конвертирует ответ обратно в наш формат, сохраняя usage и finish_reason
//
// Все ошибки возвращаются, никаких panic.
func (c *Client) Complete(ctx context.Context, req llm.ChatRequest) (llm.Completion, error) {
	startTime := time.Now()

	utils.Debug("LLM request started",
		"model", req.Model,
		"messages_count", len(req.Messages))

	// 1. Конвертируем наши сообщения в формат OpenAI SDK
	openaiMsgs := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		openaiMsgs[i] = mapToOpenAI(m)
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    openaiMsgs,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}

	// 2. Вызываем API
	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		utils.Warn("LLM API request failed",
			"error", err,
			"model", req.Model,
			"duration_ms", time.Since(startTime).Milliseconds())
		return llm.Completion{}, fmt.Errorf("openai api error: %w", err)
	}

	// 3. Маппим ответ обратно в наш формат
	result := llm.Completion{
		Model:   resp.Model,
		Choices: make([]llm.Choice, len(resp.Choices)),
	}
	for i, ch := range resp.Choices {
		result.Choices[i] = llm.Choice{
			Content:      ch.Message.Content,
			FinishReason: string(ch.FinishReason),
		}
	}

	// Usage переносим только если API его вернул. SDK отдает структуру
	// по значению, поэтому ориентируемся на ненулевые счетчики.
	if resp.Usage.TotalTokens > 0 || resp.Usage.PromptTokens > 0 || resp.Usage.CompletionTokens > 0 {
		result.Usage = &llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	utils.Info("LLM response received",
		"model", result.Model,
		"choices_count", len(result.Choices),
		"duration_ms", time.Since(startTime).Milliseconds())

	return result, nil
}

// mapToOpenAI конвертирует наше внутреннее сообщение в формат SDK.
// Здесь происходит магия Vision: если есть image_url части, создаем MultiContent.
func mapToOpenAI(m llm.Message) openai.ChatCompletionMessage {
	msg := openai.ChatCompletionMessage{
		Role: string(m.Role),
	}

	// Если сообщение состоит из одного текстового блока, отправляем просто текст
	if len(m.Parts) == 1 && m.Parts[0].Type == llm.TypeText {
		msg.Content = m.Parts[0].Text
		return msg
	}

	parts := make([]openai.ChatMessagePart, 0, len(m.Parts))
	for _, p := range m.Parts {
		switch p.Type {
		case llm.TypeImage:
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    p.ImageURL, // Ожидается base64 data-uri или http ссылка
					Detail: openai.ImageURLDetailAuto,
				},
			})
		default:
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: p.Text,
			})
		}
	}

	msg.MultiContent = parts
	return msg
}
