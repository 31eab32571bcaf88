package analyzer

import (
	"encoding/json"
	"time"

	"github.com/landdoc/landdoc-ai/pkg/llm"
	"github.com/landdoc/landdoc-ai/pkg/utils"
)

// AnalysisResult — нормализованный итог одного анализа.
//
// Конструируется один раз после успешного вызова модели и дальше
// не мутируется. Опционально сериализуется в файл response_<ms>.json.
type AnalysisResult struct {
	Success      bool   `json:"success"`
	Timestamp    string `json:"timestamp"`               // ISO-8601, UTC
	Model        string `json:"model"`                   // Идентификатор модели из ответа
	RawResponse  string `json:"raw_response"`            // Текст первого choice как есть
	FinishReason string `json:"finish_reason,omitempty"` // Пусто если API не вернул

	// Usage отсутствует целиком если API не вернул счетчики.
	// Нулевые значения не синтезируются.
	Usage *UsageMetadata `json:"usage,omitempty"`

	// ExtractedData — распарсенный JSON из fenced code block внутри ответа.
	// Отсутствует если блока нет или он не парсится — это не ошибка.
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
}

// UsageMetadata — счетчики токенов в сериализуемом виде.
type UsageMetadata struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Normalize приводит сырой ответ модели к AnalysisResult.
//
// Нормализация тотальна: структурно она всегда успешна. Success=true
// для любого ответа, который дошел до этой стадии — ошибкой наружу
// выходят только сбои транспорта/вызова модели.
func Normalize(c llm.Completion) AnalysisResult {
	result := AnalysisResult{
		Success:   true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Model:     c.Model,
	}

	// Текст и finish_reason первого choice; пустая строка если структурно нет
	if len(c.Choices) > 0 {
		result.RawResponse = c.Choices[0].Content
		result.FinishReason = c.Choices[0].FinishReason
	}

	if c.Usage != nil {
		result.Usage = &UsageMetadata{
			PromptTokens:     c.Usage.PromptTokens,
			CompletionTokens: c.Usage.CompletionTokens,
			TotalTokens:      c.Usage.TotalTokens,
		}
	}

	// Пытаемся извлечь структурированную часть. Отсутствие блока или
	// невалидный JSON — штатный исход, не ошибка: поле просто остается пустым.
	if block, ok := utils.ExtractJSONBlock(result.RawResponse); ok {
		var payload map[string]any
		if err := json.Unmarshal([]byte(block), &payload); err == nil {
			result.ExtractedData = payload
		} else if obj := utils.ExtractJSON(block); obj != "" && json.Unmarshal([]byte(obj), &payload) == nil {
			// Модель иногда пишет пояснительный текст внутри fence —
			// спасаем объект сканом по балансу скобок
			result.ExtractedData = payload
		} else {
			utils.Debug("extracted block is not valid JSON, skipping", "error", err)
		}
	}

	return result
}
