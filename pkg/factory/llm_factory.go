package factory

import (
	"fmt"

	"github.com/landdoc/landdoc-ai/pkg/config"
	"github.com/landdoc/landdoc-ai/pkg/llm"
	"github.com/landdoc/landdoc-ai/pkg/llm/openai"
)

// NewLLMProvider создает провайдера на основе конфигурации анализатора.
//
// Все перечисленные провайдеры — OpenAI-совместимые chat-completions API,
// различаются только base_url из конфига.
func NewLLMProvider(cfg config.AnalyzerConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "openai", "openrouter", "zai":
		return openai.NewClient(cfg), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Provider)
	}
}
