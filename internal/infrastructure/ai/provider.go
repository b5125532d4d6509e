package ai

import (
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/pkg/config"
)

// NewFromConfig elige el adaptador según AI_PROVIDER (gemini por defecto).
func NewFromConfig(cfg config.AIConfig) ports.LLMService {
	if cfg.Provider == "anthropic" {
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
	return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
}
