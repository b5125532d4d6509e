package ports

import (
	"context"
	"errors"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
)

// ErrLLMNotConfigured el proveedor de IA no tiene API key.
var ErrLLMNotConfigured = errors.New("AI: proveedor no configurado")

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
type LLMService interface {
	// GenerateInventoryInsights recibe el resumen del inventario y devuelve el análisis en texto libre.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	GenerateInventoryInsights(ctx context.Context, data dto.InsightsContext) (string, error)
}
