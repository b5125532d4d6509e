package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/pkg/config"
)

func sampleContext() dto.InsightsContext {
	return dto.InsightsContext{
		Summary: dto.InsightsSummary{TotalProducts: 3, LowStockProducts: 1, TotalPurchaseOrders: 2, PendingOrders: 1, TotalInvoices: 4},
		Products: []dto.InsightsProduct{
			{Name: "Mussarela", Category: "Restaurante", QuantityInStock: 2, Threshold: 5, UnitPrice: decimal.RequireFromString("39.90")},
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Prompt
// ─────────────────────────────────────────────────────────────────────────────

func TestBuildInsightsUserPrompt_IncluyeResumenYMuestras(t *testing.T) {
	prompt, err := buildInsightsUserPrompt(sampleContext())
	require.NoError(t, err)

	assert.Contains(t, prompt, "restaurante Zola Pizza")
	assert.Contains(t, prompt, "- Total de produtos: 3")
	assert.Contains(t, prompt, "- Produtos com estoque baixo: 1")
	assert.Contains(t, prompt, "- Total de faturas: 4")
	assert.Contains(t, prompt, `"name": "Mussarela"`)
	// Listas vacías se envían como [] y no como null.
	assert.Contains(t, prompt, "**Pedidos de Compra Recentes:**\n[]")
}

func TestBuildInsightsUserPrompt_RecortaMuestras(t *testing.T) {
	data := sampleContext()
	data.Products = nil
	for i := 0; i < 30; i++ {
		data.Products = append(data.Products, dto.InsightsProduct{Name: "p"})
	}
	prompt, err := buildInsightsUserPrompt(data)
	require.NoError(t, err)
	assert.Equal(t, maxPromptProducts, strings.Count(prompt, `"name": "p"`))
}

// ─────────────────────────────────────────────────────────────────────────────
// Gemini
// ─────────────────────────────────────────────────────────────────────────────

func TestGemini_SinAPIKey(t *testing.T) {
	_, err := NewGeminiService("", "").GenerateInventoryInsights(context.Background(), sampleContext())
	assert.ErrorIs(t, err, ports.ErrLLMNotConfigured)
}

func TestGemini_EnviaPromptYLeeCandidato(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-1.5-flash", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  ## Alertas\n- repor Mussarela  "}]}}]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("secret", "")
	svc.endpoint = srv.URL + "/%s?key=%s"

	out, err := svc.GenerateInventoryInsights(context.Background(), sampleContext())
	require.NoError(t, err)
	assert.Equal(t, "## Alertas\n- repor Mussarela", out)

	require.Len(t, got.Contents, 1)
	text := got.Contents[0].Parts[0].Text
	assert.True(t, strings.HasPrefix(text, "Você é um especialista"))
	assert.Contains(t, text, "Limite a resposta a 800 palavras máximo\n\nAnalise os seguintes dados")
	assert.Equal(t, 2048, got.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, 40, got.GenerationConfig.TopK)
	assert.Len(t, got.SafetySettings, 4)
}

func TestGemini_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("secret", "")
	svc.endpoint = srv.URL + "/%s?key=%s"

	_, err := svc.GenerateInventoryInsights(context.Background(), sampleContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini error 429: quota")
}

func TestGemini_SinCandidatos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("secret", "")
	svc.endpoint = srv.URL + "/%s?key=%s"

	_, err := svc.GenerateInventoryInsights(context.Background(), sampleContext())
	assert.ErrorContains(t, err, "respuesta vacía")
}

// ─────────────────────────────────────────────────────────────────────────────
// Anthropic
// ─────────────────────────────────────────────────────────────────────────────

func TestAnthropic_SistemaSeparadoYBloquesDeTexto(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Parte 1. "},{"type":"text","text":"Parte 2."}]}`))
	}))
	defer srv.Close()

	svc := NewAnthropicService("k", "")
	svc.url = srv.URL

	out, err := svc.GenerateInventoryInsights(context.Background(), sampleContext())
	require.NoError(t, err)
	assert.Equal(t, "Parte 1. Parte 2.", out)
	assert.Equal(t, insightsSystemPrompt, got.System)
	require.Len(t, got.Messages, 1)
	assert.True(t, strings.HasPrefix(got.Messages[0].Content, "Analise os seguintes dados"))
}

func TestAnthropic_SinAPIKey(t *testing.T) {
	_, err := NewAnthropicService("", "").GenerateInventoryInsights(context.Background(), sampleContext())
	assert.ErrorIs(t, err, ports.ErrLLMNotConfigured)
}

func TestNewFromConfig(t *testing.T) {
	assert.IsType(t, &AnthropicService{}, NewFromConfig(config.AIConfig{Provider: "anthropic"}))
	assert.IsType(t, &GeminiService{}, NewFromConfig(config.AIConfig{}))
}
