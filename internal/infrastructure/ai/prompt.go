package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
)

// insightsSystemPrompt define el rol del modelo y el formato de la respuesta (en portugués,
// idioma de los usuarios del restaurante).
const insightsSystemPrompt = `Você é um especialista em gestão de inventário e análise de dados para restaurantes. Analise os dados de inventário fornecidos e gere insights acionáveis em português, incluindo:

1. **Alertas de Estoque Baixo e Recomendações de Reabastecimento**
   - Identifique produtos críticos abaixo do estoque mínimo
   - Sugira quantidades ideais de reabastecimento
   - Calcule o tempo estimado até ruptura de estoque

2. **Tendências de Movimentação de Inventário**
   - Analise padrões de consumo por categoria
   - Identifique produtos de alta e baixa rotatividade
   - Detecte variações sazonais se aplicável

3. **Otimização de Custos**
   - Identifique produtos com alto custo de armazenagem
   - Sugira estratégias para redução de desperdício
   - Analise relação custo-benefício por fornecedor

4. **Análise de Performance de Fornecedores**
   - Avalie pontualidade de entregas
   - Compare preços entre fornecedores
   - Identifique fornecedores com melhor custo-benefício

5. **Insights por Categoria de Produto**
   - Analise performance por categoria (Padaria, Restaurante, Bar)
   - Identifique categorias com maior margem
   - Sugira ajustes no mix de produtos

6. **Recomendações para Melhorar o Giro de Estoque**
   - Identifique produtos parados ou com baixo giro
   - Sugira ações para produtos de baixa rotatividade
   - Calcule o giro de estoque ideal por categoria

**Formato da Resposta:**
- Use marcadores e subtítulos claros
- Seja objetivo e focado em ações práticas
- Inclua números e métricas sempre que possível
- Priorize insights de maior impacto financeiro
- Limite a resposta a 800 palavras máximo`

const insightsUserTemplate = `Analise os seguintes dados de inventário do restaurante Zola Pizza:

**Resumo:**
- Total de produtos: %d
- Produtos com estoque baixo: %d
- Total de pedidos de compra: %d
- Pedidos pendentes: %d
- Total de faturas: %d

**Produtos Detalhados:**
%s

**Pedidos de Compra Recentes:**
%s

**Faturas Recentes:**
%s

Gere insights acionáveis focados em otimização de custos, redução de desperdício e melhoria da eficiência operacional.`

// Límites de muestras incluidas en el prompt.
const (
	maxPromptProducts = 20
	maxPromptOrders   = 10
	maxPromptInvoices = 10
)

// buildInsightsUserPrompt arma el mensaje de usuario con el resumen y las muestras en JSON indentado.
func buildInsightsUserPrompt(data dto.InsightsContext) (string, error) {
	products, err := indentJSON(head(data.Products, maxPromptProducts))
	if err != nil {
		return "", err
	}
	orders, err := indentJSON(head(data.PurchaseOrders, maxPromptOrders))
	if err != nil {
		return "", err
	}
	invoices, err := indentJSON(head(data.Invoices, maxPromptInvoices))
	if err != nil {
		return "", err
	}
	s := data.Summary
	return fmt.Sprintf(insightsUserTemplate,
		s.TotalProducts, s.LowStockProducts, s.TotalPurchaseOrders, s.PendingOrders, s.TotalInvoices,
		products, orders, invoices,
	), nil
}

// buildInsightsPrompt une system y user en un solo texto, para proveedores sin rol "system".
func buildInsightsPrompt(data dto.InsightsContext) (string, error) {
	user, err := buildInsightsUserPrompt(data)
	if err != nil {
		return "", err
	}
	return insightsSystemPrompt + "\n\n" + user, nil
}

func head[T any](items []T, n int) []T {
	if items == nil {
		return []T{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

func indentJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("AI: serializar datos: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
