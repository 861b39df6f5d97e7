package estoque_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/estoque"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Custo médio ponderado: Σ(qtd·valor)/Σ(qtd).
func TestCustoMedio_Ponderado(t *testing.T) {
	entradas := []estoque.Entrada{
		{Quantidade: 10, ValorUnitario: dec("2.00")}, // 20.00
		{Quantidade: 30, ValorUnitario: dec("4.00")}, // 120.00
	}
	// (20 + 120) / 40 = 3.50
	custo := estoque.CustoMedio(entradas)
	assert.True(t, dec("3.50").Equal(custo), "custo médio esperado 3.50, obtido %s", custo)
}

func TestCustoMedio_UmaEntrada(t *testing.T) {
	custo := estoque.CustoMedio([]estoque.Entrada{{Quantidade: 7, ValorUnitario: dec("1.25")}})
	assert.True(t, dec("1.25").Equal(custo))
}

// Sem entradas o custo é zero por política explícita, nunca divisão por zero.
func TestCustoMedio_SemEntradasRetornaZero(t *testing.T) {
	assert.True(t, estoque.CustoMedio(nil).IsZero())
	assert.True(t, estoque.CustoMedio([]estoque.Entrada{}).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// NormalizarQuantidade — convenção de sinal do razão
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizarQuantidade_SaidaViraNegativa(t *testing.T) {
	assert.Equal(t, int64(-8), estoque.NormalizarQuantidade(entity.MovimentoSAIDA, 8))
}

func TestNormalizarQuantidade_SaidaJaNegativaPermanece(t *testing.T) {
	assert.Equal(t, int64(-8), estoque.NormalizarQuantidade(entity.MovimentoSAIDA, -8))
}

func TestNormalizarQuantidade_EntradaEAjustePassamDireto(t *testing.T) {
	assert.Equal(t, int64(8), estoque.NormalizarQuantidade(entity.MovimentoENTRADA, 8))
	assert.Equal(t, int64(-3), estoque.NormalizarQuantidade(entity.MovimentoAJUSTE, -3))
	assert.Equal(t, int64(3), estoque.NormalizarQuantidade(entity.MovimentoAJUSTE, 3))
}
