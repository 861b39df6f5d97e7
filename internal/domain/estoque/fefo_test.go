package estoque_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/estoque"
)

func lote(id string, validade string, qtd int64) *entity.Lote {
	v, _ := time.Parse("2006-01-02", validade)
	return &entity.Lote{ID: id, ProdutoID: "prod-1", DataValidade: v, QuantidadeAtual: qtd}
}

// Dois lotes: A (validade 2025-01-01, qtd 5) e B (validade 2025-06-01, qtd 10).
// Retirar 8 deve esvaziar A (5) e tirar 3 de B, nessa ordem.
func TestPlanejarFEFO_ConsomeLoteMaisProximoDeVencerPrimeiro(t *testing.T) {
	lotes := []*entity.Lote{
		lote("A", "2025-01-01", 5),
		lote("B", "2025-06-01", 10),
	}

	plano := estoque.PlanejarFEFO(lotes, 8)

	require.Len(t, plano.Retiradas, 2)
	assert.Equal(t, "A", plano.Retiradas[0].Lote.ID)
	assert.Equal(t, int64(5), plano.Retiradas[0].Quantidade, "o lote A deve ser esvaziado")
	assert.Equal(t, "B", plano.Retiradas[1].Lote.ID)
	assert.Equal(t, int64(3), plano.Retiradas[1].Quantidade)
	assert.Equal(t, int64(8), plano.Atendido)
	assert.Equal(t, int64(0), plano.Faltante)
}

// Um lote só é tocado quando o anterior (validade menor) foi esgotado.
func TestPlanejarFEFO_NaoPulaLoteComSaldo(t *testing.T) {
	lotes := []*entity.Lote{
		lote("A", "2025-01-01", 100),
		lote("B", "2025-06-01", 100),
	}

	plano := estoque.PlanejarFEFO(lotes, 40)

	require.Len(t, plano.Retiradas, 1)
	assert.Equal(t, "A", plano.Retiradas[0].Lote.ID)
	assert.Equal(t, int64(40), plano.Retiradas[0].Quantidade)
}

// Lotes esgotados antes da necessidade: o plano reporta o faltante sem estourar.
func TestPlanejarFEFO_EstoqueInsuficienteReportaFaltante(t *testing.T) {
	lotes := []*entity.Lote{
		lote("A", "2025-01-01", 2),
		lote("B", "2025-06-01", 3),
	}

	plano := estoque.PlanejarFEFO(lotes, 10)

	require.Len(t, plano.Retiradas, 2)
	assert.Equal(t, int64(5), plano.Atendido)
	assert.Equal(t, int64(5), plano.Faltante)
	// Nenhuma retirada excede o saldo do lote.
	for _, r := range plano.Retiradas {
		assert.LessOrEqual(t, r.Quantidade, r.Lote.QuantidadeAtual)
	}
}

func TestPlanejarFEFO_SemLotes(t *testing.T) {
	plano := estoque.PlanejarFEFO(nil, 5)
	assert.Empty(t, plano.Retiradas)
	assert.Equal(t, int64(0), plano.Atendido)
	assert.Equal(t, int64(5), plano.Faltante)
}

func TestPlanejarFEFO_QuantidadeZeroOuNegativa(t *testing.T) {
	lotes := []*entity.Lote{lote("A", "2025-01-01", 5)}
	assert.Empty(t, estoque.PlanejarFEFO(lotes, 0).Retiradas)
	assert.Empty(t, estoque.PlanejarFEFO(lotes, -1).Retiradas)
}

// Lotes zerados na lista (caso defensivo) são ignorados.
func TestPlanejarFEFO_IgnoraLotesZerados(t *testing.T) {
	lotes := []*entity.Lote{
		lote("A", "2025-01-01", 0),
		lote("B", "2025-06-01", 4),
	}

	plano := estoque.PlanejarFEFO(lotes, 4)

	require.Len(t, plano.Retiradas, 1)
	assert.Equal(t, "B", plano.Retiradas[0].Lote.ID)
}
