package estoque_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WelintondosSantos/Sistoque/internal/application/estoque"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

func fechador(s *memStore) *estoque.FechamentoUseCase {
	return estoque.NewFechamentoUseCase(memTxRunner{s}, memFechamentos{s})
}

// entradaNoRazao grava uma ENTRADA diretamente no razão do fake, ligada ao lote.
func entradaNoRazao(s *memStore, loteID string, quantidade int64, valorUnitario string, data time.Time) {
	loteRef := loteID
	valor := decimal.RequireFromString(valorUnitario)
	s.movimentos = append(s.movimentos, &entity.MovimentoEstoque{
		ID:             "mov-" + loteID + "-" + data.Format("150405.000000000"),
		LoteID:         &loteRef,
		AlmoxarifadoID: "almox-1",
		Quantidade:     quantidade,
		ValorUnitario:  &valor,
		Tipo:           entity.MovimentoENTRADA,
		Data:           data,
	})
}

// Primeiro fechamento do sistema: fecha o mês corrente e grava a posição com
// o custo médio ponderado das entradas. Duas entradas de 10 unidades a 2.00 e
// 4.00 dão custo 3.00; com saldo 15, o valor total é 45.00.
func TestFechar_PrimeiroFechamentoGravaSnapshotComCustoMedio(t *testing.T) {
	s := newMemStore()
	novoProduto(s, "prod-1", "MAT-001")
	validade, _ := time.Parse("2006-01-02", "2027-06-30")
	s.lotes["lote-1"] = &entity.Lote{ID: "lote-1", ProdutoID: "prod-1", DataValidade: validade, QuantidadeAtual: 15}

	agora := time.Now()
	entradaNoRazao(s, "lote-1", 10, "2.00", agora.Add(-48*time.Hour))
	entradaNoRazao(s, "lote-1", 10, "4.00", agora.Add(-24*time.Hour))

	uc := fechador(s)
	fechamento, err := uc.Fechar(context.Background(), "admin-1")
	require.NoError(t, err)

	assert.Equal(t, int(agora.Month()), fechamento.Mes, "sem fechamento anterior, fecha o mês corrente")
	assert.Equal(t, agora.Year(), fechamento.Ano)
	assert.Equal(t, entity.FechamentoATIVO, fechamento.Status)
	assert.Equal(t, "admin-1", fechamento.ResponsavelID)

	posicoes, err := uc.Posicoes(context.Background(), fechamento.ID)
	require.NoError(t, err)
	require.Len(t, posicoes, 1)

	p := posicoes[0]
	assert.Equal(t, "prod-1", p.ProdutoID)
	assert.Equal(t, int64(15), p.QuantidadeFinal)
	assert.True(t, p.CustoMedioFinal.Equal(decimal.RequireFromString("3")),
		"custo médio ponderado: (10*2 + 10*4) / 20 = 3, obtido %s", p.CustoMedioFinal)
	assert.True(t, p.ValorTotalFinal.Equal(decimal.RequireFromString("45")),
		"valor total: 15 * 3 = 45, obtido %s", p.ValorTotalFinal)
}

func TestFechar_ProdutoSemSaldoForaDoSnapshot(t *testing.T) {
	s := newMemStore()
	novoProduto(s, "prod-1", "MAT-001")
	novoProduto(s, "prod-2", "MAT-002")
	validade, _ := time.Parse("2006-01-02", "2027-06-30")
	s.lotes["lote-1"] = &entity.Lote{ID: "lote-1", ProdutoID: "prod-1", DataValidade: validade, QuantidadeAtual: 5}
	s.lotes["lote-2"] = &entity.Lote{ID: "lote-2", ProdutoID: "prod-2", DataValidade: validade, QuantidadeAtual: 0}
	entradaNoRazao(s, "lote-1", 5, "1.00", time.Now().Add(-time.Hour))

	uc := fechador(s)
	fechamento, err := uc.Fechar(context.Background(), "admin-1")
	require.NoError(t, err)

	posicoes, err := uc.Posicoes(context.Background(), fechamento.ID)
	require.NoError(t, err)
	require.Len(t, posicoes, 1, "produto com saldo zero não entra no snapshot")
	assert.Equal(t, "prod-1", posicoes[0].ProdutoID)
}

// Saldo sem nenhuma ENTRADA registrada (só ajustes): custo médio zero.
func TestFechar_ProdutoSemEntradasTemCustoZero(t *testing.T) {
	s := newMemStore()
	novoProduto(s, "prod-1", "MAT-001")
	validade, _ := time.Parse("2006-01-02", "2027-06-30")
	s.lotes["lote-1"] = &entity.Lote{ID: "lote-1", ProdutoID: "prod-1", DataValidade: validade, QuantidadeAtual: 7}

	uc := fechador(s)
	fechamento, err := uc.Fechar(context.Background(), "admin-1")
	require.NoError(t, err)

	posicoes, err := uc.Posicoes(context.Background(), fechamento.ID)
	require.NoError(t, err)
	require.Len(t, posicoes, 1)
	assert.True(t, posicoes[0].CustoMedioFinal.IsZero())
	assert.True(t, posicoes[0].ValorTotalFinal.IsZero())
}

// Já existe fechamento ATIVO de dezembro: o próximo período vira o ano.
func TestFechar_ProximoPeriodoViraOAno(t *testing.T) {
	s := newMemStore()
	s.fechamentos["f-dez"] = &entity.FechamentoMensal{
		ID: "f-dez", Mes: 12, Ano: 2025,
		ResponsavelID: "admin-1", Status: entity.FechamentoATIVO, DataFechamento: time.Now(),
	}

	uc := fechador(s)
	fechamento, err := uc.Fechar(context.Background(), "admin-1")
	require.NoError(t, err)

	assert.Equal(t, 1, fechamento.Mes)
	assert.Equal(t, 2026, fechamento.Ano)
}

// txRunnerConcorrente reproduz a corrida entre dois fechamentos do mesmo
// período: outro fechamento "vence" gravando o registro ATIVO entre a
// pré-checagem e a transação do perdedor.
type txRunnerConcorrente struct{ s *memStore }

var _ estoque.TxRunner = txRunnerConcorrente{}

func (t txRunnerConcorrente) Run(ctx context.Context, fn func(
	lotes repository.LoteRepository,
	movimentos repository.MovimentoRepository,
	requisicoes repository.RequisicaoRepository,
) error) error {
	return memTxRunner{t.s}.Run(ctx, fn)
}

func (t txRunnerConcorrente) RunFechamento(ctx context.Context, fn func(
	produtos repository.ProdutoRepository,
	lotes repository.LoteRepository,
	fechamentos repository.FechamentoRepository,
) error) error {
	hoje := time.Now()
	t.s.fechamentos["f-vencedor"] = &entity.FechamentoMensal{
		ID: "f-vencedor", Mes: int(hoje.Month()), Ano: hoje.Year(),
		ResponsavelID: "admin-2", Status: entity.FechamentoATIVO, DataFechamento: hoje,
	}
	return memTxRunner{t.s}.RunFechamento(ctx, fn)
}

// Dois fechamentos simultâneos do mesmo período: o índice único parcial
// (mes, ano, ATIVO) derruba o perdedor dentro da transação, que reporta
// ErrFechamentoDuplicado sem deixar posição nenhuma para trás.
func TestFechar_PeriodoJaFechadoPorCorridaConcorrente(t *testing.T) {
	s := newMemStore()
	novoProduto(s, "prod-1", "MAT-001")
	validade, _ := time.Parse("2006-01-02", "2027-06-30")
	s.lotes["lote-1"] = &entity.Lote{ID: "lote-1", ProdutoID: "prod-1", DataValidade: validade, QuantidadeAtual: 10}
	entradaNoRazao(s, "lote-1", 10, "2.00", time.Now().Add(-time.Hour))

	uc := estoque.NewFechamentoUseCase(txRunnerConcorrente{s}, memFechamentos{s})

	_, err := uc.Fechar(context.Background(), "admin-1")
	assert.ErrorIs(t, err, domain.ErrFechamentoDuplicado)

	// Só o fechamento vencedor sobrevive; o perdedor não persiste nada.
	assert.Len(t, s.fechamentos, 1)
	assert.Empty(t, s.posicoes)
}

func TestReabrir_CancelaUltimoAtivoEPermiteRefechar(t *testing.T) {
	s := newMemStore()
	uc := fechador(s)

	fechamento, err := uc.Fechar(context.Background(), "admin-1")
	require.NoError(t, err)

	reaberto, err := uc.Reabrir(context.Background(), "admin-2")
	require.NoError(t, err)

	assert.Equal(t, fechamento.ID, reaberto.ID)
	assert.Equal(t, entity.FechamentoCANCELADO, reaberto.Status)
	require.NotNil(t, reaberto.CanceladoPorID)
	assert.Equal(t, "admin-2", *reaberto.CanceladoPorID)
	require.NotNil(t, reaberto.DataCancelamento)

	// O cancelado sai do caminho: o mesmo período pode ser fechado de novo.
	refechado, err := uc.Fechar(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, fechamento.Mes, refechado.Mes)
	assert.Equal(t, fechamento.Ano, refechado.Ano)
	assert.NotEqual(t, fechamento.ID, refechado.ID, "o novo fechamento é um registro próprio")

	// O snapshot cancelado permanece no histórico.
	lista, err := uc.Listar(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, lista, 2)
}

func TestReabrir_SemFechamentoAtivoFalha(t *testing.T) {
	s := newMemStore()
	uc := fechador(s)

	_, err := uc.Reabrir(context.Background(), "admin-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPosicoes_FechamentoInexistente(t *testing.T) {
	s := newMemStore()
	uc := fechador(s)

	_, err := uc.Posicoes(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
