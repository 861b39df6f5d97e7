package estoque_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/application/estoque"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
)

// montaCenario prepara um produto com dois lotes (A vence antes de B) e uma
// requisição FINALIZADA com um item pedindo a quantidade informada.
func montaCenario(s *memStore, qtdLoteA, qtdLoteB, qtdPedida int64) {
	novoProduto(s, "prod-1", "MAT-001")

	validadeA, _ := time.Parse("2006-01-02", "2026-01-01")
	validadeB, _ := time.Parse("2006-01-02", "2026-06-01")
	s.lotes["lote-A"] = &entity.Lote{ID: "lote-A", ProdutoID: "prod-1", DataValidade: validadeA, QuantidadeAtual: qtdLoteA}
	s.lotes["lote-B"] = &entity.Lote{ID: "lote-B", ProdutoID: "prod-1", DataValidade: validadeB, QuantidadeAtual: qtdLoteB}

	finalizada := time.Now().Add(-time.Hour)
	s.requisicoes["req-1"] = &entity.Requisicao{
		ID:              "req-1",
		SolicitanteID:   "user-1",
		CentroCustoID:   "cc-1",
		Status:          entity.RequisicaoFINALIZADA,
		DataCriacao:     finalizada.Add(-time.Hour),
		DataFinalizacao: &finalizada,
	}
	s.itens["item-1"] = &entity.ItemRequisicao{
		ID: "item-1", RequisicaoID: "req-1", ProdutoID: "prod-1", Quantidade: qtdPedida,
	}
}

func atendedor(s *memStore, politica string) *estoque.AtenderRequisicaoUseCase {
	return estoque.NewAtenderRequisicaoUseCase(memTxRunner{s}, memRequisicoes{s}, memFechamentos{s}, memAlmoxarifados{s}, politica)
}

// Dois lotes com saldo 5 e 10, pedido de 8: o atendimento FEFO deve esvaziar
// o lote que vence primeiro e tirar o restante do segundo, com uma SAIDA por
// retirada.
func TestAtender_FEFOConsomeDoisLotesEmOrdemDeValidade(t *testing.T) {
	s := newMemStore()
	montaCenario(s, 5, 10, 8)
	uc := atendedor(s, estoque.PoliticaParcial)

	result, err := uc.Atender(context.Background(), "req-1", "almox-user", dto.AtenderRequest{})
	require.NoError(t, err)

	assert.Equal(t, entity.RequisicaoATENDIDA, result.Status)
	require.Len(t, result.Itens, 1)
	assert.Equal(t, int64(8), result.Itens[0].Atendido)
	assert.Equal(t, int64(0), result.Itens[0].Faltante)
	assert.Equal(t, 2, result.Itens[0].Movimentos, "uma SAIDA por lote consumido")

	assert.Equal(t, int64(0), s.lotes["lote-A"].QuantidadeAtual, "o lote que vence primeiro esvazia")
	assert.Equal(t, int64(7), s.lotes["lote-B"].QuantidadeAtual)

	require.Len(t, s.movimentos, 2)
	assert.Equal(t, "lote-A", *s.movimentos[0].LoteID)
	assert.Equal(t, int64(-5), s.movimentos[0].Quantidade, "SAIDA é armazenada negativa")
	assert.Equal(t, "lote-B", *s.movimentos[1].LoteID)
	assert.Equal(t, int64(-3), s.movimentos[1].Quantidade)

	item := s.itens["item-1"]
	require.NotNil(t, item.QuantidadeAtendida)
	assert.Equal(t, int64(8), *item.QuantidadeAtendida)

	req := s.requisicoes["req-1"]
	assert.Equal(t, entity.RequisicaoATENDIDA, req.Status)
	require.NotNil(t, req.AtendidoPorID)
	assert.Equal(t, "almox-user", *req.AtendidoPorID)
	require.NotNil(t, req.DataAtendimento)
}

// Política parcial: com saldo menor que o pedido, atende o que houver e
// registra o faltante.
func TestAtender_PoliticaParcialAtendeOQueHouver(t *testing.T) {
	s := newMemStore()
	montaCenario(s, 3, 2, 8) // saldo total 5, pedido 8
	uc := atendedor(s, estoque.PoliticaParcial)

	result, err := uc.Atender(context.Background(), "req-1", "almox-user", dto.AtenderRequest{})
	require.NoError(t, err)

	require.Len(t, result.Itens, 1)
	assert.Equal(t, int64(5), result.Itens[0].Atendido)
	assert.Equal(t, int64(3), result.Itens[0].Faltante)
	assert.Equal(t, entity.RequisicaoATENDIDA, result.Status)

	item := s.itens["item-1"]
	require.NotNil(t, item.QuantidadeAtendida)
	assert.Equal(t, int64(5), *item.QuantidadeAtendida,
		"a quantidade atendida registra o efetivamente retirado, não o pedido")
}

// Política atômica: qualquer falta rejeita a requisição inteira e nada é
// persistido.
func TestAtender_PoliticaAtomicaRejeitaERestauraEstado(t *testing.T) {
	s := newMemStore()
	montaCenario(s, 3, 2, 8)
	uc := atendedor(s, estoque.PoliticaAtomica)

	_, err := uc.Atender(context.Background(), "req-1", "almox-user", dto.AtenderRequest{})
	assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)

	assert.Equal(t, int64(3), s.lotes["lote-A"].QuantidadeAtual, "os saldos não podem mudar")
	assert.Equal(t, int64(2), s.lotes["lote-B"].QuantidadeAtual)
	assert.Empty(t, s.movimentos, "nenhuma SAIDA pode persistir")
	assert.Equal(t, entity.RequisicaoFINALIZADA, s.requisicoes["req-1"].Status,
		"a requisição continua pendente de atendimento")
	assert.Nil(t, s.itens["item-1"].QuantidadeAtendida)
}

// Quantidade aprovada menor que a pedida limita a retirada; aprovado zero
// pula o item.
func TestAtender_QuantidadeAprovadaLimitaRetirada(t *testing.T) {
	s := newMemStore()
	montaCenario(s, 5, 10, 8)
	uc := atendedor(s, estoque.PoliticaParcial)

	result, err := uc.Atender(context.Background(), "req-1", "almox-user", dto.AtenderRequest{
		Itens: []dto.AtenderItem{{ItemID: "item-1", QuantidadeAprovada: 4}},
	})
	require.NoError(t, err)

	require.Len(t, result.Itens, 1)
	assert.Equal(t, int64(4), result.Itens[0].Atendido)
	assert.Equal(t, int64(1), s.lotes["lote-A"].QuantidadeAtual)
	assert.Equal(t, int64(10), s.lotes["lote-B"].QuantidadeAtual, "o segundo lote não deve ser tocado")
}

func TestAtender_AprovadoZeroPulaOItem(t *testing.T) {
	s := newMemStore()
	montaCenario(s, 5, 10, 8)
	uc := atendedor(s, estoque.PoliticaParcial)

	result, err := uc.Atender(context.Background(), "req-1", "almox-user", dto.AtenderRequest{
		Itens: []dto.AtenderItem{{ItemID: "item-1", QuantidadeAprovada: 0}},
	})
	require.NoError(t, err)

	require.Len(t, result.Itens, 1)
	assert.Equal(t, int64(0), result.Itens[0].Atendido)
	assert.Empty(t, s.movimentos)
	assert.Equal(t, entity.RequisicaoATENDIDA, result.Status,
		"a requisição fecha mesmo com item pulado")
}

func TestAtender_StatusNaoFinalizadaFalha(t *testing.T) {
	s := newMemStore()
	montaCenario(s, 5, 10, 8)
	s.requisicoes["req-1"].Status = entity.RequisicaoABERTO
	uc := atendedor(s, estoque.PoliticaParcial)

	_, err := uc.Atender(context.Background(), "req-1", "almox-user", dto.AtenderRequest{})
	assert.ErrorIs(t, err, domain.ErrStatusInvalido)
}

func TestAtender_RequisicaoInexistente(t *testing.T) {
	s := newMemStore()
	uc := atendedor(s, estoque.PoliticaParcial)

	_, err := uc.Atender(context.Background(), "nao-existe", "almox-user", dto.AtenderRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAtender_PeriodoFechadoBloqueia(t *testing.T) {
	s := newMemStore()
	montaCenario(s, 5, 10, 8)
	hoje := time.Now()
	s.fechamentos["f1"] = &entity.FechamentoMensal{
		ID: "f1", Mes: int(hoje.Month()), Ano: hoje.Year(),
		ResponsavelID: "admin-1", Status: entity.FechamentoATIVO, DataFechamento: hoje,
	}
	uc := atendedor(s, estoque.PoliticaParcial)

	_, err := uc.Atender(context.Background(), "req-1", "almox-user", dto.AtenderRequest{})
	assert.ErrorIs(t, err, domain.ErrPeriodoFechado)

	assert.Equal(t, int64(5), s.lotes["lote-A"].QuantidadeAtual)
	assert.Empty(t, s.movimentos)
	assert.Equal(t, entity.RequisicaoFINALIZADA, s.requisicoes["req-1"].Status)
}

func TestAtender_QuantidadeAprovadaNegativaFalha(t *testing.T) {
	s := newMemStore()
	montaCenario(s, 5, 10, 8)
	uc := atendedor(s, estoque.PoliticaParcial)

	_, err := uc.Atender(context.Background(), "req-1", "almox-user", dto.AtenderRequest{
		Itens: []dto.AtenderItem{{ItemID: "item-1", QuantidadeAprovada: -1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
