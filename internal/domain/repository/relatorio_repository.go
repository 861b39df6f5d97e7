package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ConsumoResult é uma linha do relatório de consumo por centro de custo.
type ConsumoResult struct {
	ProdutoID       string
	NomeProduto     string
	UnidadeMedida   string
	QuantidadeTotal int64
	CustoMedio      decimal.Decimal
	ValorTotal      decimal.Decimal
}

// PosicaoResult é uma linha da posição de estoque corrente de um produto.
type PosicaoResult struct {
	ProdutoID      string
	CodigoProduto  string
	NomeProduto    string
	UnidadeMedida  string
	SaldoTotal     int64
	EstoqueMinimo  int64
	CustoMedio     decimal.Decimal
	ValorTotal     decimal.Decimal
	AbaixoMinimo   bool
}

// RelatorioRepository concentra as consultas agregadas de leitura dos
// relatórios. Sempre calcula o custo médio a partir do histórico de ENTRADAs,
// nunca de um campo cacheado.
type RelatorioRepository interface {
	// ConsumoPorCentroCusto agrega itens de requisições ATENDIDAs no intervalo
	// [inicio, fim) para os centros de custo informados (todos, se vazio).
	ConsumoPorCentroCusto(ctx context.Context, inicio, fim time.Time, centroCustoIDs []string) ([]ConsumoResult, error)
	// PosicaoEstoque devolve a posição corrente de todos os produtos ativos.
	PosicaoEstoque(ctx context.Context) ([]PosicaoResult, error)
}
