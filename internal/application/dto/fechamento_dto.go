package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FechamentoResponse cabeçalho de um fechamento mensal.
type FechamentoResponse struct {
	ID               string     `json:"id"`
	Mes              int        `json:"mes"`
	Ano              int        `json:"ano"`
	ResponsavelID    string     `json:"responsavel_id"`
	Status           string     `json:"status"`
	DataFechamento   time.Time  `json:"data_fechamento"`
	CanceladoPorID   *string    `json:"cancelado_por_id,omitempty"`
	DataCancelamento *time.Time `json:"data_cancelamento,omitempty"`
}

// PosicaoMensalResponse linha do snapshot de um fechamento.
type PosicaoMensalResponse struct {
	ProdutoID       string          `json:"produto_id"`
	QuantidadeFinal int64           `json:"quantidade_final"`
	CustoMedioFinal decimal.Decimal `json:"custo_medio_final"`
	ValorTotalFinal decimal.Decimal `json:"valor_total_final"`
}
