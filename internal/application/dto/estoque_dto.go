package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntradaRequest registro de entrada de material: encontra ou cria o lote
// (produto + validade) e soma a quantidade.
type EntradaRequest struct {
	ProdutoID     string          `json:"produto_id"`
	Quantidade    int64           `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	DataValidade  string          `json:"data_validade"` // formato 2006-01-02
	CodigoLote    string          `json:"codigo_lote"`
	Observacao    string          `json:"observacao"`
}

// AjusteRequest ajuste assinado contra um lote existente (restrito a admin).
type AjusteRequest struct {
	LoteID     string `json:"lote_id"`
	Quantidade int64  `json:"quantidade"` // positivo soma, negativo subtrai
	Observacao string `json:"observacao"`
}

// MovimentoResponse representação de um movimento do razão.
type MovimentoResponse struct {
	ID             string           `json:"id"`
	LoteID         *string          `json:"lote_id,omitempty"`
	AlmoxarifadoID string           `json:"almoxarifado_id"`
	Tipo           string           `json:"tipo"`
	Quantidade     int64            `json:"quantidade"`
	ValorUnitario  *decimal.Decimal `json:"valor_unitario,omitempty"`
	Data           time.Time        `json:"data"`
	Observacao     string           `json:"observacao,omitempty"`
}

// LoteResponse representação de um lote com o saldo corrente.
type LoteResponse struct {
	ID              string    `json:"id"`
	ProdutoID       string    `json:"produto_id"`
	CodigoLote      string    `json:"codigo_lote,omitempty"`
	DataValidade    time.Time `json:"data_validade"`
	QuantidadeAtual int64     `json:"quantidade_atual"`
}

// PosicaoEstoqueResponse posição corrente de um produto.
type PosicaoEstoqueResponse struct {
	ProdutoID     string          `json:"produto_id"`
	CodigoProduto string          `json:"codigo_produto"`
	NomeProduto   string          `json:"nome_produto"`
	UnidadeMedida string          `json:"unidade_medida"`
	SaldoTotal    int64           `json:"saldo_total"`
	EstoqueMinimo int64           `json:"estoque_minimo"`
	CustoMedio    decimal.Decimal `json:"custo_medio"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	AbaixoMinimo  bool            `json:"abaixo_minimo"`
}
