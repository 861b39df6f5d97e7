package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddItemRequest adiciona (ou acumula) um produto na requisição aberta do solicitante.
type AddItemRequest struct {
	ProdutoID  string `json:"produto_id"`
	Quantidade int64  `json:"quantidade"`
}

// AtenderRequest quantidades aprovadas por item para o atendimento FEFO.
type AtenderRequest struct {
	Itens []AtenderItem `json:"itens"`
}

// AtenderItem quantidade aprovada de um item da requisição.
type AtenderItem struct {
	ItemID             string `json:"item_id"`
	QuantidadeAprovada int64  `json:"quantidade_aprovada"`
}

// EstornoRequest motivo do estorno de uma requisição FINALIZADA.
type EstornoRequest struct {
	Motivo string `json:"motivo"`
}

// ItemRequisicaoResponse item com quantidades e valores derivados do custo médio.
type ItemRequisicaoResponse struct {
	ID                 string           `json:"id"`
	ProdutoID          string           `json:"produto_id"`
	NomeProduto        string           `json:"nome_produto"`
	UnidadeMedida      string           `json:"unidade_medida"`
	Quantidade         int64            `json:"quantidade"`
	QuantidadeAtendida *int64           `json:"quantidade_atendida,omitempty"`
	ValorSolicitado    decimal.Decimal  `json:"valor_solicitado"`
	ValorAtendido      decimal.Decimal  `json:"valor_atendido"`
}

// RequisicaoResponse representação de uma requisição com itens e totais.
type RequisicaoResponse struct {
	ID                   string                   `json:"id"`
	SolicitanteID        string                   `json:"solicitante_id"`
	CentroCustoID        string                   `json:"centro_custo_id"`
	Status               string                   `json:"status"`
	DataCriacao          time.Time                `json:"data_criacao"`
	DataFinalizacao      *time.Time               `json:"data_finalizacao,omitempty"`
	AtendidoPorID        *string                  `json:"atendido_por_id,omitempty"`
	DataAtendimento      *time.Time               `json:"data_atendimento,omitempty"`
	MotivoEstorno        string                   `json:"motivo_estorno,omitempty"`
	Itens                []ItemRequisicaoResponse `json:"itens"`
	ValorTotalSolicitado decimal.Decimal          `json:"valor_total_solicitado"`
	ValorTotalAtendido   decimal.Decimal          `json:"valor_total_atendido"`
}

// AtendimentoItemResult resultado do FEFO para um item: o que saiu e o que faltou.
type AtendimentoItemResult struct {
	ItemID     string `json:"item_id"`
	ProdutoID  string `json:"produto_id"`
	Aprovado   int64  `json:"aprovado"`
	Atendido   int64  `json:"atendido"`
	Faltante   int64  `json:"faltante"`
	Movimentos int    `json:"movimentos"`
}

// AtendimentoResult resultado do atendimento de uma requisição.
type AtendimentoResult struct {
	RequisicaoID string                  `json:"requisicao_id"`
	Status       string                  `json:"status"`
	Itens        []AtendimentoItemResult `json:"itens"`
}
