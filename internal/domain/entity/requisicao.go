package entity

import "time"

// Status do ciclo de vida de uma requisição.
const (
	RequisicaoABERTO     = "ABERTO"
	RequisicaoFINALIZADA = "FINALIZADA"
	RequisicaoATENDIDA   = "ATENDIDA"
	RequisicaoCANCELADA  = "CANCELADA"
)

// Requisicao é um pedido de materiais de um centro de custo.
// ABERTO -> FINALIZADA (solicitante envia) -> ATENDIDA (almoxarifado atende)
// ou CANCELADA (solicitante cancela em ABERTO, ou estorno em FINALIZADA).
type Requisicao struct {
	ID               string
	SolicitanteID    string
	CentroCustoID    string
	Status           string
	DataCriacao      time.Time
	DataFinalizacao  *time.Time
	AtendidoPorID    *string
	DataAtendimento  *time.Time
	EstornadoPorID   *string
	DataEstorno      *time.Time
	MotivoEstorno    string
	Itens            []*ItemRequisicao
}

// ItemRequisicao vincula um produto e as quantidades solicitada/atendida.
// Unicidade: (requisição, produto) — adicionar o mesmo produto acumula.
type ItemRequisicao struct {
	ID                  string
	RequisicaoID        string
	ProdutoID           string
	Quantidade          int64
	QuantidadeAtendida  *int64
}
