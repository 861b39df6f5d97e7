package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento de estoque.
const (
	MovimentoENTRADA = "ENTRADA"
	MovimentoSAIDA   = "SAIDA"
	MovimentoAJUSTE  = "AJUSTE"
)

// MovimentoEstoque é o registro imutável do razão de estoque: criado uma vez,
// nunca alterado ou apagado. A soma das quantidades assinadas de um lote deve
// reproduzir Lote.QuantidadeAtual (invariante de replay).
//
// Quantidade é assinada: SAIDA é armazenada negativa (o chamador informa a
// magnitude positiva; ver estoque.NormalizarQuantidade). LoteID é opcional
// apenas para movimentos legados migrados sem lote.
type MovimentoEstoque struct {
	ID             string
	LoteID         *string
	AlmoxarifadoID string
	Quantidade     int64
	ValorUnitario  *decimal.Decimal // obrigatório em ENTRADA, nulo em SAIDA
	Tipo           string
	UsuarioID      *string
	Data           time.Time
	Observacao     string
}
