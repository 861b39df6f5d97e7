package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
)

// LoteRepository é o porto do razão de lotes (Lot Ledger).
//
// ListarDisponiveis* devolvem apenas lotes com saldo > 0, em ordem crescente
// de data de validade — é a ordem que o consumo FEFO percorre. A variante
// ForUpdate bloqueia as linhas (SELECT ... FOR UPDATE) e só faz sentido
// dentro de uma transação do TxRunner.
type LoteRepository interface {
	Create(lote *entity.Lote) error
	GetByID(id string) (*entity.Lote, error)
	GetByProdutoEValidade(produtoID string, validade time.Time) (*entity.Lote, error)
	ListByProduto(produtoID string) ([]*entity.Lote, error)
	ListarDisponiveis(produtoID string) ([]*entity.Lote, error)
	ListarDisponiveisForUpdate(produtoID string) ([]*entity.Lote, error)
	// AjustarQuantidade soma delta (assinado) ao saldo do lote.
	// Falha com domain.ErrSaldoNegativo se o resultado ficar < 0.
	AjustarQuantidade(loteID string, delta int64) error
	// SaldoTotal soma o saldo de todos os lotes do produto.
	SaldoTotal(produtoID string) (int64, error)
	// CustoMedioAte calcula o custo médio ponderado das ENTRADAs do produto
	// com data <= asOf. Zero quando não há entradas.
	CustoMedioAte(produtoID string, asOf time.Time) (decimal.Decimal, error)
}
