package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WelintondosSantos/Sistoque/internal/application/estoque"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

var _ estoque.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repos atados à tx e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotes repository.LoteRepository,
	movimentos repository.MovimentoRepository,
	requisicoes repository.RequisicaoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	loteRepo := NewLoteRepository(tx)
	movRepo := NewMovimentoRepository(tx)
	reqRepo := NewRequisicaoRepository(tx)

	if err := fn(loteRepo, movRepo, reqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunFechamento inicia a transação do snapshot mensal em REPEATABLE READ:
// as leituras de saldo e custo enxergam um corte consistente do banco mesmo
// com atendimentos sendo commitados em paralelo.
func (r *TxRunner) RunFechamento(ctx context.Context, fn func(
	produtos repository.ProdutoRepository,
	lotes repository.LoteRepository,
	fechamentos repository.FechamentoRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	produtoRepo := NewProdutoRepository(tx)
	loteRepo := NewLoteRepository(tx)
	fechamentoRepo := NewFechamentoRepository(tx)

	if err := fn(produtoRepo, loteRepo, fechamentoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
