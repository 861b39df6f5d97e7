package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementação do porto LoteRepository sobre PostgreSQL (usável com pool ou tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository constrói o adaptador do razão de lotes. Passar pool ou tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const loteColumns = `id, produto_id, codigo_lote, data_validade, quantidade_atual, data_entrada`

func scanLote(row pgx.Row) (*entity.Lote, error) {
	var l entity.Lote
	err := row.Scan(&l.ID, &l.ProdutoID, &l.CodigoLote, &l.DataValidade, &l.QuantidadeAtual, &l.DataEntrada)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste um novo lote. (produto, data_validade) duplicado vira domain.ErrDuplicate.
func (r *LoteRepo) Create(lote *entity.Lote) error {
	query := `
		INSERT INTO lotes (id, produto_id, codigo_lote, data_validade, quantidade_atual, data_entrada)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.ProdutoID, lote.CodigoLote, lote.DataValidade, lote.QuantidadeAtual, lote.DataEntrada,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtém um lote por ID.
func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE id = $1`
	l, err := scanLote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return l, nil
}

// GetByProdutoEValidade obtém o lote do produto com a data de validade exata.
func (r *LoteRepo) GetByProdutoEValidade(produtoID string, validade time.Time) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE produto_id = $1 AND data_validade = $2`
	l, err := scanLote(r.q.QueryRow(context.Background(), query, produtoID, validade))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote by validade: %w", err)
	}
	return l, nil
}

// ListByProduto lista todos os lotes do produto, inclusive zerados (auditoria).
func (r *LoteRepo) ListByProduto(produtoID string) ([]*entity.Lote, error) {
	query := `SELECT ` + loteColumns + `
		FROM lotes WHERE produto_id = $1 ORDER BY data_validade`
	return r.listLotes(query, produtoID)
}

// ListarDisponiveis lista lotes com saldo > 0 em ordem de validade (ordem FEFO).
func (r *LoteRepo) ListarDisponiveis(produtoID string) ([]*entity.Lote, error) {
	query := `SELECT ` + loteColumns + `
		FROM lotes WHERE produto_id = $1 AND quantidade_atual > 0
		ORDER BY data_validade`
	return r.listLotes(query, produtoID)
}

// ListarDisponiveisForUpdate é ListarDisponiveis com bloqueio de linha
// (SELECT ... FOR UPDATE). Só faz sentido dentro de uma transação.
func (r *LoteRepo) ListarDisponiveisForUpdate(produtoID string) ([]*entity.Lote, error) {
	query := `SELECT ` + loteColumns + `
		FROM lotes WHERE produto_id = $1 AND quantidade_atual > 0
		ORDER BY data_validade
		FOR UPDATE`
	return r.listLotes(query, produtoID)
}

func (r *LoteRepo) listLotes(query string, args ...any) ([]*entity.Lote, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// AjustarQuantidade soma delta (assinado) ao saldo do lote. O predicado no
// UPDATE impede saldo negativo no próprio banco: zero linhas afetadas com o
// lote existente significa que o delta estouraria o saldo.
func (r *LoteRepo) AjustarQuantidade(loteID string, delta int64) error {
	query := `
		UPDATE lotes SET quantidade_atual = quantidade_atual + $2
		WHERE id = $1 AND quantidade_atual + $2 >= 0`
	tag, err := r.q.Exec(context.Background(), query, loteID, delta)
	if err != nil {
		return fmt.Errorf("ajustar quantidade do lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var existe bool
		if err := r.q.QueryRow(context.Background(),
			`SELECT EXISTS (SELECT 1 FROM lotes WHERE id = $1)`, loteID).Scan(&existe); err != nil {
			return fmt.Errorf("verificar lote: %w", err)
		}
		if !existe {
			return domain.ErrNotFound
		}
		return domain.ErrSaldoNegativo
	}
	return nil
}

// SaldoTotal soma o saldo de todos os lotes do produto.
func (r *LoteRepo) SaldoTotal(produtoID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantidade_atual), 0) FROM lotes WHERE produto_id = $1`
	var saldo int64
	if err := r.q.QueryRow(context.Background(), query, produtoID).Scan(&saldo); err != nil {
		return 0, fmt.Errorf("saldo total: %w", err)
	}
	return saldo, nil
}

// CustoMedioAte calcula o custo médio ponderado das ENTRADAs do produto com
// data <= asOf, direto do razão de movimentos. Zero sem entradas.
func (r *LoteRepo) CustoMedioAte(produtoID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(m.quantidade * m.valor_unitario) / NULLIF(SUM(m.quantidade), 0), 0)
		FROM movimentos_estoque m
		JOIN lotes l ON l.id = m.lote_id
		WHERE l.produto_id = $1 AND m.tipo = 'ENTRADA' AND m.data <= $2`
	var custo decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, produtoID, asOf).Scan(&custo); err != nil {
		return decimal.Zero, fmt.Errorf("custo medio: %w", err)
	}
	return custo, nil
}
