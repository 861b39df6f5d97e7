package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

var _ repository.MovimentoRepository = (*MovimentoRepo)(nil)

// MovimentoRepo implementação do porto MovimentoRepository sobre PostgreSQL.
// Append-only: o adaptador não expõe UPDATE nem DELETE.
type MovimentoRepo struct {
	q Querier
}

// NewMovimentoRepository constrói o adaptador do razão de movimentos. Passar pool ou tx (Querier).
func NewMovimentoRepository(q Querier) *MovimentoRepo {
	return &MovimentoRepo{q: q}
}

const movimentoColumns = `id, lote_id, almoxarifado_id, quantidade, valor_unitario, tipo, usuario_id, data, observacao`

func scanMovimento(row pgx.Row) (*entity.MovimentoEstoque, error) {
	var m entity.MovimentoEstoque
	err := row.Scan(
		&m.ID, &m.LoteID, &m.AlmoxarifadoID, &m.Quantidade, &m.ValorUnitario,
		&m.Tipo, &m.UsuarioID, &m.Data, &m.Observacao,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste um movimento do razão.
func (r *MovimentoRepo) Create(mov *entity.MovimentoEstoque) error {
	query := `
		INSERT INTO movimentos_estoque (id, lote_id, almoxarifado_id, quantidade, valor_unitario, tipo, usuario_id, data, observacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.LoteID, mov.AlmoxarifadoID, mov.Quantidade, mov.ValorUnitario,
		mov.Tipo, mov.UsuarioID, mov.Data, mov.Observacao,
	)
	if err != nil {
		return fmt.Errorf("insert movimento: %w", err)
	}
	return nil
}

// GetByID obtém um movimento por ID.
func (r *MovimentoRepo) GetByID(id string) (*entity.MovimentoEstoque, error) {
	query := `SELECT ` + movimentoColumns + ` FROM movimentos_estoque WHERE id = $1`
	m, err := scanMovimento(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimento: %w", err)
	}
	return m, nil
}

// ListByProduto lista o extrato do produto, mais recentes primeiro, com filtro
// opcional de intervalo [from, to].
func (r *MovimentoRepo) ListByProduto(produtoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimentoEstoque, error) {
	query := `
		SELECT m.id, m.lote_id, m.almoxarifado_id, m.quantidade, m.valor_unitario, m.tipo, m.usuario_id, m.data, m.observacao
		FROM movimentos_estoque m
		JOIN lotes l ON l.id = m.lote_id
		WHERE l.produto_id = $1
			AND ($2::timestamptz IS NULL OR m.data >= $2)
			AND ($3::timestamptz IS NULL OR m.data <= $3)
		ORDER BY m.data DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, produtoID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimentos: %w", err)
	}
	defer rows.Close()

	var out []*entity.MovimentoEstoque
	for rows.Next() {
		m, err := scanMovimento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListByLote lista os movimentos de um lote em ordem cronológica (replay do saldo).
func (r *MovimentoRepo) ListByLote(loteID string) ([]*entity.MovimentoEstoque, error) {
	query := `SELECT ` + movimentoColumns + `
		FROM movimentos_estoque WHERE lote_id = $1 ORDER BY data`
	rows, err := r.q.Query(context.Background(), query, loteID)
	if err != nil {
		return nil, fmt.Errorf("list movimentos do lote: %w", err)
	}
	defer rows.Close()

	var out []*entity.MovimentoEstoque
	for rows.Next() {
		m, err := scanMovimento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
