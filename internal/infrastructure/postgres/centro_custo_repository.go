package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

var _ repository.CentroCustoRepository = (*CentroCustoRepo)(nil)

// CentroCustoRepo implementação do porto CentroCustoRepository sobre PostgreSQL.
type CentroCustoRepo struct {
	q Querier
}

// NewCentroCustoRepository constrói o adaptador de centros de custo. Passar pool ou tx (Querier).
func NewCentroCustoRepository(q Querier) *CentroCustoRepo {
	return &CentroCustoRepo{q: q}
}

// Create persiste um centro de custo.
func (r *CentroCustoRepo) Create(cc *entity.CentroCusto) error {
	query := `
		INSERT INTO centros_custo (id, nome, parent_id, ativo)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, cc.ID, cc.Nome, cc.ParentID, cc.Ativo)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert centro de custo: %w", err)
	}
	return nil
}

// GetByID obtém um centro de custo por ID.
func (r *CentroCustoRepo) GetByID(id string) (*entity.CentroCusto, error) {
	query := `SELECT id, nome, parent_id, ativo FROM centros_custo WHERE id = $1`
	var cc entity.CentroCusto
	err := r.q.QueryRow(context.Background(), query, id).Scan(&cc.ID, &cc.Nome, &cc.ParentID, &cc.Ativo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get centro de custo: %w", err)
	}
	return &cc, nil
}

// List lista os centros de custo por nome.
func (r *CentroCustoRepo) List() ([]*entity.CentroCusto, error) {
	query := `SELECT id, nome, parent_id, ativo FROM centros_custo ORDER BY nome`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list centros de custo: %w", err)
	}
	defer rows.Close()

	var out []*entity.CentroCusto
	for rows.Next() {
		var cc entity.CentroCusto
		if err := rows.Scan(&cc.ID, &cc.Nome, &cc.ParentID, &cc.Ativo); err != nil {
			return nil, fmt.Errorf("scan centro de custo: %w", err)
		}
		out = append(out, &cc)
	}
	return out, rows.Err()
}
