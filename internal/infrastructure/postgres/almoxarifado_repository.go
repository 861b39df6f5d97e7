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

var _ repository.AlmoxarifadoRepository = (*AlmoxarifadoRepo)(nil)

// AlmoxarifadoRepo implementação do porto AlmoxarifadoRepository sobre PostgreSQL.
type AlmoxarifadoRepo struct {
	q Querier
}

// NewAlmoxarifadoRepository constrói o adaptador de almoxarifados. Passar pool ou tx (Querier).
func NewAlmoxarifadoRepository(q Querier) *AlmoxarifadoRepo {
	return &AlmoxarifadoRepo{q: q}
}

// Create persiste um almoxarifado. Código duplicado vira domain.ErrDuplicate.
func (r *AlmoxarifadoRepo) Create(a *entity.Almoxarifado) error {
	query := `
		INSERT INTO almoxarifados (id, nome, codigo, localizacao, ativo)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, a.ID, a.Nome, a.Codigo, a.Localizacao, a.Ativo)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert almoxarifado: %w", err)
	}
	return nil
}

// GetByID obtém um almoxarifado por ID.
func (r *AlmoxarifadoRepo) GetByID(id string) (*entity.Almoxarifado, error) {
	query := `SELECT id, nome, codigo, localizacao, ativo FROM almoxarifados WHERE id = $1`
	var a entity.Almoxarifado
	err := r.q.QueryRow(context.Background(), query, id).Scan(&a.ID, &a.Nome, &a.Codigo, &a.Localizacao, &a.Ativo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almoxarifado: %w", err)
	}
	return &a, nil
}

// PrimeiroAtivo resolve o almoxarifado padrão das operações de estoque.
// Sem nenhum ativo, devolve domain.ErrNenhumAlmoxarifado.
func (r *AlmoxarifadoRepo) PrimeiroAtivo() (*entity.Almoxarifado, error) {
	query := `SELECT id, nome, codigo, localizacao, ativo FROM almoxarifados WHERE ativo ORDER BY codigo LIMIT 1`
	var a entity.Almoxarifado
	err := r.q.QueryRow(context.Background(), query).Scan(&a.ID, &a.Nome, &a.Codigo, &a.Localizacao, &a.Ativo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNenhumAlmoxarifado
		}
		return nil, fmt.Errorf("get primeiro almoxarifado: %w", err)
	}
	return &a, nil
}

// List lista os almoxarifados por código.
func (r *AlmoxarifadoRepo) List() ([]*entity.Almoxarifado, error) {
	query := `SELECT id, nome, codigo, localizacao, ativo FROM almoxarifados ORDER BY codigo`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list almoxarifados: %w", err)
	}
	defer rows.Close()

	var out []*entity.Almoxarifado
	for rows.Next() {
		var a entity.Almoxarifado
		if err := rows.Scan(&a.ID, &a.Nome, &a.Codigo, &a.Localizacao, &a.Ativo); err != nil {
			return nil, fmt.Errorf("scan almoxarifado: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
