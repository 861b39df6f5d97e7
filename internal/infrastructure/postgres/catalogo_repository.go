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

var _ repository.CatalogoRepository = (*CatalogoRepo)(nil)

// CatalogoRepo implementação do porto CatalogoRepository sobre PostgreSQL.
// Agrupa as tabelas paramétricas do catálogo de materiais.
type CatalogoRepo struct {
	q Querier
}

// NewCatalogoRepository constrói o adaptador do catálogo. Passar pool ou tx (Querier).
func NewCatalogoRepository(q Querier) *CatalogoRepo {
	return &CatalogoRepo{q: q}
}

// CreateCategoria persiste uma categoria. Nome duplicado vira domain.ErrDuplicate.
func (r *CatalogoRepo) CreateCategoria(c *entity.Categoria) error {
	query := `INSERT INTO categorias (id, nome, descricao) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Nome, c.Descricao)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// ListCategorias lista as categorias por nome.
func (r *CatalogoRepo) ListCategorias() ([]*entity.Categoria, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, nome, descricao FROM categorias ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()

	var out []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Nome, &c.Descricao); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// GetCategoriaByNome obtém uma categoria pelo nome exato.
func (r *CatalogoRepo) GetCategoriaByNome(nome string) (*entity.Categoria, error) {
	var c entity.Categoria
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nome, descricao FROM categorias WHERE nome = $1`, nome).
		Scan(&c.ID, &c.Nome, &c.Descricao)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// CreateClasse persiste uma classe de material.
func (r *CatalogoRepo) CreateClasse(c *entity.Classe) error {
	query := `INSERT INTO classes (id, codigo, descricao) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Codigo, c.Descricao)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert classe: %w", err)
	}
	return nil
}

// GetClasseByCodigo obtém uma classe pelo código.
func (r *CatalogoRepo) GetClasseByCodigo(codigo string) (*entity.Classe, error) {
	var c entity.Classe
	err := r.q.QueryRow(context.Background(),
		`SELECT id, codigo, descricao FROM classes WHERE codigo = $1`, codigo).
		Scan(&c.ID, &c.Codigo, &c.Descricao)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get classe: %w", err)
	}
	return &c, nil
}

// CreatePDM persiste um padrão descritivo de material.
func (r *CatalogoRepo) CreatePDM(p *entity.PDM) error {
	query := `INSERT INTO pdms (id, codigo, descricao) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.Codigo, p.Descricao)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pdm: %w", err)
	}
	return nil
}

// GetPDMByCodigo obtém um PDM pelo código.
func (r *CatalogoRepo) GetPDMByCodigo(codigo string) (*entity.PDM, error) {
	var p entity.PDM
	err := r.q.QueryRow(context.Background(),
		`SELECT id, codigo, descricao FROM pdms WHERE codigo = $1`, codigo).
		Scan(&p.ID, &p.Codigo, &p.Descricao)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pdm: %w", err)
	}
	return &p, nil
}

// CreateNaturezaDespesa persiste uma natureza de despesa.
func (r *CatalogoRepo) CreateNaturezaDespesa(n *entity.NaturezaDespesa) error {
	query := `INSERT INTO naturezas_despesa (id, codigo, descricao) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, n.ID, n.Codigo, n.Descricao)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert natureza de despesa: %w", err)
	}
	return nil
}

// GetNaturezaDespesaByCodigo obtém uma natureza de despesa pelo código.
func (r *CatalogoRepo) GetNaturezaDespesaByCodigo(codigo string) (*entity.NaturezaDespesa, error) {
	var n entity.NaturezaDespesa
	err := r.q.QueryRow(context.Background(),
		`SELECT id, codigo, descricao FROM naturezas_despesa WHERE codigo = $1`, codigo).
		Scan(&n.ID, &n.Codigo, &n.Descricao)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get natureza de despesa: %w", err)
	}
	return &n, nil
}
