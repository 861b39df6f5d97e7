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

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo implementação do porto ProdutoRepository sobre PostgreSQL (usável com pool ou tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador de persistência de produtos. Passar pool ou tx (Querier).
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

const produtoColumns = `id, categoria_id, codigo_produto, nome_produto, descricao_detalhada,
	unidade_medida, estoque_minimo, ativo, classe_id, pdm_id, natureza_despesa_id, data_cadastro`

func scanProduto(row pgx.Row) (*entity.Produto, error) {
	var p entity.Produto
	err := row.Scan(
		&p.ID, &p.CategoriaID, &p.CodigoProduto, &p.NomeProduto, &p.DescricaoDetalhada,
		&p.UnidadeMedida, &p.EstoqueMinimo, &p.Ativo, &p.ClasseID, &p.PDMID,
		&p.NaturezaDespesaID, &p.DataCadastro,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste um novo produto. Código duplicado vira domain.ErrDuplicate.
func (r *ProdutoRepo) Create(produto *entity.Produto) error {
	query := `
		INSERT INTO produtos (id, categoria_id, codigo_produto, nome_produto, descricao_detalhada,
			unidade_medida, estoque_minimo, ativo, classe_id, pdm_id, natureza_despesa_id, data_cadastro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		produto.ID, produto.CategoriaID, produto.CodigoProduto, produto.NomeProduto,
		produto.DescricaoDetalhada, produto.UnidadeMedida, produto.EstoqueMinimo, produto.Ativo,
		produto.ClasseID, produto.PDMID, produto.NaturezaDespesaID, produto.DataCadastro,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID.
func (r *ProdutoRepo) GetByID(id string) (*entity.Produto, error) {
	query := `SELECT ` + produtoColumns + ` FROM produtos WHERE id = $1`
	p, err := scanProduto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return p, nil
}

// GetByCodigo obtém um produto pelo código do catálogo.
func (r *ProdutoRepo) GetByCodigo(codigo string) (*entity.Produto, error) {
	query := `SELECT ` + produtoColumns + ` FROM produtos WHERE codigo_produto = $1`
	p, err := scanProduto(r.q.QueryRow(context.Background(), query, codigo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto by codigo: %w", err)
	}
	return p, nil
}

// Update atualiza os campos editáveis do produto.
func (r *ProdutoRepo) Update(produto *entity.Produto) error {
	query := `
		UPDATE produtos
		SET nome_produto = $2, descricao_detalhada = $3, unidade_medida = $4,
			estoque_minimo = $5, ativo = $6, categoria_id = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		produto.ID, produto.NomeProduto, produto.DescricaoDetalhada, produto.UnidadeMedida,
		produto.EstoqueMinimo, produto.Ativo, produto.CategoriaID,
	)
	if err != nil {
		return fmt.Errorf("update produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista produtos paginados por nome.
func (r *ProdutoRepo) List(limit, offset int) ([]*entity.Produto, error) {
	query := `SELECT ` + produtoColumns + `
		FROM produtos ORDER BY nome_produto LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Produto
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListAtivos devolve todos os produtos ativos (fechamento mensal percorre todos).
func (r *ProdutoRepo) ListAtivos() ([]*entity.Produto, error) {
	query := `SELECT ` + produtoColumns + `
		FROM produtos WHERE ativo ORDER BY codigo_produto`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list produtos ativos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Produto
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
