package repository

import "github.com/WelintondosSantos/Sistoque/internal/domain/entity"

// ProdutoRepository define o porto de persistência do catálogo de produtos.
type ProdutoRepository interface {
	Create(produto *entity.Produto) error
	GetByID(id string) (*entity.Produto, error)
	GetByCodigo(codigo string) (*entity.Produto, error)
	Update(produto *entity.Produto) error
	List(limit, offset int) ([]*entity.Produto, error)
	// ListAtivos devolve todos os produtos ativos (usado pelo fechamento mensal).
	ListAtivos() ([]*entity.Produto, error)
}
