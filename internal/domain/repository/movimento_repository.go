package repository

import (
	"time"

	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
)

// MovimentoRepository é o porto do razão de movimentos. Append-only por
// contrato: não existe caminho de update ou delete.
type MovimentoRepository interface {
	Create(mov *entity.MovimentoEstoque) error
	GetByID(id string) (*entity.MovimentoEstoque, error)
	ListByProduto(produtoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimentoEstoque, error)
	ListByLote(loteID string) ([]*entity.MovimentoEstoque, error)
}
