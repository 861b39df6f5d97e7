package repository

import "github.com/WelintondosSantos/Sistoque/internal/domain/entity"

// RequisicaoRepository é o porto de persistência de requisições e seus itens.
type RequisicaoRepository interface {
	Create(req *entity.Requisicao) error
	// GetByID carrega a requisição com os itens.
	GetByID(id string) (*entity.Requisicao, error)
	// GetAbertaPorSolicitante devolve a requisição ABERTO do usuário, se houver.
	GetAbertaPorSolicitante(solicitanteID string) (*entity.Requisicao, error)
	// Update persiste status e campos de auditoria (finalização, atendimento, estorno).
	Update(req *entity.Requisicao) error
	ListPendentes(limit, offset int) ([]*entity.Requisicao, error)
	ListBySolicitante(solicitanteID string, limit, offset int) ([]*entity.Requisicao, error)

	AddItem(item *entity.ItemRequisicao) error
	GetItem(requisicaoID, produtoID string) (*entity.ItemRequisicao, error)
	GetItemByID(itemID string) (*entity.ItemRequisicao, error)
	UpdateItem(item *entity.ItemRequisicao) error
	DeleteItem(itemID string) error
}
