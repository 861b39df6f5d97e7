package repository

import "github.com/WelintondosSantos/Sistoque/internal/domain/entity"

// FechamentoRepository é o porto de persistência dos fechamentos mensais e
// seus snapshots de posição. Posições nunca são alteradas ou apagadas.
type FechamentoRepository interface {
	Create(f *entity.FechamentoMensal) error
	GetByID(id string) (*entity.FechamentoMensal, error)
	// GetAtivoPorPeriodo devolve o fechamento ATIVO de (mes, ano), se existir.
	GetAtivoPorPeriodo(mes, ano int) (*entity.FechamentoMensal, error)
	// UltimoAtivo devolve o fechamento ATIVO mais recente (maior ano, mes).
	UltimoAtivo() (*entity.FechamentoMensal, error)
	// Update persiste transição de status e auditoria de cancelamento.
	Update(f *entity.FechamentoMensal) error
	List(limit, offset int) ([]*entity.FechamentoMensal, error)

	CreatePosicao(p *entity.PosicaoEstoqueMensal) error
	ListPosicoes(fechamentoID string) ([]*entity.PosicaoEstoqueMensal, error)
}
