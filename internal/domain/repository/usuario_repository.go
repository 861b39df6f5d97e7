package repository

import "github.com/WelintondosSantos/Sistoque/internal/domain/entity"

// UsuarioRepository define o porto de persistência de usuários.
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByMatricula(matricula string) (*entity.Usuario, error)
	List(limit, offset int) ([]*entity.Usuario, error)
	// ListByRoles lista usuários ativos com qualquer um dos papéis informados
	// (regras de contato do chat).
	ListByRoles(roles ...string) ([]*entity.Usuario, error)
}

// CentroCustoRepository define o porto de persistência de centros de custo.
type CentroCustoRepository interface {
	Create(cc *entity.CentroCusto) error
	GetByID(id string) (*entity.CentroCusto, error)
	List() ([]*entity.CentroCusto, error)
}

// AlmoxarifadoRepository define o porto de persistência de almoxarifados.
type AlmoxarifadoRepository interface {
	Create(a *entity.Almoxarifado) error
	GetByID(id string) (*entity.Almoxarifado, error)
	// PrimeiroAtivo resolve o almoxarifado padrão das operações de estoque.
	PrimeiroAtivo() (*entity.Almoxarifado, error)
	List() ([]*entity.Almoxarifado, error)
}
