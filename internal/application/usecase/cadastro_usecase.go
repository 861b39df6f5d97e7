package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// CadastroUseCase cuida dos cadastros de apoio: almoxarifados, centros de
// custo e categorias do catálogo.
type CadastroUseCase struct {
	almoxRepo       repository.AlmoxarifadoRepository
	centroCustoRepo repository.CentroCustoRepository
	catalogoRepo    repository.CatalogoRepository
}

func NewCadastroUseCase(
	almoxRepo repository.AlmoxarifadoRepository,
	centroCustoRepo repository.CentroCustoRepository,
	catalogoRepo repository.CatalogoRepository,
) *CadastroUseCase {
	return &CadastroUseCase{
		almoxRepo:       almoxRepo,
		centroCustoRepo: centroCustoRepo,
		catalogoRepo:    catalogoRepo,
	}
}

// CriarAlmoxarifado cadastra um depósito físico.
func (uc *CadastroUseCase) CriarAlmoxarifado(ctx context.Context, in dto.CreateAlmoxarifadoRequest) (*entity.Almoxarifado, error) {
	if in.Nome == "" || in.Codigo == "" {
		return nil, domain.ErrInvalidInput
	}
	a := &entity.Almoxarifado{
		ID:          uuid.New().String(),
		Nome:        in.Nome,
		Codigo:      in.Codigo,
		Localizacao: in.Localizacao,
		Ativo:       true,
	}
	if err := uc.almoxRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListarAlmoxarifados lista os depósitos cadastrados.
func (uc *CadastroUseCase) ListarAlmoxarifados(ctx context.Context) ([]*entity.Almoxarifado, error) {
	return uc.almoxRepo.List()
}

// CriarCentroCusto cadastra uma unidade requisitante. Parent opcional.
func (uc *CadastroUseCase) CriarCentroCusto(ctx context.Context, in dto.CreateCentroCustoRequest) (*entity.CentroCusto, error) {
	if in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != nil {
		parent, err := uc.centroCustoRepo.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	cc := &entity.CentroCusto{
		ID:       uuid.New().String(),
		Nome:     in.Nome,
		ParentID: in.ParentID,
		Ativo:    true,
	}
	if err := uc.centroCustoRepo.Create(cc); err != nil {
		return nil, err
	}
	return cc, nil
}

// ListarCentrosCusto lista as unidades requisitantes.
func (uc *CadastroUseCase) ListarCentrosCusto(ctx context.Context) ([]*entity.CentroCusto, error) {
	return uc.centroCustoRepo.List()
}

// CriarCategoria cadastra uma categoria de material.
func (uc *CadastroUseCase) CriarCategoria(ctx context.Context, nome, descricao string) (*entity.Categoria, error) {
	if nome == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Categoria{
		ID:        uuid.New().String(),
		Nome:      nome,
		Descricao: descricao,
	}
	if err := uc.catalogoRepo.CreateCategoria(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListarCategorias lista as categorias do catálogo.
func (uc *CadastroUseCase) ListarCategorias(ctx context.Context) ([]*entity.Categoria, error) {
	return uc.catalogoRepo.ListCategorias()
}
