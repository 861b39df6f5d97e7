package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// ProdutoUseCase CRUD do catálogo de produtos.
type ProdutoUseCase struct {
	produtoRepo repository.ProdutoRepository
	loteRepo    repository.LoteRepository
}

// NewProdutoUseCase constrói o caso de uso.
func NewProdutoUseCase(produtoRepo repository.ProdutoRepository, loteRepo repository.LoteRepository) *ProdutoUseCase {
	return &ProdutoUseCase{produtoRepo: produtoRepo, loteRepo: loteRepo}
}

// Create cadastra um produto. Código duplicado falha com ErrDuplicate.
func (uc *ProdutoUseCase) Create(ctx context.Context, in dto.CreateProdutoRequest) (*dto.ProdutoResponse, error) {
	if in.CodigoProduto == "" || in.NomeProduto == "" || in.UnidadeMedida == "" || in.CategoriaID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.EstoqueMinimo < 0 {
		return nil, domain.ErrInvalidInput
	}
	produto := &entity.Produto{
		ID:                 uuid.New().String(),
		CategoriaID:        in.CategoriaID,
		CodigoProduto:      in.CodigoProduto,
		NomeProduto:        in.NomeProduto,
		DescricaoDetalhada: in.DescricaoDetalhada,
		UnidadeMedida:      in.UnidadeMedida,
		EstoqueMinimo:      in.EstoqueMinimo,
		Ativo:              true,
		ClasseID:           in.ClasseID,
		PDMID:              in.PDMID,
		NaturezaDespesaID:  in.NaturezaDespesaID,
		DataCadastro:       time.Now(),
	}
	if err := uc.produtoRepo.Create(produto); err != nil {
		return nil, err
	}
	return toProdutoResponse(produto), nil
}

// GetByID busca um produto.
func (uc *ProdutoUseCase) GetByID(ctx context.Context, id string) (*dto.ProdutoResponse, error) {
	produto, err := uc.produtoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, domain.ErrNotFound
	}
	return toProdutoResponse(produto), nil
}

// Update atualiza os campos editáveis (código não muda; saldo e custo nunca
// são editados aqui — só via movimentos).
func (uc *ProdutoUseCase) Update(ctx context.Context, id string, in dto.UpdateProdutoRequest) (*dto.ProdutoResponse, error) {
	produto, err := uc.produtoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, domain.ErrNotFound
	}
	if in.NomeProduto != "" {
		produto.NomeProduto = in.NomeProduto
	}
	if in.DescricaoDetalhada != "" {
		produto.DescricaoDetalhada = in.DescricaoDetalhada
	}
	if in.UnidadeMedida != "" {
		produto.UnidadeMedida = in.UnidadeMedida
	}
	if in.EstoqueMinimo >= 0 {
		produto.EstoqueMinimo = in.EstoqueMinimo
	}
	if in.Ativo != nil {
		produto.Ativo = *in.Ativo
	}
	if err := uc.produtoRepo.Update(produto); err != nil {
		return nil, err
	}
	return toProdutoResponse(produto), nil
}

// List lista produtos paginados.
func (uc *ProdutoUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProdutoResponse, error) {
	produtos, err := uc.produtoRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProdutoResponse, 0, len(produtos))
	for _, p := range produtos {
		out = append(out, toProdutoResponse(p))
	}
	return out, nil
}

// Lotes lista os lotes de um produto (inclusive zerados, trilha de auditoria).
func (uc *ProdutoUseCase) Lotes(ctx context.Context, produtoID string) ([]dto.LoteResponse, error) {
	produto, err := uc.produtoRepo.GetByID(produtoID)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, domain.ErrNotFound
	}
	lotes, err := uc.loteRepo.ListByProduto(produtoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LoteResponse, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, dto.LoteResponse{
			ID:              l.ID,
			ProdutoID:       l.ProdutoID,
			CodigoLote:      l.CodigoLote,
			DataValidade:    l.DataValidade,
			QuantidadeAtual: l.QuantidadeAtual,
		})
	}
	return out, nil
}

func toProdutoResponse(p *entity.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:                 p.ID,
		CategoriaID:        p.CategoriaID,
		CodigoProduto:      p.CodigoProduto,
		NomeProduto:        p.NomeProduto,
		DescricaoDetalhada: p.DescricaoDetalhada,
		UnidadeMedida:      p.UnidadeMedida,
		EstoqueMinimo:      p.EstoqueMinimo,
		Ativo:              p.Ativo,
		DataCadastro:       p.DataCadastro,
	}
}
