package estoque

import (
	"context"
	"time"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// ConsultaUseCase leituras do razão de movimentos (extratos).
type ConsultaUseCase struct {
	movimentoRepo repository.MovimentoRepository
	loteRepo      repository.LoteRepository
	produtoRepo   repository.ProdutoRepository
}

// NewConsultaUseCase constrói o caso de uso.
func NewConsultaUseCase(
	movimentoRepo repository.MovimentoRepository,
	loteRepo repository.LoteRepository,
	produtoRepo repository.ProdutoRepository,
) *ConsultaUseCase {
	return &ConsultaUseCase{movimentoRepo: movimentoRepo, loteRepo: loteRepo, produtoRepo: produtoRepo}
}

// Extrato devolve os movimentos do produto, mais recentes primeiro, com
// filtro opcional de intervalo.
func (uc *ConsultaUseCase) Extrato(ctx context.Context, produtoID string, from, to *time.Time, limit, offset int) ([]dto.MovimentoResponse, error) {
	produto, err := uc.produtoRepo.GetByID(produtoID)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movimentoRepo.ListByProduto(produtoID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovimentoResponses(movs), nil
}

// MovimentosDoLote devolve em ordem cronológica os movimentos de um lote
// (a soma das quantidades assinadas reproduz o saldo corrente).
func (uc *ConsultaUseCase) MovimentosDoLote(ctx context.Context, loteID string) ([]dto.MovimentoResponse, error) {
	lote, err := uc.loteRepo.GetByID(loteID)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movimentoRepo.ListByLote(loteID)
	if err != nil {
		return nil, err
	}
	return toMovimentoResponses(movs), nil
}

func toMovimentoResponses(movs []*entity.MovimentoEstoque) []dto.MovimentoResponse {
	out := make([]dto.MovimentoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimentoResponse{
			ID:             m.ID,
			LoteID:         m.LoteID,
			AlmoxarifadoID: m.AlmoxarifadoID,
			Tipo:           m.Tipo,
			Quantidade:     m.Quantidade,
			ValorUnitario:  m.ValorUnitario,
			Data:           m.Data,
			Observacao:     m.Observacao,
		})
	}
	return out
}
