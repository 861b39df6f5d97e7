// Package relatorio implementa os relatórios gerenciais: consumo por centro
// de custo e posição de estoque, com saída JSON ou PDF.
package relatorio

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// ConsumoPDFGenerator renderiza o relatório de consumo em PDF.
type ConsumoPDFGenerator interface {
	GerarConsumoPDF(ctx context.Context, filtro dto.ConsumoFiltro, resp dto.ConsumoResponse) ([]byte, error)
}

// RequisicaoPDFGenerator renderiza o espelho de uma requisição em PDF.
type RequisicaoPDFGenerator interface {
	GerarRequisicaoPDF(ctx context.Context, req dto.RequisicaoResponse) ([]byte, error)
}

// UseCase casos de uso de relatório.
type UseCase struct {
	relatorioRepo repository.RelatorioRepository
	pdf           ConsumoPDFGenerator
}

// NewUseCase constrói o caso de uso.
func NewUseCase(relatorioRepo repository.RelatorioRepository, pdf ConsumoPDFGenerator) *UseCase {
	return &UseCase{relatorioRepo: relatorioRepo, pdf: pdf}
}

// Consumo agrega o consumo (requisições ATENDIDAs) por centro de custo no
// intervalo. O fim do filtro é inclusivo: vira o início do dia seguinte na
// consulta (intervalo meio-aberto).
func (uc *UseCase) Consumo(ctx context.Context, filtro dto.ConsumoFiltro) (*dto.ConsumoResponse, error) {
	inicio, err := time.Parse("2006-01-02", filtro.DataInicio)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	fim, err := time.Parse("2006-01-02", filtro.DataFim)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	fimExclusivo := fim.AddDate(0, 0, 1)

	rows, err := uc.relatorioRepo.ConsumoPorCentroCusto(ctx, inicio, fimExclusivo, filtro.CentroCustoIDs)
	if err != nil {
		return nil, err
	}
	resp := &dto.ConsumoResponse{Linhas: []dto.ConsumoRow{}, ValorTotalGeral: decimal.Zero}
	for _, r := range rows {
		resp.Linhas = append(resp.Linhas, dto.ConsumoRow{
			ProdutoID:       r.ProdutoID,
			NomeProduto:     r.NomeProduto,
			UnidadeMedida:   r.UnidadeMedida,
			QuantidadeTotal: r.QuantidadeTotal,
			CustoMedio:      r.CustoMedio,
			ValorTotal:      r.ValorTotal,
		})
		resp.ValorTotalGeral = resp.ValorTotalGeral.Add(r.ValorTotal)
	}
	return resp, nil
}

// ConsumoPDF gera o mesmo relatório em PDF.
func (uc *UseCase) ConsumoPDF(ctx context.Context, filtro dto.ConsumoFiltro) ([]byte, error) {
	resp, err := uc.Consumo(ctx, filtro)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GerarConsumoPDF(ctx, filtro, *resp)
}

// PosicaoEstoque devolve a posição corrente de todos os produtos ativos, com
// custo médio sempre recalculado do histórico de ENTRADAs.
func (uc *UseCase) PosicaoEstoque(ctx context.Context) ([]dto.PosicaoEstoqueResponse, error) {
	rows, err := uc.relatorioRepo.PosicaoEstoque(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PosicaoEstoqueResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PosicaoEstoqueResponse{
			ProdutoID:     r.ProdutoID,
			CodigoProduto: r.CodigoProduto,
			NomeProduto:   r.NomeProduto,
			UnidadeMedida: r.UnidadeMedida,
			SaldoTotal:    r.SaldoTotal,
			EstoqueMinimo: r.EstoqueMinimo,
			CustoMedio:    r.CustoMedio,
			ValorTotal:    r.ValorTotal,
			AbaixoMinimo:  r.AbaixoMinimo,
		})
	}
	return out, nil
}
