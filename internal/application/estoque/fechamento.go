package estoque

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// FechamentoUseCase materializa o snapshot mensal de estoque e controla o
// ciclo ATIVO -> CANCELADO (reabertura). Snapshots nunca são apagados.
type FechamentoUseCase struct {
	txRunner       TxRunner
	fechamentoRepo repository.FechamentoRepository
	agora          func() time.Time
}

// NewFechamentoUseCase constrói o caso de uso.
func NewFechamentoUseCase(txRunner TxRunner, fechamentoRepo repository.FechamentoRepository) *FechamentoUseCase {
	return &FechamentoUseCase{txRunner: txRunner, fechamentoRepo: fechamentoRepo, agora: time.Now}
}

// proximoPeriodo decide o (mês, ano) a fechar: o mês seguinte ao último
// fechamento ATIVO, ou o mês corrente no primeiro fechamento do sistema.
func (uc *FechamentoUseCase) proximoPeriodo() (int, int, error) {
	ultimo, err := uc.fechamentoRepo.UltimoAtivo()
	if err != nil {
		return 0, 0, err
	}
	if ultimo == nil {
		hoje := uc.agora()
		return int(hoje.Month()), hoje.Year(), nil
	}
	mes, ano := ultimo.Mes+1, ultimo.Ano
	if mes > 12 {
		mes, ano = 1, ano+1
	}
	return mes, ano, nil
}

// Fechar cria o fechamento do próximo período e grava uma posição por produto
// ativo com saldo, tudo em uma transação REPEATABLE READ: o snapshot é um
// corte consistente, nunca intercalado com um atendimento em andamento.
func (uc *FechamentoUseCase) Fechar(ctx context.Context, responsavelID string) (*entity.FechamentoMensal, error) {
	mes, ano, err := uc.proximoPeriodo()
	if err != nil {
		return nil, err
	}

	existente, err := uc.fechamentoRepo.GetAtivoPorPeriodo(mes, ano)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrFechamentoDuplicado
	}

	fechamento := &entity.FechamentoMensal{
		ID:             uuid.New().String(),
		Mes:            mes,
		Ano:            ano,
		ResponsavelID:  responsavelID,
		Status:         entity.FechamentoATIVO,
		DataFechamento: uc.agora(),
	}

	err = uc.txRunner.RunFechamento(ctx, func(
		produtos repository.ProdutoRepository,
		lotes repository.LoteRepository,
		fechamentos repository.FechamentoRepository,
	) error {
		if err := fechamentos.Create(fechamento); err != nil {
			// Constraint parcial de unicidade (mes, ano, ATIVO) cobre a
			// corrida entre dois fechamentos simultâneos.
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrFechamentoDuplicado
			}
			return err
		}

		ativos, err := produtos.ListAtivos()
		if err != nil {
			return err
		}
		asOf := fechamento.UltimoInstante()
		for _, produto := range ativos {
			saldo, err := lotes.SaldoTotal(produto.ID)
			if err != nil {
				return err
			}
			if saldo <= 0 {
				continue
			}
			custo, err := lotes.CustoMedioAte(produto.ID, asOf)
			if err != nil {
				return err
			}
			posicao := &entity.PosicaoEstoqueMensal{
				ID:              uuid.New().String(),
				FechamentoID:    fechamento.ID,
				ProdutoID:       produto.ID,
				QuantidadeFinal: saldo,
				CustoMedioFinal: custo,
				ValorTotalFinal: custo.Mul(decimal.NewFromInt(saldo)),
			}
			if err := fechamentos.CreatePosicao(posicao); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fechamento, nil
}

// Reabrir cancela o fechamento ATIVO mais recente, registrando quem e quando.
// As posições do snapshot permanecem intactas.
func (uc *FechamentoUseCase) Reabrir(ctx context.Context, canceladoPorID string) (*entity.FechamentoMensal, error) {
	ultimo, err := uc.fechamentoRepo.UltimoAtivo()
	if err != nil {
		return nil, err
	}
	if ultimo == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.agora()
	ultimo.Status = entity.FechamentoCANCELADO
	ultimo.CanceladoPorID = &canceladoPorID
	ultimo.DataCancelamento = &now
	if err := uc.fechamentoRepo.Update(ultimo); err != nil {
		return nil, err
	}
	return ultimo, nil
}

// Listar lista os fechamentos, períodos mais recentes primeiro.
func (uc *FechamentoUseCase) Listar(ctx context.Context, limit, offset int) ([]*entity.FechamentoMensal, error) {
	return uc.fechamentoRepo.List(limit, offset)
}

// Posicoes devolve as linhas do snapshot de um fechamento.
func (uc *FechamentoUseCase) Posicoes(ctx context.Context, fechamentoID string) ([]*entity.PosicaoEstoqueMensal, error) {
	fechamento, err := uc.fechamentoRepo.GetByID(fechamentoID)
	if err != nil {
		return nil, err
	}
	if fechamento == nil {
		return nil, domain.ErrNotFound
	}
	return uc.fechamentoRepo.ListPosicoes(fechamentoID)
}
