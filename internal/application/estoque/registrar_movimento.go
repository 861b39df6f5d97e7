package estoque

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	domestoque "github.com/WelintondosSantos/Sistoque/internal/domain/estoque"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// RegistrarMovimentoUseCase registra ENTRADAs e AJUSTEs de forma transacional.
// SAIDAs só existem pelo atendimento de requisições (AtenderRequisicaoUseCase).
type RegistrarMovimentoUseCase struct {
	txRunner        TxRunner
	produtoRepo     repository.ProdutoRepository
	almoxRepo       repository.AlmoxarifadoRepository
	fechamentoRepo  repository.FechamentoRepository
	agora           func() time.Time
}

// NewRegistrarMovimentoUseCase constrói o caso de uso.
func NewRegistrarMovimentoUseCase(
	txRunner TxRunner,
	produtoRepo repository.ProdutoRepository,
	almoxRepo repository.AlmoxarifadoRepository,
	fechamentoRepo repository.FechamentoRepository,
) *RegistrarMovimentoUseCase {
	return &RegistrarMovimentoUseCase{
		txRunner:       txRunner,
		produtoRepo:    produtoRepo,
		almoxRepo:      almoxRepo,
		fechamentoRepo: fechamentoRepo,
		agora:          time.Now,
	}
}

// verificarPeriodoAberto falha com ErrPeriodoFechado se existir fechamento
// ATIVO para o (mês, ano) do instante informado. O fechamento bloqueia toda
// movimentação do período, não só o atendimento.
func verificarPeriodoAberto(fechamentoRepo repository.FechamentoRepository, instante time.Time) error {
	f, err := fechamentoRepo.GetAtivoPorPeriodo(int(instante.Month()), instante.Year())
	if err != nil {
		return err
	}
	if f != nil {
		return domain.ErrPeriodoFechado
	}
	return nil
}

// RegistrarEntrada encontra ou cria o lote (produto, validade), soma a
// quantidade e grava o movimento de ENTRADA, tudo em uma transação.
func (uc *RegistrarMovimentoUseCase) RegistrarEntrada(ctx context.Context, usuarioID string, in dto.EntradaRequest) (*entity.MovimentoEstoque, error) {
	if in.ProdutoID == "" || in.Quantidade <= 0 || in.ValorUnitario.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	validade, err := time.Parse("2006-01-02", in.DataValidade)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	produto, err := uc.produtoRepo.GetByID(in.ProdutoID)
	if err != nil {
		return nil, err
	}
	if produto == nil || !produto.Ativo {
		return nil, domain.ErrNotFound
	}
	almox, err := uc.almoxRepo.PrimeiroAtivo()
	if err != nil {
		return nil, err
	}
	if almox == nil {
		return nil, domain.ErrNenhumAlmoxarifado
	}

	now := uc.agora()
	if err := verificarPeriodoAberto(uc.fechamentoRepo, now); err != nil {
		return nil, err
	}

	var mov *entity.MovimentoEstoque
	err = uc.txRunner.Run(ctx, func(
		lotes repository.LoteRepository,
		movimentos repository.MovimentoRepository,
		_ repository.RequisicaoRepository,
	) error {
		lote, err := lotes.GetByProdutoEValidade(in.ProdutoID, validade)
		if err != nil {
			return err
		}
		if lote == nil {
			lote = &entity.Lote{
				ID:           uuid.New().String(),
				ProdutoID:    in.ProdutoID,
				CodigoLote:   in.CodigoLote,
				DataValidade: validade,
				DataEntrada:  now,
			}
			if err := lotes.Create(lote); err != nil {
				// Corrida na unicidade (produto, validade): outro registro
				// criou o lote primeiro; recarrega e segue.
				if !errors.Is(err, domain.ErrDuplicate) {
					return err
				}
				if lote, err = lotes.GetByProdutoEValidade(in.ProdutoID, validade); err != nil {
					return err
				}
			}
		}

		mov = uc.novoMovimento(lote.ID, almox.ID, entity.MovimentoENTRADA, in.Quantidade, &in.ValorUnitario, usuarioID, in.Observacao, now)
		if err := movimentos.Create(mov); err != nil {
			return err
		}
		return lotes.AjustarQuantidade(lote.ID, mov.Quantidade)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegistrarAjuste grava um AJUSTE assinado contra um lote existente.
// Ajustes negativos que deixariam o lote abaixo de zero falham com
// ErrSaldoNegativo e nada é persistido.
func (uc *RegistrarMovimentoUseCase) RegistrarAjuste(ctx context.Context, usuarioID string, in dto.AjusteRequest) (*entity.MovimentoEstoque, error) {
	if in.LoteID == "" || in.Quantidade == 0 {
		return nil, domain.ErrInvalidInput
	}
	almox, err := uc.almoxRepo.PrimeiroAtivo()
	if err != nil {
		return nil, err
	}
	if almox == nil {
		return nil, domain.ErrNenhumAlmoxarifado
	}

	now := uc.agora()
	if err := verificarPeriodoAberto(uc.fechamentoRepo, now); err != nil {
		return nil, err
	}

	var mov *entity.MovimentoEstoque
	err = uc.txRunner.Run(ctx, func(
		lotes repository.LoteRepository,
		movimentos repository.MovimentoRepository,
		_ repository.RequisicaoRepository,
	) error {
		lote, err := lotes.GetByID(in.LoteID)
		if err != nil {
			return err
		}
		if lote == nil {
			return domain.ErrNotFound
		}
		mov = uc.novoMovimento(lote.ID, almox.ID, entity.MovimentoAJUSTE, in.Quantidade, nil, usuarioID, in.Observacao, now)
		if err := movimentos.Create(mov); err != nil {
			return err
		}
		return lotes.AjustarQuantidade(lote.ID, mov.Quantidade)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// novoMovimento monta o registro imutável já com o sinal normalizado.
func (uc *RegistrarMovimentoUseCase) novoMovimento(
	loteID, almoxID, tipo string,
	quantidade int64,
	valorUnitario *decimal.Decimal,
	usuarioID, observacao string,
	data time.Time,
) *entity.MovimentoEstoque {
	var usuario *string
	if usuarioID != "" {
		usuario = &usuarioID
	}
	return &entity.MovimentoEstoque{
		ID:             uuid.New().String(),
		LoteID:         &loteID,
		AlmoxarifadoID: almoxID,
		Quantidade:     domestoque.NormalizarQuantidade(tipo, quantidade),
		ValorUnitario:  valorUnitario,
		Tipo:           tipo,
		UsuarioID:      usuario,
		Data:           data,
		Observacao:     observacao,
	}
}
