package estoque

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	domestoque "github.com/WelintondosSantos/Sistoque/internal/domain/estoque"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// Políticas para falta de estoque no atendimento.
const (
	// PoliticaParcial atende o que houver e deixa o faltante registrado
	// (comportamento clássico do almoxarifado).
	PoliticaParcial = "parcial"
	// PoliticaAtomica rejeita a requisição inteira se qualquer item não
	// puder ser atendido por completo.
	PoliticaAtomica = "atomica"
)

// AtenderRequisicaoUseCase executa o atendimento FEFO de uma requisição
// FINALIZADA: consome lotes em ordem de validade, emitindo uma SAIDA por
// retirada, tudo em uma única transação multi-item/multi-lote.
type AtenderRequisicaoUseCase struct {
	txRunner       TxRunner
	requisicaoRepo repository.RequisicaoRepository
	fechamentoRepo repository.FechamentoRepository
	almoxRepo      repository.AlmoxarifadoRepository
	politica       string
	agora          func() time.Time
}

// NewAtenderRequisicaoUseCase constrói o caso de uso. politica vazia assume parcial.
func NewAtenderRequisicaoUseCase(
	txRunner TxRunner,
	requisicaoRepo repository.RequisicaoRepository,
	fechamentoRepo repository.FechamentoRepository,
	almoxRepo repository.AlmoxarifadoRepository,
	politica string,
) *AtenderRequisicaoUseCase {
	if politica != PoliticaAtomica {
		politica = PoliticaParcial
	}
	return &AtenderRequisicaoUseCase{
		txRunner:       txRunner,
		requisicaoRepo: requisicaoRepo,
		fechamentoRepo: fechamentoRepo,
		almoxRepo:      almoxRepo,
		politica:       politica,
		agora:          time.Now,
	}
}

// Atender valida as precondições (status FINALIZADA, período aberto) e roda o
// FEFO. Quantidades aprovadas ausentes assumem a quantidade solicitada;
// aprovado zero pula o item.
func (uc *AtenderRequisicaoUseCase) Atender(ctx context.Context, requisicaoID, atendidoPorID string, in dto.AtenderRequest) (*dto.AtendimentoResult, error) {
	req, err := uc.requisicaoRepo.GetByID(requisicaoID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.Status != entity.RequisicaoFINALIZADA {
		return nil, domain.ErrStatusInvalido
	}

	now := uc.agora()
	if err := verificarPeriodoAberto(uc.fechamentoRepo, now); err != nil {
		return nil, err
	}

	almox, err := uc.almoxRepo.PrimeiroAtivo()
	if err != nil {
		return nil, err
	}
	if almox == nil {
		return nil, domain.ErrNenhumAlmoxarifado
	}

	aprovadas := make(map[string]int64, len(in.Itens))
	for _, it := range in.Itens {
		if it.QuantidadeAprovada < 0 {
			return nil, domain.ErrInvalidInput
		}
		aprovadas[it.ItemID] = it.QuantidadeAprovada
	}

	result := &dto.AtendimentoResult{RequisicaoID: req.ID}
	err = uc.txRunner.Run(ctx, func(
		lotes repository.LoteRepository,
		movimentos repository.MovimentoRepository,
		requisicoes repository.RequisicaoRepository,
	) error {
		for _, item := range req.Itens {
			aprovado, ok := aprovadas[item.ID]
			if !ok {
				aprovado = item.Quantidade
			}
			itemResult := dto.AtendimentoItemResult{ItemID: item.ID, ProdutoID: item.ProdutoID, Aprovado: aprovado}
			if aprovado == 0 {
				result.Itens = append(result.Itens, itemResult)
				continue
			}

			// Lotes com saldo, em ordem de validade, com as linhas bloqueadas:
			// duas requisições concorrentes sobre o mesmo lote serializam aqui.
			disponiveis, err := lotes.ListarDisponiveisForUpdate(item.ProdutoID)
			if err != nil {
				return err
			}
			plano := domestoque.PlanejarFEFO(disponiveis, aprovado)
			if plano.Faltante > 0 && uc.politica == PoliticaAtomica {
				return fmt.Errorf("item %s: faltam %d unidades: %w", item.ID, plano.Faltante, domain.ErrEstoqueInsuficiente)
			}

			for _, ret := range plano.Retiradas {
				loteID := ret.Lote.ID
				usuario := atendidoPorID
				mov := &entity.MovimentoEstoque{
					ID:             uuid.New().String(),
					LoteID:         &loteID,
					AlmoxarifadoID: almox.ID,
					Quantidade:     domestoque.NormalizarQuantidade(entity.MovimentoSAIDA, ret.Quantidade),
					Tipo:           entity.MovimentoSAIDA,
					UsuarioID:      &usuario,
					Data:           now,
					Observacao:     fmt.Sprintf("Atendimento da Requisição #%s", req.ID),
				}
				if err := movimentos.Create(mov); err != nil {
					return err
				}
				if err := lotes.AjustarQuantidade(loteID, mov.Quantidade); err != nil {
					return err
				}
			}

			// Registra o efetivamente retirado, não o aprovado: com falta
			// parcial os dois divergem e o histórico precisa do real.
			atendido := plano.Atendido
			item.QuantidadeAtendida = &atendido
			if err := requisicoes.UpdateItem(item); err != nil {
				return err
			}

			itemResult.Atendido = plano.Atendido
			itemResult.Faltante = plano.Faltante
			itemResult.Movimentos = len(plano.Retiradas)
			result.Itens = append(result.Itens, itemResult)
		}

		req.Status = entity.RequisicaoATENDIDA
		req.AtendidoPorID = &atendidoPorID
		req.DataAtendimento = &now
		return requisicoes.Update(req)
	})
	if err != nil {
		return nil, err
	}
	result.Status = entity.RequisicaoATENDIDA
	return result, nil
}
