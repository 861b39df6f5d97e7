// Package requisicao implementa o ciclo de vida das requisições de material:
// ABERTO -> FINALIZADA -> ATENDIDA | CANCELADA. O atendimento em si (FEFO)
// vive em application/estoque.
package requisicao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// UseCase casos de uso de requisição.
type UseCase struct {
	reqRepo     repository.RequisicaoRepository
	produtoRepo repository.ProdutoRepository
	usuarioRepo repository.UsuarioRepository
	loteRepo    repository.LoteRepository
	agora       func() time.Time
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	reqRepo repository.RequisicaoRepository,
	produtoRepo repository.ProdutoRepository,
	usuarioRepo repository.UsuarioRepository,
	loteRepo repository.LoteRepository,
) *UseCase {
	return &UseCase{
		reqRepo:     reqRepo,
		produtoRepo: produtoRepo,
		usuarioRepo: usuarioRepo,
		loteRepo:    loteRepo,
		agora:       time.Now,
	}
}

// AdicionarItem adiciona um produto à requisição ABERTO do solicitante,
// criando a requisição se não existir. Produto repetido acumula a quantidade.
// O solicitante precisa ter centro de custo associado.
func (uc *UseCase) AdicionarItem(ctx context.Context, solicitanteID string, in dto.AddItemRequest) (*dto.RequisicaoResponse, error) {
	if in.ProdutoID == "" || in.Quantidade <= 0 {
		return nil, domain.ErrInvalidInput
	}
	usuario, err := uc.usuarioRepo.GetByID(solicitanteID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if usuario.CentroCustoID == nil {
		return nil, domain.ErrSemCentroCusto
	}
	produto, err := uc.produtoRepo.GetByID(in.ProdutoID)
	if err != nil {
		return nil, err
	}
	if produto == nil || !produto.Ativo {
		return nil, domain.ErrNotFound
	}

	req, err := uc.reqRepo.GetAbertaPorSolicitante(solicitanteID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &entity.Requisicao{
			ID:            uuid.New().String(),
			SolicitanteID: solicitanteID,
			CentroCustoID: *usuario.CentroCustoID,
			Status:        entity.RequisicaoABERTO,
			DataCriacao:   uc.agora(),
		}
		if err := uc.reqRepo.Create(req); err != nil {
			return nil, err
		}
	}

	item, err := uc.reqRepo.GetItem(req.ID, in.ProdutoID)
	if err != nil {
		return nil, err
	}
	if item != nil {
		item.Quantidade += in.Quantidade
		if err := uc.reqRepo.UpdateItem(item); err != nil {
			return nil, err
		}
	} else {
		item = &entity.ItemRequisicao{
			ID:           uuid.New().String(),
			RequisicaoID: req.ID,
			ProdutoID:    in.ProdutoID,
			Quantidade:   in.Quantidade,
		}
		if err := uc.reqRepo.AddItem(item); err != nil {
			return nil, err
		}
	}
	return uc.Detalhe(ctx, req.ID, solicitanteID, usuario.Role)
}

// RemoverItem remove um item: só o solicitante, só com a requisição ABERTO.
func (uc *UseCase) RemoverItem(ctx context.Context, solicitanteID, itemID string) error {
	item, err := uc.reqRepo.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	req, err := uc.reqRepo.GetByID(item.RequisicaoID)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if req.SolicitanteID != solicitanteID {
		return domain.ErrForbidden
	}
	if req.Status != entity.RequisicaoABERTO {
		return domain.ErrStatusInvalido
	}
	return uc.reqRepo.DeleteItem(itemID)
}

// Finalizar envia a requisição ao almoxarifado: ABERTO -> FINALIZADA.
// Requisição vazia não pode ser finalizada.
func (uc *UseCase) Finalizar(ctx context.Context, solicitanteID, requisicaoID string) error {
	req, err := uc.reqRepo.GetByID(requisicaoID)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if req.SolicitanteID != solicitanteID {
		return domain.ErrForbidden
	}
	if req.Status != entity.RequisicaoABERTO {
		return domain.ErrStatusInvalido
	}
	if len(req.Itens) == 0 {
		return domain.ErrRequisicaoVazia
	}
	now := uc.agora()
	req.Status = entity.RequisicaoFINALIZADA
	req.DataFinalizacao = &now
	return uc.reqRepo.Update(req)
}

// Cancelar cancela a própria requisição ainda ABERTO.
func (uc *UseCase) Cancelar(ctx context.Context, solicitanteID, requisicaoID string) error {
	req, err := uc.reqRepo.GetByID(requisicaoID)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if req.SolicitanteID != solicitanteID {
		return domain.ErrForbidden
	}
	if req.Status != entity.RequisicaoABERTO {
		return domain.ErrStatusInvalido
	}
	req.Status = entity.RequisicaoCANCELADA
	return uc.reqRepo.Update(req)
}

// Estornar cancela uma requisição FINALIZADA (ação do almoxarifado).
// Nenhum movimento de estoque é gerado: nada saiu ainda.
func (uc *UseCase) Estornar(ctx context.Context, estornadoPorID, requisicaoID, motivo string) error {
	req, err := uc.reqRepo.GetByID(requisicaoID)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if req.Status != entity.RequisicaoFINALIZADA {
		return domain.ErrStatusInvalido
	}
	if motivo == "" {
		motivo = "Cancelamento realizado pelo almoxarifado."
	}
	now := uc.agora()
	req.Status = entity.RequisicaoCANCELADA
	req.EstornadoPorID = &estornadoPorID
	req.DataEstorno = &now
	req.MotivoEstorno = motivo
	return uc.reqRepo.Update(req)
}

// Detalhe carrega a requisição com itens e valores (custo médio corrente).
// Visível para o solicitante e para almoxarifes/admins.
func (uc *UseCase) Detalhe(ctx context.Context, requisicaoID, usuarioID, role string) (*dto.RequisicaoResponse, error) {
	req, err := uc.reqRepo.GetByID(requisicaoID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.SolicitanteID != usuarioID && role != entity.RoleAdmin && role != entity.RoleAlmoxarife {
		return nil, domain.ErrForbidden
	}
	return uc.toResponse(req)
}

// ListPendentes lista requisições FINALIZADAs aguardando atendimento,
// em ordem de finalização.
func (uc *UseCase) ListPendentes(ctx context.Context, limit, offset int) ([]*dto.RequisicaoResponse, error) {
	reqs, err := uc.reqRepo.ListPendentes(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(reqs)
}

// MinhasRequisicoes lista as requisições do usuário.
func (uc *UseCase) MinhasRequisicoes(ctx context.Context, solicitanteID string, limit, offset int) ([]*dto.RequisicaoResponse, error) {
	reqs, err := uc.reqRepo.ListBySolicitante(solicitanteID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(reqs)
}

func (uc *UseCase) toResponses(reqs []*entity.Requisicao) ([]*dto.RequisicaoResponse, error) {
	out := make([]*dto.RequisicaoResponse, 0, len(reqs))
	for _, req := range reqs {
		resp, err := uc.toResponse(req)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (uc *UseCase) toResponse(req *entity.Requisicao) (*dto.RequisicaoResponse, error) {
	resp := &dto.RequisicaoResponse{
		ID:              req.ID,
		SolicitanteID:   req.SolicitanteID,
		CentroCustoID:   req.CentroCustoID,
		Status:          req.Status,
		DataCriacao:     req.DataCriacao,
		DataFinalizacao: req.DataFinalizacao,
		AtendidoPorID:   req.AtendidoPorID,
		DataAtendimento: req.DataAtendimento,
		MotivoEstorno:   req.MotivoEstorno,
		Itens:           []dto.ItemRequisicaoResponse{},
	}
	for _, item := range req.Itens {
		produto, err := uc.produtoRepo.GetByID(item.ProdutoID)
		if err != nil {
			return nil, err
		}
		custo, err := uc.loteRepo.CustoMedioAte(item.ProdutoID, uc.agora())
		if err != nil {
			return nil, err
		}
		valorSolic := custo.Mul(decimal.NewFromInt(item.Quantidade))
		valorAtend := decimal.Zero
		if item.QuantidadeAtendida != nil {
			valorAtend = custo.Mul(decimal.NewFromInt(*item.QuantidadeAtendida))
		}
		itemResp := dto.ItemRequisicaoResponse{
			ID:                 item.ID,
			ProdutoID:          item.ProdutoID,
			Quantidade:         item.Quantidade,
			QuantidadeAtendida: item.QuantidadeAtendida,
			ValorSolicitado:    valorSolic,
			ValorAtendido:      valorAtend,
		}
		if produto != nil {
			itemResp.NomeProduto = produto.NomeProduto
			itemResp.UnidadeMedida = produto.UnidadeMedida
		}
		resp.Itens = append(resp.Itens, itemResp)
		resp.ValorTotalSolicitado = resp.ValorTotalSolicitado.Add(valorSolic)
		resp.ValorTotalAtendido = resp.ValorTotalAtendido.Add(valorAtend)
	}
	return resp, nil
}
