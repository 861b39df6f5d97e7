package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	appestoque "github.com/WelintondosSantos/Sistoque/internal/application/estoque"
	apprelatorio "github.com/WelintondosSantos/Sistoque/internal/application/relatorio"
	apprequisicao "github.com/WelintondosSantos/Sistoque/internal/application/requisicao"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
)

// RequisicaoHandler endpoints do ciclo de vida de requisições e do atendimento.
type RequisicaoHandler struct {
	uc      *apprequisicao.UseCase
	atender *appestoque.AtenderRequisicaoUseCase
	pdf     apprelatorio.RequisicaoPDFGenerator
}

// NewRequisicaoHandler constrói o handler.
func NewRequisicaoHandler(uc *apprequisicao.UseCase, atender *appestoque.AtenderRequisicaoUseCase, pdf apprelatorio.RequisicaoPDFGenerator) *RequisicaoHandler {
	return &RequisicaoHandler{uc: uc, atender: atender, pdf: pdf}
}

func mapRequisicaoErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "requisição ou item não encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado ao recurso"})
	case errors.Is(err, domain.ErrSemCentroCusto):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "SEM_CENTRO_CUSTO", Message: "usuário sem centro de custo vinculado"})
	case errors.Is(err, domain.ErrStatusInvalido):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STATUS_INVALIDO", Message: "operação não permitida no status atual"})
	case errors.Is(err, domain.ErrRequisicaoVazia):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "REQUISICAO_VAZIA", Message: "requisição sem itens não pode ser finalizada"})
	case errors.Is(err, domain.ErrPeriodoFechado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PERIODO_FECHADO", Message: "período contábil fechado; reabra o fechamento antes de atender"})
	case errors.Is(err, domain.ErrEstoqueInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ESTOQUE_INSUFICIENTE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// AdicionarItem godoc
// @Summary      Adicionar item à requisição aberta
// @Description  Cria a requisição ABERTO do solicitante se não existir; produto
//               repetido acumula a quantidade.
// @Tags         requisicoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddItemRequest  true  "produto_id, quantidade"
// @Success      200   {object}  dto.RequisicaoResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/requisicoes/itens [post]
func (h *RequisicaoHandler) AdicionarItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	resp, err := h.uc.AdicionarItem(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapRequisicaoErr(c, err)
	}
	return c.JSON(resp)
}

// RemoverItem godoc
// @Summary      Remover item da requisição aberta
// @Tags         requisicoes
// @Security     Bearer
// @Param        item_id  path  string  true  "ID do item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisicoes/itens/{item_id} [delete]
func (h *RequisicaoHandler) RemoverItem(c *fiber.Ctx) error {
	if err := h.uc.RemoverItem(c.Context(), GetUserID(c), c.Params("item_id")); err != nil {
		return mapRequisicaoErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Finalizar godoc
// @Summary      Finalizar requisição (enviar ao almoxarifado)
// @Tags         requisicoes
// @Security     Bearer
// @Param        id  path  string  true  "ID da requisição"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/requisicoes/{id}/finalizar [post]
func (h *RequisicaoHandler) Finalizar(c *fiber.Ctx) error {
	if err := h.uc.Finalizar(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return mapRequisicaoErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancelar godoc
// @Summary      Cancelar requisição ABERTO
// @Tags         requisicoes
// @Security     Bearer
// @Param        id  path  string  true  "ID da requisição"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisicoes/{id}/cancelar [post]
func (h *RequisicaoHandler) Cancelar(c *fiber.Ctx) error {
	if err := h.uc.Cancelar(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return mapRequisicaoErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Atender godoc
// @Summary      Atender requisição FINALIZADA (FEFO)
// @Description  Consome os lotes em ordem de validade, um movimento SAIDA por
//               lote tocado, tudo em uma transação.
// @Tags         requisicoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da requisição"
// @Param        body  body  dto.AtenderRequest  false  "quantidades aprovadas por item (padrão: solicitadas)"
// @Success      200   {object}  dto.AtendimentoResult
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisicoes/{id}/atender [post]
func (h *RequisicaoHandler) Atender(c *fiber.Ctx) error {
	var in dto.AtenderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		}
	}
	result, err := h.atender.Atender(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return mapRequisicaoErr(c, err)
	}
	return c.JSON(result)
}

// Estornar godoc
// @Summary      Estornar requisição FINALIZADA
// @Description  Devolve a requisição ao solicitante como CANCELADA, sem
//               movimentar estoque.
// @Tags         requisicoes
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID da requisição"
// @Param        body  body  dto.EstornoRequest  false  "motivo (opcional)"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisicoes/{id}/estornar [post]
func (h *RequisicaoHandler) Estornar(c *fiber.Ctx) error {
	var in dto.EstornoRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		}
	}
	if err := h.uc.Estornar(c.Context(), GetUserID(c), c.Params("id"), in.Motivo); err != nil {
		return mapRequisicaoErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Detalhe godoc
// @Summary      Detalhar requisição
// @Tags         requisicoes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da requisição"
// @Success      200  {object}  dto.RequisicaoResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisicoes/{id} [get]
func (h *RequisicaoHandler) Detalhe(c *fiber.Ctx) error {
	resp, err := h.uc.Detalhe(c.Context(), c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return mapRequisicaoErr(c, err)
	}
	return c.JSON(resp)
}

// Pendentes godoc
// @Summary      Listar requisições pendentes de atendimento
// @Tags         requisicoes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamanho da página (padrão 20)"
// @Param        offset  query  int  false  "deslocamento"
// @Success      200  {array}  dto.RequisicaoResponse
// @Router       /api/requisicoes/pendentes [get]
func (h *RequisicaoHandler) Pendentes(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginação inválida"})
	}
	page.DefaultPage()
	reqs, err := h.uc.ListPendentes(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return mapRequisicaoErr(c, err)
	}
	return c.JSON(reqs)
}

// Minhas godoc
// @Summary      Listar as requisições do solicitante autenticado
// @Tags         requisicoes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamanho da página (padrão 20)"
// @Param        offset  query  int  false  "deslocamento"
// @Success      200  {array}  dto.RequisicaoResponse
// @Router       /api/requisicoes/minhas [get]
func (h *RequisicaoHandler) Minhas(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginação inválida"})
	}
	page.DefaultPage()
	reqs, err := h.uc.MinhasRequisicoes(c.Context(), GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return mapRequisicaoErr(c, err)
	}
	return c.JSON(reqs)
}

// PDF godoc
// @Summary      Espelho da requisição em PDF
// @Tags         requisicoes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da requisição"
// @Success      200  {file}  byte
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisicoes/{id}/pdf [get]
func (h *RequisicaoHandler) PDF(c *fiber.Ctx) error {
	resp, err := h.uc.Detalhe(c.Context(), c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return mapRequisicaoErr(c, err)
	}
	pdfBytes, err := h.pdf.GerarRequisicaoPDF(c.Context(), *resp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="requisicao-`+resp.ID+`.pdf"`)
	return c.Send(pdfBytes)
}
