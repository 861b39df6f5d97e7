package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	appestoque "github.com/WelintondosSantos/Sistoque/internal/application/estoque"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
)

// FechamentoHandler endpoints do fechamento mensal de estoque (admin).
type FechamentoHandler struct {
	uc *appestoque.FechamentoUseCase
}

// NewFechamentoHandler constrói o handler.
func NewFechamentoHandler(uc *appestoque.FechamentoUseCase) *FechamentoHandler {
	return &FechamentoHandler{uc: uc}
}

func toFechamentoResponse(f *entity.FechamentoMensal) dto.FechamentoResponse {
	return dto.FechamentoResponse{
		ID:               f.ID,
		Mes:              f.Mes,
		Ano:              f.Ano,
		ResponsavelID:    f.ResponsavelID,
		Status:           f.Status,
		DataFechamento:   f.DataFechamento,
		CanceladoPorID:   f.CanceladoPorID,
		DataCancelamento: f.DataCancelamento,
	}
}

// Fechar godoc
// @Summary      Fechar o próximo período mensal
// @Description  Materializa o snapshot de posição por produto com saldo e
//               passa a bloquear movimentações no período.
// @Tags         fechamentos
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.FechamentoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fechamentos [post]
func (h *FechamentoHandler) Fechar(c *fiber.Ctx) error {
	fechamento, err := h.uc.Fechar(c.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrFechamentoDuplicado) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "FECHAMENTO_DUPLICADO", Message: "já existe fechamento ativo para o período"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toFechamentoResponse(fechamento))
}

// Reabrir godoc
// @Summary      Reabrir o último período fechado
// @Description  Cancela o fechamento ATIVO mais recente mantendo o snapshot
//               como histórico.
// @Tags         fechamentos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FechamentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fechamentos/reabrir [post]
func (h *FechamentoHandler) Reabrir(c *fiber.Ctx) error {
	fechamento, err := h.uc.Reabrir(c.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nenhum fechamento ativo para reabrir"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toFechamentoResponse(fechamento))
}

// List godoc
// @Summary      Listar fechamentos
// @Tags         fechamentos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamanho da página (padrão 20)"
// @Param        offset  query  int  false  "deslocamento"
// @Success      200  {array}  dto.FechamentoResponse
// @Router       /api/fechamentos [get]
func (h *FechamentoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginação inválida"})
	}
	page.DefaultPage()
	fechamentos, err := h.uc.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.FechamentoResponse, 0, len(fechamentos))
	for _, f := range fechamentos {
		out = append(out, toFechamentoResponse(f))
	}
	return c.JSON(out)
}

// Posicoes godoc
// @Summary      Posições do snapshot de um fechamento
// @Tags         fechamentos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do fechamento"
// @Success      200  {array}  dto.PosicaoMensalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fechamentos/{id}/posicoes [get]
func (h *FechamentoHandler) Posicoes(c *fiber.Ctx) error {
	posicoes, err := h.uc.Posicoes(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fechamento não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PosicaoMensalResponse, 0, len(posicoes))
	for _, p := range posicoes {
		out = append(out, dto.PosicaoMensalResponse{
			ProdutoID:       p.ProdutoID,
			QuantidadeFinal: p.QuantidadeFinal,
			CustoMedioFinal: p.CustoMedioFinal,
			ValorTotalFinal: p.ValorTotalFinal,
		})
	}
	return c.JSON(out)
}
