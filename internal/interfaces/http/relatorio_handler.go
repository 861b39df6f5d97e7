package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	apprelatorio "github.com/WelintondosSantos/Sistoque/internal/application/relatorio"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
)

// RelatorioHandler endpoints de relatório (consumo e posição de estoque).
type RelatorioHandler struct {
	uc *apprelatorio.UseCase
}

// NewRelatorioHandler constrói o handler.
func NewRelatorioHandler(uc *apprelatorio.UseCase) *RelatorioHandler {
	return &RelatorioHandler{uc: uc}
}

// Consumo godoc
// @Summary      Relatório de consumo por centro de custo
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Param        data_inicio       query  string  true   "data inicial (2006-01-02)"
// @Param        data_fim          query  string  true   "data final inclusiva (2006-01-02)"
// @Param        centros_de_custo  query  []string  false  "filtrar centros de custo"
// @Success      200  {object}  dto.ConsumoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios/consumo [get]
func (h *RelatorioHandler) Consumo(c *fiber.Ctx) error {
	var filtro dto.ConsumoFiltro
	if err := c.QueryParser(&filtro); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	resp, err := h.uc.Consumo(c.Context(), filtro)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_inicio e data_fim no formato 2006-01-02"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// ConsumoPDF godoc
// @Summary      Relatório de consumo em PDF
// @Tags         relatorios
// @Security     Bearer
// @Produce      application/pdf
// @Param        data_inicio       query  string  true   "data inicial (2006-01-02)"
// @Param        data_fim          query  string  true   "data final inclusiva (2006-01-02)"
// @Param        centros_de_custo  query  []string  false  "filtrar centros de custo"
// @Success      200  {file}  byte
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios/consumo/pdf [get]
func (h *RelatorioHandler) ConsumoPDF(c *fiber.Ctx) error {
	var filtro dto.ConsumoFiltro
	if err := c.QueryParser(&filtro); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	pdfBytes, err := h.uc.ConsumoPDF(c.Context(), filtro)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_inicio e data_fim no formato 2006-01-02"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="consumo.pdf"`)
	return c.Send(pdfBytes)
}

// PosicaoEstoque godoc
// @Summary      Posição corrente de estoque
// @Description  Saldo por produto com custo médio recalculado do razão e
//               marcação de estoque abaixo do mínimo.
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PosicaoEstoqueResponse
// @Router       /api/relatorios/posicao [get]
func (h *RelatorioHandler) PosicaoEstoque(c *fiber.Ctx) error {
	posicoes, err := h.uc.PosicaoEstoque(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(posicoes)
}
