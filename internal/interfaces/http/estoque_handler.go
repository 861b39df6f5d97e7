package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	appestoque "github.com/WelintondosSantos/Sistoque/internal/application/estoque"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
)

// EstoqueHandler endpoints do motor de estoque: entradas, ajustes e extratos.
type EstoqueHandler struct {
	registrar *appestoque.RegistrarMovimentoUseCase
	consulta  *appestoque.ConsultaUseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(registrar *appestoque.RegistrarMovimentoUseCase, consulta *appestoque.ConsultaUseCase) *EstoqueHandler {
	return &EstoqueHandler{registrar: registrar, consulta: consulta}
}

// mapEstoqueErr converte erros do domínio de estoque para resposta HTTP.
func mapEstoqueErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso não encontrado"})
	case errors.Is(err, domain.ErrPeriodoFechado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PERIODO_FECHADO", Message: "período contábil fechado; reabra o fechamento antes de movimentar"})
	case errors.Is(err, domain.ErrSaldoNegativo):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SALDO_NEGATIVO", Message: "movimento deixaria o lote com saldo negativo"})
	case errors.Is(err, domain.ErrEstoqueInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ESTOQUE_INSUFICIENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrNenhumAlmoxarifado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SEM_ALMOXARIFADO", Message: "nenhum almoxarifado ativo cadastrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// RegistrarEntrada godoc
// @Summary      Registrar entrada de material
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaRequest  true  "produto_id, quantidade, valor_unitario, data_validade"
// @Success      201   {object}  dto.MovimentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/estoque/entradas [post]
func (h *EstoqueHandler) RegistrarEntrada(c *fiber.Ctx) error {
	var in dto.EntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mov, err := h.registrar.RegistrarEntrada(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapEstoqueErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovimentoResponse{
		ID:             mov.ID,
		LoteID:         mov.LoteID,
		AlmoxarifadoID: mov.AlmoxarifadoID,
		Tipo:           mov.Tipo,
		Quantidade:     mov.Quantidade,
		ValorUnitario:  mov.ValorUnitario,
		Data:           mov.Data,
		Observacao:     mov.Observacao,
	})
}

// RegistrarAjuste godoc
// @Summary      Registrar ajuste de inventário (admin)
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteRequest  true  "lote_id, quantidade assinada, observacao"
// @Success      201   {object}  dto.MovimentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/estoque/ajustes [post]
func (h *EstoqueHandler) RegistrarAjuste(c *fiber.Ctx) error {
	var in dto.AjusteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mov, err := h.registrar.RegistrarAjuste(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapEstoqueErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovimentoResponse{
		ID:             mov.ID,
		LoteID:         mov.LoteID,
		AlmoxarifadoID: mov.AlmoxarifadoID,
		Tipo:           mov.Tipo,
		Quantidade:     mov.Quantidade,
		ValorUnitario:  mov.ValorUnitario,
		Data:           mov.Data,
		Observacao:     mov.Observacao,
	})
}

// Extrato godoc
// @Summary      Extrato de movimentos de um produto
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        produto_id  path   string  true   "ID do produto"
// @Param        from        query  string  false  "data inicial (2006-01-02)"
// @Param        to          query  string  false  "data final (2006-01-02)"
// @Success      200  {array}  dto.MovimentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estoque/produtos/{produto_id}/movimentos [get]
func (h *EstoqueHandler) Extrato(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginação inválida"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from no formato 2006-01-02"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to no formato 2006-01-02"})
		}
		fimDia := t.AddDate(0, 0, 1).Add(-time.Second)
		to = &fimDia
	}

	movs, err := h.consulta.Extrato(c.Context(), c.Params("produto_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return mapEstoqueErr(c, err)
	}
	return c.JSON(movs)
}

// MovimentosDoLote godoc
// @Summary      Movimentos de um lote (replay do saldo)
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        lote_id  path  string  true  "ID do lote"
// @Success      200  {array}  dto.MovimentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estoque/lotes/{lote_id}/movimentos [get]
func (h *EstoqueHandler) MovimentosDoLote(c *fiber.Ctx) error {
	movs, err := h.consulta.MovimentosDoLote(c.Context(), c.Params("lote_id"))
	if err != nil {
		return mapEstoqueErr(c, err)
	}
	return c.JSON(movs)
}
