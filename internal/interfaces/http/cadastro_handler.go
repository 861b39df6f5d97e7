package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/application/usecase"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
)

// CadastroHandler endpoints dos cadastros de apoio: almoxarifados, centros de
// custo e categorias.
type CadastroHandler struct {
	uc *usecase.CadastroUseCase
}

// NewCadastroHandler constrói o handler.
func NewCadastroHandler(uc *usecase.CadastroUseCase) *CadastroHandler {
	return &CadastroHandler{uc: uc}
}

func mapCadastroErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso não encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "registro já cadastrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// CriarAlmoxarifado godoc
// @Summary      Cadastrar almoxarifado (admin)
// @Tags         cadastros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAlmoxarifadoRequest  true  "nome, codigo, localizacao"
// @Success      201
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/almoxarifados [post]
func (h *CadastroHandler) CriarAlmoxarifado(c *fiber.Ctx) error {
	var in dto.CreateAlmoxarifadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	a, err := h.uc.CriarAlmoxarifado(c.Context(), in)
	if err != nil {
		return mapCadastroErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// ListarAlmoxarifados godoc
// @Summary      Listar almoxarifados
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Success      200
// @Router       /api/almoxarifados [get]
func (h *CadastroHandler) ListarAlmoxarifados(c *fiber.Ctx) error {
	almox, err := h.uc.ListarAlmoxarifados(c.Context())
	if err != nil {
		return mapCadastroErr(c, err)
	}
	return c.JSON(almox)
}

// CriarCentroCusto godoc
// @Summary      Cadastrar centro de custo (admin)
// @Tags         cadastros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCentroCustoRequest  true  "nome, parent_id opcional"
// @Success      201
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/centros-custo [post]
func (h *CadastroHandler) CriarCentroCusto(c *fiber.Ctx) error {
	var in dto.CreateCentroCustoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	cc, err := h.uc.CriarCentroCusto(c.Context(), in)
	if err != nil {
		return mapCadastroErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cc)
}

// ListarCentrosCusto godoc
// @Summary      Listar centros de custo
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Success      200
// @Router       /api/centros-custo [get]
func (h *CadastroHandler) ListarCentrosCusto(c *fiber.Ctx) error {
	centros, err := h.uc.ListarCentrosCusto(c.Context())
	if err != nil {
		return mapCadastroErr(c, err)
	}
	return c.JSON(centros)
}

// CriarCategoria godoc
// @Summary      Cadastrar categoria (admin)
// @Tags         cadastros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoriaRequest  true  "nome, descricao"
// @Success      201
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categorias [post]
func (h *CadastroHandler) CriarCategoria(c *fiber.Ctx) error {
	var in dto.CreateCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	cat, err := h.uc.CriarCategoria(c.Context(), in.Nome, in.Descricao)
	if err != nil {
		return mapCadastroErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// ListarCategorias godoc
// @Summary      Listar categorias
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Success      200
// @Router       /api/categorias [get]
func (h *CadastroHandler) ListarCategorias(c *fiber.Ctx) error {
	categorias, err := h.uc.ListarCategorias(c.Context())
	if err != nil {
		return mapCadastroErr(c, err)
	}
	return c.JSON(categorias)
}
