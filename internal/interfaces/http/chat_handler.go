package http

import (
	"context"
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	appchat "github.com/WelintondosSantos/Sistoque/internal/application/chat"
	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/infrastructure/ws"
	"github.com/WelintondosSantos/Sistoque/pkg/jwt"
	"github.com/WelintondosSantos/Sistoque/pkg/logger"
)

// ChatHandler endpoints REST do chat interno e a conexão WebSocket.
type ChatHandler struct {
	uc  *appchat.UseCase
	hub *ws.Hub
	log *logger.Logger
}

// NewChatHandler constrói o handler.
func NewChatHandler(uc *appchat.UseCase, hub *ws.Hub, log *logger.Logger) *ChatHandler {
	return &ChatHandler{uc: uc, hub: hub, log: log}
}

func mapChatErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conversa ou usuário não encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sem permissão nesta conversa"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Conversas godoc
// @Summary      Listar conversas do usuário autenticado
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConversaResponse
// @Router       /api/chat/conversas [get]
func (h *ChatHandler) Conversas(c *fiber.Ctx) error {
	conversas, err := h.uc.MinhasConversas(c.Context(), GetUserID(c))
	if err != nil {
		return mapChatErr(c, err)
	}
	return c.JSON(conversas)
}

// Contactaveis godoc
// @Summary      Listar usuários com quem se pode conversar
// @Description  Requisitantes só enxergam o almoxarifado; almoxarifes e admins
//               enxergam todos.
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UsuarioResponse
// @Router       /api/chat/contactaveis [get]
func (h *ChatHandler) Contactaveis(c *fiber.Ctx) error {
	usuarios, err := h.uc.Contactaveis(c.Context(), GetUserID(c))
	if err != nil {
		return mapChatErr(c, err)
	}
	return c.JSON(usuarios)
}

// Iniciar godoc
// @Summary      Iniciar (ou recuperar) conversa 1:1
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        usuario_id  path  string  true  "ID do outro participante"
// @Success      200  {object}  dto.ConversaResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/chat/conversas/com/{usuario_id} [post]
func (h *ChatHandler) Iniciar(c *fiber.Ctx) error {
	conversa, err := h.uc.IniciarConversa(c.Context(), GetUserID(c), c.Params("usuario_id"))
	if err != nil {
		return mapChatErr(c, err)
	}
	return c.JSON(conversa)
}

// Historico godoc
// @Summary      Histórico de mensagens de uma conversa
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID da conversa"
// @Param        limit  query  int     false  "quantidade de mensagens (padrão 100)"
// @Success      200  {array}  dto.MensagemResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/chat/conversas/{id}/mensagens [get]
func (h *ChatHandler) Historico(c *fiber.Ctx) error {
	mensagens, err := h.uc.Historico(c.Context(), c.Params("id"), GetUserID(c), c.QueryInt("limit"))
	if err != nil {
		return mapChatErr(c, err)
	}
	return c.JSON(mensagens)
}

// WebSocketUpgrade valida o upgrade e autentica pelo token em query string
// (?token=...), já que browsers não mandam Authorization em WebSocket.
func WebSocketUpgrade(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		token := c.Query("token")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token obrigatório na query string"})
		}
		userID, centroCustoID, role, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCentroCustoID, centroCustoID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// WebSocket é o loop da conexão de chat: registra a conexão na sala da
// conversa, lê mensagens do cliente, persiste cada uma e faz o broadcast.
func (h *ChatHandler) WebSocket(conn *websocket.Conn) {
	conversaID := conn.Params("conversa_id")
	usuarioID, _ := conn.Locals(LocalUserID).(string)

	// Recusa a conexão se o usuário não participa da conversa.
	if _, err := h.uc.Historico(context.Background(), conversaID, usuarioID, 1); err != nil {
		h.log.Warn().Err(err).Str("conversa_id", conversaID).Str("usuario_id", usuarioID).Msg("conexão WebSocket recusada")
		_ = conn.Close()
		return
	}

	cliente := h.hub.Register(conversaID, conn)
	defer func() {
		h.hub.Unregister(conversaID, cliente)
		_ = cliente.Close()
	}()

	for {
		var in dto.EnviarMensagemRequest
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		msg, err := h.uc.RegistrarMensagem(context.Background(), conversaID, usuarioID, in.Message)
		if err != nil {
			// Escreve pelo Cliente para não concorrer com o broadcast.
			_ = cliente.Send(dto.ErrorResponse{Code: "MENSAGEM", Message: err.Error()})
			continue
		}
		h.hub.Broadcast(*msg)
	}
}
