// Package chat implementa o chat interno: conversas 1:1 persistidas e o
// registro de mensagens consumido pelo hub WebSocket.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// UseCase casos de uso do chat.
type UseCase struct {
	chatRepo    repository.ChatRepository
	usuarioRepo repository.UsuarioRepository
	agora       func() time.Time
}

// NewUseCase constrói o caso de uso.
func NewUseCase(chatRepo repository.ChatRepository, usuarioRepo repository.UsuarioRepository) *UseCase {
	return &UseCase{chatRepo: chatRepo, usuarioRepo: usuarioRepo, agora: time.Now}
}

// MinhasConversas lista as conversas das quais o usuário participa.
func (uc *UseCase) MinhasConversas(ctx context.Context, usuarioID string) ([]dto.ConversaResponse, error) {
	conversas, err := uc.chatRepo.ListConversasDoUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConversaResponse, 0, len(conversas))
	for _, c := range conversas {
		out = append(out, dto.ConversaResponse{ID: c.ID, ParticipanteIDs: c.ParticipanteIDs, DataCriacao: c.DataCriacao})
	}
	return out, nil
}

// Contactaveis lista com quem o usuário pode iniciar conversa:
// almoxarifes/admins falam com qualquer um; requisitantes só com o almoxarifado.
func (uc *UseCase) Contactaveis(ctx context.Context, usuarioID string) ([]dto.UsuarioResponse, error) {
	usuario, err := uc.usuarioRepo.GetByID(usuarioID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	var candidatos []*entity.Usuario
	switch usuario.Role {
	case entity.RoleAdmin, entity.RoleAlmoxarife:
		candidatos, err = uc.usuarioRepo.ListByRoles(entity.RoleAdmin, entity.RoleAlmoxarife, entity.RoleRequisitante)
	default:
		candidatos, err = uc.usuarioRepo.ListByRoles(entity.RoleAdmin, entity.RoleAlmoxarife)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(candidatos))
	for _, c := range candidatos {
		if c.ID == usuarioID {
			continue
		}
		out = append(out, dto.UsuarioResponse{ID: c.ID, Matricula: c.Matricula, Nome: c.Nome, Role: c.Role, Ativo: c.Ativo, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// IniciarConversa devolve a conversa 1:1 existente com o outro usuário ou
// cria uma nova, respeitando as regras de contato.
func (uc *UseCase) IniciarConversa(ctx context.Context, usuarioID, outroID string) (*dto.ConversaResponse, error) {
	if usuarioID == outroID {
		return nil, domain.ErrInvalidInput
	}
	usuario, err := uc.usuarioRepo.GetByID(usuarioID)
	if err != nil {
		return nil, err
	}
	outro, err := uc.usuarioRepo.GetByID(outroID)
	if err != nil {
		return nil, err
	}
	if usuario == nil || outro == nil {
		return nil, domain.ErrUserNotFound
	}
	// Requisitante só abre conversa com o almoxarifado.
	if usuario.Role == entity.RoleRequisitante &&
		outro.Role != entity.RoleAdmin && outro.Role != entity.RoleAlmoxarife {
		return nil, domain.ErrForbidden
	}

	conversa, err := uc.chatRepo.GetConversaEntre(usuarioID, outroID)
	if err != nil {
		return nil, err
	}
	if conversa == nil {
		conversa = &entity.Conversa{
			ID:              uuid.New().String(),
			ParticipanteIDs: []string{usuarioID, outroID},
			DataCriacao:     uc.agora(),
		}
		if err := uc.chatRepo.CreateConversa(conversa); err != nil {
			return nil, err
		}
	}
	return &dto.ConversaResponse{ID: conversa.ID, ParticipanteIDs: conversa.ParticipanteIDs, DataCriacao: conversa.DataCriacao}, nil
}

// Historico devolve as mensagens da conversa em ordem cronológica.
// Só participantes enxergam o histórico.
func (uc *UseCase) Historico(ctx context.Context, conversaID, usuarioID string, limit int) ([]dto.MensagemResponse, error) {
	ok, err := uc.chatRepo.IsParticipante(conversaID, usuarioID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 100
	}
	mensagens, err := uc.chatRepo.ListMensagens(conversaID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MensagemResponse, 0, len(mensagens))
	for _, m := range mensagens {
		out = append(out, toMensagemResponse(m))
	}
	return out, nil
}

// RegistrarMensagem persiste uma mensagem e devolve a representação a ser
// difundida na sala. Usado pelo hub WebSocket a cada frame recebido.
func (uc *UseCase) RegistrarMensagem(ctx context.Context, conversaID, autorID, texto string) (*dto.MensagemResponse, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil, domain.ErrInvalidInput
	}
	ok, err := uc.chatRepo.IsParticipante(conversaID, autorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	autor, err := uc.usuarioRepo.GetByID(autorID)
	if err != nil {
		return nil, err
	}
	if autor == nil {
		return nil, domain.ErrUserNotFound
	}
	mensagem := &entity.Mensagem{
		ID:         uuid.New().String(),
		ConversaID: conversaID,
		AutorID:    autorID,
		AutorNome:  autor.Nome,
		Texto:      texto,
		Timestamp:  uc.agora(),
	}
	if err := uc.chatRepo.CreateMensagem(mensagem); err != nil {
		return nil, err
	}
	resp := toMensagemResponse(mensagem)
	return &resp, nil
}

func toMensagemResponse(m *entity.Mensagem) dto.MensagemResponse {
	return dto.MensagemResponse{
		ID:         m.ID,
		ConversaID: m.ConversaID,
		AutorID:    m.AutorID,
		AutorNome:  m.AutorNome,
		Texto:      m.Texto,
		Timestamp:  m.Timestamp,
	}
}
