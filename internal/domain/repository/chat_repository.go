package repository

import "github.com/WelintondosSantos/Sistoque/internal/domain/entity"

// ChatRepository é o porto de persistência do chat interno.
type ChatRepository interface {
	CreateConversa(c *entity.Conversa) error
	GetConversaByID(id string) (*entity.Conversa, error)
	// GetConversaEntre devolve a conversa 1:1 existente entre dois usuários, se houver.
	GetConversaEntre(usuarioA, usuarioB string) (*entity.Conversa, error)
	ListConversasDoUsuario(usuarioID string) ([]*entity.Conversa, error)
	IsParticipante(conversaID, usuarioID string) (bool, error)

	CreateMensagem(m *entity.Mensagem) error
	// ListMensagens devolve o histórico em ordem cronológica.
	ListMensagens(conversaID string, limit int) ([]*entity.Mensagem, error)
}
