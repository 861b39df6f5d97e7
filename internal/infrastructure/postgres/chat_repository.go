package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

var _ repository.ChatRepository = (*ChatRepo)(nil)

// ChatRepo implementação do porto ChatRepository sobre PostgreSQL.
// Participantes ficam em tabela própria (conversa_participantes).
type ChatRepo struct {
	q Querier
}

// NewChatRepository constrói o adaptador do chat. Passar pool ou tx (Querier).
func NewChatRepository(q Querier) *ChatRepo {
	return &ChatRepo{q: q}
}

// CreateConversa persiste a conversa e seus participantes.
func (r *ChatRepo) CreateConversa(c *entity.Conversa) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO conversas (id, data_criacao) VALUES ($1, $2)`, c.ID, c.DataCriacao)
	if err != nil {
		return fmt.Errorf("insert conversa: %w", err)
	}
	for _, usuarioID := range c.ParticipanteIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO conversa_participantes (conversa_id, usuario_id) VALUES ($1, $2)`,
			c.ID, usuarioID)
		if err != nil {
			return fmt.Errorf("insert participante: %w", err)
		}
	}
	return nil
}

// GetConversaByID obtém uma conversa com participantes.
func (r *ChatRepo) GetConversaByID(id string) (*entity.Conversa, error) {
	var c entity.Conversa
	err := r.q.QueryRow(context.Background(),
		`SELECT id, data_criacao FROM conversas WHERE id = $1`, id).
		Scan(&c.ID, &c.DataCriacao)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversa: %w", err)
	}
	if err := r.carregarParticipantes(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetConversaEntre devolve a conversa 1:1 existente entre dois usuários, se houver.
func (r *ChatRepo) GetConversaEntre(usuarioA, usuarioB string) (*entity.Conversa, error) {
	query := `
		SELECT c.id, c.data_criacao
		FROM conversas c
		WHERE EXISTS (SELECT 1 FROM conversa_participantes WHERE conversa_id = c.id AND usuario_id = $1)
		  AND EXISTS (SELECT 1 FROM conversa_participantes WHERE conversa_id = c.id AND usuario_id = $2)
		  AND (SELECT COUNT(*) FROM conversa_participantes WHERE conversa_id = c.id) = 2
		LIMIT 1`
	var c entity.Conversa
	err := r.q.QueryRow(context.Background(), query, usuarioA, usuarioB).Scan(&c.ID, &c.DataCriacao)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversa entre: %w", err)
	}
	if err := r.carregarParticipantes(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListConversasDoUsuario lista as conversas do usuário, mais recentes primeiro.
func (r *ChatRepo) ListConversasDoUsuario(usuarioID string) ([]*entity.Conversa, error) {
	query := `
		SELECT c.id, c.data_criacao
		FROM conversas c
		JOIN conversa_participantes cp ON cp.conversa_id = c.id
		WHERE cp.usuario_id = $1
		ORDER BY c.data_criacao DESC`
	rows, err := r.q.Query(context.Background(), query, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("list conversas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Conversa
	for rows.Next() {
		var c entity.Conversa
		if err := rows.Scan(&c.ID, &c.DataCriacao); err != nil {
			return nil, fmt.Errorf("scan conversa: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range out {
		if err := r.carregarParticipantes(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// IsParticipante informa se o usuário participa da conversa.
func (r *ChatRepo) IsParticipante(conversaID, usuarioID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM conversa_participantes WHERE conversa_id = $1 AND usuario_id = $2)`,
		conversaID, usuarioID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("verificar participante: %w", err)
	}
	return ok, nil
}

func (r *ChatRepo) carregarParticipantes(c *entity.Conversa) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT usuario_id FROM conversa_participantes WHERE conversa_id = $1 ORDER BY usuario_id`, c.ID)
	if err != nil {
		return fmt.Errorf("list participantes: %w", err)
	}
	defer rows.Close()

	c.ParticipanteIDs = nil
	for rows.Next() {
		var usuarioID string
		if err := rows.Scan(&usuarioID); err != nil {
			return fmt.Errorf("scan participante: %w", err)
		}
		c.ParticipanteIDs = append(c.ParticipanteIDs, usuarioID)
	}
	return rows.Err()
}

// CreateMensagem persiste uma mensagem.
func (r *ChatRepo) CreateMensagem(m *entity.Mensagem) error {
	query := `
		INSERT INTO mensagens (id, conversa_id, autor_id, autor_nome, texto, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ConversaID, m.AutorID, m.AutorNome, m.Texto, m.Timestamp)
	if err != nil {
		return fmt.Errorf("insert mensagem: %w", err)
	}
	return nil
}

// ListMensagens devolve as últimas mensagens da conversa em ordem cronológica.
func (r *ChatRepo) ListMensagens(conversaID string, limit int) ([]*entity.Mensagem, error) {
	// Pega as N mais recentes e reordena para exibição cronológica.
	query := `
		SELECT id, conversa_id, autor_id, autor_nome, texto, timestamp FROM (
			SELECT id, conversa_id, autor_id, autor_nome, texto, timestamp
			FROM mensagens WHERE conversa_id = $1
			ORDER BY timestamp DESC LIMIT $2
		) ultimas ORDER BY timestamp`
	rows, err := r.q.Query(context.Background(), query, conversaID, limit)
	if err != nil {
		return nil, fmt.Errorf("list mensagens: %w", err)
	}
	defer rows.Close()

	var out []*entity.Mensagem
	for rows.Next() {
		var m entity.Mensagem
		if err := rows.Scan(&m.ID, &m.ConversaID, &m.AutorID, &m.AutorNome, &m.Texto, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan mensagem: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
