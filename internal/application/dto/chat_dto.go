package dto

import "time"

// ConversaResponse conversa com os participantes.
type ConversaResponse struct {
	ID              string    `json:"id"`
	ParticipanteIDs []string  `json:"participante_ids"`
	DataCriacao     time.Time `json:"data_criacao"`
}

// MensagemResponse mensagem do histórico (e payload broadcast no WebSocket).
type MensagemResponse struct {
	ID         string    `json:"id"`
	ConversaID string    `json:"conversa_id"`
	AutorID    string    `json:"autor_id"`
	AutorNome  string    `json:"autor_nome"`
	Texto      string    `json:"texto"`
	Timestamp  time.Time `json:"timestamp"`
}

// EnviarMensagemRequest payload recebido no WebSocket do chat.
type EnviarMensagemRequest struct {
	Message string `json:"message"`
}
