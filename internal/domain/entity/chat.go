package entity

import "time"

// Conversa é uma sala de chat entre dois ou mais participantes.
type Conversa struct {
	ID             string
	ParticipanteIDs []string
	DataCriacao    time.Time
}

// Mensagem é uma mensagem persistida dentro de uma Conversa.
type Mensagem struct {
	ID         string
	ConversaID string
	AutorID    string
	AutorNome  string // denormalizado para exibição no histórico
	Texto      string
	Timestamp  time.Time
}
