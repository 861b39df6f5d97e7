// Package ws implementa o hub WebSocket do chat: salas por conversa,
// registro/desregistro de conexões e broadcast das mensagens persistidas.
package ws

import (
	"sync"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/pkg/logger"
)

// conexao é o que o hub precisa de uma conexão WebSocket; *websocket.Conn
// do gofiber/contrib satisfaz.
type conexao interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Cliente embrulha uma conexão com um mutex de escrita: o protocolo WebSocket
// permite um único escritor por vez, e cada conexão tem o próprio goroutine de
// leitura chamando Broadcast — sem o mutex, dois participantes enviando ao
// mesmo tempo escreveriam concorrentemente na mesma conexão.
type Cliente struct {
	mu   sync.Mutex
	conn conexao
}

// Send escreve a mensagem como JSON, serializando com as demais escritas
// desta conexão.
func (c *Cliente) Send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Close fecha a conexão subjacente.
func (c *Cliente) Close() error {
	return c.conn.Close()
}

// Hub mantém as conexões WebSocket agrupadas por conversa. Uma mensagem só é
// transmitida depois de persistida pelo caso de uso do chat; o hub nunca é a
// fonte de verdade do histórico.
type Hub struct {
	mu    sync.RWMutex
	salas map[string]map[*Cliente]bool
	log   *logger.Logger
}

// NewHub constrói o hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		salas: make(map[string]map[*Cliente]bool),
		log:   log,
	}
}

// Register embrulha a conexão em um Cliente e o adiciona à sala da conversa.
// Toda escrita posterior deve passar pelo Cliente devolvido.
func (h *Hub) Register(conversaID string, conn conexao) *Cliente {
	cliente := &Cliente{conn: conn}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.salas[conversaID] == nil {
		h.salas[conversaID] = make(map[*Cliente]bool)
	}
	h.salas[conversaID][cliente] = true
	return cliente
}

// Unregister remove o cliente da sala; salas vazias são descartadas.
func (h *Hub) Unregister(conversaID string, cliente *Cliente) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sala, ok := h.salas[conversaID]; ok {
		delete(sala, cliente)
		if len(sala) == 0 {
			delete(h.salas, conversaID)
		}
	}
}

// Broadcast envia a mensagem para todas as conexões da sala. Conexões com
// erro de escrita são removidas na hora.
func (h *Hub) Broadcast(msg dto.MensagemResponse) {
	h.mu.RLock()
	clientes := make([]*Cliente, 0, len(h.salas[msg.ConversaID]))
	for cliente := range h.salas[msg.ConversaID] {
		clientes = append(clientes, cliente)
	}
	h.mu.RUnlock()

	var mortos []*Cliente
	for _, cliente := range clientes {
		if err := cliente.Send(msg); err != nil {
			h.log.Warn().Err(err).Str("conversa_id", msg.ConversaID).Msg("falha no broadcast; removendo conexão")
			mortos = append(mortos, cliente)
		}
	}
	for _, cliente := range mortos {
		h.Unregister(msg.ConversaID, cliente)
		_ = cliente.Close()
	}
}
