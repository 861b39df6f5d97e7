package ws

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/pkg/logger"
)

// connFake registra as escritas e acusa se duas acontecem ao mesmo tempo na
// mesma conexão.
type connFake struct {
	escritas    int32
	simultaneas int32
	fechada     bool
	erro        error
}

func (c *connFake) WriteJSON(v interface{}) error {
	if c.erro != nil {
		return c.erro
	}
	if atomic.AddInt32(&c.escritas, 1) > 1 {
		atomic.StoreInt32(&c.simultaneas, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.escritas, -1)
	return nil
}

func (c *connFake) Close() error {
	c.fechada = true
	return nil
}

func novoHubTeste() *Hub {
	return NewHub(logger.New(logger.Config{Env: "production", Level: "error"}))
}

func mensagem(conversaID, texto string) dto.MensagemResponse {
	return dto.MensagemResponse{
		ID:         "msg-1",
		ConversaID: conversaID,
		AutorID:    "user-1",
		AutorNome:  "Fulano",
		Texto:      texto,
		Timestamp:  time.Now(),
	}
}

func TestBroadcast_EscritasConcorrentesSaoSerializadas(t *testing.T) {
	// Cada conexão tem o próprio goroutine de leitura; dois participantes
	// enviando ao mesmo tempo disparam Broadcast concorrente para as mesmas
	// conexões. O Cliente deve garantir uma escrita por vez por conexão.
	hub := novoHubTeste()
	conns := []*connFake{{}, {}, {}}
	for _, c := range conns {
		hub.Register("conv-1", c)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast(mensagem("conv-1", "olá"))
		}()
	}
	wg.Wait()

	for i, c := range conns {
		assert.Zero(t, atomic.LoadInt32(&c.simultaneas), "conexão %d recebeu escritas simultâneas", i)
	}
}

func TestBroadcast_SendDiretoNaoConcorreComBroadcast(t *testing.T) {
	// O handler escreve erros de validação direto no Cliente enquanto outras
	// mensagens chegam via Broadcast; ambos os caminhos passam pelo mesmo
	// mutex da conexão.
	hub := novoHubTeste()
	conn := &connFake{}
	cliente := hub.Register("conv-1", conn)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Broadcast(mensagem("conv-1", "mensagem"))
		}()
		go func() {
			defer wg.Done()
			_ = cliente.Send(dto.ErrorResponse{Code: "MENSAGEM", Message: "texto vazio"})
		}()
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&conn.simultaneas))
}

func TestBroadcast_ConexaoComErroERemovidaEFechada(t *testing.T) {
	hub := novoHubTeste()
	morta := &connFake{erro: errors.New("conexão caiu")}
	viva := &connFake{}
	hub.Register("conv-1", morta)
	hub.Register("conv-1", viva)

	hub.Broadcast(mensagem("conv-1", "primeira"))

	require.True(t, morta.fechada)
	assert.False(t, viva.fechada)

	hub.mu.RLock()
	assert.Len(t, hub.salas["conv-1"], 1)
	hub.mu.RUnlock()
}

func TestUnregister_UltimaConexaoDescartaASala(t *testing.T) {
	hub := novoHubTeste()
	conn := &connFake{}
	cliente := hub.Register("conv-1", conn)

	hub.Unregister("conv-1", cliente)

	hub.mu.RLock()
	_, existe := hub.salas["conv-1"]
	hub.mu.RUnlock()
	assert.False(t, existe)
}
