package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/WelintondosSantos/Sistoque/internal/application/auth"
	appchat "github.com/WelintondosSantos/Sistoque/internal/application/chat"
	appestoque "github.com/WelintondosSantos/Sistoque/internal/application/estoque"
	apprelatorio "github.com/WelintondosSantos/Sistoque/internal/application/relatorio"
	apprequisicao "github.com/WelintondosSantos/Sistoque/internal/application/requisicao"
	"github.com/WelintondosSantos/Sistoque/internal/application/usecase"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/infrastructure/ws"
	"github.com/WelintondosSantos/Sistoque/pkg/logger"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProdutoUC    *usecase.ProdutoUseCase
	CadastroUC   *usecase.CadastroUseCase
	RegistrarUC  *appestoque.RegistrarMovimentoUseCase
	ConsultaUC   *appestoque.ConsultaUseCase
	AtenderUC    *appestoque.AtenderRequisicaoUseCase
	FechamentoUC *appestoque.FechamentoUseCase
	RequisicaoUC *apprequisicao.UseCase
	RelatorioUC  *apprelatorio.UseCase
	ChatUC       *appchat.UseCase
	PDF          apprelatorio.RequisicaoPDFGenerator
	Hub          *ws.Hub
	Logger       *logger.Logger
	JWTSecret    string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	almoxarifado := RequireRole(entity.RoleAdmin, entity.RoleAlmoxarife)
	soAdmin := RequireRole(entity.RoleAdmin)

	// Auth: login é público; criação de usuário é restrita a admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), soAdmin, authHandler.Register)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cadastros de apoio
	cadastroHandler := NewCadastroHandler(deps.CadastroUC)
	protected.Post("/almoxarifados", soAdmin, cadastroHandler.CriarAlmoxarifado)
	protected.Get("/almoxarifados", cadastroHandler.ListarAlmoxarifados)
	protected.Post("/centros-custo", soAdmin, cadastroHandler.CriarCentroCusto)
	protected.Get("/centros-custo", cadastroHandler.ListarCentrosCusto)
	protected.Post("/categorias", soAdmin, cadastroHandler.CriarCategoria)
	protected.Get("/categorias", cadastroHandler.ListarCategorias)

	// Catálogo de produtos
	produtos := protected.Group("/produtos")
	produtoHandler := NewProdutoHandler(deps.ProdutoUC)
	produtos.Post("/", almoxarifado, produtoHandler.Create)
	produtos.Get("/", produtoHandler.List)
	produtos.Get("/:id", produtoHandler.GetByID)
	produtos.Put("/:id", almoxarifado, produtoHandler.Update)
	produtos.Get("/:id/lotes", almoxarifado, produtoHandler.Lotes)

	// Motor de estoque
	estoqueGroup := protected.Group("/estoque")
	estoqueHandler := NewEstoqueHandler(deps.RegistrarUC, deps.ConsultaUC)
	estoqueGroup.Post("/entradas", almoxarifado, estoqueHandler.RegistrarEntrada)
	estoqueGroup.Post("/ajustes", soAdmin, estoqueHandler.RegistrarAjuste)
	estoqueGroup.Get("/produtos/:produto_id/movimentos", almoxarifado, estoqueHandler.Extrato)
	estoqueGroup.Get("/lotes/:lote_id/movimentos", almoxarifado, estoqueHandler.MovimentosDoLote)

	// Requisições
	requisicoes := protected.Group("/requisicoes")
	requisicaoHandler := NewRequisicaoHandler(deps.RequisicaoUC, deps.AtenderUC, deps.PDF)
	requisicoes.Post("/itens", requisicaoHandler.AdicionarItem)
	requisicoes.Delete("/itens/:item_id", requisicaoHandler.RemoverItem)
	requisicoes.Get("/pendentes", almoxarifado, requisicaoHandler.Pendentes)
	requisicoes.Get("/minhas", requisicaoHandler.Minhas)
	requisicoes.Get("/:id", requisicaoHandler.Detalhe)
	requisicoes.Get("/:id/pdf", requisicaoHandler.PDF)
	requisicoes.Post("/:id/finalizar", requisicaoHandler.Finalizar)
	requisicoes.Post("/:id/cancelar", requisicaoHandler.Cancelar)
	requisicoes.Post("/:id/atender", almoxarifado, requisicaoHandler.Atender)
	requisicoes.Post("/:id/estornar", almoxarifado, requisicaoHandler.Estornar)

	// Fechamento mensal
	fechamentos := protected.Group("/fechamentos", soAdmin)
	fechamentoHandler := NewFechamentoHandler(deps.FechamentoUC)
	fechamentos.Post("/", fechamentoHandler.Fechar)
	fechamentos.Post("/reabrir", fechamentoHandler.Reabrir)
	fechamentos.Get("/", fechamentoHandler.List)
	fechamentos.Get("/:id/posicoes", fechamentoHandler.Posicoes)

	// Relatórios
	relatorios := protected.Group("/relatorios", almoxarifado)
	relatorioHandler := NewRelatorioHandler(deps.RelatorioUC)
	relatorios.Get("/consumo", relatorioHandler.Consumo)
	relatorios.Get("/consumo/pdf", relatorioHandler.ConsumoPDF)
	relatorios.Get("/posicao", relatorioHandler.PosicaoEstoque)

	// Chat interno (REST + WebSocket)
	chatHandler := NewChatHandler(deps.ChatUC, deps.Hub, deps.Logger)
	chatGroup := protected.Group("/chat")
	chatGroup.Get("/conversas", chatHandler.Conversas)
	chatGroup.Get("/contactaveis", chatHandler.Contactaveis)
	chatGroup.Post("/conversas/com/:usuario_id", chatHandler.Iniciar)
	chatGroup.Get("/conversas/:id/mensagens", chatHandler.Historico)

	wsGroup := app.Group("/ws", WebSocketUpgrade(deps.JWTSecret))
	wsGroup.Get("/chat/:conversa_id", websocket.New(chatHandler.WebSocket))
}
