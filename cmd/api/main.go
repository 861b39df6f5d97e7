package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/WelintondosSantos/Sistoque/internal/application/auth"
	appchat "github.com/WelintondosSantos/Sistoque/internal/application/chat"
	appestoque "github.com/WelintondosSantos/Sistoque/internal/application/estoque"
	apprelatorio "github.com/WelintondosSantos/Sistoque/internal/application/relatorio"
	apprequisicao "github.com/WelintondosSantos/Sistoque/internal/application/requisicao"
	"github.com/WelintondosSantos/Sistoque/internal/application/usecase"
	infrapdf "github.com/WelintondosSantos/Sistoque/internal/infrastructure/pdf"
	"github.com/WelintondosSantos/Sistoque/internal/infrastructure/postgres"
	"github.com/WelintondosSantos/Sistoque/internal/infrastructure/ws"
	httpRouter "github.com/WelintondosSantos/Sistoque/internal/interfaces/http"
	"github.com/WelintondosSantos/Sistoque/pkg/config"
	"github.com/WelintondosSantos/Sistoque/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	centroCustoRepo := postgres.NewCentroCustoRepository(pool)
	almoxRepo := postgres.NewAlmoxarifadoRepository(pool)
	catalogoRepo := postgres.NewCatalogoRepository(pool)
	produtoRepo := postgres.NewProdutoRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	movimentoRepo := postgres.NewMovimentoRepository(pool)
	requisicaoRepo := postgres.NewRequisicaoRepository(pool)
	fechamentoRepo := postgres.NewFechamentoRepository(pool)
	relatorioRepo := postgres.NewRelatorioRepository(pool)
	chatRepo := postgres.NewChatRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	hub := ws.NewHub(log)

	authUC := auth.NewAuthUseCase(usuarioRepo, centroCustoRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	produtoUC := usecase.NewProdutoUseCase(produtoRepo, loteRepo)
	cadastroUC := usecase.NewCadastroUseCase(almoxRepo, centroCustoRepo, catalogoRepo)
	registrarUC := appestoque.NewRegistrarMovimentoUseCase(txRunner, produtoRepo, almoxRepo, fechamentoRepo)
	consultaUC := appestoque.NewConsultaUseCase(movimentoRepo, loteRepo, produtoRepo)
	atenderUC := appestoque.NewAtenderRequisicaoUseCase(txRunner, requisicaoRepo, fechamentoRepo, almoxRepo, cfg.Estoque.PoliticaFalta)
	fechamentoUC := appestoque.NewFechamentoUseCase(txRunner, fechamentoRepo)
	requisicaoUC := apprequisicao.NewUseCase(requisicaoRepo, produtoRepo, usuarioRepo, loteRepo)
	relatorioUC := apprelatorio.NewUseCase(relatorioRepo, pdfGenerator)
	chatUC := appchat.NewUseCase(chatRepo, usuarioRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sistoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProdutoUC:    produtoUC,
		CadastroUC:   cadastroUC,
		RegistrarUC:  registrarUC,
		ConsultaUC:   consultaUC,
		AtenderUC:    atenderUC,
		FechamentoUC: fechamentoUC,
		RequisicaoUC: requisicaoUC,
		RelatorioUC:  relatorioUC,
		ChatUC:       chatUC,
		PDF:          pdfGenerator,
		Hub:          hub,
		Logger:       log,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
