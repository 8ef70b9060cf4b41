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

	_ "github.com/kynshop/storefront-api/docs"
	"github.com/kynshop/storefront-api/internal/application/auth"
	"github.com/kynshop/storefront-api/internal/application/catalog"
	"github.com/kynshop/storefront-api/internal/application/settings"
	appsync "github.com/kynshop/storefront-api/internal/application/sync"
	"github.com/kynshop/storefront-api/internal/application/tickets"
	"github.com/kynshop/storefront-api/internal/application/token"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/infrastructure/email"
	"github.com/kynshop/storefront-api/internal/infrastructure/moysklad"
	"github.com/kynshop/storefront-api/internal/infrastructure/postgres"
	"github.com/kynshop/storefront-api/internal/infrastructure/telegram"
	httpRouter "github.com/kynshop/storefront-api/internal/interfaces/http"
	"github.com/kynshop/storefront-api/pkg/config"
	"github.com/kynshop/storefront-api/pkg/crypto"
	"github.com/kynshop/storefront-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sealer, err := crypto.NewSealer(cfg.Crypto.Key, cfg.Crypto.Salt)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar cifrado de credenciales")
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	sizeRepo := postgres.NewSizeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Canales de entrega de tokens: email para verificación y reseteo.
	mailer := email.NewMailer(cfg.SMTP)
	lifecycle := token.NewLifecycle(tokenRepo, map[string]token.Channel{
		entity.PurposeEmailVerify:   mailer,
		entity.PurposePasswordReset: mailer,
	}, nil)

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}
	authUC := auth.NewAuthUseCase(userRepo, lifecycle, txRunner, jwtCfg)

	var notifier auth.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier = telegram.NewBotClient(cfg.Telegram.BotToken, "")
	}
	telegramUC := auth.NewTelegramLoginUseCase(
		userRepo, lifecycle, authUC,
		telegram.NewLoginVerifier(cfg.Telegram.BotToken),
		notifier,
	)

	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	productUC := catalog.NewProductUseCase(txRunner, categoryRepo, productRepo, variantRepo, sizeRepo, cfg.App.OrgPrefix)

	// Puente MoySklad: nil cuando la integración está deshabilitada
	// (las actualizaciones quedan solo en local).
	var bridge appsync.Bridge
	if cfg.MoySklad.Enabled {
		msClient := moysklad.NewClient(cfg.MoySklad)
		refs := moysklad.NewReferenceCache(msClient, time.Duration(cfg.MoySklad.RefsTTLMinutes)*time.Minute)
		bridge = moysklad.NewBridge(msClient, refs)
	}
	syncUC := appsync.NewSyncUseCase(sizeRepo, txRunner, bridge, log)

	settingsUC := settings.NewSettingsUseCase(settingsRepo, sealer)
	ticketUC := tickets.NewTicketUseCase(ticketRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "KYN Storefront API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:    categoryUC,
		ProductUC:     productUC,
		SyncUC:        syncUC,
		SettingsUC:    settingsUC,
		TicketUC:      ticketUC,
		AuthUC:        authUC,
		TelegramUC:    telegramUC,
		JWTSecret:     cfg.JWT.Secret,
		CookieMinutes: cfg.JWT.Expiration,
		SecureCookies: cfg.App.Env == "production",
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
