package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kynshop/storefront-api/internal/application/auth"
	"github.com/kynshop/storefront-api/internal/application/catalog"
	"github.com/kynshop/storefront-api/internal/application/settings"
	appsync "github.com/kynshop/storefront-api/internal/application/sync"
	"github.com/kynshop/storefront-api/internal/application/tickets"
	"github.com/kynshop/storefront-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC    *catalog.CategoryUseCase
	ProductUC     *catalog.ProductUseCase
	SyncUC        *appsync.SyncUseCase
	SettingsUC    *settings.SettingsUseCase
	TicketUC      *tickets.TicketUseCase
	AuthUC        *auth.AuthUseCase
	TelegramUC    *auth.TelegramLoginUseCase
	JWTSecret     string
	CookieMinutes int
	SecureCookies bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.TelegramUC, deps.CookieMinutes, deps.SecureCookies)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/verify-email", authHandler.VerifyEmail)
	authGroup.Post("/resend-verification", authHandler.ResendVerification)
	authGroup.Post("/password-reset", authHandler.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)
	authGroup.Post("/telegram/init", authHandler.TelegramInit)
	authGroup.Post("/telegram/confirm", authHandler.TelegramConfirm)
	authGroup.Get("/telegram/status", authHandler.TelegramStatus)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Vitrina (público, solo lectura)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/categories", categoryHandler.List)
	api.Get("/categories/:id", categoryHandler.GetByID)
	api.Get("/products", productHandler.List)
	api.Get("/products/slug/:slug", productHandler.GetBySlug)
	api.Get("/products/:id", productHandler.GetByID)
	api.Get("/products/:id/variants", productHandler.ListVariants)
	api.Get("/variants/:id/sizes", productHandler.ListSizes)

	// Rutas protegidas (cookie de sesión o Bearer)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Tickets de soporte (cualquier usuario autenticado)
	ticketHandler := NewTicketHandler(deps.TicketUC)
	ticketsGroup := protected.Group("/tickets")
	ticketsGroup.Post("/", ticketHandler.Create)
	ticketsGroup.Get("/", ticketHandler.ListMine)
	ticketsGroup.Get("/:id", ticketHandler.Get)
	ticketsGroup.Post("/:id/messages", ticketHandler.AddMessage)

	// Administración del catálogo (solo admin)
	admin := protected.Group("/", RequireRole(entity.RoleAdmin))
	admin.Post("/categories", categoryHandler.Create)
	admin.Put("/categories/:id", categoryHandler.Update)
	admin.Delete("/categories/:id", categoryHandler.Delete)
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)
	admin.Post("/products/:id/variants", productHandler.CreateVariant)
	admin.Post("/variants/:id/sizes", productHandler.CreateSize)

	// Sincronización de inventario (solo admin)
	syncHandler := NewSyncHandler(deps.SyncUC)
	syncGroup := admin.Group("/sync")
	syncGroup.Post("/stock", syncHandler.PushStock)
	syncGroup.Post("/price", syncHandler.PushPrice)
	syncGroup.Post("/batch", syncHandler.BatchUpdate)

	// Panel de administración (solo admin)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	adminPanel := admin.Group("/admin")
	adminPanel.Get("/settings", settingsHandler.List)
	adminPanel.Get("/settings/:provider", settingsHandler.Get)
	adminPanel.Put("/settings/:provider", settingsHandler.Update)
	adminPanel.Get("/tickets", ticketHandler.ListAll)
	adminPanel.Put("/tickets/:id/status", ticketHandler.UpdateStatus)
}
