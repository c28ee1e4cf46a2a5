package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Alquileres-api/internal/application/auth"
	"github.com/jhoicas/Alquileres-api/internal/application/catalog"
	"github.com/jhoicas/Alquileres-api/internal/application/dispatch"
	"github.com/jhoicas/Alquileres-api/internal/application/events"
	"github.com/jhoicas/Alquileres-api/internal/application/returns"
	"github.com/jhoicas/Alquileres-api/internal/application/settlement"
	"github.com/jhoicas/Alquileres-api/internal/application/stock"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EventUC      *events.EventUseCase
	DispatchUC   *dispatch.DispatchUseCase
	ReturnUC     *returns.ReturnUseCase
	SettlementUC *settlement.SettlementUseCase
	StockUC      *stock.StockUseCase
	CatalogUC    *catalog.CatalogUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Events: ciclo despacho → devoluciones → liquidación (protegido)
	eventsGroup := protected.Group("/events")
	eventHandler := NewEventHandler(deps.EventUC, deps.DispatchUC, deps.ReturnUC, deps.SettlementUC)
	eventsGroup.Post("/", eventHandler.Create)
	eventsGroup.Get("/", eventHandler.List)
	eventsGroup.Get("/:id", eventHandler.GetByID)
	eventsGroup.Post("/:id/dispatch", eventHandler.Dispatch)
	eventsGroup.Get("/:id/outstanding", eventHandler.Outstanding)
	eventsGroup.Post("/:id/returns", eventHandler.SubmitReturn)
	eventsGroup.Post("/:id/invoice", eventHandler.BuildInvoice)

	// Invoices (protegido, solo lectura)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.SettlementUC)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Products y pools de stock (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, deps.StockUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/b2b-transfer", productHandler.TransferToB2B)
	products.Get("/:id/b2b", productHandler.ListB2BStock)
	products.Post("/:id/b2b", RequireRole(entity.RoleAdmin), productHandler.CreateB2BStock)

	// Compras B2B (protegido)
	b2b := protected.Group("/b2b")
	b2bHandler := NewB2BHandler(deps.StockUC)
	b2b.Post("/:id/purchases", b2bHandler.RegisterPurchase)

	// Clients (protegido, solo lectura)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.CatalogUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
}
