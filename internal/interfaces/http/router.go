package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/auth"
	"github.com/jhoicas/Reposicion-api/internal/application/delivery"
	"github.com/jhoicas/Reposicion-api/internal/application/ordering"
	"github.com/jhoicas/Reposicion-api/internal/application/ports"
	"github.com/jhoicas/Reposicion-api/internal/application/usecase"
	"github.com/jhoicas/Reposicion-api/internal/application/valuation"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ItemUC     *usecase.ItemUseCase
	Planner    *ordering.PlannerUseCase
	Ledger     *ordering.Ledger
	Reconciler *delivery.Reconciler
	Valuation  *valuation.UseCase
	OrderPDF   ports.OrderPDFGenerator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	admin := RequireRole(entity.RoleAdmin)
	buyers := RequireRole(entity.RoleAdmin, entity.RoleComprador)
	receivers := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Auth: login público, alta de operadores solo admin
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/register", admin, authHandler.Register)

	// Items
	itemHandler := NewItemHandler(deps.ItemUC, deps.Valuation)
	items := protected.Group("/items")
	items.Get("/", itemHandler.List)
	items.Post("/", buyers, itemHandler.Create)
	items.Post("/counts", receivers, itemHandler.Counts)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", buyers, itemHandler.Update)
	items.Delete("/:id", admin, itemHandler.Delete)
	items.Get("/:id/discrepancy", itemHandler.Discrepancy)
	items.Post("/:id/count", receivers, itemHandler.Count)

	// Reposición
	replHandler := NewReplenishmentHandler(deps.Planner)
	repl := protected.Group("/replenishment")
	repl.Get("/plan", replHandler.Plan)
	repl.Post("/orders", buyers, replHandler.PlaceOrders)

	// Órdenes y entregas
	orderHandler := NewOrderHandler(deps.Ledger, deps.Reconciler, deps.OrderPDF)
	orders := protected.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/pdf", orderHandler.PDF)
	orders.Post("/:id/delivery", receivers, orderHandler.Reconcile)
	orders.Get("/:id/delivery", orderHandler.Delivery)

	deliveryHandler := NewDeliveryHandler(deps.Reconciler)
	deliveries := protected.Group("/deliveries")
	deliveries.Get("/", deliveryHandler.ListByVendor)
	deliveries.Get("/total-value", deliveryHandler.TotalValue)

	// Valorización
	valHandler := NewValuationHandler(deps.Valuation)
	val := protected.Group("/valuation")
	val.Get("/total", valHandler.Total)
	val.Post("/sales-mix", valHandler.SalesMixFromAmounts)
	val.Get("/sales-mix", valHandler.SalesMix)
	protected.Post("/sales", buyers, valHandler.RecordSale)
}
