package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmcastano/almacen-api/internal/application/auth"
	"github.com/jmcastano/almacen-api/internal/application/ledger"
	"github.com/jmcastano/almacen-api/internal/application/usecase"
	"github.com/jmcastano/almacen-api/internal/domain/permission"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *usecase.ProductUseCase
	LedgerUC  *ledger.LedgerUseCase
	ReportUC  *usecase.ReportUseCase
	UserUC    *usecase.UserUseCase
	Exporter  usecase.SpreadsheetExporter
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/user", authHandler.Me)

	// Products (protegido; escrituras exigen DefineProducts)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", RequireCapability(permission.DefineProducts), productHandler.Create)
	products.Delete("/:id", RequireCapability(permission.DefineProducts), productHandler.Delete)

	// Inventory y ledger (protegido; escrituras exigen ManageInventory)
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ReportUC)
	inventory.Get("/", inventoryHandler.Balances)
	inventory.Get("/movements/latest", inventoryHandler.LatestMovements)
	inventory.Post("/movements", RequireCapability(permission.ManageInventory), inventoryHandler.RecordMovement)
	inventory.Delete("/movements/:id", RequireCapability(permission.ManageInventory), inventoryHandler.DeleteMovement)

	// Reports (protegido, exige ViewReports)
	reports := protected.Group("/reports", RequireCapability(permission.ViewReports))
	reportHandler := NewReportHandler(deps.ReportUC, deps.Exporter)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/movements", reportHandler.Movements)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/export/:type", reportHandler.Export)

	// Users (protegido, exige ManageUsers: solo administradores)
	users := protected.Group("/users", RequireCapability(permission.ManageUsers))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
