package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/entregas-epp/internal/application/delivery"
	"github.com/jhoicas/entregas-epp/internal/application/inventory"
	"github.com/jhoicas/entregas-epp/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DeliveryUC  *delivery.UseCase
	DeliveryPDF *delivery.PDFUseCase
	StockQuery  *inventory.StockQueryUseCase
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
// Consultas: cualquier rol. Crear/editar: supervisor o almacenista. Eliminar: supervisor.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	readers := RequireRole(jwt.RoleSupervisor, jwt.RoleAlmacenista, jwt.RoleConsulta)
	writers := RequireRole(jwt.RoleSupervisor, jwt.RoleAlmacenista)
	admins := RequireRole(jwt.RoleSupervisor)

	deliveries := api.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC, deps.DeliveryPDF, deps.Log)
	deliveries.Post("/", writers, deliveryHandler.Create)
	deliveries.Get("/", readers, deliveryHandler.List)
	deliveries.Get("/:id", readers, deliveryHandler.GetByID)
	deliveries.Get("/:id/pdf", readers, deliveryHandler.DownloadPDF)
	deliveries.Put("/:id", writers, deliveryHandler.Update)
	deliveries.Delete("/:id", admins, deliveryHandler.Delete)

	equipment := api.Group("/equipment", readers)
	equipmentHandler := NewEquipmentHandler(deps.StockQuery, deps.Log)
	equipment.Get("/low-stock", equipmentHandler.ListLowStock)
	equipment.Get("/:id/stock", equipmentHandler.GetStock)
	equipment.Get("/:id/movements", equipmentHandler.ListMovements)
}
