package app

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/handlers"
	"github.com/facturapp/facturacion-api/internal/utils/jwt"
)

// setupRouter builds the chi router with middleware and routes.
func setupRouter(deps *dependencies, jwtManager *jwt.Manager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	setupMiddleware(r, jwtManager, logger)
	setupRoutes(r, deps)

	return r
}

func setupMiddleware(r *chi.Mux, jwtManager *jwt.Manager, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(middleware.Compress(5))
	r.Use(handlers.ActorMiddleware(jwtManager))
}

func setupRoutes(r *chi.Mux, deps *dependencies) {
	r.Get("/health", deps.handlers.health.Health)
	r.Get("/ready", deps.handlers.health.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", deps.handlers.clientes.List)
			r.Get("/cedula/{cedula}", deps.handlers.clientes.GetByCedula)
			r.Get("/existe/{cedula}", deps.handlers.clientes.ExistsByCedula)
			r.Get("/{id}", deps.handlers.clientes.GetByID)
			r.Post("/", deps.handlers.clientes.Create)
			r.Put("/{id}", deps.handlers.clientes.Update)
			r.Delete("/hard/{id}", deps.handlers.clientes.Delete)
			r.Delete("/{id}", deps.handlers.clientes.Deactivate)
		})

		r.Route("/productos", func(r chi.Router) {
			r.Get("/", deps.handlers.productos.List)
			r.Get("/todos", deps.handlers.productos.ListAll)
			r.Get("/buscar/{nombre}", deps.handlers.productos.SearchByNombre)
			r.Get("/categoria/{categoria}", deps.handlers.productos.GetByCategoria)
			r.Get("/{id}", deps.handlers.productos.GetByID)
			r.Post("/", deps.handlers.productos.Create)
			r.Put("/{id}", deps.handlers.productos.Update)
			r.Delete("/hard/{id}", deps.handlers.productos.Delete)
			r.Delete("/{id}", deps.handlers.productos.Deactivate)
		})

		r.Route("/metodo-pago", func(r chi.Router) {
			r.Get("/", deps.handlers.metodosPago.List)
			r.Get("/disponibles", deps.handlers.metodosPago.ListDisponibles)
			r.Get("/tipo/{tipoPago}", deps.handlers.metodosPago.GetByTipo)
			r.Get("/{id}", deps.handlers.metodosPago.GetByID)
			r.Post("/", deps.handlers.metodosPago.Create)
			r.Put("/{id}", deps.handlers.metodosPago.Update)
			r.Patch("/{id}/toggle", deps.handlers.metodosPago.ToggleDisponible)
			r.Delete("/{id}", deps.handlers.metodosPago.Delete)
		})

		r.Route("/pedidos", func(r chi.Router) {
			r.Get("/", deps.handlers.pedidos.List)
			r.Get("/confirmados", deps.handlers.pedidos.GetConfirmados)
			r.Get("/estado/{estado}", deps.handlers.pedidos.GetByEstado)
			r.Get("/cliente/{idCliente}", deps.handlers.pedidos.GetByCliente)
			r.Get("/{id}", deps.handlers.pedidos.GetByID)
			r.Get("/{id}/detalles", deps.handlers.pedidos.GetDetalles)
			r.Post("/", deps.handlers.pedidos.Create)
			r.Post("/{id}/detalles", deps.handlers.pedidos.AddDetalle)
			r.Put("/{id}", deps.handlers.pedidos.Update)
			r.Put("/{id}/detalles/reemplazar", deps.handlers.pedidos.ReplaceDetalles)
			r.Put("/detalles/{idDetalle}", deps.handlers.pedidos.UpdateDetalle)
			r.Patch("/{id}/estado", deps.handlers.pedidos.UpdateEstado)
			r.Delete("/detalles/{idDetalle}", deps.handlers.pedidos.DeleteDetalle)
			r.Delete("/{id}", deps.handlers.pedidos.Delete)
		})

		r.Route("/facturas", func(r chi.Router) {
			r.Get("/", deps.handlers.facturas.List)
			r.Get("/codigo", deps.handlers.facturas.GenerarCodigo)
			r.Get("/estado/{estado}", deps.handlers.facturas.GetByEstado)
			r.Get("/cliente/cedula/{cedula}", deps.handlers.facturas.GetByClienteCedula)
			r.Get("/cliente/{idCliente}", deps.handlers.facturas.GetByCliente)
			r.Get("/{id}", deps.handlers.facturas.GetByID)
			r.Get("/{id}/detalles", deps.handlers.facturas.GetDetalles)
			r.Post("/", deps.handlers.facturas.Create)
			r.Post("/{id}/detalles", deps.handlers.facturas.AddDetalle)
			r.Put("/{id}", deps.handlers.facturas.Update)
			r.Put("/{id}/detalles/reemplazar", deps.handlers.facturas.ReplaceDetalles)
			r.Put("/detalles/{idDetalle}", deps.handlers.facturas.UpdateDetalle)
			r.Patch("/{id}/estado", deps.handlers.facturas.UpdateEstado)
			r.Delete("/detalles/{idDetalle}", deps.handlers.facturas.DeleteDetalle)
			r.Delete("/{id}", deps.handlers.facturas.Delete)
		})

		r.Route("/historial", func(r chi.Router) {
			r.Get("/", deps.handlers.historial.List)
			r.Get("/fechas", deps.handlers.historial.GetByFechas)
			r.Get("/factura/{idFactura}", deps.handlers.historial.GetByFactura)
			r.Get("/usuario/{idUsuario}", deps.handlers.historial.GetByUsuario)
			r.Get("/{id}", deps.handlers.historial.GetByID)
			r.Post("/", deps.handlers.historial.Create)
			r.Delete("/factura/{idFactura}", deps.handlers.historial.DeleteByFactura)
			r.Delete("/usuario/{idUsuario}", deps.handlers.historial.DeleteByUsuario)
			r.Delete("/{id}", deps.handlers.historial.Delete)
		})

		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/", deps.handlers.usuarios.List)
			r.Get("/existe/{usuario}", deps.handlers.usuarios.ExistsByUsuario)
			r.Get("/buscar/{usuario}", deps.handlers.usuarios.GetByUsuario)
			r.Get("/{id}", deps.handlers.usuarios.GetByID)
			r.Post("/login", deps.handlers.usuarios.Login)
			r.Post("/", deps.handlers.usuarios.Create)
			r.Put("/{id}", deps.handlers.usuarios.Update)
			r.Delete("/hard/{id}", deps.handlers.usuarios.Delete)
			r.Delete("/{id}", deps.handlers.usuarios.Deactivate)
		})
	})
}
