package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/config"
	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/facturapp/facturacion-api/internal/handlers"
	"github.com/facturapp/facturacion-api/internal/repository/postgres"
	"github.com/facturapp/facturacion-api/internal/service"
	"github.com/facturapp/facturacion-api/internal/utils/jwt"
	"github.com/facturapp/facturacion-api/internal/utils/password"
)

// repositories holds every repository of the application.
type repositories struct {
	cliente    domain.ClienteRepository
	producto   domain.ProductoRepository
	metodoPago domain.MetodoPagoRepository
	pedido     domain.PedidoRepository
	factura    domain.FacturaRepository
	historial  domain.HistorialRepository
	usuario    domain.UsuarioRepository
}

// services holds every service of the application.
type services struct {
	cliente     domain.ClienteService
	producto    domain.ProductoService
	metodoPago  domain.MetodoPagoService
	pedido      domain.PedidoService
	facturacion domain.FacturacionService
	historial   domain.HistorialService
	usuario     domain.UsuarioService
}

// handlerSet holds every HTTP handler of the application.
type handlerSet struct {
	clientes    *handlers.ClientesHandler
	productos   *handlers.ProductosHandler
	metodosPago *handlers.MetodosPagoHandler
	pedidos     *handlers.PedidosHandler
	facturas    *handlers.FacturasHandler
	historial   *handlers.HistorialHandler
	usuarios    *handlers.UsuariosHandler
	health      *handlers.HealthHandler
}

// dependencies wires repositories, services and handlers together.
type dependencies struct {
	repos      *repositories
	services   *services
	handlers   *handlerSet
	jwtManager *jwt.Manager
}

func initDependencies(cfg *config.Config, dbPool *pgxpool.Pool, logger *zap.Logger) *dependencies {
	repos := &repositories{
		cliente:    postgres.NewClienteRepository(dbPool),
		producto:   postgres.NewProductoRepository(dbPool),
		metodoPago: postgres.NewMetodoPagoRepository(dbPool),
		pedido:     postgres.NewPedidoRepository(dbPool),
		factura:    postgres.NewFacturaRepository(dbPool),
		historial:  postgres.NewHistorialRepository(dbPool),
		usuario:    postgres.NewUsuarioRepository(dbPool),
	}

	passwordHasher := password.NewBCryptHasher(password.DefaultCost)
	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTTokenTTL)

	svcs := &services{
		cliente:     service.NewClienteService(repos.cliente),
		producto:    service.NewProductoService(repos.producto),
		metodoPago:  service.NewMetodoPagoService(repos.metodoPago),
		pedido:      service.NewPedidoService(repos.pedido),
		facturacion: service.NewFacturacionService(repos.factura, repos.pedido, repos.cliente, repos.metodoPago, repos.historial, logger),
		historial:   service.NewHistorialService(repos.historial),
		usuario:     service.NewUsuarioService(repos.usuario, passwordHasher, jwtManager),
	}

	hdlrs := &handlerSet{
		clientes:    handlers.NewClientesHandler(svcs.cliente, logger),
		productos:   handlers.NewProductosHandler(svcs.producto, logger),
		metodosPago: handlers.NewMetodosPagoHandler(svcs.metodoPago, logger),
		pedidos:     handlers.NewPedidosHandler(svcs.pedido, logger),
		facturas:    handlers.NewFacturasHandler(svcs.facturacion, logger),
		historial:   handlers.NewHistorialHandler(svcs.historial, logger),
		usuarios:    handlers.NewUsuariosHandler(svcs.usuario, logger),
		health:      handlers.NewHealthHandler(dbPool, logger),
	}

	return &dependencies{
		repos:      repos,
		services:   svcs,
		handlers:   hdlrs,
		jwtManager: jwtManager,
	}
}
