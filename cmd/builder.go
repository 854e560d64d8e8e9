package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realyassine/SouqFX/api"
	apicart "github.com/realyassine/SouqFX/api/cart"
	apicatalog "github.com/realyassine/SouqFX/api/catalog"
	"github.com/realyassine/SouqFX/api/health"
	apiorder "github.com/realyassine/SouqFX/api/order"
	catalogapp "github.com/realyassine/SouqFX/application/catalog"
	checkoutapp "github.com/realyassine/SouqFX/application/checkout"
	"github.com/realyassine/SouqFX/config"
	"github.com/realyassine/SouqFX/domain/cart"
	"github.com/realyassine/SouqFX/infrastructure/events"
	"github.com/realyassine/SouqFX/infrastructure/persistence/csvstore"
	"github.com/realyassine/SouqFX/infrastructure/processing"
	"github.com/realyassine/SouqFX/pkg/logger"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg             *config.Config
	controllers     []api.ControllerRegister
	middlewares     []api.MiddlewareRegister
	customRoutes    []api.Route
	useDefaultStore bool
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:             cfg,
		controllers:     []api.ControllerRegister{},
		middlewares:     []api.MiddlewareRegister{},
		customRoutes:    []api.Route{},
		useDefaultStore: true,
	}
}

// WithController adds a controller to the app
func (b *AppBuilder) WithController(c api.ControllerRegister) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

// WithMiddleware adds a middleware to the app
func (b *AppBuilder) WithMiddleware(m api.MiddlewareRegister) *AppBuilder {
	b.middlewares = append(b.middlewares, m)
	return b
}

// WithRoute adds a custom route
func (b *AppBuilder) WithRoute(method, path string, handler gin.HandlerFunc) *AppBuilder {
	b.customRoutes = append(b.customRoutes, api.Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
	return b
}

// DisableDefaultStore disables the default flat-file store initialization.
// Without a store, the storefront services are skipped and only the health
// endpoints plus any custom controllers are wired.
func (b *AppBuilder) DisableDefaultStore() *AppBuilder {
	b.useDefaultStore = false
	return b
}

// Build creates the App instance
func (b *AppBuilder) Build() *App {
	// Initialize logger
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	var store *csvstore.Store
	if b.useDefaultStore {
		store = b.initDefaultStore()
	}

	bus := b.initEventBus()

	processor, err := processing.New(processing.FromConfig(b.cfg.Processor))
	if err != nil {
		logger.Fatal("Failed to start order processor", zap.Error(err))
	}

	// Create default services
	var catalogService *catalogapp.Service
	var checkoutService *checkoutapp.Service

	if store != nil {
		catalogService, err = catalogapp.NewService(store, b.cfg.Catalog)
		if err != nil {
			logger.Fatal("Failed to create catalog service", zap.Error(err))
		}

		tracker, err := checkoutapp.NewStatusTracker(store, bus)
		if err != nil {
			logger.Fatal("Failed to create order status tracker", zap.Error(err))
		}
		processor.SetObserver(tracker)

		checkoutService, err = checkoutapp.NewService(
			cart.New(),
			catalogService,
			processor,
			tracker,
			store,
			b.cfg.Processor.AwaitTimeout,
		)
		if err != nil {
			logger.Fatal("Failed to create checkout service", zap.Error(err))
		}
	}

	// Create default controllers if not provided
	if !b.hasHealthController() {
		b.controllers = append(b.controllers, b.getOrCreateHealthController(store, processor))
	}
	if !b.hasCatalogController() && catalogService != nil {
		b.controllers = append(b.controllers, apicatalog.NewController(catalogService))
	}
	if !b.hasCartController() && checkoutService != nil {
		b.controllers = append(b.controllers, apicart.NewController(checkoutService))
	}
	if !b.hasOrderController() && checkoutService != nil {
		b.controllers = append(b.controllers, apiorder.NewController(checkoutService))
	}

	// Create router with controllers and middleware
	router := api.NewRouter(b.cfg, b.controllers, b.middlewares, b.customRoutes)
	router.SetupRoutes()

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	app := &App{
		config:    b.cfg,
		router:    router,
		server:    server,
		store:     store,
		bus:       bus,
		processor: processor,
		catalog:   catalogService,
		checkout:  checkoutService,
	}

	return app
}

func (b *AppBuilder) initDefaultStore() *csvstore.Store {
	logger.Info("Using CSV flat-file persistence layer",
		zap.String("dir", b.cfg.Store.Dir))

	store, err := csvstore.New(b.cfg.Store)
	if err != nil {
		logger.Fatal("Failed to open flat-file store", zap.Error(err))
	}

	if err := store.Ping(); err != nil {
		logger.Fatal("Store directory is not writable", zap.Error(err))
	}

	logger.Info("Flat-file store ready",
		zap.String("products", store.ProductsPath()),
		zap.String("orders", store.OrdersPath()))

	return store
}

func (b *AppBuilder) initEventBus() *events.Bus {
	bus := events.NewBus()

	handler := events.NewLoggingHandler()
	for _, name := range []string{"order.placed", "order.paid"} {
		if err := bus.Subscribe(name, handler); err != nil {
			logger.Fatal("Failed to subscribe event handler",
				zap.String("event", name), zap.Error(err))
		}
	}

	return bus
}

func (b *AppBuilder) hasCatalogController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*apicatalog.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) hasCartController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*apicart.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) hasOrderController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*apiorder.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) hasHealthController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*health.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) getOrCreateHealthController(store *csvstore.Store, processor *processing.Processor) *health.Controller {
	var pinger health.Pinger
	if store != nil {
		pinger = store
	}
	return health.NewController(b.cfg, pinger, processor)
}
