package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/realyassine/SouqFX/api"
	catalogapp "github.com/realyassine/SouqFX/application/catalog"
	checkoutapp "github.com/realyassine/SouqFX/application/checkout"
	"github.com/realyassine/SouqFX/config"
	"github.com/realyassine/SouqFX/infrastructure/events"
	"github.com/realyassine/SouqFX/infrastructure/persistence/csvstore"
	"github.com/realyassine/SouqFX/infrastructure/processing"
	"github.com/realyassine/SouqFX/pkg/logger"
)

// App bundles the HTTP server with the storefront services it serves.
type App struct {
	config    *config.Config
	router    *api.Router
	server    *http.Server
	store     *csvstore.Store
	bus       *events.Bus
	processor *processing.Processor
	catalog   *catalogapp.Service
	checkout  *checkoutapp.Service
}

// Run starts the application and blocks until a shutdown signal arrives
// or the server fails.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.warmup(ctx); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received")
	return a.shutdown()
}

// warmup loads the catalog and the order ledger before the server starts
// taking requests.
func (a *App) warmup(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.catalog != nil {
		g.Go(func() error {
			if err := a.catalog.Warmup(gctx); err != nil {
				return fmt.Errorf("catalog warmup: %w", err)
			}
			logger.Info("Catalog ready", zap.Int("items", a.catalog.Count()))
			return nil
		})
	}

	if a.store != nil {
		g.Go(func() error {
			records, err := a.store.History(gctx)
			if err != nil {
				return fmt.Errorf("order ledger read: %w", err)
			}
			logger.Info("Order ledger ready", zap.Int("orders", len(records)))
			return nil
		})
	}

	return g.Wait()
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	// The processor drains only after the server stops accepting
	// requests, so no new orders can land behind the drain.
	a.processor.Shutdown()

	if a.catalog != nil {
		if err := a.catalog.Save(shutdownCtx); err != nil {
			logger.Error("Catalog save failed", zap.Error(err))
		}
	}

	if a.checkout != nil {
		logger.Info("Server stopped", zap.Int("tracked_orders", len(a.checkout.LiveOrders())))
	} else {
		logger.Info("Server stopped")
	}
	_ = logger.Sync()
	return nil
}

// GetServer exposes the gin engine (for tests).
func (a *App) GetServer() *gin.Engine {
	return a.router.GetEngine()
}

// EventBus exposes the domain event bus so embedders can subscribe their
// own handlers before calling Run.
func (a *App) EventBus() *events.Bus {
	return a.bus
}
