// Command demo walks the storefront end to end on the console: it seeds
// the catalog, browses it, fills a cart, places an order that a worker
// processes in stages, runs the express path, and shows what a customer
// sees when the express wait runs out.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	catalogapp "github.com/realyassine/SouqFX/application/catalog"
	checkoutapp "github.com/realyassine/SouqFX/application/checkout"
	"github.com/realyassine/SouqFX/config"
	"github.com/realyassine/SouqFX/domain/cart"
	"github.com/realyassine/SouqFX/infrastructure/events"
	"github.com/realyassine/SouqFX/infrastructure/persistence/csvstore"
	"github.com/realyassine/SouqFX/infrastructure/processing"
	apperrors "github.com/realyassine/SouqFX/pkg/errors"
	"github.com/realyassine/SouqFX/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Demo failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Keep the tour output readable.
	cfg.Log.Level = "warn"
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := context.Background()

	store, err := csvstore.New(cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open flat-file store: %w", err)
	}

	bus := events.NewBus()

	catalogService, err := catalogapp.NewService(store, cfg.Catalog)
	if err != nil {
		return err
	}
	if err := catalogService.Warmup(ctx); err != nil {
		return fmt.Errorf("catalog warmup: %w", err)
	}

	tracker, err := checkoutapp.NewStatusTracker(store, bus)
	if err != nil {
		return err
	}

	processor, err := processing.New(processing.FromConfig(cfg.Processor))
	if err != nil {
		return err
	}
	defer processor.Shutdown()

	printer := newProgressPrinter(tracker)
	processor.SetObserver(printer)

	service, err := checkoutapp.NewService(cart.New(), catalogService, processor, tracker, store, cfg.Processor.AwaitTimeout)
	if err != nil {
		return err
	}

	if err := browse(catalogService); err != nil {
		return err
	}
	if err := fillCart(service); err != nil {
		return err
	}
	if err := placeOrder(ctx, service, printer); err != nil {
		return err
	}
	if err := expressOrder(ctx, service); err != nil {
		return err
	}
	if err := impatientExpress(ctx, cfg, store, bus, catalogService); err != nil {
		return err
	}

	return showHistory(ctx, service)
}

func browse(catalogService *catalogapp.Service) error {
	fmt.Println("=== Catalog ===")
	items, err := catalogService.List(catalogapp.Query{})
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Println("  " + item.Description)
	}

	fmt.Println()
	fmt.Println("=== Clothing under 500.00 DH ===")
	matches, err := catalogService.List(catalogapp.Query{Kind: "CLOTHING", MinPrice: "0", MaxPrice: "500"})
	if err != nil {
		return err
	}
	for _, item := range matches {
		fmt.Println("  " + item.Display)
	}
	fmt.Println()
	return nil
}

func fillCart(service *checkoutapp.Service) error {
	fmt.Println("=== Cart ===")
	if _, err := service.AddToCart(checkoutapp.AddItemRequest{ItemID: 1, Quantity: 1}); err != nil {
		return err
	}
	view, err := service.AddToCart(checkoutapp.AddItemRequest{ItemID: 6, Quantity: 2})
	if err != nil {
		return err
	}
	for _, line := range view.Lines {
		fmt.Printf("  %dx %s\n", line.Quantity, line.Display)
	}
	fmt.Printf("  %d items, total %s %s\n\n", view.TotalItems, view.Total, view.Currency)
	return nil
}

func placeOrder(ctx context.Context, service *checkoutapp.Service, printer *progressPrinter) error {
	fmt.Println("=== Checkout ===")
	resp, err := service.Checkout(ctx, checkoutapp.CheckoutRequest{CustomerName: "Amina"})
	if err != nil {
		return err
	}
	fmt.Printf("Order #%d queued for %s, %s %s\n", resp.OrderID, resp.Customer, resp.Total, resp.Currency)

	fmt.Println("Worker says: " + printer.waitCompleted())

	receipt, err := service.Receipt(resp.OrderID)
	if err != nil {
		return err
	}
	fmt.Println(receipt.Text)
	fmt.Println()
	return nil
}

func expressOrder(ctx context.Context, service *checkoutapp.Service) error {
	fmt.Println("=== Express checkout ===")
	if _, err := service.AddToCart(checkoutapp.AddItemRequest{ItemID: 9, Quantity: 1}); err != nil {
		return err
	}

	resp, err := service.ExpressCheckout(ctx, checkoutapp.CheckoutRequest{CustomerName: "Yassine"})
	if err != nil {
		return err
	}
	fmt.Println("  " + resp.Message)
	fmt.Println()
	return nil
}

// impatientExpress runs the express path against a deliberately slow
// pool with a wait budget far below the settle delay. The order is
// abandoned and never reaches the ledger.
func impatientExpress(ctx context.Context, cfg *config.Config, store *csvstore.Store, bus *events.Bus, items *catalogapp.Service) error {
	fmt.Println("=== Express checkout, impatient customer ===")

	tracker, err := checkoutapp.NewStatusTracker(store, bus)
	if err != nil {
		return err
	}

	slowCfg := processing.FromConfig(cfg.Processor)
	slowCfg.ResultDelay = 2 * time.Second

	slow, err := processing.New(slowCfg)
	if err != nil {
		return err
	}
	defer slow.Shutdown()
	slow.SetObserver(tracker)

	service, err := checkoutapp.NewService(cart.New(), items, slow, tracker, store, 200*time.Millisecond)
	if err != nil {
		return err
	}

	if _, err := service.AddToCart(checkoutapp.AddItemRequest{ItemID: 8, Quantity: 1}); err != nil {
		return err
	}

	_, err = service.ExpressCheckout(ctx, checkoutapp.CheckoutRequest{CustomerName: "Hamid"})
	if err == nil {
		fmt.Println("  the worker beat the timeout, order confirmed")
		fmt.Println()
		return nil
	}
	if apperrors.Is(err, apperrors.CodeCheckoutTimeout) {
		fmt.Println("  gave up after 200ms: " + err.Error())
		fmt.Println()
		return nil
	}
	return err
}

func showHistory(ctx context.Context, service *checkoutapp.Service) error {
	fmt.Println("=== Order history (orders.csv) ===")
	entries, err := service.History(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("  #%d  %s  %s  %s  paid=%v\n",
			e.OrderID, e.PlacedAt.Format("2006-01-02 15:04"), e.Customer, e.Total, e.Paid)
	}
	return nil
}

// progressPrinter echoes lifecycle callbacks to the console and forwards
// them to the real tracker. Forwarding happens before the completion
// signal fires so the tracker has settled when waitCompleted returns.
type progressPrinter struct {
	next      processing.Observer
	completed chan string
}

func newProgressPrinter(next processing.Observer) *progressPrinter {
	return &progressPrinter{next: next, completed: make(chan string, 1)}
}

func (p *progressPrinter) OnStarted(orderID int64) {
	fmt.Printf("  order %d picked up by a worker\n", orderID)
	p.next.OnStarted(orderID)
}

func (p *progressPrinter) OnProgress(orderID int64, percent int) {
	fmt.Printf("  order %d at %d%%\n", orderID, percent)
	p.next.OnProgress(orderID, percent)
}

func (p *progressPrinter) OnCompleted(orderID int64, success bool, message string) {
	p.next.OnCompleted(orderID, success, message)
	select {
	case p.completed <- message:
	default:
	}
}

func (p *progressPrinter) waitCompleted() string {
	select {
	case msg := <-p.completed:
		return msg
	case <-time.After(30 * time.Second):
		return "still processing"
	}
}

func parseConfigPath() string {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	return configPath
}
