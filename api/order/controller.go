package order

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/realyassine/SouqFX/api/ctxutil"
	"github.com/realyassine/SouqFX/api/response"
	checkoutapp "github.com/realyassine/SouqFX/application/checkout"
	"github.com/realyassine/SouqFX/pkg/errors"
)

// Controller serves checkout and order tracking routes.
type Controller struct {
	checkoutService *checkoutapp.Service
}

// NewController creates the order controller.
func NewController(checkoutService *checkoutapp.Service) *Controller {
	return &Controller{
		checkoutService: checkoutService,
	}
}

// RegisterRoutes registers the checkout and order routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	checkoutGroup := router.Group("/checkout")
	{
		checkoutGroup.POST("", c.Checkout)
		checkoutGroup.POST("/express", c.ExpressCheckout)
	}

	orderGroup := router.Group("/orders")
	{
		orderGroup.GET("", c.LiveOrders)
		orderGroup.GET("/history", c.History)
		orderGroup.GET("/:id/status", c.OrderStatus)
		orderGroup.GET("/:id/receipt", c.Receipt)
	}
}

// Checkout places an order for the cart contents and hands it to the
// processor pool. The response acknowledges the queued order; progress
// is tracked through the status route.
// POST /api/v1/checkout
func (c *Controller) Checkout(ctx *gin.Context) {
	var req checkoutapp.CheckoutRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
			return
		}
	}

	resp, err := c.checkoutService.Checkout(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleAccepted(ctx, resp, "order queued for processing")
}

// ExpressCheckout places an order and waits for its settled outcome.
// A processing run that outlives the configured await timeout maps
// to 504.
// POST /api/v1/checkout/express
func (c *Controller) ExpressCheckout(ctx *gin.Context) {
	var req checkoutapp.CheckoutRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
			return
		}
	}

	resp, err := c.checkoutService.ExpressCheckout(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, resp, "order processed")
}

// LiveOrders lists every order tracked since startup.
// GET /api/v1/orders
func (c *Controller) LiveOrders(ctx *gin.Context) {
	response.HandleSuccess(ctx, c.checkoutService.LiveOrders(), "orders retrieved successfully")
}

// OrderStatus reports the processing state of one order.
// GET /api/v1/orders/:id/status
func (c *Controller) OrderStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		response.HandleError(ctx, errors.BadRequest("order ID must be a number"), "order ID must be a number", http.StatusBadRequest)
		return
	}

	status, err := c.checkoutService.OrderStatus(id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, status, "order status retrieved successfully")
}

// Receipt returns the printable payment summary as plain text.
// GET /api/v1/orders/:id/receipt
func (c *Controller) Receipt(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		response.HandleError(ctx, errors.BadRequest("order ID must be a number"), "order ID must be a number", http.StatusBadRequest)
		return
	}

	receipt, err := c.checkoutService.Receipt(id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	ctx.String(http.StatusOK, "%s", receipt.Text)
}

// History reads the persisted order ledger.
// GET /api/v1/orders/history
func (c *Controller) History(ctx *gin.Context) {
	entries, err := c.checkoutService.History(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, entries, "order history retrieved successfully")
}
