package cart

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/realyassine/SouqFX/api/response"
	catalogapp "github.com/realyassine/SouqFX/application/catalog"
	checkoutapp "github.com/realyassine/SouqFX/application/checkout"
	"github.com/realyassine/SouqFX/pkg/errors"
)

// Controller serves the shopping cart routes.
type Controller struct {
	checkoutService *checkoutapp.Service
}

// NewController creates the cart controller.
func NewController(checkoutService *checkoutapp.Service) *Controller {
	return &Controller{
		checkoutService: checkoutService,
	}
}

// RegisterRoutes registers the cart routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", c.Show)
		cartGroup.DELETE("", c.Clear)
		cartGroup.GET("/items", c.FilterItems)
		cartGroup.POST("/items", c.AddItem)
		cartGroup.DELETE("/items/:id", c.RemoveItem)
		cartGroup.POST("/items/:id/decrease", c.DecreaseItem)
	}
}

// Show returns the current cart.
// GET /api/v1/cart
func (c *Controller) Show(ctx *gin.Context) {
	response.HandleSuccess(ctx, c.checkoutService.Cart(), "cart retrieved successfully")
}

// FilterItems returns the cart lines matching the catalog filter query.
// GET /api/v1/cart/items
func (c *Controller) FilterItems(ctx *gin.Context) {
	var query catalogapp.Query
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	lines, err := c.checkoutService.FilterCart(query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, lines, "cart items retrieved successfully")
}

// AddItem puts units of a catalog item into the cart, one by default.
// POST /api/v1/cart/items
func (c *Controller) AddItem(ctx *gin.Context) {
	var req checkoutapp.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	view, err := c.checkoutService.AddToCart(req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, view, "item added to cart")
}

// RemoveItem drops an item from the cart entirely.
// DELETE /api/v1/cart/items/:id
func (c *Controller) RemoveItem(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		response.HandleError(ctx, errors.BadRequest("item ID must be a number"), "item ID must be a number", http.StatusBadRequest)
		return
	}

	response.HandleSuccess(ctx, c.checkoutService.RemoveFromCart(id), "item removed from cart")
}

// DecreaseItem removes one unit of an item.
// POST /api/v1/cart/items/:id/decrease
func (c *Controller) DecreaseItem(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		response.HandleError(ctx, errors.BadRequest("item ID must be a number"), "item ID must be a number", http.StatusBadRequest)
		return
	}

	response.HandleSuccess(ctx, c.checkoutService.DecreaseQuantity(id), "item quantity decreased")
}

// Clear empties the cart.
// DELETE /api/v1/cart
func (c *Controller) Clear(ctx *gin.Context) {
	response.HandleSuccess(ctx, c.checkoutService.ClearCart(), "cart cleared")
}
