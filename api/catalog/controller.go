package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/realyassine/SouqFX/api/response"
	catalogapp "github.com/realyassine/SouqFX/application/catalog"
	"github.com/realyassine/SouqFX/pkg/errors"
)

// Controller serves the product catalog routes.
type Controller struct {
	catalogService *catalogapp.Service
}

// NewController creates the catalog controller.
func NewController(catalogService *catalogapp.Service) *Controller {
	return &Controller{
		catalogService: catalogService,
	}
}

// RegisterRoutes registers the catalog routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	catalogGroup := router.Group("/catalog")
	{
		catalogGroup.GET("", c.List)
		catalogGroup.GET("/:id", c.Get)
	}
}

// List returns the catalog, filtered by the optional search, kind and
// price query parameters.
// GET /api/v1/catalog
func (c *Controller) List(ctx *gin.Context) {
	var query catalogapp.Query
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	items, err := c.catalogService.List(query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, items, "catalog retrieved successfully")
}

// Get returns a single catalog item.
// GET /api/v1/catalog/:id
func (c *Controller) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		response.HandleError(ctx, errors.BadRequest("item ID must be a number"), "item ID must be a number", http.StatusBadRequest)
		return
	}

	item, err := c.catalogService.Get(id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, item, "item retrieved successfully")
}
