// FILE: internal/controller/catalog_controller.go
package controller

import (
	"launchforge-be/internal/pkg/serverutils"
	"launchforge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	ListModules(ctx *fiber.Ctx) error
	ListFeatures(ctx *fiber.Ctx) error
	ListTemplates(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) ICatalogController {
	return &catalogController{
		catalogService: catalogService,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("modules", c.ListModules)
	h.Get("features", c.ListFeatures)
	h.Get("templates", c.ListTemplates)
}

func (c *catalogController) ListModules(ctx *fiber.Ctx) error {
	res, err := c.catalogService.ListModules(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list modules", res))
}

func (c *catalogController) ListFeatures(ctx *fiber.Ctx) error {
	res, err := c.catalogService.ListFeatures(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list features", res))
}

func (c *catalogController) ListTemplates(ctx *fiber.Ctx) error {
	res, err := c.catalogService.ListTemplates(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list templates", res))
}
