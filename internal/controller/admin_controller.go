// FILE: internal/controller/admin_controller.go
package controller

import (
	"bufio"
	"fmt"

	"launchforge-be/internal/dto"
	"launchforge-be/internal/pkg/logger"
	"launchforge-be/internal/pkg/serverutils"
	"launchforge-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	catalogService   service.CatalogService
	generatorService service.IGeneratorService
	logger           logger.ILogger
}

func NewAdminController(
	catalogService service.CatalogService,
	generatorService service.IGeneratorService,
	log logger.ILogger,
) IAdminController {
	return &adminController{
		catalogService:   catalogService,
		generatorService: generatorService,
		logger:           log,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("modules", c.CreateModule)
	h.Post("features", c.CreateFeature)
	h.Put("features/:id", c.UpdateFeature)
	h.Delete("features/:id", c.DeleteFeature)
	h.Post("templates", c.CreateTemplate)
	h.Get("orders/:id/archive", c.RegenerateArchive)
}

func (c *adminController) CreateModule(ctx *fiber.Ctx) error {
	var req dto.CreateModuleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.CreateModule(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create module", res))
}

func (c *adminController) CreateFeature(ctx *fiber.Ctx) error {
	var req dto.CreateFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.CreateFeature(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create feature", res))
}

func (c *adminController) UpdateFeature(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feature id")
	}

	var req dto.UpdateFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.UpdateFeature(ctx.Context(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update feature", res))
}

func (c *adminController) DeleteFeature(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feature id")
	}

	if err := c.catalogService.DeleteFeature(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete feature", nil))
}

func (c *adminController) CreateTemplate(ctx *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.CreateTemplate(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create template", res))
}

// RegenerateArchive streams the order's archive again without touching the
// download counter. Support path for fixing a buyer's broken download.
func (c *adminController) RegenerateArchive(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	ctx.Set(fiber.HeaderContentType, "application/zip")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="order-%s.zip"`, id))

	reqCtx := ctx.Context()
	gen := c.generatorService
	log := c.logger

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if _, err := gen.GenerateByOrderID(reqCtx, id, w); err != nil {
			log.Error("Admin", "Archive regeneration failed", map[string]interface{}{
				"order_id": id.String(),
				"error":    err.Error(),
			})
			return
		}
		w.Flush()
	}))

	return nil
}
