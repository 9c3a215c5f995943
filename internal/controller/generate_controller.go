// FILE: internal/controller/generate_controller.go
package controller

import (
	"bufio"
	"fmt"

	"launchforge-be/internal/pkg/logger"
	"launchforge-be/internal/service"
	"launchforge-be/pkg/generator"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IGenerateController interface {
	RegisterRoutes(r fiber.Router)
	Download(ctx *fiber.Ctx) error
}

type generateController struct {
	orderService     service.OrderService
	generatorService service.IGeneratorService
	logger           logger.ILogger
}

func NewGenerateController(
	orderService service.OrderService,
	generatorService service.IGeneratorService,
	log logger.ILogger,
) IGenerateController {
	return &generateController{
		orderService:     orderService,
		generatorService: generatorService,
		logger:           log,
	}
}

func (c *generateController) RegisterRoutes(r fiber.Router) {
	r.Get("download/:token", c.Download)
}

// Download verifies the signed token, then streams the generated archive.
// Everything that can fail with a JSON error happens before the stream
// starts; once bytes flow, a failure truncates the zip and is logged.
func (c *generateController) Download(ctx *fiber.Ctx) error {
	tokenStr := ctx.Params("token")
	if tokenStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing download token")
	}

	order, err := c.orderService.VerifyDownloadToken(ctx.Context(), tokenStr)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}

	templateSlug := ""
	if order.Template != nil {
		templateSlug = order.Template.Slug
	}
	rootName := generator.ArchiveRootName(templateSlug, order.Tier)

	ctx.Set(fiber.HeaderContentType, "application/zip")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.zip"`, rootName))

	orderNumber := order.OrderNumber
	reqCtx := ctx.Context()
	gen := c.generatorService
	log := c.logger

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if _, err := gen.Generate(reqCtx, order, w); err != nil {
			// Headers are already out; the client gets a truncated zip.
			log.Error("Download", "Archive stream failed", map[string]interface{}{
				"order_number": orderNumber,
				"error":        err.Error(),
			})
			return
		}
		if err := w.Flush(); err != nil {
			log.Warn("Download", "Flush failed, client likely disconnected", map[string]interface{}{
				"order_number": orderNumber,
			})
		}
	}))

	return nil
}
