// FILE: internal/controller/order_controller.go
package controller

import (
	"launchforge-be/internal/dto"
	"launchforge-be/internal/pkg/serverutils"
	"launchforge-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOrderController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	MarkPaid(ctx *fiber.Ctx) error
	IssueDownloadLink(ctx *fiber.Ctx) error
}

type orderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) IOrderController {
	return &orderController{
		orderService: orderService,
	}
}

func (c *orderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/order/v1")
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	// TODO: replace with a payment-gateway webhook once a provider is chosen.
	h.Put(":id/paid", c.MarkPaid)
	h.Post(":id/download-link", c.IssueDownloadLink)
}

func (c *orderController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.orderService.CreateOrder(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create order", res))
}

func (c *orderController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	res, err := c.orderService.GetOrder(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show order", res))
}

func (c *orderController) MarkPaid(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	if err := c.orderService.MarkPaid(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success mark order paid", nil))
}

func (c *orderController) IssueDownloadLink(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	res, err := c.orderService.IssueDownloadLink(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success issue download link", res))
}
