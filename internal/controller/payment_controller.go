package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/pkg/serverutils"
	"ai-debtchat-be/internal/service"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	CreateLink(ctx *fiber.Ctx) error
	Notification(ctx *fiber.Ctx) error
	ListTransactions(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(svc service.IPaymentService) IPaymentController {
	return &paymentController{service: svc}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment/v1")
	h.Post("link", c.CreateLink)
	h.Post("notification", c.Notification)
	h.Get("account/:accountId/transactions", serverutils.JwtMiddleware, c.ListTransactions)
}

func (c *paymentController) CreateLink(ctx *fiber.Ctx) error {
	var req dto.CreatePaymentLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreatePaymentLink(ctx.Context(), &req)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Payment link created", res))
}

func (c *paymentController) Notification(ctx *fiber.Ctx) error {
	var req dto.MidtransNotification
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notification processed", nil))
}

func (c *paymentController) ListTransactions(ctx *fiber.Ctx) error {
	accountId, err := uuid.Parse(ctx.Params("accountId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	res, err := c.service.ListTransactions(ctx.Context(), accountId)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Transactions", res))
}
