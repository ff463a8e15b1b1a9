package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/pkg/serverutils"
	"ai-debtchat-be/internal/service"
)

type IDebtorController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	CreateAccount(ctx *fiber.Ctx) error
	ListAccounts(ctx *fiber.Ctx) error
	Analytics(ctx *fiber.Ctx) error
}

type debtorController struct {
	service service.IDebtorService
}

func NewDebtorController(svc service.IDebtorService) IDebtorController {
	return &debtorController{service: svc}
}

func (c *debtorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/debtor/v1", serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get(":id", c.Get)
	h.Post("account", c.CreateAccount)
	h.Get(":id/accounts", c.ListAccounts)
	h.Get(":id/analytics", c.Analytics)
}

func (c *debtorController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateDebtorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateDebtor(ctx.Context(), &req)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Debtor created", res))
}

func (c *debtorController) Get(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid debtor id")
	}

	res, err := c.service.GetDebtor(ctx.Context(), id)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Debtor", res))
}

func (c *debtorController) CreateAccount(ctx *fiber.Ctx) error {
	var req dto.CreateDebtAccountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateDebtAccount(ctx.Context(), &req)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Debt account created", res))
}

func (c *debtorController) ListAccounts(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid debtor id")
	}

	res, err := c.service.GetAccounts(ctx.Context(), id)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Debt accounts", res))
}

func (c *debtorController) Analytics(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid debtor id")
	}

	res, err := c.service.GetAnalytics(ctx.Context(), id)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Debtor analytics", res))
}
