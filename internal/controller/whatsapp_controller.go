package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/pkg/serverutils"
	"ai-debtchat-be/internal/service"
	"ai-debtchat-be/pkg/whatsapp"
)

type IWhatsAppController interface {
	RegisterRoutes(r fiber.Router)
	Verify(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
	SendTemplate(ctx *fiber.Ctx) error
}

type whatsAppController struct {
	service service.IWhatsAppService
}

func NewWhatsAppController(svc service.IWhatsAppService) IWhatsAppController {
	return &whatsAppController{service: svc}
}

func (c *whatsAppController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1/whatsapp")
	h.Get("", c.Verify)
	h.Post("", c.Webhook)

	r.Post("/whatsapp/v1/template", serverutils.JwtMiddleware, c.SendTemplate)
}

// Verify answers Meta's subscription handshake. The challenge is echoed
// back as plain text, not wrapped in the response envelope.
func (c *whatsAppController) Verify(ctx *fiber.Ctx) error {
	challenge, ok := c.service.VerifyWebhook(
		ctx.Query("hub.mode"),
		ctx.Query("hub.verify_token"),
		ctx.Query("hub.challenge"),
	)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "verification failed"))
	}
	return ctx.SendString(challenge)
}

func (c *whatsAppController) Webhook(ctx *fiber.Ctx) error {
	var payload whatsapp.WebhookPayload
	if err := ctx.BodyParser(&payload); err != nil {
		// Meta retries on non-2xx. Malformed payloads are dropped.
		return ctx.SendStatus(fiber.StatusOK)
	}

	if err := c.service.HandleWebhook(ctx.Context(), payload); err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusOK)
}

func (c *whatsAppController) SendTemplate(ctx *fiber.Ctx) error {
	var req dto.SendWhatsAppTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SendTemplate(ctx.Context(), &req); err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Template sent", nil))
}
