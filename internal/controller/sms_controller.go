package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-debtchat-be/internal/service"
)

type ISMSController interface {
	RegisterRoutes(r fiber.Router)
	Webhook(ctx *fiber.Ctx) error
}

type smsController struct {
	service service.ISMSService
}

func NewSMSController(svc service.ISMSService) ISMSController {
	return &smsController{service: svc}
}

func (c *smsController) RegisterRoutes(r fiber.Router) {
	r.Post("/webhook/v1/sms", c.Webhook)
}

// Webhook receives Twilio's inbound-message form post. Twilio retries on
// non-2xx, so processing errors other than infrastructure failures still
// return an empty 200.
func (c *smsController) Webhook(ctx *fiber.Ctx) error {
	from := ctx.FormValue("From")
	body := ctx.FormValue("Body")
	sid := ctx.FormValue("MessageSid")

	if from == "" || body == "" {
		return ctx.SendStatus(fiber.StatusOK)
	}

	if err := c.service.HandleInbound(ctx.Context(), from, body, sid); err != nil {
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}
	return ctx.SendStatus(fiber.StatusOK)
}
