package controller

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/pkg/serverutils"
	"ai-debtchat-be/internal/repository/specification"
	"ai-debtchat-be/internal/repository/unitofwork"
	"ai-debtchat-be/internal/service"
	"ai-debtchat-be/internal/websocket"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	NegotiateLanguage(ctx *fiber.Ctx) error
	CloseSession(ctx *fiber.Ctx) error
	TransferSession(ctx *fiber.Ctx) error
}

type chatController struct {
	service    service.IChatService
	hub        *websocket.Hub
	uowFactory unitofwork.RepositoryFactory
}

func NewChatController(svc service.IChatService, hub *websocket.Hub, uowFactory unitofwork.RepositoryFactory) IChatController {
	return &chatController{
		service:    svc,
		hub:        hub,
		uowFactory: uowFactory,
	}
}

// chatProcessor bridges the socket layer onto the pipeline.
type chatProcessor struct {
	svc service.IChatService
}

func (p chatProcessor) Process(ctx context.Context, sessionToken, content string) (*dto.SendMessageResponse, error) {
	return p.svc.ProcessMessage(ctx, &dto.SendMessageRequest{SessionToken: sessionToken, Content: content})
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("session", c.StartSession)
	h.Post("message", c.SendMessage)
	h.Get("session/:token/history", c.GetHistory)
	h.Patch("session/:token/language", c.NegotiateLanguage)
	h.Post("session/:token/close", c.CloseSession)
	h.Post("session/:token/transfer", serverutils.JwtMiddleware, c.TransferSession)

	h.Use("/ws/:token", func(ctx *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("/ws/:token", fiberws.New(c.serveSocket))
}

func (c *chatController) serveSocket(conn *fiberws.Conn) {
	token := conn.Params("token")

	uow := c.uowFactory.NewUnitOfWork(context.Background())
	session, err := uow.ChatSessionRepository().FindOne(context.Background(), specification.BySessionToken{Token: token})
	if err != nil || session == nil {
		conn.Close()
		return
	}

	websocket.ServeWs(c.hub, conn, session.Id, token, chatProcessor{svc: c.service})
}

func (c *chatController) StartSession(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.StartSession(ctx.Context(), &req)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session started", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ProcessMessage(ctx.Context(), &req)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)

	res, err := c.service.GetHistory(ctx.Context(), ctx.Params("token"), limit)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *chatController) NegotiateLanguage(ctx *fiber.Ctx) error {
	var req dto.NegotiateLanguageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.NegotiateLanguage(ctx.Context(), ctx.Params("token"), &req)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Language updated", res))
}

func (c *chatController) CloseSession(ctx *fiber.Ctx) error {
	var req dto.CloseSessionRequest
	_ = ctx.BodyParser(&req)

	if err := c.service.CloseSession(ctx.Context(), ctx.Params("token"), req.Reason); err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session closed", nil))
}

func (c *chatController) TransferSession(ctx *fiber.Ctx) error {
	var req dto.CloseSessionRequest
	_ = ctx.BodyParser(&req)

	if err := c.service.TransferSession(ctx.Context(), ctx.Params("token"), req.Reason); err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session transferred", nil))
}

func mapServiceError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrDebtorNotFound),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrAgentNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	case errors.Is(err, service.ErrSessionClosed):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	case errors.Is(err, service.ErrBadCredentials):
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateAccount):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}
