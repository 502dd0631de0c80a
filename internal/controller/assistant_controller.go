package controller

import (
	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/pkg/serverutils"
	"nexus-ems-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Conversation(ctx *fiber.Ctx) error
	ClearConversation(ctx *fiber.Ctx) error
	Speak(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
	jwt     fiber.Handler
}

func NewAssistantController(service service.IAssistantService, jwt fiber.Handler) IAssistantController {
	return &assistantController{service: service, jwt: jwt}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant")
	h.Use(c.jwt)
	h.Post("/chat", c.Chat)
	h.Get("/conversations/:id", c.Conversation)
	h.Delete("/conversations/:id", c.ClearConversation)
	h.Post("/speech", c.Speak)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	userId, err := actor(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *assistantController) Conversation(ctx *fiber.Ctx) error {
	userId, err := actor(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Conversation(userId, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get conversation", res))
}

func (c *assistantController) ClearConversation(ctx *fiber.Ctx) error {
	userId, err := actor(ctx)
	if err != nil {
		return err
	}
	if err := c.service.ClearConversation(userId, ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation cleared", nil))
}

func (c *assistantController) Speak(ctx *fiber.Ctx) error {
	userId, err := actor(ctx)
	if err != nil {
		return err
	}

	var req dto.SpeakRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Speak(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success synthesize speech", res))
}
