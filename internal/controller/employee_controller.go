package controller

import (
	"encoding/json"
	"io"

	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/pkg/serverutils"
	"nexus-ems-be/internal/service"
	"nexus-ems-be/pkg/chatbot"
	"nexus-ems-be/pkg/editor"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEmployeeController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	NewForm(ctx *fiber.Ctx) error
	EditForm(ctx *fiber.Ctx) error
	ScanForm(ctx *fiber.Ctx) error
}

type employeeController struct {
	service   service.IEmployeeService
	query     service.IEmployeeQueryService
	assistant service.IAssistantService
	jwt       fiber.Handler
}

func NewEmployeeController(
	service service.IEmployeeService,
	query service.IEmployeeQueryService,
	assistant service.IAssistantService,
	jwt fiber.Handler,
) IEmployeeController {
	return &employeeController{service: service, query: query, assistant: assistant, jwt: jwt}
}

func (c *employeeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/employees")
	h.Use(c.jwt)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("/stats", c.Stats)
	h.Get("/form/new", c.NewForm)
	h.Post("/form/scan", c.ScanForm)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/form", c.EditForm)
}

func actor(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(serverutils.UserID(ctx))
	if err != nil {
		return uuid.Nil, serverutils.Unauthorized("Invalid token")
	}
	return id, nil
}

func paramID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.BadRequest("Invalid employee id")
	}
	return id, nil
}

func (c *employeeController) List(ctx *fiber.Ctx) error {
	var req dto.ListEmployeesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.BadRequest("Invalid query")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get employees", c.query.List(req)))
}

func (c *employeeController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get stats", c.query.Stats()))
}

func (c *employeeController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show employee", res))
}

func (c *employeeController) Create(ctx *fiber.Ctx) error {
	userId, err := actor(ctx)
	if err != nil {
		return err
	}

	var form editor.Form
	if err := ctx.BodyParser(&form); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &form)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create employee", res))
}

func (c *employeeController) Update(ctx *fiber.Ctx) error {
	userId, err := actor(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	var form editor.Form
	if err := ctx.BodyParser(&form); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	res, err := c.service.Update(ctx.UserContext(), userId, id, &form)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update employee", res))
}

func (c *employeeController) Delete(ctx *fiber.Ctx) error {
	userId, err := actor(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete employee", nil))
}

func (c *employeeController) NewForm(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("New employee form", c.service.NewForm()))
}

func (c *employeeController) EditForm(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	form, err := c.service.EditForm(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Edit employee form", form))
}

// ScanForm expects multipart fields "image" (the scan) and "form" (the
// current form as JSON). Without "form" a fresh create form is used.
func (c *employeeController) ScanForm(ctx *fiber.Ctx) error {
	userId, err := actor(ctx)
	if err != nil {
		return err
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return serverutils.BadRequest("Image file is required")
	}
	if file.Size > chatbot.MaxImageBytes {
		return serverutils.BadRequest("Image must be 10 MB or smaller")
	}

	f, err := file.Open()
	if err != nil {
		return serverutils.BadRequest("Could not read image")
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		return serverutils.BadRequest("Could not read image")
	}

	current := c.service.NewForm()
	if raw := ctx.FormValue("form"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &current); err != nil {
			return serverutils.BadRequest("Invalid form field")
		}
	}

	merged, err := c.assistant.ScanForm(ctx.UserContext(), userId, image, current)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Form extracted", merged))
}
