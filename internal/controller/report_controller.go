package controller

import (
	"fmt"

	"nexus-ems-be/internal/service"
	"nexus-ems-be/pkg/report"

	"github.com/gofiber/fiber/v2"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	EmployeeReport(ctx *fiber.Ctx) error
	Spreadsheet(ctx *fiber.Ctx) error
	BlankForm(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IReportService
	jwt     fiber.Handler
}

func NewReportController(service service.IReportService, jwt fiber.Handler) IReportController {
	return &reportController{service: service, jwt: jwt}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reports")
	h.Use(c.jwt)
	h.Get("/employees.pdf", c.EmployeeReport)
	h.Get("/employees.xlsx", c.Spreadsheet)
	h.Get("/enrollment-form.pdf", c.BlankForm)
}

// Exports use the same search and department filters as the list view.
func (c *reportController) EmployeeReport(ctx *fiber.Ctx) error {
	data, err := c.service.EmployeeReport(ctx.Query("search"), ctx.Query("department"))
	if err != nil {
		return err
	}
	return attachment(ctx, report.EmployeeReportFilename, mimePDF, data)
}

func (c *reportController) Spreadsheet(ctx *fiber.Ctx) error {
	data, err := c.service.Spreadsheet(ctx.Query("search"), ctx.Query("department"))
	if err != nil {
		return err
	}
	return attachment(ctx, report.SpreadsheetFilename, mimeXLSX, data)
}

func (c *reportController) BlankForm(ctx *fiber.Ctx) error {
	data, err := c.service.BlankForm()
	if err != nil {
		return err
	}
	return attachment(ctx, report.BlankFormFilename, mimePDF, data)
}

func attachment(ctx *fiber.Ctx, filename, contentType string, data []byte) error {
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(data)
}
