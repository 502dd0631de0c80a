package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/pkg/serverutils"
	"nexus-ems-be/pkg/editor"
	"nexus-ems-be/pkg/store"
	"nexus-ems-be/pkg/view"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testUserID = uuid.MustParse("7d1f2f0e-1b1a-4d8e-9a54-0b9cde2f1a01")

const testSessionID = "sid-test"

func fakeJwt(ctx *fiber.Ctx) error {
	ctx.Locals("user_id", testUserID.String())
	ctx.Locals("session_id", testSessionID)
	return ctx.Next()
}

func newApp(register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	register(app.Group("/api"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	raw, _ := io.ReadAll(res.Body)
	_ = json.Unmarshal(raw, &out)
	return res, out
}

type fakeEmployeeService struct {
	created *editor.Form
	updated uuid.UUID
	deleted uuid.UUID
	actor   uuid.UUID
	err     error
}

func (f *fakeEmployeeService) Create(_ context.Context, actorID uuid.UUID, form *editor.Form) (*dto.EmployeeMutationResponse, error) {
	f.actor = actorID
	f.created = form
	if f.err != nil {
		return nil, f.err
	}
	return &dto.EmployeeMutationResponse{Id: uuid.New()}, nil
}

func (f *fakeEmployeeService) Update(_ context.Context, actorID, id uuid.UUID, _ *editor.Form) (*dto.EmployeeMutationResponse, error) {
	f.actor = actorID
	f.updated = id
	if f.err != nil {
		return nil, f.err
	}
	return &dto.EmployeeMutationResponse{Id: id}, nil
}

func (f *fakeEmployeeService) Delete(_ context.Context, actorID, id uuid.UUID) error {
	f.actor = actorID
	f.deleted = id
	return f.err
}

func (f *fakeEmployeeService) Show(_ context.Context, id uuid.UUID) (*dto.EmployeeResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.EmployeeResponse{Id: id, FullName: "Ada Lovelace"}, nil
}

func (f *fakeEmployeeService) NewForm() editor.Form {
	return editor.NewCreateForm(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
}

func (f *fakeEmployeeService) EditForm(_ context.Context, id uuid.UUID) (*editor.Form, error) {
	if f.err != nil {
		return nil, f.err
	}
	form := editor.NewEditForm(entity.Employee{Id: id, FullName: "Ada Lovelace"})
	return &form, nil
}

type fakeQueryService struct {
	lastList dto.ListEmployeesRequest
}

func (f *fakeQueryService) List(req dto.ListEmployeesRequest) *dto.EmployeePageResponse {
	f.lastList = req
	return &dto.EmployeePageResponse{State: req.State(), Page: view.Page[dto.EmployeeResponse]{}}
}

func (f *fakeQueryService) RenderView(state view.State) (any, error) { return nil, nil }

func (f *fakeQueryService) Stats() *dto.EmployeeStatsResponse {
	return &dto.EmployeeStatsResponse{Total: 3, Active: 2}
}

func (f *fakeQueryService) Filtered(string, string) []entity.Employee { return nil }

type fakeAssistantService struct {
	scanned []byte
	current editor.Form
	err     error
}

func (f *fakeAssistantService) Chat(_ context.Context, _ uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ChatResponse{
		ConversationId: "c1",
		Message:        store.Message{Role: store.RoleAssistant, Text: "echo: " + req.Query},
	}, nil
}

func (f *fakeAssistantService) Conversation(_ uuid.UUID, id string) (*dto.ConversationResponse, error) {
	if id != "c1" {
		return nil, serverutils.NotFound("Conversation not found")
	}
	return &dto.ConversationResponse{ConversationId: id}, nil
}

func (f *fakeAssistantService) ClearConversation(_ uuid.UUID, id string) error {
	if id != "c1" {
		return serverutils.NotFound("Conversation not found")
	}
	return nil
}

func (f *fakeAssistantService) ScanForm(_ context.Context, _ uuid.UUID, image []byte, current editor.Form) (*editor.Form, error) {
	f.scanned = image
	f.current = current
	if f.err != nil {
		return nil, f.err
	}
	current.FullName = "Scanned Name"
	return &current, nil
}

func (f *fakeAssistantService) Speak(_ context.Context, _ uuid.UUID, req *dto.SpeakRequest) (*dto.SpeakResponse, error) {
	return &dto.SpeakResponse{Audio: "AAAA", Encoding: "pcm"}, nil
}

type fakeReportService struct {
	search, department string
}

func (f *fakeReportService) EmployeeReport(search, department string) ([]byte, error) {
	f.search, f.department = search, department
	return []byte("%PDF-report"), nil
}

func (f *fakeReportService) Spreadsheet(search, department string) ([]byte, error) {
	f.search, f.department = search, department
	return []byte("PK-xlsx"), nil
}

func (f *fakeReportService) BlankForm() ([]byte, error) { return []byte("%PDF-form"), nil }
