package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/pkg/serverutils"
	"nexus-ems-be/pkg/editor"
	"nexus-ems-be/pkg/events"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type employeeFixture struct {
	svc      IEmployeeService
	repo     *fakeEmployeeRepo
	signals  *recordingPublisher
	events   *recordingEventPublisher
	notifier *recordingNotifier
	actorID  uuid.UUID
}

func newEmployeeFixture(seed ...entity.Employee) *employeeFixture {
	f := &employeeFixture{
		repo:     newFakeEmployeeRepo(seed...),
		signals:  &recordingPublisher{},
		events:   &recordingEventPublisher{},
		notifier: &recordingNotifier{},
		actorID:  uuid.New(),
	}
	f.svc = NewEmployeeService(newFakeFactory(f.repo, nil), f.signals, f.events, f.notifier, "api-1", logger.NewNopLogger())
	return f
}

func validForm() *editor.Form {
	f := editor.NewCreateForm(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	f.FullName = "Jane Doe"
	f.Email = "jane@x.com"
	f.Role = "Analyst"
	f.Department = "Finance"
	f.Salary = 70000
	return &f
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestEmployeeService_Create(t *testing.T) {
	f := newEmployeeFixture()

	res, err := f.svc.Create(context.Background(), f.actorID, validForm())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.Id)

	assert.Equal(t, 1, f.repo.size())

	assert.Len(t, f.signals.payloads, 1)
	assert.Equal(t, []string{events.EmployeeCreated}, f.events.types())
	assert.Equal(t, "api-1", events.Origin(f.events.events[0]))
	assert.Equal(t, []string{"Employee added"}, f.notifier.success)
}

func TestEmployeeService_CreateIgnoresClientId(t *testing.T) {
	f := newEmployeeFixture()
	form := validForm()
	forged := uuid.New()
	form.EmployeeId = &forged

	res, err := f.svc.Create(context.Background(), f.actorID, form)
	require.NoError(t, err)
	assert.NotEqual(t, forged, res.Id)
}

func TestEmployeeService_CreateValidation(t *testing.T) {
	f := newEmployeeFixture()
	form := validForm()
	form.Email = "not-an-email"
	form.Department = "Ops"

	_, err := f.svc.Create(context.Background(), f.actorID, form)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Empty(t, f.signals.payloads)
	assert.Zero(t, f.repo.size())
	assert.Equal(t, []string{"Failed to add employee"}, f.notifier.failures)
}

func TestEmployeeService_UpdateValidationNotifies(t *testing.T) {
	existing := entity.Employee{Id: uuid.New(), FullName: "Kept As Is", Department: entity.DepartmentLegal}
	f := newEmployeeFixture(existing)
	form := validForm()
	form.JoinDate = "2024-02-30"
	form.Salary = -1

	_, err := f.svc.Update(context.Background(), f.actorID, existing.Id, form)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Equal(t, 1, f.notifier.failureCount())
	assert.Equal(t, []string{"Failed to update employee"}, f.notifier.failures)
	assert.Empty(t, f.events.types())

	kept, err := f.svc.Show(context.Background(), existing.Id)
	require.NoError(t, err)
	assert.Equal(t, "Kept As Is", kept.FullName)
}

func TestEmployeeService_WriteFailureNotifies(t *testing.T) {
	f := newEmployeeFixture()
	f.repo.set(func() { f.repo.failWrites = true })

	_, err := f.svc.Create(context.Background(), f.actorID, validForm())
	assert.Equal(t, http.StatusInternalServerError, appCode(t, err))
	assert.Equal(t, []string{"Failed to add employee"}, f.notifier.failures)
	assert.Empty(t, f.signals.payloads)
	assert.Empty(t, f.events.types())
}

func TestEmployeeService_UpdateReplacesAllFields(t *testing.T) {
	existing := entity.Employee{
		Id: uuid.New(), FullName: "Old Name", Email: "old@x.com", Role: "Intern",
		Department: entity.DepartmentHR, Salary: 1, Status: entity.EmployeeStatusActive,
		JoinDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f := newEmployeeFixture(existing)

	form := validForm()
	form.Status = "Inactive"
	_, err := f.svc.Update(context.Background(), f.actorID, existing.Id, form)
	require.NoError(t, err)

	got, _ := f.repo.FindOne(context.Background(), specByID(existing.Id))
	require.NotNil(t, got)
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, entity.DepartmentFinance, got.Department)
	assert.Equal(t, entity.EmployeeStatusInactive, got.Status)
	assert.Equal(t, "2024-03-01", got.JoinDate.Format(entity.JoinDateLayout))
	assert.Equal(t, []string{events.EmployeeUpdated}, f.events.types())
}

func TestEmployeeService_UpdateMissing(t *testing.T) {
	f := newEmployeeFixture()

	_, err := f.svc.Update(context.Background(), f.actorID, uuid.New(), validForm())
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
	assert.Equal(t, 1, f.notifier.failureCount())
}

func TestEmployeeService_Delete(t *testing.T) {
	existing := entity.Employee{Id: uuid.New(), FullName: "Gone Soon", Department: entity.DepartmentLegal}
	f := newEmployeeFixture(existing)

	require.NoError(t, f.svc.Delete(context.Background(), f.actorID, existing.Id))
	assert.Zero(t, f.repo.size())
	assert.Equal(t, []string{events.EmployeeDeleted}, f.events.types())

	err := f.svc.Delete(context.Background(), f.actorID, existing.Id)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func TestEmployeeService_Forms(t *testing.T) {
	existing := entity.Employee{
		Id: uuid.New(), FullName: "Ann", Email: "ann@x.com", Role: "Counsel",
		Department: entity.DepartmentLegal, Status: entity.EmployeeStatusActive,
		JoinDate: time.Date(2019, 7, 4, 0, 0, 0, 0, time.UTC),
	}
	f := newEmployeeFixture(existing)

	blank := f.svc.NewForm()
	assert.Equal(t, editor.ModeCreate, blank.Mode)
	assert.Equal(t, "Engineering", blank.Department)

	edit, err := f.svc.EditForm(context.Background(), existing.Id)
	require.NoError(t, err)
	assert.Equal(t, editor.ModeEdit, edit.Mode)
	assert.Equal(t, "2019-07-04", edit.JoinDate)

	_, err = f.svc.EditForm(context.Background(), uuid.New())
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	shown, err := f.svc.Show(context.Background(), existing.Id)
	require.NoError(t, err)
	assert.Equal(t, "Legal", shown.Department)
}
