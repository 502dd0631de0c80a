package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/pkg/serverutils"
	"nexus-ems-be/internal/repository/contract"
	"nexus-ems-be/internal/repository/specification"
	"nexus-ems-be/internal/repository/unitofwork"
	"nexus-ems-be/pkg/editor"
	"nexus-ems-be/pkg/events"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type IEmployeeService interface {
	Create(ctx context.Context, actorID uuid.UUID, form *editor.Form) (*dto.EmployeeMutationResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, form *editor.Form) (*dto.EmployeeMutationResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error)
	NewForm() editor.Form
	EditForm(ctx context.Context, id uuid.UUID) (*editor.Form, error)
}

// employeeService performs writes against the store only. The mirror picks
// up the result through the change signal published after each commit.
type employeeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   EventPublisher
	notifications    INotificationService
	instanceID       string
	logger           logger.ILogger
	now              func() time.Time
}

func NewEmployeeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	notifications INotificationService,
	instanceID string,
	log logger.ILogger,
) IEmployeeService {
	return &employeeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		notifications:    notifications,
		instanceID:       instanceID,
		logger:           log,
		now:              time.Now,
	}
}

func (s *employeeService) NewForm() editor.Form {
	return editor.NewCreateForm(s.now())
}

func (s *employeeService) EditForm(ctx context.Context, id uuid.UUID) (*editor.Form, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	e, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, serverutils.Internal("Failed to load employee", err)
	}
	if e == nil {
		return nil, serverutils.NotFound("Employee not found")
	}
	form := editor.NewEditForm(*e)
	return &form, nil
}

func (s *employeeService) Show(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	e, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, serverutils.Internal("Failed to load employee", err)
	}
	if e == nil {
		return nil, serverutils.NotFound("Employee not found")
	}
	res := toEmployeeResponse(*e)
	return &res, nil
}

func (s *employeeService) Create(ctx context.Context, actorID uuid.UUID, form *editor.Form) (*dto.EmployeeMutationResponse, error) {
	form.Mode = editor.ModeCreate
	e, err := s.formToEmployee(form)
	if err != nil {
		return nil, s.writeFailed(actorID, "Failed to add employee", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EmployeeRepository().Create(ctx, &e); err != nil {
		return nil, s.writeFailed(actorID, "Failed to add employee", err)
	}

	s.announce(ctx, events.EmployeeCreated, e.Id, actorID)
	s.notifications.Success(actorID, "Employee added", e.FullName+" was added.")
	return &dto.EmployeeMutationResponse{Id: e.Id}, nil
}

// Update replaces every field of the record. Concurrent edits are last
// writer wins.
func (s *employeeService) Update(ctx context.Context, actorID, id uuid.UUID, form *editor.Form) (*dto.EmployeeMutationResponse, error) {
	form.Mode = editor.ModeEdit
	form.EmployeeId = &id
	e, err := s.formToEmployee(form)
	if err != nil {
		return nil, s.writeFailed(actorID, "Failed to update employee", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EmployeeRepository().Replace(ctx, &e); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, s.writeFailed(actorID, "Failed to update employee", serverutils.NotFound("Employee not found"))
		}
		return nil, s.writeFailed(actorID, "Failed to update employee", err)
	}

	s.announce(ctx, events.EmployeeUpdated, id, actorID)
	s.notifications.Success(actorID, "Employee updated", e.FullName+" was updated.")
	return &dto.EmployeeMutationResponse{Id: id}, nil
}

func (s *employeeService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.EmployeeRepository().Delete(ctx, id)
	if err != nil {
		return s.writeFailed(actorID, "Failed to delete employee", err)
	}
	if !deleted {
		return s.writeFailed(actorID, "Failed to delete employee", serverutils.NotFound("Employee not found"))
	}

	s.announce(ctx, events.EmployeeDeleted, id, actorID)
	s.notifications.Success(actorID, "Employee deleted", "The record was removed.")
	return nil
}

func (s *employeeService) formToEmployee(form *editor.Form) (entity.Employee, error) {
	if err := serverutils.ValidateRequest(form); err != nil {
		return entity.Employee{}, err
	}
	e, err := form.ToEmployee()
	if err != nil {
		return entity.Employee{}, serverutils.BadRequest(err.Error())
	}
	return e, nil
}

// writeFailed notifies the actor and converts err into an AppError. Field
// validation errors are returned as they are so the response keeps the
// per-field details.
func (s *employeeService) writeFailed(actorID uuid.UUID, title string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		s.notifications.Failure(actorID, title, serverutils.BadRequest("Please correct the highlighted fields."))
		s.logger.Warn("EmployeeService", title, map[string]interface{}{"actor_id": actorID, "error": err.Error()})
		return err
	}

	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) {
		appErr = serverutils.Internal(title, err)
	}
	s.notifications.Failure(actorID, title, appErr)
	if appErr.Code >= 500 {
		s.logger.Error("EmployeeService", title, map[string]interface{}{"actor_id": actorID, "error": err.Error()})
	} else {
		s.logger.Warn("EmployeeService", title, map[string]interface{}{"actor_id": actorID, "error": err.Error()})
	}
	return appErr
}

// announce tells this instance's binding and the other instances that the
// collection changed. Failures are logged; the write itself succeeded.
func (s *employeeService) announce(ctx context.Context, eventType string, id, actorID uuid.UUID) {
	evt := events.NewEmployeeEvent(eventType, id.String(), actorID.String(), s.instanceID)

	if s.publisherService != nil {
		payload, _ := json.Marshal(evt.Payload())
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Warn("EmployeeService", "Failed to publish change signal", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("EmployeeService", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
		}
	}
}
