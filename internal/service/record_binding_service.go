package service

import (
	"context"
	"fmt"

	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/repository/specification"
	"nexus-ems-be/internal/repository/unitofwork"
	"nexus-ems-be/pkg/events"
	"nexus-ems-be/pkg/mirror"
	pktNats "nexus-ems-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EmployeesChangedTopic carries in-process "the collection changed" signals.
const EmployeesChangedTopic = "employees.changed"

// EventSubscriber is the cross-instance side of the change stream.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

// ViewRefresher is told when a new snapshot is in the mirror.
type ViewRefresher interface {
	RefreshViews()
}

type IRecordBindingService interface {
	Start(ctx context.Context) error
	Reload(ctx context.Context) error
	Mirror() *mirror.Mirror[entity.Employee]
}

// recordBindingService keeps the employee mirror equal to the store. Every
// change signal triggers a full ordered re-read; signals arriving during a
// reload collapse into a single follow-up reload.
type recordBindingService struct {
	uowFactory    unitofwork.RepositoryFactory
	mirror        *mirror.Mirror[entity.Employee]
	signals       message.Subscriber
	events        EventSubscriber
	instanceID    string
	refresher     ViewRefresher
	notifications INotificationService
	logger        logger.ILogger

	pending chan struct{}
}

func NewRecordBindingService(
	uowFactory unitofwork.RepositoryFactory,
	m *mirror.Mirror[entity.Employee],
	signals message.Subscriber,
	eventSub EventSubscriber,
	instanceID string,
	refresher ViewRefresher,
	notifications INotificationService,
	log logger.ILogger,
) IRecordBindingService {
	return &recordBindingService{
		uowFactory:    uowFactory,
		mirror:        m,
		signals:       signals,
		events:        eventSub,
		instanceID:    instanceID,
		refresher:     refresher,
		notifications: notifications,
		logger:        log,
		pending:       make(chan struct{}, 1),
	}
}

func (s *recordBindingService) Mirror() *mirror.Mirror[entity.Employee] {
	return s.mirror
}

// Start performs the first load and keeps the mirror live until ctx ends.
// A failing first load is reported but does not stop the binding.
func (s *recordBindingService) Start(ctx context.Context) error {
	if s.refresher != nil {
		updates, cancel := s.mirror.Subscribe()
		go func() {
			defer cancel()
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-updates:
					if !ok {
						return
					}
					s.refresher.RefreshViews()
				}
			}
		}()
	}

	if s.signals != nil {
		messages, err := s.signals.Subscribe(ctx, EmployeesChangedTopic)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", EmployeesChangedTopic, err)
		}
		go func() {
			for msg := range messages {
				s.Signal()
				msg.Ack()
			}
		}()
	}

	if s.events != nil {
		durable := "employee-binding-" + s.instanceID
		err := s.events.Subscribe(ctx, events.EmployeeSubjectFilter, durable, func(_ context.Context, e events.Event) error {
			if events.Origin(e) == s.instanceID {
				return nil
			}
			s.Signal()
			return nil
		})
		if err != nil {
			// Cross-instance changes will be missed; local ones still arrive.
			s.logger.Warn("RecordBinding", "Failed to subscribe to employee events", map[string]interface{}{"error": err.Error()})
		}
	}

	go s.loop(ctx)
	s.Signal()
	return nil
}

// Signal schedules a reload. Never blocks.
func (s *recordBindingService) Signal() {
	select {
	case s.pending <- struct{}{}:
	default:
	}
}

func (s *recordBindingService) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.pending:
			_ = s.Reload(ctx)
		}
	}
}

// Reload replaces the mirror with the store's full list ordered by full
// name. On failure the last snapshot stays in place.
func (s *recordBindingService) Reload(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.EmployeeRepository().FindAll(ctx, specification.OrderByFullName{})
	if err != nil {
		s.logger.Error("RecordBinding", "Failed to reload employees", map[string]interface{}{"error": err.Error()})
		if s.notifications != nil {
			s.notifications.FailureAll("Sync error", "Could not refresh employee records. Showing the last loaded data.")
		}
		return err
	}

	items := make([]entity.Employee, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			items = append(items, *r)
		}
	}
	snap := s.mirror.Replace(items)
	s.logger.Debug("RecordBinding", "Mirror replaced", map[string]interface{}{"version": snap.Version, "count": len(items)})
	return nil
}
