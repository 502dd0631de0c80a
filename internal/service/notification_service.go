package service

import (
	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time toasts.
// Implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Notify(userID uuid.UUID, n dto.NotificationPayload)
	NotifyAll(n dto.NotificationPayload)
}

type INotificationService interface {
	Success(userID uuid.UUID, title, message string)
	Failure(userID uuid.UUID, title string, err error)
	FailureAll(title, message string)
}

// NotificationService turns service outcomes into one-shot toasts. A nil
// delivery only logs.
type NotificationService struct {
	delivery NotificationDelivery
	logger   logger.ILogger
}

func NewNotificationService(delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{delivery: delivery, logger: log}
}

func (s *NotificationService) Success(userID uuid.UUID, title, message string) {
	if s.delivery == nil {
		return
	}
	s.delivery.Notify(userID, dto.NotificationPayload{
		Level:   dto.NotificationLevelSuccess,
		Title:   title,
		Message: message,
	})
}

// Failure reports err to the acting user. Only the error's client-facing
// message is sent.
func (s *NotificationService) Failure(userID uuid.UUID, title string, err error) {
	msg := clientMessage(err)
	s.logger.Warn("NotificationService", title, map[string]interface{}{"user_id": userID, "error": errString(err)})
	if s.delivery == nil {
		return
	}
	s.delivery.Notify(userID, dto.NotificationPayload{
		Level:   dto.NotificationLevelError,
		Title:   title,
		Message: msg,
	})
}

func (s *NotificationService) FailureAll(title, message string) {
	if s.delivery == nil {
		return
	}
	s.delivery.NotifyAll(dto.NotificationPayload{
		Level:   dto.NotificationLevelError,
		Title:   title,
		Message: message,
	})
}
