package service

import (
	"errors"
	"testing"

	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_HidesInternalErrors(t *testing.T) {
	d := &recordingDelivery{}
	s := NewNotificationService(d, logger.NewNopLogger())
	user := uuid.New()

	s.Failure(user, "Failed to add employee", errors.New("pq: connection refused"))
	s.Failure(user, "Failed to update employee", serverutils.NotFound("Employee not found"))
	s.Success(user, "Employee added", "Jane Doe was added.")
	s.FailureAll("Sync error", "Showing the last loaded data.")

	require.Len(t, d.user, 3)
	assert.Equal(t, dto.NotificationLevelError, d.user[0].Level)
	assert.NotContains(t, d.user[0].Message, "pq:")
	assert.Equal(t, "Employee not found", d.user[1].Message)
	assert.Equal(t, dto.NotificationLevelSuccess, d.user[2].Level)
	require.Len(t, d.all, 1)
	assert.Equal(t, "Sync error", d.all[0].Title)
}

func TestNotificationService_NilDelivery(t *testing.T) {
	s := NewNotificationService(nil, logger.NewNopLogger())
	s.Success(uuid.New(), "x", "y")
	s.Failure(uuid.New(), "x", errors.New("y"))
	s.FailureAll("x", "y")
}
