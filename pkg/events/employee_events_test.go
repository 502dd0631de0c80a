package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEmployeeEvent(t *testing.T) {
	e := NewEmployeeEvent(EmployeeUpdated, "emp-1", "user-1", "api-1")

	assert.Equal(t, "EMPLOYEE_UPDATED", e.EventType())
	assert.Equal(t, "emp-1", e.Payload()["employee_id"])
	assert.Equal(t, "api-1", Origin(e))
	assert.False(t, e.Timestamp().IsZero())
}

func TestIsEmployeeEvent(t *testing.T) {
	assert.True(t, IsEmployeeEvent("events.EMPLOYEE_DELETED"))
	assert.True(t, IsEmployeeEvent(EmployeeCreated))
	assert.False(t, IsEmployeeEvent("events.USER_LOGIN"))
}

func TestOrigin_Missing(t *testing.T) {
	assert.Equal(t, "", Origin(nil))
	assert.Equal(t, "", Origin(BaseEvent{Type: "X"}))
}
