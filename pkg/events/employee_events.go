package events

import (
	"strings"
	"time"
)

const (
	EmployeeCreated = "EMPLOYEE_CREATED"
	EmployeeUpdated = "EMPLOYEE_UPDATED"
	EmployeeDeleted = "EMPLOYEE_DELETED"

	// EmployeeSubjectFilter matches every employee event on the bus.
	EmployeeSubjectFilter = "events.EMPLOYEE_*"
)

// NewEmployeeEvent describes a committed write. origin identifies the
// instance that performed it so that instance can skip its own echo.
func NewEmployeeEvent(eventType, employeeID, actorID, origin string) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"employee_id": employeeID,
			"actor_id":    actorID,
			"origin":      origin,
		},
		OccurredAt: time.Now(),
	}
}

// IsEmployeeEvent reports whether a type or subject names an employee event.
func IsEmployeeEvent(typeOrSubject string) bool {
	return strings.HasPrefix(strings.TrimPrefix(typeOrSubject, "events."), "EMPLOYEE_")
}

// Origin returns the publishing instance recorded in the payload, if any.
func Origin(e Event) string {
	if e == nil || e.Payload() == nil {
		return ""
	}
	origin, _ := e.Payload()["origin"].(string)
	return origin
}
