package dto

import "encoding/json"

const (
	RealtimeTypeView         = "view"
	RealtimeTypeEmployees    = "employees"
	RealtimeTypeSession      = "session"
	RealtimeTypeNotification = "notification"
)

// RealtimeMessage is the envelope for every frame on /api/ws.
type RealtimeMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	NotificationLevelInfo    = "info"
	NotificationLevelSuccess = "success"
	NotificationLevelError   = "error"
)

type NotificationPayload struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
