package dto

import "nexus-ems-be/pkg/store"

type ChatRequest struct {
	ConversationId string `json:"conversation_id"`
	Query          string `json:"query" validate:"required,max=4000"`
}

type ChatResponse struct {
	ConversationId string        `json:"conversation_id"`
	Message        store.Message `json:"message"`
	Degraded       bool          `json:"degraded"`
}

type ConversationResponse struct {
	ConversationId string          `json:"conversation_id"`
	Messages       []store.Message `json:"messages"`
}

type SpeakRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type SpeakResponse struct {
	Audio    string `json:"audio"`
	Encoding string `json:"encoding"`
}
