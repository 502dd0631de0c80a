package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/pkg/serverutils"
	"nexus-ems-be/pkg/chatbot"
	"nexus-ems-be/pkg/editor"
	"nexus-ems-be/pkg/store"

	"github.com/google/uuid"
)

// DegradedReplyText stands in for the assistant's answer when the model
// cannot be reached.
const DegradedReplyText = "I'm currently unable to process requests. This is usually due to an invalid " +
	"or missing API key in the system environment."

// AssistantClient is the hosted model as the assistant sees it.
type AssistantClient interface {
	Chat(ctx context.Context, query string) (*chatbot.ChatReply, error)
	ExtractEmployee(ctx context.Context, image []byte, mimeType string) (*editor.Extraction, error)
	Speak(ctx context.Context, text string) (string, error)
}

// ConversationStore keeps transcripts for open assistant widgets.
type ConversationStore interface {
	Append(conversationID, userID string, msgs ...store.Message) store.Conversation
	Get(conversationID string) (store.Conversation, bool)
	Delete(conversationID string)
}

type IAssistantService interface {
	Chat(ctx context.Context, userID uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Conversation(userID uuid.UUID, conversationID string) (*dto.ConversationResponse, error)
	ClearConversation(userID uuid.UUID, conversationID string) error
	ScanForm(ctx context.Context, userID uuid.UUID, image []byte, current editor.Form) (*editor.Form, error)
	Speak(ctx context.Context, userID uuid.UUID, req *dto.SpeakRequest) (*dto.SpeakResponse, error)
}

type assistantService struct {
	client        AssistantClient
	conversations ConversationStore
	notifications INotificationService
	logger        logger.ILogger
	now           func() time.Time
}

func NewAssistantService(client AssistantClient, conversations ConversationStore, notifications INotificationService, log logger.ILogger) IAssistantService {
	return &assistantService{
		client:        client,
		conversations: conversations,
		notifications: notifications,
		logger:        log,
		now:           time.Now,
	}
}

// Chat sends only the current query to the model; the transcript is kept for
// display. A model failure yields a degraded reply instead of an error.
func (s *assistantService) Chat(ctx context.Context, userID uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	convID := req.ConversationId
	if convID == "" {
		convID = uuid.NewString()
	} else if conv, ok := s.conversations.Get(convID); ok && conv.UserID != userID.String() {
		return nil, serverutils.NotFound("Conversation not found")
	}

	userMsg := store.Message{Role: store.RoleUser, Text: req.Query, CreatedAt: s.now()}

	degraded := false
	reply, err := s.client.Chat(ctx, req.Query)
	var answer store.Message
	if err != nil {
		degraded = true
		s.logger.Error("AssistantService", "Chat request failed", map[string]interface{}{"user_id": userID, "error": err.Error()})
		s.notifications.Failure(userID, "Assistant unavailable", serverutils.Internal("The assistant could not answer right now.", err))
		answer = store.Message{Role: store.RoleAssistant, Text: DegradedReplyText, CreatedAt: s.now()}
	} else {
		answer = store.Message{Role: store.RoleAssistant, Text: reply.Text, CreatedAt: s.now()}
		for _, c := range reply.Citations {
			answer.Citations = append(answer.Citations, store.Citation{Title: c.Title, Link: c.Link})
		}
	}

	s.conversations.Append(convID, userID.String(), userMsg, answer)

	return &dto.ChatResponse{
		ConversationId: convID,
		Message:        answer,
		Degraded:       degraded,
	}, nil
}

func (s *assistantService) Conversation(userID uuid.UUID, conversationID string) (*dto.ConversationResponse, error) {
	conv, ok := s.conversations.Get(conversationID)
	if !ok || conv.UserID != userID.String() {
		return nil, serverutils.NotFound("Conversation not found")
	}
	return &dto.ConversationResponse{ConversationId: conv.ID, Messages: conv.Messages}, nil
}

func (s *assistantService) ClearConversation(userID uuid.UUID, conversationID string) error {
	conv, ok := s.conversations.Get(conversationID)
	if !ok || conv.UserID != userID.String() {
		return serverutils.NotFound("Conversation not found")
	}
	s.conversations.Delete(conversationID)
	return nil
}

// ScanForm reads an uploaded enrollment form and merges what it finds into
// current. On any failure current is left as it was and the caller is asked
// to fill the form manually.
func (s *assistantService) ScanForm(ctx context.Context, userID uuid.UUID, image []byte, current editor.Form) (*editor.Form, error) {
	mime, err := chatbot.DetectImageType(image)
	if err != nil {
		return nil, serverutils.BadRequest("Upload a JPEG, PNG or WebP image of the form.")
	}

	extraction, err := s.client.ExtractEmployee(ctx, image, mime)
	if err != nil {
		appErr := serverutils.UnprocessableEntity("AI Extraction failed. Please fill manually.", err)
		if errors.Is(err, chatbot.ErrUnsupportedImage) {
			appErr = serverutils.BadRequest("Upload a JPEG, PNG or WebP image under 10 MB.")
		}
		s.notifications.Failure(userID, "Form scan failed", appErr)
		return nil, appErr
	}

	merged := current.Merge(*extraction)
	s.notifications.Success(userID, "Form scanned", "Review the extracted details before saving.")
	return &merged, nil
}

func (s *assistantService) Speak(ctx context.Context, userID uuid.UUID, req *dto.SpeakRequest) (*dto.SpeakResponse, error) {
	audio, err := s.client.Speak(ctx, req.Text)
	if err != nil {
		appErr := serverutils.NewAppError(http.StatusServiceUnavailable, "Speech is unavailable right now.", err)
		s.notifications.Failure(userID, "Speech failed", appErr)
		return nil, appErr
	}
	return &dto.SpeakResponse{Audio: audio, Encoding: "base64/pcm"}, nil
}
