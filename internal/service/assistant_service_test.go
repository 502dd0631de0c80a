package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/repository/memory"
	"nexus-ems-be/pkg/chatbot"
	"nexus-ems-be/pkg/editor"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistantClient struct {
	reply      *chatbot.ChatReply
	chatErr    error
	extraction *editor.Extraction
	extractErr error
	audio      string
	speakErr   error
	queries    []string
}

func (c *fakeAssistantClient) Chat(_ context.Context, q string) (*chatbot.ChatReply, error) {
	c.queries = append(c.queries, q)
	return c.reply, c.chatErr
}

func (c *fakeAssistantClient) ExtractEmployee(context.Context, []byte, string) (*editor.Extraction, error) {
	return c.extraction, c.extractErr
}

func (c *fakeAssistantClient) Speak(context.Context, string) (string, error) {
	return c.audio, c.speakErr
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newAssistant(client *fakeAssistantClient) (IAssistantService, *recordingNotifier) {
	n := &recordingNotifier{}
	return NewAssistantService(client, memory.NewConversationRepository(), n, logger.NewNopLogger()), n
}

func TestAssistant_ChatKeepsTranscript(t *testing.T) {
	client := &fakeAssistantClient{reply: &chatbot.ChatReply{
		Text:      "Overtime applies after 40 hours.",
		Citations: []chatbot.Citation{{Title: "DOL", Link: "https://dol.gov"}},
	}}
	svc, _ := newAssistant(client)
	user := uuid.New()

	first, err := svc.Chat(context.Background(), user, &dto.ChatRequest{Query: "Overtime rules?"})
	require.NoError(t, err)
	assert.False(t, first.Degraded)
	assert.NotEmpty(t, first.ConversationId)
	assert.Equal(t, "DOL", first.Message.Citations[0].Title)

	_, err = svc.Chat(context.Background(), user, &dto.ChatRequest{ConversationId: first.ConversationId, Query: "And in HR?"})
	require.NoError(t, err)

	conv, err := svc.Conversation(user, first.ConversationId)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 4)
	assert.Equal(t, "user", conv.Messages[0].Role)
	assert.Equal(t, "assistant", conv.Messages[1].Role)

	// only the current query goes to the model
	assert.Equal(t, []string{"Overtime rules?", "And in HR?"}, client.queries)
}

func TestAssistant_ChatFailureDegrades(t *testing.T) {
	svc, n := newAssistant(&fakeAssistantClient{chatErr: chatbot.ErrMissingAPIKey})

	res, err := svc.Chat(context.Background(), uuid.New(), &dto.ChatRequest{Query: "hello"})
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Equal(t, DegradedReplyText, res.Message.Text)
	assert.Equal(t, []string{"Assistant unavailable"}, n.failures)
}

func TestAssistant_ConversationIsPrivate(t *testing.T) {
	svc, _ := newAssistant(&fakeAssistantClient{reply: &chatbot.ChatReply{Text: "hi"}})
	owner, other := uuid.New(), uuid.New()

	res, err := svc.Chat(context.Background(), owner, &dto.ChatRequest{Query: "hello"})
	require.NoError(t, err)

	_, err = svc.Conversation(other, res.ConversationId)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	_, err = svc.Chat(context.Background(), other, &dto.ChatRequest{ConversationId: res.ConversationId, Query: "x"})
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	require.NoError(t, svc.ClearConversation(owner, res.ConversationId))
	_, err = svc.Conversation(owner, res.ConversationId)
	assert.Error(t, err)
}

func TestAssistant_ScanFormMergesPresentFields(t *testing.T) {
	name, email, role, dept := "Jane Doe", "jane@x.com", "Analyst", "Finance"
	salary := 70000.0
	svc, n := newAssistant(&fakeAssistantClient{extraction: &editor.Extraction{
		FullName: &name, Email: &email, Role: &role, Department: &dept, Salary: &salary,
	}})

	current := editor.NewCreateForm(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	merged, err := svc.ScanForm(context.Background(), uuid.New(), pngBytes, current)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", merged.FullName)
	assert.Equal(t, "Finance", merged.Department)
	assert.Equal(t, 70000.0, merged.Salary)
	assert.Equal(t, "2024-03-09", merged.JoinDate)
	assert.Equal(t, []string{"Form scanned"}, n.success)
}

func TestAssistant_ScanFormFailure(t *testing.T) {
	svc, n := newAssistant(&fakeAssistantClient{extractErr: errors.Join(chatbot.ErrExtraction, errors.New("missing email"))})

	_, err := svc.ScanForm(context.Background(), uuid.New(), pngBytes, editor.NewCreateForm(time.Now()))
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
	assert.Equal(t, 1, n.failureCount())

	_, err = svc.ScanForm(context.Background(), uuid.New(), []byte("plain text"), editor.NewCreateForm(time.Now()))
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}

func TestAssistant_Speak(t *testing.T) {
	svc, _ := newAssistant(&fakeAssistantClient{audio: "QUJD"})
	res, err := svc.Speak(context.Background(), uuid.New(), &dto.SpeakRequest{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "QUJD", res.Audio)

	svc, n := newAssistant(&fakeAssistantClient{speakErr: errors.New("down")})
	_, err = svc.Speak(context.Background(), uuid.New(), &dto.SpeakRequest{Text: "hi"})
	assert.Equal(t, http.StatusServiceUnavailable, appCode(t, err))
	assert.Equal(t, 1, n.failureCount())
}
