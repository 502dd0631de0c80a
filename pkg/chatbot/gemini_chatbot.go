package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel     = "gemini-2.5-flash"
	DefaultTTSModel  = "gemini-2.5-flash-preview-tts"
	DefaultVoice     = "Kore"
	defaultCiteTitle = "External Source"

	// NoResponseText is returned when the model answers with no text.
	NoResponseText = "I'm sorry, I couldn't generate a response."
)

var (
	ErrMissingAPIKey = errors.New("gemini api key is not configured")
	ErrEmptyResponse = errors.New("gemini returned no candidates")
)

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

type GeminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GeminiChatParts struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inlineData,omitempty"`
}

type GeminiChatContent struct {
	Parts []*GeminiChatParts `json:"parts"`
	Role  string             `json:"role,omitempty"`
}

type GeminiTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type GeminiVoiceConfig struct {
	PrebuiltVoiceConfig struct {
		VoiceName string `json:"voiceName"`
	} `json:"prebuiltVoiceConfig"`
}

type GeminiSpeechConfig struct {
	VoiceConfig GeminiVoiceConfig `json:"voiceConfig"`
}

type GeminiGenerationConfig struct {
	ResponseMimeType   string              `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]any      `json:"responseSchema,omitempty"`
	ResponseModalities []string            `json:"responseModalities,omitempty"`
	SpeechConfig       *GeminiSpeechConfig `json:"speechConfig,omitempty"`
}

type GeminiChatRequest struct {
	Contents          []*GeminiChatContent    `json:"contents"`
	SystemInstruction *GeminiChatContent      `json:"systemInstruction,omitempty"`
	Tools             []GeminiTool            `json:"tools,omitempty"`
	GenerationConfig  *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiGroundingChunk struct {
	Web *struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	} `json:"web,omitempty"`
}

type GeminiGroundingMetadata struct {
	GroundingChunks []GeminiGroundingChunk `json:"groundingChunks"`
}

type GeminiChatCandidate struct {
	Content           *GeminiChatContent       `json:"content"`
	GroundingMetadata *GeminiGroundingMetadata `json:"groundingMetadata,omitempty"`
}

type GeminiChatResponse struct {
	Candidates []*GeminiChatCandidate `json:"candidates"`
}

// Citation is one grounding source attached to a reply.
type Citation struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type ChatReply struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}

// Config holds the connection settings. Empty fields fall back to the
// package defaults.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	TTSModel        string
	Voice           string
	SearchGrounding bool
	Timeout         time.Duration
}

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.TTSModel == "" {
		cfg.TTSModel = DefaultTTSModel
	}
	if cfg.Voice == "" {
		cfg.Voice = DefaultVoice
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Chat sends a single-turn query with the workforce system instruction and
// returns the reply text with any grounding citations.
func (c *Client) Chat(ctx context.Context, query string) (*ChatReply, error) {
	payload := GeminiChatRequest{
		Contents: []*GeminiChatContent{{
			Role:  ChatMessageRoleUser,
			Parts: []*GeminiChatParts{{Text: query}},
		}},
		SystemInstruction: &GeminiChatContent{
			Parts: []*GeminiChatParts{{Text: AssistantSystemInstruction}},
		},
	}
	if c.cfg.SearchGrounding {
		payload.Tools = []GeminiTool{{GoogleSearch: &struct{}{}}}
	}

	res, err := c.generate(ctx, c.cfg.Model, payload)
	if err != nil {
		return nil, err
	}

	reply := &ChatReply{Text: candidateText(res), Citations: []Citation{}}
	if strings.TrimSpace(reply.Text) == "" {
		reply.Text = NoResponseText
	}
	if len(res.Candidates) > 0 && res.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range res.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			title := chunk.Web.Title
			if title == "" {
				title = defaultCiteTitle
			}
			reply.Citations = append(reply.Citations, Citation{Title: title, Link: chunk.Web.URI})
		}
	}
	return reply, nil
}

// Speak converts text to base64-encoded audio with the prebuilt voice.
func (c *Client) Speak(ctx context.Context, text string) (string, error) {
	speech := &GeminiSpeechConfig{}
	speech.VoiceConfig.PrebuiltVoiceConfig.VoiceName = c.cfg.Voice

	payload := GeminiChatRequest{
		Contents: []*GeminiChatContent{{
			Parts: []*GeminiChatParts{{Text: "Say clearly: " + text}},
		}},
		GenerationConfig: &GeminiGenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig:       speech,
		},
	}

	res, err := c.generate(ctx, c.cfg.TTSModel, payload)
	if err != nil {
		return "", err
	}
	for _, cand := range res.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData.Data, nil
			}
		}
	}
	return "", ErrEmptyResponse
}

func (c *Client) generate(ctx context.Context, model string, payload GeminiChatRequest) (*GeminiChatResponse, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}
	if len(geminiRes.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}
	return &geminiRes, nil
}

func candidateText(res *GeminiChatResponse) string {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range res.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}
