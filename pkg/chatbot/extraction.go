package chatbot

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nexus-ems-be/internal/entity"
	"nexus-ems-be/pkg/editor"
)

// MaxImageBytes bounds the size of an uploaded form scan.
const MaxImageBytes = 10 << 20

var (
	ErrExtraction       = errors.New("could not extract employee details")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// employeeSchema constrains the model output for form extraction.
var employeeSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"fullName":   map[string]any{"type": "STRING"},
		"email":      map[string]any{"type": "STRING"},
		"role":       map[string]any{"type": "STRING"},
		"department": map[string]any{"type": "STRING"},
		"salary":     map[string]any{"type": "NUMBER"},
		"joinDate":   map[string]any{"type": "STRING", "description": "YYYY-MM-DD"},
	},
	"required": []string{"fullName", "email", "role", "department", "salary"},
}

// DetectImageType returns the MIME type of an image or ErrUnsupportedImage.
func DetectImageType(image []byte) (string, error) {
	mime := http.DetectContentType(image)
	if supportedImageTypes[mime] {
		return mime, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mime)
}

// ExtractEmployee reads a photographed or scanned enrollment form. The
// result carries only fields that passed validation; a missing required
// field or a malformed payload yields ErrExtraction.
func (c *Client) ExtractEmployee(ctx context.Context, image []byte, mimeType string) (*editor.Extraction, error) {
	if len(image) == 0 || len(image) > MaxImageBytes {
		return nil, fmt.Errorf("%w: image must be between 1 byte and %d bytes", ErrUnsupportedImage, MaxImageBytes)
	}
	if !supportedImageTypes[mimeType] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mimeType)
	}

	payload := GeminiChatRequest{
		Contents: []*GeminiChatContent{{
			Role: ChatMessageRoleUser,
			Parts: []*GeminiChatParts{
				{InlineData: &GeminiInlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
				{Text: ExtractionInstruction},
			},
		}},
		GenerationConfig: &GeminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   employeeSchema,
		},
	}

	res, err := c.generate(ctx, c.cfg.Model, payload)
	if err != nil {
		return nil, err
	}
	return ParseExtraction(candidateText(res))
}

type rawExtraction struct {
	FullName   *string  `json:"fullName"`
	Email      *string  `json:"email"`
	Role       *string  `json:"role"`
	Department *string  `json:"department"`
	Salary     *float64 `json:"salary"`
	JoinDate   *string  `json:"joinDate"`
}

// ParseExtraction validates the model's JSON answer.
func ParseExtraction(text string) (*editor.Extraction, error) {
	body := strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")
	body = strings.TrimSpace(body)

	var raw rawExtraction
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("%w: malformed json: %v", ErrExtraction, err)
	}

	for name, v := range map[string]*string{
		"fullName":   raw.FullName,
		"email":      raw.Email,
		"role":       raw.Role,
		"department": raw.Department,
	} {
		if v == nil || strings.TrimSpace(*v) == "" {
			return nil, fmt.Errorf("%w: missing %s", ErrExtraction, name)
		}
	}
	if raw.Salary == nil {
		return nil, fmt.Errorf("%w: missing salary", ErrExtraction)
	}
	if *raw.Salary < 0 {
		return nil, fmt.Errorf("%w: negative salary", ErrExtraction)
	}

	dept, err := entity.ParseDepartment(*raw.Department)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	deptName := string(dept)

	x := &editor.Extraction{
		FullName:   trimmed(raw.FullName),
		Email:      trimmed(raw.Email),
		Role:       trimmed(raw.Role),
		Department: &deptName,
		Salary:     raw.Salary,
	}

	if raw.JoinDate != nil && strings.TrimSpace(*raw.JoinDate) != "" {
		jd := strings.TrimSpace(*raw.JoinDate)
		if _, err := time.Parse(entity.JoinDateLayout, jd); err != nil {
			return nil, fmt.Errorf("%w: join date %q is not YYYY-MM-DD", ErrExtraction, jd)
		}
		x.JoinDate = &jd
	}
	return x, nil
}

func trimmed(s *string) *string {
	v := strings.TrimSpace(*s)
	return &v
}
