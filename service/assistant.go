package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/config"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/fill"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/pkg/logger"
)

// AssistantService phrases the conversation: field questions, validation
// feedback and progress messages. It calls an OpenAI-compatible chat
// completions API when configured and falls back to deterministic templates
// when the API is absent or failing, so the fill flow never blocks on the
// model.
type AssistantService struct {
	config     *config.AssistantConfig
	httpClient *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func NewAssistantService(cfg *config.AssistantConfig) *AssistantService {
	return &AssistantService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// documentTypeKeywords maps recognizable template families to the phrases
// that identify them. Checked in order; first hit wins.
var documentTypeKeywords = []struct {
	docType  string
	keywords []string
}{
	{"SAFE Agreement", []string{"simple agreement for future equity", "safe", "post-money valuation cap"}},
	{"NDA", []string{"non-disclosure", "nondisclosure", "confidentiality agreement"}},
	{"Employment Agreement", []string{"employment agreement", "employee", "at-will"}},
	{"Consulting Agreement", []string{"consulting agreement", "consultant", "statement of work"}},
	{"Lease Agreement", []string{"lease agreement", "landlord", "tenant"}},
	{"Service Agreement", []string{"service agreement", "services to be provided"}},
}

// DetectDocumentType classifies the template from its raw text.
func DetectDocumentType(rawText string) string {
	lower := strings.ToLower(rawText)
	for _, entry := range documentTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.docType
			}
		}
	}
	return "Legal Document"
}

// Question produces the prompt asking for one field. The context passed to
// the model is the field's surrounding sentence, never the whole document.
func (s *AssistantService) Question(ctx context.Context, docType string, p *model.Placeholder, progress model.Progress) string {
	prompt := fmt.Sprintf(
		"You are helping fill out a %s. Ask the user, in one short friendly sentence, for the %q field (question %d of %d). Document context: %q",
		docType, p.Name, p.Sequence, progress.Total, p.Context)

	if answer, err := s.complete(ctx, prompt); err == nil {
		return answer
	}
	return fallbackQuestion(p, progress)
}

// fallbackQuestion is the deterministic question used when no model is
// available. Hints follow the field's semantic type.
func fallbackQuestion(p *model.Placeholder, progress model.Progress) string {
	hint := ""
	switch p.Type {
	case model.TypeDate:
		hint = " (MM/DD/YYYY)"
	case model.TypeAmount:
		hint = " (e.g., $100,000)"
	case model.TypePercentage:
		hint = " (e.g., 20%)"
	case model.TypeContact:
		if strings.Contains(strings.ToLower(p.Name), "email") {
			hint = " (e.g., name@example.com)"
		} else {
			hint = " (e.g., (555) 123-4567)"
		}
	case model.TypeAddress:
		if strings.Contains(strings.ToLower(p.Name), "state") {
			hint = " (e.g., Delaware)"
		}
	}
	return fmt.Sprintf("Question %d of %d: What is the %s?%s",
		p.Sequence, progress.Total, p.Name, hint)
}

// ErrorFeedback phrases a rejected answer. Validation messages are already
// user-facing, so no model call is involved.
func ErrorFeedback(vErr *fill.ValidationError) string {
	msg := vErr.Message
	if vErr.Example != "" {
		msg += fmt.Sprintf(" For example: %s", vErr.Example)
	}
	return msg
}

// Greeting produces the message sent right after a successful upload.
func (s *AssistantService) Greeting(ctx context.Context, docType string, total int) string {
	prompt := fmt.Sprintf(
		"A user uploaded a %s with %d fields to fill in. Greet them in one or two short sentences and tell them you will walk through the fields one at a time.",
		docType, total)

	if answer, err := s.complete(ctx, prompt); err == nil {
		return answer
	}
	return fmt.Sprintf("I found a %s with %d fields to fill in. Let's go through them one at a time.", docType, total)
}

// CompletionMessage produces the message sent when the last field is filled.
func (s *AssistantService) CompletionMessage(ctx context.Context, docType string) string {
	prompt := fmt.Sprintf(
		"The user has finished filling in every field of a %s. Congratulate them briefly and tell them they can now download the completed document.",
		docType)

	if answer, err := s.complete(ctx, prompt); err == nil {
		return answer
	}
	return "All fields are filled in. Your document is ready to download."
}

// complete performs one chat completion round trip.
func (s *AssistantService) complete(ctx context.Context, prompt string) (string, error) {
	if s.config.APIKey == "" || s.config.APIURL == "" {
		return "", fmt.Errorf("assistant not configured")
	}

	reqBody := chatRequest{
		Model: s.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a concise, friendly legal document assistant. Never give legal advice."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.4,
		MaxTokens:   150,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	if result.Error != nil {
		logger.Warn(ctx, "assistant API error", "type", result.Error.Type, "message", result.Error.Message)
		return "", fmt.Errorf("assistant API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("assistant returned no choices")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
