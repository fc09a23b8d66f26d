// Package llm talks to an OpenAI-compatible chat completion API. It supports
// OpenAI, OpenRouter, Azure OpenAI and other compatible providers through one
// wire shape.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/config"
)

// Message is one role/content pair in a chat request. Content is either a
// plain string or a slice of content parts for vision requests.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multi-part (vision) message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image as a data URL.
type ImageURL struct {
	URL string `json:"url"`
}

// TextMessage builds a plain text message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Content: text}
}

// VisionMessage builds a user message pairing a text prompt with a base64
// PNG screenshot.
func VisionMessage(text, imageBase64 string) Message {
	return Message{
		Role: "user",
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &ImageURL{
				URL: "data:image/png;base64," + imageBase64,
			}},
		},
	}
}

// Client is the narrow contract the interpreter depends on.
type Client interface {
	// Chat sends the messages and returns the first completion's content.
	// useVision selects the vision model instead of the text model.
	Chat(ctx context.Context, messages []Message, useVision bool) (string, error)
}

// OpenAIClient implements Client against a chat/completions endpoint.
type OpenAIClient struct {
	provider        string
	apiKey          string
	apiBase         string
	model           string
	visionModel     string
	enableReasoning bool
	httpClient      *http.Client
	log             *zap.SugaredLogger
}

// NewOpenAIClient builds a client from configuration. The timeout bounds one
// round trip; there are no implicit retries.
func NewOpenAIClient(cfg config.LLMConfig, log *zap.SugaredLogger) *OpenAIClient {
	timeout := cfg.Timeout()
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{
		provider:        cfg.Provider,
		apiKey:          cfg.APIKey,
		apiBase:         strings.TrimRight(cfg.APIBase, "/"),
		model:           cfg.Model,
		visionModel:     cfg.VisionModel,
		enableReasoning: cfg.EnableReasoning,
		httpClient:      &http.Client{Timeout: timeout},
		log:             log,
	}
}

type chatRequest struct {
	Model     string         `json:"model"`
	Messages  []Message      `json:"messages"`
	ExtraBody map[string]any `json:"extra_body,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat implements Client.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, useVision bool) (string, error) {
	model := c.model
	if useVision {
		model = c.visionModel
	}

	payload := chatRequest{Model: model, Messages: messages}
	if c.enableReasoning && c.provider == "openrouter" {
		payload.ExtraBody = map[string]any{"reasoning": map[string]any{"enabled": true}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.LLM("encoding request failed: "+err.Error(), c.provider, model)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBase+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.LLM("building request failed: "+err.Error(), c.provider, model)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnw("llm request failed", "provider", c.provider, "model", model, "error", err)
		return "", apperrors.LLM("API request failed: "+err.Error(), c.provider, model)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warnw("llm returned error status",
			"provider", c.provider, "model", model,
			"status", resp.StatusCode, "body", strings.TrimSpace(string(snippet)))
		return "", apperrors.LLM(
			fmt.Sprintf("API request failed with status %d", resp.StatusCode),
			c.provider, model)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.LLM("decoding response failed: "+err.Error(), c.provider, model)
	}
	if len(parsed.Choices) == 0 {
		return "", apperrors.LLM("empty response from AI service", c.provider, model)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", apperrors.LLM("empty response from AI service", c.provider, model)
	}
	return content, nil
}
