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
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1/messages"
	apiVersion     = "2023-06-01"

	// Token budgets mirror the per-call cost of each prompt family.
	MaxTokensAnalysis  = 3000
	MaxTokensQuestions = 1500
	MaxTokensVideo     = 1000
	MaxTokensFollowUp  = 800
)

// Client is a thin wrapper over the Anthropic Messages API. The model is
// treated as an opaque text-completion service with a JSON-shaped contract;
// all schema enforcement happens in the caller.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// WithBaseURL redirects API calls, used by tests to point at a local server.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

type contentPart struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type response struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a single user message and returns the model's text reply.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return c.send(ctx, request{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
}

// CompleteWithImages sends base64 JPEG frames followed by the prompt text,
// for the vision analysis path.
func (c *Client) CompleteWithImages(ctx context.Context, prompt string, jpegBase64 []string, maxTokens int) (string, error) {
	parts := make([]contentPart, 0, len(jpegBase64)+1)
	for _, data := range jpegBase64 {
		parts = append(parts, contentPart{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: "image/jpeg",
				Data:      data,
			},
		})
	}
	parts = append(parts, contentPart{Type: "text", Text: prompt})

	return c.send(ctx, request{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: parts}},
	})
}

func (c *Client) send(ctx context.Context, req request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", err
	}

	var resp response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		if resp.Error != nil {
			return "", fmt.Errorf("anthropic api error (%d): %s", httpResp.StatusCode, resp.Error.Message)
		}
		return "", fmt.Errorf("anthropic api error: status %d", httpResp.StatusCode)
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return resp.Content[0].Text, nil
}

// StripCodeFences removes triple-backtick fences the model sometimes wraps
// its JSON in.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
