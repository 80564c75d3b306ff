// Package polish rewrites an already-computed answer in a friendlier tone
// via OpenRouter. It is strictly best-effort: any failure passes the
// original text through unchanged.
package polish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "deepseek/deepseek-chat-v3.1:free"

	systemPrompt = "Rewrite the factual sports answer in one friendly sentence. Keep facts, add nothing."
)

// sportsTopic gates the round trip: only answers that look like sports
// content are worth polishing.
var sportsTopic = regexp.MustCompile(`score|result|match|fixture|stadium|city|who scored|scorer|tournament|football|team|vs|play(ing)?|won|winner|cup|league`)

// Result is the polished text plus the model that produced it. UsedModel
// is "none" when the call was skipped and "error" when it failed.
type Result struct {
	Text      string `json:"text"`
	UsedModel string `json:"usedModel"`
}

// Client talks to the OpenRouter chat-completions API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	debug      bool
}

func NewClient(apiKey, model string, debug bool) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		debug: debug,
	}
}

// NewClientWithURL is used by tests to point the client at a fake server.
func NewClientWithURL(apiKey, model, baseURL string, debug bool) *Client {
	c := NewClient(apiKey, model, debug)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Polish rewrites text in one round trip at most. A missing API key, an
// off-topic answer, or any transport/decoding failure returns the input
// unchanged.
func (c *Client) Polish(ctx context.Context, text string) Result {
	if c.apiKey == "" || !sportsTopic.MatchString(strings.ToLower(text)) {
		return Result{Text: text, UsedModel: "none"}
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens:   80,
		Temperature: 0.2,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Text: text, UsedModel: "error"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Result{Text: text, UsedModel: "error"}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.debug {
			fmt.Printf("[polish] request failed: %v\n", err)
		}
		return Result{Text: text, UsedModel: "error"}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode >= 400 {
		if c.debug {
			fmt.Printf("[polish] status %d\n", resp.StatusCode)
		}
		return Result{Text: text, UsedModel: "error"}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil || len(parsed.Choices) == 0 {
		return Result{Text: text, UsedModel: "error"}
	}
	out := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if out == "" {
		return Result{Text: text, UsedModel: "error"}
	}
	return Result{Text: out, UsedModel: c.model}
}
