package gemini

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

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client is a thin wrapper over the Generative Language REST API. Only the
// two calls this service needs are exposed: model listing (used for key
// validation and model discovery) and content generation.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// APIError carries the upstream error payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("generative API error [%d]: %s", e.StatusCode, e.Message)
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func NewClient(apiKey, model string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Model returns the model the client will generate with.
func (c *Client) Model() string {
	return c.model
}

// ListModels returns the available model names, normalized without the
// "models/" prefix.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var out struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := c.do(ctx, http.MethodGet, "/models", nil, &out); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return names, nil
}

// DiscoverModel picks a usable model name: the preferred one when available,
// otherwise a family match, otherwise any gemini model. Falls back to the
// preferred string so a wrong name fails loudly upstream instead of here.
func (c *Client) DiscoverModel(ctx context.Context, preferred string) string {
	names, err := c.ListModels(ctx)
	if err != nil || len(names) == 0 {
		return preferred
	}

	for _, n := range names {
		if n == preferred {
			return n
		}
	}
	if family, _, ok := strings.Cut(preferred, "-"); ok && family != "" {
		for _, n := range names {
			if strings.Contains(strings.ToLower(n), strings.ToLower(family)) {
				return n
			}
		}
	}
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), "gemini") {
			return n
		}
	}
	return preferred
}

// GenerateContent sends a single-turn prompt and returns the concatenated
// text of the first candidate plus the total token count.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, int, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		UsageMetadata struct {
			TotalTokenCount int `json:"totalTokenCount"`
		} `json:"usageMetadata"`
	}

	path := fmt.Sprintf("/models/%s:generateContent", c.model)
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return "", 0, err
	}
	if len(out.Candidates) == 0 {
		return "", out.UsageMetadata.TotalTokenCount, fmt.Errorf("generative API returned no candidates")
	}

	var sb strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), out.UsageMetadata.TotalTokenCount, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := fmt.Sprintf("%s%s?key=%s", c.baseURL, path, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call generative API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(raw, &errBody)
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error.Message}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
