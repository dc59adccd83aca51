package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tutor-service/internal/config"
)

var (
	ErrMissingAPIKey   = errors.New("missing Gemini API key")
	ErrEmptyCompletion = errors.New("empty completion")
)

// UpstreamError is returned when the API answers with a non-2xx status
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini request failed: status %d: %s", e.StatusCode, e.Body)
}

// Client handles integration with the Gemini text-generation API
type Client struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new Gemini client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.GeminiURL, "/"),
		model:   cfg.GeminiModel,
		apiKey:  cfg.GeminiAPIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// buildRequest creates the generateContent request body
func (c *Client) buildRequest(prompt string) ([]byte, error) {
	return json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
}

// sendRequest posts the body to the model endpoint
func (c *Client) sendRequest(ctx context.Context, body []byte) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// kept out of the URL so transport errors never carry it
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	c.log.Debugf("Gemini response: %d bytes", len(raw))
	return raw, nil
}

// parseResponse extracts the first candidate's text
func (c *Client) parseResponse(raw []byte) (string, error) {
	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Generate sends prompt to the model and returns the generated text
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := c.buildRequest(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	raw, err := c.sendRequest(ctx, body)
	if err != nil {
		return "", err
	}
	text, err := c.parseResponse(raw)
	if err != nil {
		return "", err
	}

	c.log.Infof("Generated %d characters with %s", len(text), c.model)
	return text, nil
}
