package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Client implements Backend against the HTTP API. It keeps a very small
// surface area tailored to the three endpoints and is stateless between
// calls. The underlying http.Client carries no timeout: an interaction
// waits on the backend's own latency, there is no client-side abort path.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient returns a Client talking to baseURL (e.g. http://localhost:8001).
// A nil logger is replaced with a no-op logger.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// ideaRequest is the single request payload shared by all three endpoints.
type ideaRequest struct {
	Idea string `json:"idea"`
}

type classifyResponse struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (c *Client) Classify(ctx context.Context, idea string) (Intent, error) {
	var out classifyResponse
	if err := c.postJSON(ctx, "classify", "/classify", idea, &out); err != nil {
		return 0, err
	}
	switch out.Type {
	case "chat":
		return IntentChat, nil
	case "analysis":
		return IntentAnalysis, nil
	}
	c.logger.Warn("classify returned unknown type", zap.String("type", out.Type))
	return 0, &Error{Op: "classify", Message: fmt.Sprintf("unknown classification %q", out.Type)}
}

func (c *Client) Chat(ctx context.Context, idea string) (string, error) {
	var out chatResponse
	if err := c.postJSON(ctx, "chat", "/chat", idea, &out); err != nil {
		return "", err
	}
	if out.Response == "" {
		return "", &Error{Op: "chat", Message: "empty reply from backend"}
	}
	return out.Response, nil
}

func (c *Client) Analyze(ctx context.Context, idea string) (Report, error) {
	var out Report
	if err := c.postJSON(ctx, "analyze", "/analyze", idea, &out); err != nil {
		return Report{}, err
	}
	return out, nil
}

// postJSON performs one POST {"idea": ...} round trip and decodes the JSON
// body into out. Every failure mode comes back as *Error.
func (c *Client) postJSON(ctx context.Context, op, path, idea string, out any) error {
	payload, err := json.Marshal(ideaRequest{Idea: idea})
	if err != nil {
		return &Error{Op: op, Message: "encoding request failed", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Op: op, Message: "building request failed", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("backend call", zap.String("op", op), zap.String("url", c.baseURL+path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend unreachable", zap.String("op", op), zap.Error(err))
		return &Error{Op: op, Message: "backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("backend returned error status",
			zap.String("op", op), zap.Int("status", resp.StatusCode))
		return &Error{
			Op:      op,
			Message: fmt.Sprintf("backend returned %s: %s", resp.Status, strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Message: "malformed response body", Err: err}
	}
	return nil
}
