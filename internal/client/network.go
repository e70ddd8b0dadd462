package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tanya-chat/internal/models"
)

// StatusError is a non-2xx reply from the chat backend, carrying the
// localized message from its {error} body when one was present.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Code)
}

// NetworkClient sends prompts to the chat backend, retrying failures with
// exponential backoff.
type NetworkClient struct {
	baseURL     string
	maxAttempts int
	hc          *http.Client
}

func NewNetworkClient(baseURL string) *NetworkClient {
	return &NetworkClient{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		maxAttempts: DefaultMaxAttempts,
		hc:          &http.Client{Timeout: 2 * time.Minute},
	}
}

// Send posts the prompt and returns the completion. The whole request is
// wrapped in the retry controller, so a transient failure is re-sent up to
// the attempt cap before the last error is surfaced.
func (c *NetworkClient) Send(ctx context.Context, prompt string) (*models.ChatResponse, error) {
	payload, err := json.Marshal(models.ChatRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	var resp models.ChatResponse
	op := func() error {
		// Rebuild the request each attempt; the previous body is consumed.
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		res, err := c.hc.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode >= 300 {
			var body models.ErrorResponse
			json.NewDecoder(res.Body).Decode(&body)
			return &StatusError{Code: res.StatusCode, Message: body.Error}
		}

		return json.NewDecoder(res.Body).Decode(&resp)
	}

	if err := WithRetry(ctx, c.maxAttempts, op); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchConfig asks the backend for its advertised API base URL. When the
// reply names one, the client switches to it for subsequent requests.
func (c *NetworkClient) FetchConfig(ctx context.Context) (*models.ConfigResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/config", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: res.StatusCode}
	}

	var cfg models.ConfigResponse
	if err := json.NewDecoder(res.Body).Decode(&cfg); err != nil {
		return nil, err
	}
	if cfg.APIBaseURL != "" {
		c.baseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
	}
	return &cfg, nil
}

// CheckHealth probes the backend health endpoint with a short timeout. Used
// by the connectivity monitor.
func (c *NetworkClient) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &StatusError{Code: res.StatusCode}
	}
	return nil
}
