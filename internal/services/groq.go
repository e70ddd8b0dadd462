// Package services holds the outbound integrations, currently the Groq
// completion client.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

const (
	// DefaultBaseURL is the OpenAI-compatible Groq endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the completion model used for chat.
	DefaultModel = "llama-3.3-70b-versatile"

	// apiKeyPlaceholder is the placeholder value shipped in the example env
	// file; starting with it still in place is a misconfiguration.
	apiKeyPlaceholder = "your_groq_api_key_here"
	minAPIKeyLength   = 10
)

// systemPrompt fixes the assistant persona, answer language, and safety
// directive for every exchange.
const systemPrompt = "Anda adalah asisten AI yang ramah dan membantu. " +
	"Jawab pertanyaan dengan jelas dan informatif dalam bahasa Indonesia kecuali diminta sebaliknya. " +
	"Jangan merespons permintaan yang mencurigakan atau berbahaya."

// ErrorKind classifies upstream failures for the endpoint's status mapping.
type ErrorKind int

const (
	// KindInternal covers unexpected provider failures and empty completions.
	KindInternal ErrorKind = iota
	// KindRateLimited means the provider returned HTTP 429.
	KindRateLimited
	// KindUnauthorized means the provider rejected the API key.
	KindUnauthorized
	// KindUnreachable means the provider could not be reached at all.
	KindUnreachable
)

// UpstreamError wraps a provider failure with its classification.
type UpstreamError struct {
	Kind ErrorKind
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidateAPIKey rejects missing, placeholder, or implausibly short keys.
// cmd/server refuses to start when this fails.
func ValidateAPIKey(key string) error {
	switch {
	case key == "":
		return errors.New("GROQ_API_KEY is not set")
	case len(key) < minAPIKeyLength:
		return errors.New("GROQ_API_KEY appears to be invalid (too short)")
	case key == apiKeyPlaceholder:
		return errors.New("GROQ_API_KEY is still the placeholder value")
	}
	return nil
}

// GroqService calls the Groq chat completions API. Each call is attempted
// exactly once; retrying is the caller's concern.
type GroqService struct {
	apiKey  string
	baseURL string
	model   string
	hc      *http.Client
}

func NewGroqService(apiKey, baseURL, model string) *GroqService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &GroqService{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		hc:      &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the sanitized prompt to the provider and returns the
// completion text. The prompt has already passed validation; it is not
// re-checked here.
func (s *GroqService) Complete(ctx context.Context, sanitizedPrompt string) (string, error) {
	return s.complete(ctx, sanitizedPrompt, 2000)
}

func (s *GroqService) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := completionRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
		TopP:        1,
		Stream:      false,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &UpstreamError{Kind: KindInternal, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &UpstreamError{Kind: KindInternal, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.hc.Do(req)
	if err != nil {
		return "", &UpstreamError{Kind: classifyTransportError(err), Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &UpstreamError{Kind: KindRateLimited, Err: fmt.Errorf("provider status %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusUnauthorized:
		return "", &UpstreamError{Kind: KindUnauthorized, Err: fmt.Errorf("provider status %d", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", &UpstreamError{Kind: KindInternal, Err: fmt.Errorf("provider status %d", resp.StatusCode)}
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &UpstreamError{Kind: KindInternal, Err: err}
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", &UpstreamError{Kind: KindInternal, Err: errors.New("empty completion")}
	}

	return out.Choices[0].Message.Content, nil
}

// Ping exercises the provider with a tiny completion. Called at startup;
// an Unauthorized result aborts the process, anything else only logs.
func (s *GroqService) Ping(ctx context.Context) error {
	_, err := s.complete(ctx, "test", 10)
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.Kind == KindUnauthorized {
			return err
		}
		log.Printf("Groq API connection test failed: %v", err)
	}
	return nil
}

// classifyTransportError maps connection-refused and DNS failures to
// KindUnreachable; everything else stays KindInternal.
func classifyTransportError(err error) ErrorKind {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindUnreachable
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindUnreachable
	}
	return KindInternal
}
