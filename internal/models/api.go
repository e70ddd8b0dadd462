package models

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

// ChatResponse is the successful reply from the chat endpoint.
type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse carries a single localized error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// ConfigResponse lets clients discover the API base URL.
type ConfigResponse struct {
	APIBaseURL string `json:"apiBaseUrl"`
	Timestamp  string `json:"timestamp"`
}

// ChatMessage is a single entry in the client's persisted history.
type ChatMessage struct {
	Content   string `json:"content"`
	Role      string `json:"role"` // "user" or "assistant"
	Timestamp string `json:"timestamp"`
}
