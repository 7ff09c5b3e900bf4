// Package api is the HTTP client for the answer-generation service. It owns
// the wire types for POST /generate/ and classifies every outcome into one of
// three typed errors: transport (no response), server (non-2xx), and decode
// (2xx with an unusable body).
package api

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultEndpoint    = "http://127.0.0.1:8000"
	defaultHTTPTimeout = 60 * time.Second
)

// Config describes how to build a client.
type Config struct {
	Endpoint   string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client issues generate calls against the answer service.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Endpoint() string
}

// GenerateRequest is the wire payload. It is constructed fresh per
// submission from a form snapshot and never mutated afterwards.
type GenerateRequest struct {
	Query     string `json:"query"`
	TopK      uint32 `json:"top_k"`
	UseOpenAI bool   `json:"use_openai"`
}

// GenerateResponse is the success body. Only Answer and Backend are consumed
// by the client; the rest is passed through for the transcript.
type GenerateResponse struct {
	Status    string `json:"status"`
	Query     string `json:"query"`
	Answer    string `json:"answer"`
	Backend   string `json:"backend,omitempty"`
	TopK      uint32 `json:"top_k,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// BackendLabel reports which backend produced the answer, or "unknown" when
// the service omitted the field.
func (r *GenerateResponse) BackendLabel() string {
	if strings.TrimSpace(r.Backend) == "" {
		return "unknown"
	}
	return r.Backend
}

// errorBody is the structured non-2xx payload the service emits.
type errorBody struct {
	Status    string `json:"status"`
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// New builds a client from config, falling back to the RAGQUERY_ENDPOINT
// environment variable and then the local default.
func New(cfg Config) Client {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		if env := os.Getenv("RAGQUERY_ENDPOINT"); env != "" {
			endpoint = strings.TrimRight(env, "/")
		} else {
			endpoint = defaultEndpoint
		}
	}
	return &httpClient{
		endpoint: endpoint,
		client:   pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	// There is no request cancellation in the UI; the client timeout is the
	// only bound on an in-flight generate call.
	return &http.Client{Timeout: timeout}
}
