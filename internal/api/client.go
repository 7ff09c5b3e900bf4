package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type httpClient struct {
	endpoint string
	client   *http.Client
}

func (c *httpClient) Endpoint() string { return c.endpoint }

// Generate performs the single POST /generate/ round trip for one
// submission. Exactly one of the return values is meaningful: either a
// decoded response or a TransportError / ServerError / DecodeError.
func (c *httpClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	buf, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/generate/", bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: c.endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyServerError(resp.StatusCode, body)
	}

	var parsed GenerateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if strings.TrimSpace(parsed.Answer) == "" {
		return nil, &DecodeError{Err: fmt.Errorf("response missing answer field")}
	}
	return &parsed, nil
}

func classifyServerError(status int, body []byte) *ServerError {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil || strings.TrimSpace(parsed.Error) == "" {
		return &ServerError{Status: status}
	}
	message := parsed.Error
	if parsed.Details != "" {
		message = fmt.Sprintf("%s: %s", parsed.Error, parsed.Details)
	}
	return &ServerError{Status: status, Message: message}
}
