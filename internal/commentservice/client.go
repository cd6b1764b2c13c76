package commentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxRelayResponseBytes = 1 << 20

// RelayError is returned when the relay endpoint answers with a non-200 status.
type RelayError struct {
	Status int
	Body   string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("comment relay returned status %d: %s", e.Status, e.Body)
}

// NewClient returns a client for the relay served at baseURL. A nil
// httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SubmitComment posts the comment to /api/comments. Invalid requests are
// rejected before any network call.
func (c *Client) SubmitComment(ctx context.Context, req *CommentRequest) (json.RawMessage, error) {
	if err := ValidateCommentRequest(req); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/comments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("comment relay: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(io.LimitReader(res.Body, maxRelayResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("comment relay: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, &RelayError{Status: res.StatusCode, Body: string(resBody)}
	}

	return json.RawMessage(resBody), nil
}
