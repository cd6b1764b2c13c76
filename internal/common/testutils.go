package common

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

func TestRabbitMQ(t *testing.T) string {
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.12.11-management-alpine", rabbitmq.WithAdminUsername("guest"), rabbitmq.WithAdminPassword("guest"))
	if err != nil {
		t.Fatalf("could not start rabbitmq container: %v", err)
	}

	connURL, err := container.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("could not get rabbitmq connection URL: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("could not terminate container: %v", err)
		}
	})

	return connURL
}

var operationRX = regexp.MustCompile(`(?:query|mutation)\s+(\w+)`)

// CMSRequest is a GraphQL request received by a TestCMS.
type CMSRequest struct {
	Operation string
	Query     string
	Variables map[string]any
	Header    http.Header
}

type cmsResponse struct {
	status int
	body   string
}

// TestCMS is a stand-in for the hosted CMS GraphQL endpoint. Responses are
// registered per operation name; unknown operations get a GraphQL error.
type TestCMS struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]cmsResponse
	requests  []CMSRequest
}

func NewTestCMS(t *testing.T) *TestCMS {
	c := &TestCMS{responses: make(map[string]cmsResponse)}
	c.Server = httptest.NewServer(http.HandlerFunc(c.serveHTTP))

	t.Cleanup(c.Close)

	return c
}

// Respond registers the raw body and status returned for an operation.
func (c *TestCMS) Respond(operation string, status int, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[operation] = cmsResponse{status: status, body: body}
}

// Requests returns a copy of the requests received so far.
func (c *TestCMS) Requests() []CMSRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CMSRequest(nil), c.requests...)
}

// Count returns how many times an operation was requested.
func (c *TestCMS) Count(operation string) int {
	n := 0
	for _, r := range c.Requests() {
		if r.Operation == operation {
			n++
		}
	}
	return n
}

func (c *TestCMS) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var operation string
	if m := operationRX.FindStringSubmatch(payload.Query); m != nil {
		operation = m[1]
	}

	c.mu.Lock()
	c.requests = append(c.requests, CMSRequest{
		Operation: operation,
		Query:     payload.Query,
		Variables: payload.Variables,
		Header:    r.Header.Clone(),
	})
	res, ok := c.responses[operation]
	c.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"errors":[{"message":"unknown operation `+operation+`"}]}`)
		return
	}

	w.WriteHeader(res.status)
	io.WriteString(w, res.body)
}
