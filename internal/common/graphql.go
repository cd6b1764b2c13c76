package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/machinebox/graphql"
)

// maxErrorBody bounds how much of a failed CMS response ends up in an error.
const maxErrorBody = 512

// GraphQLClient is satisfied by *graphql.Client.
type GraphQLClient interface {
	Run(ctx context.Context, req *graphql.Request, resp interface{}) error
}

// StatusError reports a CMS response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("cms responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("cms responded %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// statusTransport fails every non-2xx response before the graphql client
// decodes the body.
type statusTransport struct {
	next http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	res, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return res, nil
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	return nil, &StatusError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(body))}
}

// NewGraphQLClient returns a client for the CMS endpoint. Client-level debug
// output from the library is routed to logger.
func NewGraphQLClient(endpoint string, timeout time.Duration, logger *slog.Logger) *graphql.Client {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: &statusTransport{next: http.DefaultTransport},
	}

	client := graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient))
	if logger != nil {
		client.Log = func(s string) {
			logger.Debug(s, slog.String("component", "graphql"))
		}
	}

	return client
}
