package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/cmsblog/internal/common"
)

const (
	testPostsResponse = `{"data":{"postsConnection":{"edges":[
		{"cursor":"c1","node":{"slug":"first-drive","title":"First Drive","excerpt":"A short trip.","createdAt":"2024-01-02T10:00:00Z",
			"featuredImage":{"url":"https://cdn.example.com/first.jpg"},"categories":[{"name":"Cars","slug":"cars"}],
			"author":{"id":"a1","name":"Dana","bio":"Mechanic.","photo":null}}},
		{"cursor":"c2","node":{"slug":"oil-change","title":"Oil Change","excerpt":"How often?","createdAt":"2024-02-03T10:00:00Z",
			"featuredImage":null,"categories":[{"name":"Maintenance","slug":"maintenance"}],
			"author":{"id":"a1","name":"Dana","bio":"Mechanic.","photo":null}}}
	]}}}`
	testFeaturedResponse   = `{"data":{"posts":[{"slug":"first-drive","title":"First Drive","createdAt":"2024-01-02T10:00:00Z","author":{"name":"Dana"}}]}}`
	testRecentResponse     = `{"data":{"posts":[{"slug":"oil-change","title":"Oil Change","createdAt":"2024-02-03T10:00:00Z"}]}}`
	testCategoriesResponse = `{"data":{"categories":[{"name":"Cars","slug":"cars"},{"name":"Maintenance","slug":"maintenance"}]}}`
	testPostResponse       = `{"data":{"post":{"slug":"first-drive","title":"First Drive","excerpt":"A short trip.","createdAt":"2024-01-02T10:00:00Z",
		"featuredImage":{"url":"https://cdn.example.com/first.jpg"},"categories":[{"name":"Cars","slug":"cars"}],
		"author":{"id":"a1","name":"Dana","bio":"Mechanic by trade.","photo":{"url":"https://cdn.example.com/dana.jpg"}},
		"content":{"markdown":"## On the road\n\nWe drove **north**.\n\n<script>alert(1)</script>"}}}}`
	testCommentsResponse      = `{"data":{"comments":[{"name":"Sam","comment":"Great read","createdAt":"2024-05-01T08:30:00Z"}]}}`
	testSimilarResponse       = `{"data":{"posts":[{"slug":"oil-change","title":"Oil Change","createdAt":"2024-02-03T10:00:00Z"}]}}`
	testAdjacentResponse      = `{"data":{"next":[{"slug":"oil-change","title":"Oil Change","createdAt":"2024-02-03T10:00:00Z"}],"previous":[]}}`
	testCategoryPostsResponse = `{"data":{"postsConnection":{"edges":[{"cursor":"c1","node":{"slug":"first-drive","title":"First Drive","excerpt":"A short trip.","createdAt":"2024-01-02T10:00:00Z","categories":[{"name":"Cars","slug":"cars"}]}}]}}}`
)

// respondSite registers a response for every read query the pages issue.
func respondSite(cms *common.TestCMS) {
	cms.Respond("GetPosts", http.StatusOK, testPostsResponse)
	cms.Respond("GetFeaturedPosts", http.StatusOK, testFeaturedResponse)
	cms.Respond("GetRecentPosts", http.StatusOK, testRecentResponse)
	cms.Respond("GetCategories", http.StatusOK, testCategoriesResponse)
	cms.Respond("GetPostDetails", http.StatusOK, testPostResponse)
	cms.Respond("GetComments", http.StatusOK, testCommentsResponse)
	cms.Respond("GetSimilarPosts", http.StatusOK, testSimilarResponse)
	cms.Respond("GetAdjacentPosts", http.StatusOK, testAdjacentResponse)
	cms.Respond("GetCategoryPosts", http.StatusOK, testCategoryPostsResponse)
}

func testConfig(endpoint string) *Config {
	return &Config{
		Port:           ":4000",
		Environment:    "development",
		Version:        "1.0.0",
		SiteTitle:      "Test Notes",
		CMSEndpoint:    endpoint,
		CMSToken:       "secret-token",
		CMSTimeout:     5 * time.Second,
		CacheTTL:       5 * time.Minute,
		CacheCleanup:   10 * time.Minute,
		RateLimitRPS:   1,
		RateLimitBurst: 5,
		MailPort:       587,
		MQPort:         "5672",
	}
}

func newTestApplication(t *testing.T, modify ...func(c *Config)) (*application, *common.TestCMS) {
	t.Helper()

	cms := common.NewTestCMS(t)
	cfg := testConfig(cms.URL)
	for _, m := range modify {
		m(cfg)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, err := newApplication(cfg, logger, false)
	require.NoError(t, err)

	t.Cleanup(app.close)

	return app, cms
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	// Redirects are asserted on, not followed.
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

func readBody(t *testing.T, res *http.Response) string {
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return string(body)
}

func (ts *testServer) postJSON(t *testing.T, path string, body string) *http.Response {
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return res
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return res
}

func (ts *testServer) get(t *testing.T, path string, cookies ...*http.Cookie) *http.Response {
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return res
}

func cookiesByName(res *http.Response) map[string]*http.Cookie {
	cookies := make(map[string]*http.Cookie)
	for _, c := range res.Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}
