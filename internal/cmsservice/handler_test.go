package cmsservice

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/cmsblog/internal/common"
)

const postsResponse = `{"data":{"postsConnection":{"edges":[
	{"cursor":"c1","node":{"slug":"first-drive","title":"First Drive","excerpt":"A short trip.","createdAt":"2024-01-02T10:00:00Z",
		"featuredImage":{"url":"https://cdn.example.com/first.jpg"},
		"categories":[{"name":"Cars","slug":"cars"}],
		"author":{"id":"a1","name":"Dana","bio":"Mechanic.","photo":{"url":"https://cdn.example.com/dana.jpg"}}}},
	{"cursor":"c2","node":{"slug":"oil-change","title":"Oil Change","excerpt":"How often?","createdAt":"2024-02-03T10:00:00Z",
		"featuredImage":{"url":"https://cdn.example.com/oil.jpg"},
		"categories":[{"name":"Maintenance","slug":"maintenance"}],
		"author":{"id":"a1","name":"Dana","bio":"Mechanic.","photo":null}}}
]}}}`

func setupTestEnvironment(t *testing.T) (*CMSService, *common.TestCMS) {
	t.Helper()

	cms := common.NewTestCMS(t)
	client := common.NewGraphQLClient(cms.URL, 5*time.Second, nil)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	t.Cleanup(cache.Flush)

	return NewCMSService(client, cache), cms
}

func TestGetPosts(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetPosts", http.StatusOK, postsResponse)

	edges, err := s.GetPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, edges, 2)

	first := edges[0]
	assert.Equal(t, "c1", first.Cursor)
	assert.Equal(t, "first-drive", first.Node.Slug)
	assert.Equal(t, "Dana", first.Node.Author.Name)
	assert.Equal(t, "https://cdn.example.com/first.jpg", first.Node.FeaturedImage.URL)
	assert.Equal(t, []string{"cars"}, first.Node.CategorySlugs())
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), first.Node.CreatedAt)
	assert.Nil(t, edges[1].Node.Author.Photo)
}

func TestGetPosts_Cached(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetPosts", http.StatusOK, postsResponse)

	for i := 0; i < 3; i++ {
		_, err := s.GetPosts(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, 1, cms.Count("GetPosts"))

	s.Flush()
	_, err := s.GetPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cms.Count("GetPosts"))
}

func TestGetPosts_UpstreamError(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetPosts", http.StatusOK, `{"errors":[{"message":"project not found"}]}`)

	edges, err := s.GetPosts(context.Background())
	assert.Nil(t, edges)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cms GetPosts")
	assert.Contains(t, err.Error(), "project not found")

	// failures are not cached
	_, _ = s.GetPosts(context.Background())
	assert.Equal(t, 2, cms.Count("GetPosts"))
}

func TestGetPostDetails(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetPostDetails", http.StatusOK, `{"data":{"post":{
		"slug":"first-drive","title":"First Drive","createdAt":"2024-01-02T10:00:00Z",
		"categories":[{"name":"Cars","slug":"cars"},{"name":"Travel","slug":"travel"}],
		"author":{"id":"a1","name":"Dana","bio":"Mechanic."},
		"content":{"markdown":"## Setting off\n\nWe left at *dawn*."}}}}`)

	testCases := []struct {
		name        string
		slug        string
		expectedErr error
	}{
		{
			name:        "valid slug",
			slug:        "first-drive",
			expectedErr: nil,
		},
		{
			name:        "empty slug",
			slug:        "",
			expectedErr: common.ValidationError{Errors: map[string]string{"slug": "must be provided"}},
		},
		{
			name:        "invalid slug",
			slug:        "first drive",
			expectedErr: common.ValidationError{Errors: map[string]string{"slug": "must only contain letters, numbers, dashes, and underscores"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			post, err := s.GetPostDetails(context.Background(), tc.slug)
			if tc.expectedErr != nil {
				assert.Nil(t, post)
				assert.Equal(t, tc.expectedErr, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "First Drive", post.Title)
			assert.Equal(t, []string{"cars", "travel"}, post.CategorySlugs())
			require.NotNil(t, post.Content)
			assert.Contains(t, string(post.Content.HTML), `<h2 id="setting-off">Setting off</h2>`)
			assert.Contains(t, string(post.Content.HTML), "<em>dawn</em>")
		})
	}

	requests := cms.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, map[string]any{"slug": "first-drive"}, requests[0].Variables)
}

func TestGetPostDetails_NotFound(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetPostDetails", http.StatusOK, `{"data":{"post":null}}`)

	post, err := s.GetPostDetails(context.Background(), "missing")
	assert.Nil(t, post)
	assert.True(t, errors.Is(err, ErrPostNotFound))
}

func TestReads_UpstreamStatusNotCached(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetPostDetails", http.StatusServiceUnavailable, `{"message":"maintenance"}`)
	cms.Respond("GetPosts", http.StatusServiceUnavailable, `{"message":"maintenance"}`)

	for i := 0; i < 2; i++ {
		post, err := s.GetPostDetails(context.Background(), "first-drive")
		assert.Nil(t, post)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrPostNotFound))

		var statusErr *common.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)

		edges, err := s.GetPosts(context.Background())
		assert.Nil(t, edges)
		require.ErrorAs(t, err, &statusErr)
	}

	assert.Equal(t, 2, cms.Count("GetPostDetails"))
	assert.Equal(t, 2, cms.Count("GetPosts"))

	// Once the CMS recovers the real result is served.
	cms.Respond("GetPosts", http.StatusOK, postsResponse)
	edges, err := s.GetPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, edges, 2)
}

func TestGetSimilarPosts_ExcludesCurrentPost(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetSimilarPosts", http.StatusOK, `{"data":{"posts":[
		{"slug":"oil-change","title":"Oil Change","createdAt":"2024-02-03T10:00:00Z"},
		{"slug":"first-drive","title":"First Drive","createdAt":"2024-01-02T10:00:00Z"},
		{"slug":"tyres","title":"Tyres","createdAt":"2024-03-04T10:00:00Z"}
	]}}`)

	posts, err := s.GetSimilarPosts(context.Background(), []string{"cars", "maintenance"}, "first-drive")
	require.NoError(t, err)

	slugs := make([]string, 0, len(posts))
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"oil-change", "tyres"}, slugs)

	requests := cms.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "first-drive", requests[0].Variables["slug"])
	assert.Equal(t, []any{"cars", "maintenance"}, requests[0].Variables["categories"])
	assert.Contains(t, requests[0].Query, "slug_not: $slug")
	assert.Contains(t, requests[0].Query, "categories_some: { slug_in: $categories }")
}

func TestGetSimilarPosts_InvalidCategory(t *testing.T) {
	s, cms := setupTestEnvironment(t)

	posts, err := s.GetSimilarPosts(context.Background(), []string{"cars", "bad slug"}, "first-drive")
	assert.Nil(t, posts)
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"categories": "must only contain valid category slugs"}}, err)
	assert.Empty(t, cms.Requests())
}

func TestGetWidgetPosts(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetRecentPosts", http.StatusOK, `{"data":{"posts":[{"slug":"newest","title":"Newest"}]}}`)
	cms.Respond("GetSimilarPosts", http.StatusOK, `{"data":{"posts":[{"slug":"related","title":"Related"}]}}`)

	recent, err := s.GetWidgetPosts(context.Background(), "", nil)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "newest", recent[0].Slug)

	related, err := s.GetWidgetPosts(context.Background(), "first-drive", []string{"cars"})
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "related", related[0].Slug)

	assert.Equal(t, 1, cms.Count("GetRecentPosts"))
	assert.Equal(t, 1, cms.Count("GetSimilarPosts"))
}

func TestGetCategoriesAndComments(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetCategories", http.StatusOK, `{"data":{"categories":[{"name":"Cars","slug":"cars"},{"name":"Travel","slug":"travel"}]}}`)
	cms.Respond("GetComments", http.StatusOK, `{"data":{"comments":[{"name":"Sam","comment":"Great read","createdAt":"2024-05-01T08:30:00Z"}]}}`)

	categories, err := s.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Category{{Name: "Cars", Slug: "cars"}, {Name: "Travel", Slug: "travel"}}, categories)

	comments, err := s.GetComments(context.Background(), "first-drive")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Sam", comments[0].Name)
	assert.Equal(t, "Great read", comments[0].Comment)

	var commentReq common.CMSRequest
	for _, r := range cms.Requests() {
		if r.Operation == "GetComments" {
			commentReq = r
		}
	}
	assert.Equal(t, map[string]any{"slug": "first-drive"}, commentReq.Variables)
}

func TestGetCategory(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetCategories", http.StatusOK, `{"data":{"categories":[{"name":"Cars","slug":"cars"},{"name":"Travel","slug":"travel"}]}}`)

	category, err := s.GetCategory(context.Background(), "travel")
	require.NoError(t, err)
	assert.Equal(t, &Category{Name: "Travel", Slug: "travel"}, category)

	_, err = s.GetCategory(context.Background(), "boats")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = s.GetCategory(context.Background(), "bad slug")
	assert.ErrorAs(t, err, &common.ValidationError{})

	assert.Equal(t, 1, cms.Count("GetCategories"))
}

func TestGetFeaturedPosts(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetFeaturedPosts", http.StatusOK, `{"data":{"posts":[{"slug":"first-drive","title":"First Drive","author":{"name":"Dana","photo":{"url":"https://cdn.example.com/dana.jpg"}}}]}}`)

	posts, err := s.GetFeaturedPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "https://cdn.example.com/dana.jpg", posts[0].Author.Photo.URL)
}

func TestGetAdjacentPosts(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	created := time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)

	cms.Respond("GetAdjacentPosts", http.StatusOK, `{"data":{"next":[{"slug":"tyres","title":"Tyres"}],"previous":[]}}`)

	adjacent, err := s.GetAdjacentPosts(context.Background(), created, "oil-change")
	require.NoError(t, err)
	require.NotNil(t, adjacent.Next)
	assert.Equal(t, "tyres", adjacent.Next.Slug)
	assert.Nil(t, adjacent.Previous)

	requests := cms.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, map[string]any{"slug": "oil-change", "createdAt": "2024-02-03T10:00:00Z"}, requests[0].Variables)

	_, err = s.GetAdjacentPosts(context.Background(), time.Time{}, "oil-change")
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"created_at": "must be provided"}}, err)
}

func TestGetCategoryPosts(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetCategoryPosts", http.StatusOK, postsResponse)

	edges, err := s.GetCategoryPosts(context.Background(), "cars")
	require.NoError(t, err)
	assert.Len(t, edges, 2)

	requests := cms.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, map[string]any{"slug": "cars"}, requests[0].Variables)
}

func TestGetPosts_ContextCanceled(t *testing.T) {
	s, cms := setupTestEnvironment(t)
	cms.Respond("GetPosts", http.StatusOK, postsResponse)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetPosts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
