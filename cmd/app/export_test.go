package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSite(t *testing.T) {
	app, cms := newTestApplication(t)
	respondSite(cms)

	outDir := t.TempDir()

	pages, err := app.exportSite(context.Background(), outDir)
	require.NoError(t, err)
	assert.Equal(t, 5, pages)

	for _, name := range []string{
		"index.html",
		"post/first-drive/index.html",
		"post/oil-change/index.html",
		"category/cars/index.html",
		"category/maintenance/index.html",
	} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}

	post, err := os.ReadFile(filepath.Join(outDir, "post", "first-drive", "index.html"))
	require.NoError(t, err)

	body := string(post)
	assert.Contains(t, body, "<strong>north</strong>")
	assert.Contains(t, body, `+ "/api/comments";`)
	assert.Contains(t, body, `window.localStorage.setItem("name", body.name);`)
	assert.Contains(t, body, `data-slug="first-drive"`)
	assert.NotContains(t, body, "alert(1)")
}

func TestExportSite_RelayURL(t *testing.T) {
	app, cms := newTestApplication(t, func(c *Config) { c.CommentRelayURL = "https://relay.example.com" })
	respondSite(cms)

	outDir := t.TempDir()
	_, err := app.exportSite(context.Background(), outDir)
	require.NoError(t, err)

	post, err := os.ReadFile(filepath.Join(outDir, "post", "oil-change", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(post), `relay.example.com`)
	assert.Contains(t, string(post), `+ "/api/comments";`)
}

func TestExportSite_SkipsInvalidSlugs(t *testing.T) {
	app, cms := newTestApplication(t)
	respondSite(cms)
	cms.Respond("GetPosts", http.StatusOK, `{"data":{"postsConnection":{"edges":[
		{"cursor":"c1","node":{"slug":"../escape","title":"Escape"}},
		{"cursor":"c2","node":{"slug":"first-drive","title":"First Drive"}}
	]}}}`)

	outDir := t.TempDir()
	pages, err := app.exportSite(context.Background(), outDir)
	require.NoError(t, err)

	assert.Equal(t, 4, pages)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(outDir), "escape", "index.html"))
}

func TestExportSite_UpstreamError(t *testing.T) {
	app, cms := newTestApplication(t)
	respondSite(cms)
	cms.Respond("GetCategories", http.StatusOK, `{"errors":[{"message":"boom"}]}`)

	_, err := app.exportSite(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "home page")
}
