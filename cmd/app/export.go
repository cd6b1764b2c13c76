package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sushihentaime/cmsblog/internal/common"
)

// exportSite renders the home page, every post page and every category page
// into outDir and returns the number of pages written.
func (app *application) exportSite(ctx context.Context, outDir string) (int, error) {
	written := 0

	home, err := app.homeData(ctx)
	if err != nil {
		return written, fmt.Errorf("home page: %w", err)
	}
	if err := app.exportPage(outDir, "index.html", "home.html", home); err != nil {
		return written, err
	}
	written++

	edges, err := app.cmsService.GetPosts(ctx)
	if err != nil {
		return written, fmt.Errorf("list posts: %w", err)
	}

	for _, edge := range edges {
		slug := edge.Node.Slug
		if !common.SlugRX.MatchString(slug) {
			app.logger.Warn("skipping post with an invalid slug", slog.String("slug", slug))
			continue
		}

		data, err := app.postData(ctx, slug)
		if err != nil {
			return written, fmt.Errorf("post %q: %w", slug, err)
		}

		err = app.exportPage(outDir, filepath.Join("post", slug, "index.html"), "post.html", data)
		if err != nil {
			return written, err
		}
		written++
	}

	categories, err := app.cmsService.GetCategories(ctx)
	if err != nil {
		return written, fmt.Errorf("list categories: %w", err)
	}

	for _, category := range categories {
		if !common.SlugRX.MatchString(category.Slug) {
			app.logger.Warn("skipping category with an invalid slug", slog.String("slug", category.Slug))
			continue
		}

		data, err := app.categoryData(ctx, category.Slug)
		if err != nil {
			return written, fmt.Errorf("category %q: %w", category.Slug, err)
		}

		err = app.exportPage(outDir, filepath.Join("category", category.Slug, "index.html"), "category.html", data)
		if err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}

func (app *application) exportPage(outDir, name, page string, data *templateData) error {
	data.Static = true

	buf := new(bytes.Buffer)
	err := app.renderTemplate(buf, page, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	path := filepath.Join(outDir, name)
	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, buf.Bytes(), 0o644)
	if err != nil {
		return err
	}

	app.logger.Debug("page written", slog.String("path", path))
	return nil
}
