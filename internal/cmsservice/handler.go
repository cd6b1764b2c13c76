package cmsservice

import (
	"context"
	"fmt"
	"time"

	"github.com/sushihentaime/cmsblog/internal/common"
)

func NewCMSService(client common.GraphQLClient, cache *common.Cache) *CMSService {
	return &CMSService{m: newCMSModel(client), c: cache}
}

// cached returns the value stored under key or loads, stores and returns it.
func cached[T any](c *common.Cache, key string, load func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	t, err := load()
	if err != nil {
		return t, err
	}

	c.Set(key, t)
	return t, nil
}

// GetPosts returns every post as a connection edge, as used for the home page
// and for enumerating post paths during a static build.
func (s *CMSService) GetPosts(ctx context.Context) ([]PostEdge, error) {
	return cached(s.c, common.CacheKeyPosts(), func() ([]PostEdge, error) {
		return s.m.getPosts(ctx)
	})
}

// GetPostDetails returns a single post with its content rendered to HTML.
func (s *CMSService) GetPostDetails(ctx context.Context, slug string) (*Post, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return cached(s.c, common.CacheKeyPost(slug), func() (*Post, error) {
		post, err := s.m.getPostDetails(ctx, slug)
		if err != nil {
			return nil, err
		}

		if post.Content != nil {
			html, err := renderMarkdown(post.Content.Markdown)
			if err != nil {
				return nil, fmt.Errorf("render content of %q: %w", slug, err)
			}
			post.Content.HTML = html
		}

		return post, nil
	})
}

// GetRecentPosts returns the three newest posts.
func (s *CMSService) GetRecentPosts(ctx context.Context) ([]Post, error) {
	return cached(s.c, common.CacheKeyRecentPosts(), func() ([]Post, error) {
		return s.m.getRecentPosts(ctx)
	})
}

// GetSimilarPosts returns up to three posts sharing a category with the given
// categories. The post identified by slug is never part of the result.
func (s *CMSService) GetSimilarPosts(ctx context.Context, categories []string, slug string) ([]Post, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	validateCategories(v, categories)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	posts, err := cached(s.c, common.CacheKeySimilarPosts(slug, categories), func() ([]Post, error) {
		return s.m.getSimilarPosts(ctx, categories, slug)
	})
	if err != nil {
		return nil, err
	}

	filtered := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Slug == slug {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered, nil
}

// GetWidgetPosts returns related posts when a post slug is given and the most
// recent posts otherwise.
func (s *CMSService) GetWidgetPosts(ctx context.Context, slug string, categories []string) ([]Post, error) {
	if slug == "" {
		return s.GetRecentPosts(ctx)
	}

	return s.GetSimilarPosts(ctx, categories, slug)
}

func (s *CMSService) GetCategories(ctx context.Context) ([]Category, error) {
	return cached(s.c, common.CacheKeyCategories(), func() ([]Category, error) {
		return s.m.getCategories(ctx)
	})
}

// GetCategory looks a category up by slug in the cached category list.
func (s *CMSService) GetCategory(ctx context.Context, slug string) (*Category, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	for i := range categories {
		if categories[i].Slug == slug {
			return &categories[i], nil
		}
	}

	return nil, ErrCategoryNotFound
}

// GetComments returns the published comments of a post.
func (s *CMSService) GetComments(ctx context.Context, slug string) ([]Comment, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return cached(s.c, common.CacheKeyComments(slug), func() ([]Comment, error) {
		return s.m.getComments(ctx, slug)
	})
}

func (s *CMSService) GetFeaturedPosts(ctx context.Context) ([]Post, error) {
	return cached(s.c, common.CacheKeyFeaturedPosts(), func() ([]Post, error) {
		return s.m.getFeaturedPosts(ctx)
	})
}

// GetAdjacentPosts returns the posts published directly after and before the
// given one. Either side is nil at the ends of the timeline.
func (s *CMSService) GetAdjacentPosts(ctx context.Context, createdAt time.Time, slug string) (*AdjacentPosts, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	validateCreatedAt(v, createdAt)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return cached(s.c, common.CacheKeyAdjacentPosts(slug, createdAt), func() (*AdjacentPosts, error) {
		return s.m.getAdjacentPosts(ctx, createdAt, slug)
	})
}

// GetCategoryPosts returns the posts filed under a category.
func (s *CMSService) GetCategoryPosts(ctx context.Context, slug string) ([]PostEdge, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return cached(s.c, common.CacheKeyCategoryPosts(slug), func() ([]PostEdge, error) {
		return s.m.getCategoryPosts(ctx, slug)
	})
}

// Flush drops every cached CMS response.
func (s *CMSService) Flush() {
	s.c.Flush()
}
