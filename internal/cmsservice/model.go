package cmsservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/machinebox/graphql"

	"github.com/sushihentaime/cmsblog/internal/common"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
)

func newCMSModel(client common.GraphQLClient) *CMSModel {
	return &CMSModel{client: client}
}

// run sends one request and wraps any failure with the operation name.
func (m *CMSModel) run(ctx context.Context, operation string, req *graphql.Request, resp any) error {
	err := m.client.Run(ctx, req, resp)
	if err != nil {
		return fmt.Errorf("cms %s: %w", operation, err)
	}

	return nil
}

func (m *CMSModel) getPosts(ctx context.Context) ([]PostEdge, error) {
	var resp struct {
		PostsConnection struct {
			Edges []PostEdge `json:"edges"`
		} `json:"postsConnection"`
	}

	err := m.run(ctx, "GetPosts", graphql.NewRequest(getPostsQuery), &resp)
	if err != nil {
		return nil, err
	}

	return resp.PostsConnection.Edges, nil
}

func (m *CMSModel) getPostDetails(ctx context.Context, slug string) (*Post, error) {
	req := graphql.NewRequest(getPostDetailsQuery)
	req.Var("slug", slug)

	var resp struct {
		Post *Post `json:"post"`
	}

	err := m.run(ctx, "GetPostDetails", req, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Post == nil {
		return nil, ErrPostNotFound
	}

	return resp.Post, nil
}

func (m *CMSModel) getRecentPosts(ctx context.Context) ([]Post, error) {
	var resp struct {
		Posts []Post `json:"posts"`
	}

	err := m.run(ctx, "GetRecentPosts", graphql.NewRequest(getRecentPostsQuery), &resp)
	if err != nil {
		return nil, err
	}

	return resp.Posts, nil
}

func (m *CMSModel) getSimilarPosts(ctx context.Context, categories []string, slug string) ([]Post, error) {
	req := graphql.NewRequest(getSimilarPostsQuery)
	req.Var("slug", slug)
	req.Var("categories", categories)

	var resp struct {
		Posts []Post `json:"posts"`
	}

	err := m.run(ctx, "GetSimilarPosts", req, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Posts, nil
}

func (m *CMSModel) getCategories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}

	err := m.run(ctx, "GetCategories", graphql.NewRequest(getCategoriesQuery), &resp)
	if err != nil {
		return nil, err
	}

	return resp.Categories, nil
}

func (m *CMSModel) getComments(ctx context.Context, slug string) ([]Comment, error) {
	req := graphql.NewRequest(getCommentsQuery)
	req.Var("slug", slug)

	var resp struct {
		Comments []Comment `json:"comments"`
	}

	err := m.run(ctx, "GetComments", req, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Comments, nil
}

func (m *CMSModel) getFeaturedPosts(ctx context.Context) ([]Post, error) {
	var resp struct {
		Posts []Post `json:"posts"`
	}

	err := m.run(ctx, "GetFeaturedPosts", graphql.NewRequest(getFeaturedPostsQuery), &resp)
	if err != nil {
		return nil, err
	}

	return resp.Posts, nil
}

func (m *CMSModel) getAdjacentPosts(ctx context.Context, createdAt time.Time, slug string) (*AdjacentPosts, error) {
	req := graphql.NewRequest(getAdjacentPostsQuery)
	req.Var("createdAt", createdAt.UTC().Format(time.RFC3339Nano))
	req.Var("slug", slug)

	var resp struct {
		Next     []Post `json:"next"`
		Previous []Post `json:"previous"`
	}

	err := m.run(ctx, "GetAdjacentPosts", req, &resp)
	if err != nil {
		return nil, err
	}

	var adjacent AdjacentPosts
	if len(resp.Next) > 0 {
		adjacent.Next = &resp.Next[0]
	}
	if len(resp.Previous) > 0 {
		adjacent.Previous = &resp.Previous[0]
	}

	return &adjacent, nil
}

func (m *CMSModel) getCategoryPosts(ctx context.Context, slug string) ([]PostEdge, error) {
	req := graphql.NewRequest(getCategoryPostsQuery)
	req.Var("slug", slug)

	var resp struct {
		PostsConnection struct {
			Edges []PostEdge `json:"edges"`
		} `json:"postsConnection"`
	}

	err := m.run(ctx, "GetCategoryPosts", req, &resp)
	if err != nil {
		return nil, err
	}

	return resp.PostsConnection.Edges, nil
}
