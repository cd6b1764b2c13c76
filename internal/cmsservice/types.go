package cmsservice

import (
	"html/template"
	"time"

	"github.com/sushihentaime/cmsblog/internal/common"
)

type Image struct {
	URL string `json:"url"`
}

type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Photo *Image `json:"photo"`
}

type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Content struct {
	// Markdown is the rich text body exported by the CMS as markdown.
	Markdown string `json:"markdown"`
	// HTML is filled in locally from Markdown.
	HTML template.HTML `json:"-"`
}

type Post struct {
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt"`
	CreatedAt     time.Time  `json:"createdAt"`
	FeaturedImage *Image     `json:"featuredImage"`
	FeaturedPost  bool       `json:"featuredPost"`
	Categories    []Category `json:"categories"`
	Author        *Author    `json:"author"`
	Content       *Content   `json:"content,omitempty"`
}

// CategorySlugs returns the slugs of the post's categories in CMS order.
func (p *Post) CategorySlugs() []string {
	slugs := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		slugs = append(slugs, c.Slug)
	}
	return slugs
}

type PostEdge struct {
	Cursor string `json:"cursor"`
	Node   Post   `json:"node"`
}

type Comment struct {
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type AdjacentPosts struct {
	Next     *Post `json:"next"`
	Previous *Post `json:"previous"`
}

type CMSModel struct {
	client common.GraphQLClient
}

type CMSService struct {
	m *CMSModel
	c *common.Cache
}
