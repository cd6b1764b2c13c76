package cmsservice

import (
	"bytes"
	"html/template"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var (
	scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
)

func sanitizeMarkdown(md string) string {
	return scriptTagPattern.ReplaceAllString(md, "")
}

// renderMarkdown converts post content to HTML. Raw HTML in the source is
// omitted by the renderer.
func renderMarkdown(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(sanitizeMarkdown(md)), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
