package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*
var templateFS embed.FS

// message is a rendered notification ready to be handed to the mailer.
type message struct {
	Subject string
	Plain   string
	HTML    string
}

func NewTemplate() *Template {
	return &Template{parsed: make(map[string]*template.Template)}
}

// lookup parses a template file on first use and keeps it for later sends.
func (tp *Template) lookup(name string) (*template.Template, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if t, ok := tp.parsed[name]; ok {
		return t, nil
	}

	t, err := template.New("email").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("could not parse template %s: %w", name, err)
	}

	for _, block := range []string{"subject", "plainBody", "htmlBody"} {
		if t.Lookup(block) == nil {
			return nil, fmt.Errorf("template %s has no %q block", name, block)
		}
	}

	tp.parsed[name] = t
	return t, nil
}

// Render executes the subject, plainBody and htmlBody blocks of the named
// template with data.
func (tp *Template) Render(name string, data any) (*message, error) {
	t, err := tp.lookup(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	execute := func(block string) (string, error) {
		buf.Reset()
		if err := t.ExecuteTemplate(&buf, block, data); err != nil {
			return "", fmt.Errorf("render %s of %s: %w", block, name, err)
		}
		return buf.String(), nil
	}

	subject, err := execute("subject")
	if err != nil {
		return nil, err
	}
	plain, err := execute("plainBody")
	if err != nil {
		return nil, err
	}
	html, err := execute("htmlBody")
	if err != nil {
		return nil, err
	}

	// Header values must stay on one line.
	return &message{
		Subject: strings.Join(strings.Fields(subject), " "),
		Plain:   plain,
		HTML:    html,
	}, nil
}
