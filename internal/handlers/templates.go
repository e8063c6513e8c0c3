package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	templateDir    = "templates"
	layoutTemplate = "layout.html"
)

// TemplateCache holds one parsed template set per page. Each set contains
// the layout, every partial (files starting with "_") and the page itself.
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		cache: make(map[string]*template.Template),
	}
}

// Load parses the pages found in fsys under templates/.
func (tc *TemplateCache) Load(fsys fs.FS) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	files, err := fs.Glob(fsys, path.Join(templateDir, "*.html"))
	if err != nil {
		return err
	}

	layout := path.Join(templateDir, layoutTemplate)
	var partials, pages []string
	for _, file := range files {
		name := path.Base(file)
		switch {
		case name == layoutTemplate:
		case strings.HasPrefix(name, "_"):
			partials = append(partials, file)
		default:
			pages = append(pages, file)
		}
	}

	for _, page := range pages {
		name := path.Base(page)
		patterns := append([]string{layout}, partials...)
		patterns = append(patterns, page)

		tmpl, err := template.New(name).ParseFS(fsys, patterns...)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		tc.cache[name] = tmpl
	}
	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

// LoadTemplates parses the pages embedded in the binary.
func LoadTemplates() (*TemplateCache, error) {
	tc := NewTemplateCache()
	if err := tc.Load(templateFS); err != nil {
		return nil, err
	}
	return tc, nil
}
