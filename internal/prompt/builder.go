package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"sync"
	"text/template"

	"github.com/kapu/sheos-insight-go/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type TemplateName string

// TemplateFor returns the embedded template that renders the feature's prompt.
func TemplateFor(feature domain.Feature) TemplateName {
	return TemplateName(string(feature) + ".tmpl")
}

// PromptData is the input of every feature template.
type PromptData struct {
	Language string
	Fields   []domain.Field
}

type PromptBuilder struct {
	mu        sync.RWMutex
	templates map[TemplateName]*template.Template
	fs        templateSource
}

type templateSource interface {
	ReadFile(name string) ([]byte, error)
}

var (
	defaultBuilderOnce sync.Once
	defaultBuilder     *PromptBuilder
)

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		templates: make(map[TemplateName]*template.Template),
		fs:        templateFS,
	}
}

func DefaultPromptBuilder() *PromptBuilder {
	defaultBuilderOnce.Do(func() {
		defaultBuilder = NewPromptBuilder()
	})
	return defaultBuilder
}

func (pb *PromptBuilder) Render(name TemplateName, data any) (string, error) {
	tmpl, err := pb.getTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}

	return buf.String(), nil
}

func (pb *PromptBuilder) getTemplate(name TemplateName) (*template.Template, error) {
	pb.mu.RLock()
	if tmpl, ok := pb.templates[name]; ok {
		pb.mu.RUnlock()
		return tmpl, nil
	}
	pb.mu.RUnlock()

	filename := filepath.ToSlash(filepath.Join("templates", string(name)))
	content, err := pb.fs.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("load prompt template %s: %w", name, err)
	}

	tmpl, err := template.New(string(name)).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", name, err)
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.templates[name] = tmpl

	return tmpl, nil
}
