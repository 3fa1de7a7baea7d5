package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kolah/humbler/internal/templates"
	"go.yaml.in/yaml/v4"
)

// Target renders a page in one output format.
type Target interface {
	Name() string
	ContentType() string
	Render(engine templates.Engine, page Page) ([]byte, error)
}

func NewTarget(format string) (Target, error) {
	switch format {
	case "markdown", "md":
		return &MarkdownTarget{}, nil
	case "html":
		return &HTMLTarget{}, nil
	case "json":
		return &JSONTarget{}, nil
	case "yaml", "yml":
		return &YAMLTarget{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

type MarkdownTarget struct{}

func (t *MarkdownTarget) Name() string        { return "markdown" }
func (t *MarkdownTarget) ContentType() string { return "text/markdown; charset=utf-8" }

func (t *MarkdownTarget) Render(engine templates.Engine, page Page) ([]byte, error) {
	return engine.Execute("catalog/markdown.tmpl", page)
}

type HTMLTarget struct{}

func (t *HTMLTarget) Name() string        { return "html" }
func (t *HTMLTarget) ContentType() string { return "text/html; charset=utf-8" }

func (t *HTMLTarget) Render(engine templates.Engine, page Page) ([]byte, error) {
	return engine.Execute("catalog/html.tmpl", page)
}

// JSONTarget writes the rows as an indented array. Skeleton text is kept
// as is, so HTML escaping is off.
type JSONTarget struct{}

func (t *JSONTarget) Name() string        { return "json" }
func (t *JSONTarget) ContentType() string { return "application/json" }

func (t *JSONTarget) Render(_ templates.Engine, page Page) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(page.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type YAMLTarget struct{}

func (t *YAMLTarget) Name() string        { return "yaml" }
func (t *YAMLTarget) ContentType() string { return "application/yaml" }

func (t *YAMLTarget) Render(_ templates.Engine, page Page) ([]byte, error) {
	return yaml.Marshal(page.Rows)
}
