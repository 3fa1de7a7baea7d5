package render

import (
	"fmt"
	"io"

	"github.com/kolah/humbler/internal/catalog"
	"github.com/kolah/humbler/internal/templates"
	embeddedtmpl "github.com/kolah/humbler/templates"
)

// Headers are the catalog table columns, in order.
var Headers = []string{"Path", "Method", "Parameters", "Request Body", "Response", "Swagger URL"}

// Row is one catalog entry with every column already rendered to text.
type Row struct {
	Path        string `json:"path" yaml:"path"`
	Method      string `json:"method" yaml:"method"`
	Parameters  string `json:"parameters" yaml:"parameters"`
	RequestBody string `json:"request_body" yaml:"request_body"`
	Response    string `json:"response" yaml:"response"`
	SwaggerURL  string `json:"swagger_url" yaml:"swagger_url"`
}

func Rows(infos []catalog.APIInfo) []Row {
	rows := make([]Row, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, Row{
			Path:        info.Path,
			Method:      info.Method,
			Parameters:  info.ParametersText(),
			RequestBody: info.RequestBody,
			Response:    info.Response,
			SwaggerURL:  info.SwaggerURL,
		})
	}
	return rows
}

// Page is what a target renders: the rows plus the context shown around
// them by the document-like formats.
type Page struct {
	Title    string
	Keywords []string
	Headers  []string
	Rows     []Row
}

func NewPage(title string, keywords []string, infos []catalog.APIInfo) Page {
	return Page{
		Title:    title,
		Keywords: keywords,
		Headers:  Headers,
		Rows:     Rows(infos),
	}
}

type Renderer struct {
	engine templates.Engine
}

// New creates a renderer over the built-in templates, overridden by any
// .tmpl file of the same name under templatesDir.
func New(templatesDir string) (*Renderer, error) {
	engine, err := templates.NewEngine(embeddedtmpl.FS, templatesDir, nil)
	if err != nil {
		return nil, fmt.Errorf("creating template engine: %w", err)
	}
	return &Renderer{engine: engine}, nil
}

// Render writes page to w in the given format.
func (r *Renderer) Render(w io.Writer, format string, page Page) error {
	target, err := NewTarget(format)
	if err != nil {
		return err
	}

	content, err := target.Render(r.engine, page)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", target.Name(), err)
	}

	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", target.Name(), err)
	}
	return nil
}
