package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

type Engine interface {
	Execute(name string, data any) ([]byte, error)
}

// TextTemplateEngine parses every .tmpl file of the built-in set, then
// every .tmpl file under customDir. A custom file with the same relative
// name replaces the built-in one.
type TextTemplateEngine struct {
	templates *template.Template
	funcs     template.FuncMap
	builtin   fs.FS
	customDir string
}

func NewEngine(builtin fs.FS, customDir string, funcs template.FuncMap) (*TextTemplateEngine, error) {
	e := &TextTemplateEngine{
		builtin:   builtin,
		customDir: customDir,
		funcs:     mergeFuncs(defaultFuncs(), funcs),
	}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
	}
}

func mergeFuncs(base, extra template.FuncMap) template.FuncMap {
	for name, fn := range extra {
		base[name] = fn
	}
	return base
}

func (e *TextTemplateEngine) load() error {
	e.templates = template.New("").Funcs(e.funcs)

	err := fs.WalkDir(e.builtin, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}
		content, err := fs.ReadFile(e.builtin, path)
		if err != nil {
			return fmt.Errorf("reading embedded template %s: %w", path, err)
		}
		_, err = e.templates.New(path).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parsing embedded template %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading embedded templates: %w", err)
	}

	if e.customDir != "" {
		err = filepath.WalkDir(e.customDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
				return nil
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading custom template %s: %w", path, err)
			}
			relPath, _ := filepath.Rel(e.customDir, path)
			_, err = e.templates.New(filepath.ToSlash(relPath)).Parse(string(content))
			if err != nil {
				return fmt.Errorf("parsing custom template %s: %w", path, err)
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading custom templates: %w", err)
		}
	}

	return nil
}

func (e *TextTemplateEngine) Execute(name string, data any) ([]byte, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return nil, fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}

	return buf.Bytes(), nil
}
