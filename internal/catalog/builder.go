package catalog

import (
	"strings"

	"github.com/kolah/humbler/internal/logz"
	"github.com/kolah/humbler/internal/model"
	"go.uber.org/zap"
)

// Filter keeps a path only when every keyword is a substring of it. An empty
// filter keeps everything.
type Filter []string

func (f Filter) Match(path string) bool {
	for _, kw := range f {
		if !strings.Contains(path, kw) {
			return false
		}
	}
	return true
}

// Option configures a Builder.
type Option func(*Builder)

// WithFilter restricts the catalog to paths matching all keywords.
func WithFilter(keywords ...string) Option {
	return func(b *Builder) {
		b.filter = append(b.filter, keywords...)
	}
}

// WithLogger sets the logger used for per-entry debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder produces the ordered catalog of a document.
type Builder struct {
	baseURL string
	filter  Filter
	logger  *zap.Logger
}

// NewBuilder creates a builder linking operations under the Swagger UI
// baseURL, which must not end with a slash.
func NewBuilder(baseURL string, opts ...Option) *Builder {
	b := &Builder{
		baseURL: baseURL,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build walks paths in document order and their operations in method
// order. The first failing operation aborts the build; no partial catalog
// is returned.
func (b *Builder) Build(doc *model.Document) ([]APIInfo, error) {
	if doc == nil || doc.Paths == nil {
		return nil, nil
	}

	var infos []APIInfo
	for path, item := range doc.Paths.FromOldest() {
		if !b.filter.Match(path) {
			b.logger.Debug("Path filtered out", logz.Path(path))
			continue
		}
		if item == nil || item.Ref != "" {
			b.logger.Debug("Skipping reference path item", logz.Path(path))
			continue
		}
		for i := range item.Operations {
			op := &item.Operations[i]
			info, err := Extract(doc, b.baseURL, path, op)
			if err != nil {
				return nil, err
			}
			b.logger.Debug("Cataloged operation",
				logz.Path(path),
				logz.Method(info.Method),
				zap.Int("parameters", len(info.Parameters)),
			)
			infos = append(infos, info)
		}
	}
	return infos, nil
}

// Build is a shorthand for NewBuilder(baseURL, opts...).Build(doc).
func Build(doc *model.Document, baseURL string, opts ...Option) ([]APIInfo, error) {
	return NewBuilder(baseURL, opts...).Build(doc)
}
