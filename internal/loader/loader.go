package loader

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/kolah/humbler/internal/logz"
	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"go.uber.org/zap"
)

type Result struct {
	Document *libopenapi.DocumentModel[v3.Document]
	Version  string
	Warnings []string
	RawData  []byte
	Source   string
}

// Load fetches source (an http(s) URL or a file path) and parses it into an
// OpenAPI 3.x model.
func Load(ctx context.Context, source string, opts ...Option) (*Result, error) {
	log := logz.FromContext(ctx).With(logz.Source(source))

	data, err := Fetch(ctx, source, opts...)
	if err != nil {
		return nil, err
	}
	log.Debug("Fetched document", zap.Int("bytes", len(data)))

	config, err := documentConfig(source)
	if err != nil {
		return nil, err
	}

	result, err := loadWithConfig(data, config)
	if err != nil {
		return nil, err
	}
	result.Source = source
	for _, w := range result.Warnings {
		log.Warn(w)
	}
	return result, nil
}

// LoadFile parses a local OpenAPI file.
func LoadFile(path string) (*Result, error) {
	return Load(context.Background(), path)
}

// LoadBytes parses an in-memory OpenAPI document. External references are
// not followed.
func LoadBytes(data []byte) (*Result, error) {
	return loadWithConfig(data, documentConfigBase())
}

func documentConfigBase() *datamodel.DocumentConfiguration {
	// Cycles are the catalog resolver's business; libopenapi only has to
	// build the model.
	return &datamodel.DocumentConfiguration{
		SkipCircularReferenceCheck: true,
	}
}

func documentConfig(source string) (*datamodel.DocumentConfiguration, error) {
	config := documentConfigBase()

	if isURL(source) {
		u, err := url.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("parsing spec url: %w", err)
		}
		base := *u
		base.Path = path.Dir(u.Path)
		config.BaseURL = &base
		config.AllowRemoteReferences = true
		return config, nil
	}

	absPath, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	config.BasePath = filepath.Dir(absPath)
	config.AllowFileReferences = true
	return config, nil
}

func loadWithConfig(data []byte, config *datamodel.DocumentConfiguration) (*Result, error) {
	var doc libopenapi.Document
	var err error

	if config != nil {
		doc, err = libopenapi.NewDocumentWithConfiguration(data, config)
	} else {
		doc, err = libopenapi.NewDocument(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	version := doc.GetVersion()
	if !strings.HasPrefix(version, "3.") {
		return nil, fmt.Errorf("unsupported OpenAPI version: %s (only 3.x supported)", version)
	}

	model, err := doc.BuildV3Model()
	if err != nil {
		return nil, fmt.Errorf("building OpenAPI model: %w", err)
	}

	result := &Result{
		Document: model,
		Version:  version,
		RawData:  data,
	}

	if strings.HasPrefix(version, "3.2") {
		result.Warnings = append(result.Warnings, "OpenAPI 3.2 detected; query operations are not cataloged")
	}

	return result, nil
}
