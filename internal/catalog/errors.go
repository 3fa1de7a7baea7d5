package catalog

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Build matches exactly one of these
// through errors.Is.
var (
	ErrMalformedReference           = errors.New("malformed reference")
	ErrUnknownSchemaReference       = errors.New("unknown schema reference")
	ErrMissingArrayItems            = errors.New("array schema without items")
	ErrMissingPropertySchema        = errors.New("property without schema")
	ErrUnsupportedSchemaKind        = errors.New("unsupported schema kind")
	ErrMissingSchema                = errors.New("media type without schema")
	ErrMissingOperationID           = errors.New("operation id not found")
	ErrMissingTag                   = errors.New("tag not found")
	ErrUnsupportedParameterLocation = errors.New("unsupported parameter location")
)

// SchemaError is a schema that could not be reduced to a Skeleton.
type SchemaError struct {
	// Kind is one of the schema related sentinels above
	Kind error
	// Name is the component name or property the failure happened at
	Name string
	// Detail adds context, e.g. the unsupported kind found
	Detail string
}

func (e *SchemaError) Error() string {
	msg := e.Kind.Error()
	if e.Name != "" {
		msg += " at " + e.Name
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *SchemaError) Is(target error) bool {
	return target == e.Kind
}

// BuildError locates a failure within the document.
type BuildError struct {
	Path   string
	Method string
	// Location is the part of the operation being processed, e.g.
	// "parameter id", "request body" or "response 200".
	Location string
	Err      error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Method, e.Path)
	if e.Location != "" {
		msg += " (" + e.Location + ")"
	}
	return msg + ": " + e.Err.Error()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func schemaErr(kind error, name, detail string) error {
	return &SchemaError{Kind: kind, Name: name, Detail: detail}
}
