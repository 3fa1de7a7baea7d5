package model

import (
	"strings"

	"github.com/pb33f/libopenapi/orderedmap"
)

// Document is the read-only view of an OpenAPI 3.x document the catalog is
// built from.
type Document struct {
	Version    string
	Info       Info
	Paths      *orderedmap.Map[string, *PathItem]
	Components *Components
}

type Info struct {
	Title   string
	Version string
}

type Components struct {
	Schemas *orderedmap.Map[string, *SchemaRef]
}

type PathItem struct {
	// Ref is set when the path item is a $ref to another location.
	Ref        string
	Operations []Operation
}

// Operation returns the operation for method, or nil.
func (p *PathItem) Operation(method Method) *Operation {
	for i := range p.Operations {
		if p.Operations[i].Method == method {
			return &p.Operations[i]
		}
	}
	return nil
}

// LookupSchema returns a component schema by name. A document without a
// components section resolves nothing.
func (d *Document) LookupSchema(name string) (*SchemaRef, bool) {
	if d == nil || d.Components == nil || d.Components.Schemas == nil {
		return nil, false
	}
	return d.Components.Schemas.Get(name)
}

// RefName returns the final path segment of a $ref, e.g. "Pet" for
// "#/components/schemas/Pet". Returns "" when there is none.
func RefName(ref string) string {
	idx := strings.LastIndex(ref, "/")
	return ref[idx+1:]
}
