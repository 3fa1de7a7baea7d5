package model

import (
	"github.com/pb33f/libopenapi/orderedmap"
)

// SchemaKind is the closed set of schema shapes humbler understands.
// Anything else is carried as KindUnsupported so callers fail loudly
// instead of guessing.
type SchemaKind string

const (
	KindString      SchemaKind = "string"
	KindNumber      SchemaKind = "number"
	KindInteger     SchemaKind = "integer"
	KindBoolean     SchemaKind = "boolean"
	KindArray       SchemaKind = "array"
	KindObject      SchemaKind = "object"
	KindUnsupported SchemaKind = "unsupported"
)

// IsPrimitive reports whether the kind is a scalar type tag.
func (k SchemaKind) IsPrimitive() bool {
	switch k {
	case KindString, KindNumber, KindInteger, KindBoolean:
		return true
	}
	return false
}

// SchemaRef is either a $ref pointer or an inline schema.
type SchemaRef struct {
	Ref   string
	Value *Schema
}

// IsReference reports whether the value points at a named schema.
func (r *SchemaRef) IsReference() bool {
	return r != nil && r.Ref != ""
}

type Schema struct {
	Kind SchemaKind

	// Array items
	Items *SchemaRef

	// Object properties in declaration order. A nil value marks a
	// property declared without a schema.
	Properties *orderedmap.Map[string, *SchemaRef]

	// Unsupported describes what was found for KindUnsupported,
	// e.g. "oneOf" or "type null".
	Unsupported string
}

// Ref builds a reference SchemaRef.
func Ref(ref string) *SchemaRef {
	return &SchemaRef{Ref: ref}
}

// Inline wraps a schema value.
func Inline(s *Schema) *SchemaRef {
	return &SchemaRef{Value: s}
}

// Primitive builds an inline scalar schema.
func Primitive(kind SchemaKind) *SchemaRef {
	return Inline(&Schema{Kind: kind})
}

// ArrayOf builds an inline array schema.
func ArrayOf(items *SchemaRef) *SchemaRef {
	return Inline(&Schema{Kind: KindArray, Items: items})
}

// Property is a name/schema pair used to build object schemas.
type Property struct {
	Name   string
	Schema *SchemaRef
}

// ObjectOf builds an inline object schema keeping the given property order.
func ObjectOf(props ...Property) *SchemaRef {
	m := orderedmap.New[string, *SchemaRef]()
	for _, p := range props {
		m.Set(p.Name, p.Schema)
	}
	return Inline(&Schema{Kind: KindObject, Properties: m})
}
