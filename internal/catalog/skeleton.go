package catalog

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/kolah/humbler/internal/model"
)

type SkeletonKind uint8

const (
	SkeletonPrimitive SkeletonKind = iota
	SkeletonArray
	SkeletonObject
	SkeletonCycle
)

// Skeleton is the compact type shape of a schema: a primitive tag, a
// one-element array, an object of named fields, or the bare name of a
// schema already being expanded.
type Skeleton struct {
	kind   SkeletonKind
	name   string // primitive tag or cycle name
	elem   *Skeleton
	fields []Field
}

// Field is one object property, in declaration order.
type Field struct {
	Name string
	Type Skeleton
}

func Primitive(kind model.SchemaKind) Skeleton {
	return Skeleton{kind: SkeletonPrimitive, name: string(kind)}
}

func ArrayOf(elem Skeleton) Skeleton {
	return Skeleton{kind: SkeletonArray, elem: &elem}
}

func ObjectOf(fields ...Field) Skeleton {
	return Skeleton{kind: SkeletonObject, fields: fields}
}

func CycleToken(name string) Skeleton {
	return Skeleton{kind: SkeletonCycle, name: name}
}

func (s Skeleton) Kind() SkeletonKind { return s.kind }

// Name returns the primitive tag or the cycle token name.
func (s Skeleton) Name() string { return s.name }

// Elem returns the array element, or nil.
func (s Skeleton) Elem() *Skeleton { return s.elem }

// Fields returns object fields in declaration order.
func (s Skeleton) Fields() []Field { return s.fields }

// Field returns the named object field.
func (s Skeleton) Field(name string) (Skeleton, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return Skeleton{}, false
}

// Value converts the skeleton into plain JSON values: strings, one element
// slices and maps.
func (s Skeleton) Value() any {
	switch s.kind {
	case SkeletonArray:
		return []any{s.elem.Value()}
	case SkeletonObject:
		m := make(map[string]any, len(s.fields))
		for _, f := range s.fields {
			m[f.Name] = f.Type.Value()
		}
		return m
	default:
		return s.name
	}
}

// MarshalJSON renders the canonical form: compact, object keys sorted.
func (s Skeleton) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.Value()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (s Skeleton) String() string {
	b, err := s.MarshalJSON()
	if err != nil {
		// Value only ever holds strings, slices and string keyed maps.
		panic(err)
	}
	return string(b)
}

// Equal compares two skeletons structurally, field order included.
func (s Skeleton) Equal(o Skeleton) bool {
	if s.kind != o.kind || s.name != o.name || len(s.fields) != len(o.fields) {
		return false
	}
	if s.kind == SkeletonArray && !s.elem.Equal(*o.elem) {
		return false
	}
	for i := range s.fields {
		if s.fields[i].Name != o.fields[i].Name || !s.fields[i].Type.Equal(o.fields[i].Type) {
			return false
		}
	}
	return true
}

// Param is a query or path parameter with its resolved type.
type Param struct {
	Name string
	Type Skeleton
}

func (p Param) String() string {
	return `"` + p.Name + `": ` + p.Type.String()
}

// FormatParams renders parameters as `"name": <skeleton>` pairs, sorted
// lexicographically and joined with ", ".
func FormatParams(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.String())
	}
	slices.Sort(parts)
	return strings.Join(parts, ", ")
}
