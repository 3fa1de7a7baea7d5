package catalog

import (
	"slices"

	"github.com/kolah/humbler/internal/model"
)

// Resolver reduces schemas of one document to skeletons, expanding $refs
// against the document's component schemas.
type Resolver struct {
	doc *model.Document
}

func NewResolver(doc *model.Document) *Resolver {
	return &Resolver{doc: doc}
}

// expanding holds the component names expanded so far during one top-level
// resolution. It only grows: every recursive call returns the set it ended
// with and the caller hands that to the next sibling, so a component
// expanded in one branch is emitted as a cycle token in every later branch.
type expanding []string

func (e expanding) has(name string) bool {
	return slices.Contains(e, name)
}

func (e expanding) with(name string) expanding {
	return append(slices.Clip(e), name)
}

// Resolve resolves a top-level schema (a parameter, a request body or a
// response) starting from an empty expansion set.
func (r *Resolver) Resolve(s *model.SchemaRef) (Skeleton, error) {
	sk, _, err := r.resolve(s, nil, "")
	return sk, err
}

func (r *Resolver) resolve(s *model.SchemaRef, seen expanding, at string) (Skeleton, expanding, error) {
	if s == nil {
		return Skeleton{}, seen, schemaErr(ErrMissingSchema, at, "")
	}
	if !s.IsReference() {
		return r.resolveSchema(s.Value, seen, at)
	}

	name := model.RefName(s.Ref)
	if name == "" {
		return Skeleton{}, seen, schemaErr(ErrMalformedReference, at, s.Ref)
	}
	if seen.has(name) {
		return CycleToken(name), seen, nil
	}

	target, ok := r.doc.LookupSchema(name)
	if !ok || target == nil {
		return Skeleton{}, seen, schemaErr(ErrUnknownSchemaReference, at, s.Ref)
	}

	seen = seen.with(name)
	// A component may itself alias another component.
	return r.resolve(target, seen, name)
}

func (r *Resolver) resolveSchema(s *model.Schema, seen expanding, at string) (Skeleton, expanding, error) {
	if s == nil {
		return Skeleton{}, seen, schemaErr(ErrMissingSchema, at, "")
	}

	switch s.Kind {
	case model.KindString, model.KindNumber, model.KindInteger, model.KindBoolean:
		return Primitive(s.Kind), seen, nil

	case model.KindArray:
		if s.Items == nil {
			return Skeleton{}, seen, schemaErr(ErrMissingArrayItems, at, "")
		}
		var (
			elem Skeleton
			err  error
		)
		elem, seen, err = r.resolve(s.Items, seen, at+"[]")
		if err != nil {
			return Skeleton{}, seen, err
		}
		return ArrayOf(elem), seen, nil

	case model.KindObject:
		var fields []Field
		if s.Properties != nil {
			for name, prop := range s.Properties.FromOldest() {
				propAt := joinLocation(at, name)
				if prop == nil {
					return Skeleton{}, seen, schemaErr(ErrMissingPropertySchema, propAt, "")
				}
				var (
					sk  Skeleton
					err error
				)
				sk, seen, err = r.resolve(prop, seen, propAt)
				if err != nil {
					return Skeleton{}, seen, err
				}
				fields = append(fields, Field{Name: name, Type: sk})
			}
		}
		return ObjectOf(fields...), seen, nil

	case model.KindUnsupported:
		return Skeleton{}, seen, schemaErr(ErrUnsupportedSchemaKind, at, s.Unsupported)

	default:
		return Skeleton{}, seen, schemaErr(ErrUnsupportedSchemaKind, at, string(s.Kind))
	}
}

func joinLocation(at, name string) string {
	if at == "" {
		return name
	}
	return at + "." + name
}
