package loader

import (
	"context"
	"strings"

	"github.com/kolah/humbler/internal/logz"
	"github.com/kolah/humbler/internal/model"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"github.com/pb33f/libopenapi/orderedmap"
	"go.uber.org/zap"
)

type transformer struct {
	marks *refMarks
	log   *zap.Logger
}

// Transform converts the libopenapi model into the catalog's document
// model. $refs to schemas are kept as references; the catalog resolver
// expands them.
func Transform(ctx context.Context, result *Result) (*model.Document, error) {
	doc := result.Document.Model

	marks, err := scanRefs(result.RawData)
	if err != nil {
		return nil, err
	}

	t := &transformer{
		marks: marks,
		log:   logz.FromContext(ctx),
	}

	out := &model.Document{
		Version: result.Version,
		Info:    transformInfo(doc.Info),
		Paths:   orderedmap.New[string, *model.PathItem](),
	}

	if doc.Components != nil && doc.Components.Schemas != nil {
		schemas := orderedmap.New[string, *model.SchemaRef]()
		for name, schemaProxy := range doc.Components.Schemas.FromOldest() {
			ref := t.transformSchemaProxy(schemaProxy)
			if ref != nil && ref.Value != nil && ref.Value.Kind == model.KindUnsupported {
				t.log.Debug("Component schema not representable", logz.Schema(name), zap.String("found", ref.Value.Unsupported))
			}
			schemas.Set(name, ref)
		}
		out.Components = &model.Components{Schemas: schemas}
	}

	if doc.Paths != nil && doc.Paths.PathItems != nil {
		for pathStr, pathItem := range doc.Paths.PathItems.FromOldest() {
			out.Paths.Set(pathStr, t.transformPath(pathStr, pathItem))
		}
	}

	return out, nil
}

func transformInfo(info *base.Info) model.Info {
	if info == nil {
		return model.Info{}
	}
	return model.Info{
		Title:   info.Title,
		Version: info.Version,
	}
}

func (t *transformer) transformPath(pathStr string, pathItem *v3.PathItem) *model.PathItem {
	path := &model.PathItem{Ref: t.marks.pathRef(pathStr)}
	if path.Ref != "" || pathItem == nil {
		return path
	}

	methods := []struct {
		method model.Method
		op     *v3.Operation
	}{
		{model.MethodGet, pathItem.Get},
		{model.MethodPut, pathItem.Put},
		{model.MethodPost, pathItem.Post},
		{model.MethodDelete, pathItem.Delete},
		{model.MethodOptions, pathItem.Options},
		{model.MethodHead, pathItem.Head},
		{model.MethodPatch, pathItem.Patch},
		{model.MethodTrace, pathItem.Trace},
	}

	for _, m := range methods {
		if m.op == nil {
			continue
		}
		path.Operations = append(path.Operations, t.transformOperation(m.method, pathStr, m.op))
	}

	return path
}

func (t *transformer) transformOperation(method model.Method, path string, op *v3.Operation) model.Operation {
	operation := model.Operation{
		ID:     op.OperationId,
		Method: method,
		Tags:   op.Tags,
	}

	for i, p := range op.Parameters {
		param := t.transformParameter(p)
		param.Ref = t.marks.paramRef(path, string(method), i)
		operation.Parameters = append(operation.Parameters, param)
	}

	if op.RequestBody != nil {
		operation.RequestBody = &model.RequestBody{
			Content: t.transformContent(op.RequestBody.Content),
		}
	}

	if op.Responses != nil {
		responses := orderedmap.New[string, *model.Response]()
		if op.Responses.Codes != nil {
			for code, resp := range op.Responses.Codes.FromOldest() {
				responses.Set(code, t.transformResponse(resp))
			}
		}
		operation.Responses = responses
	}

	return operation
}

func (t *transformer) transformParameter(p *v3.Parameter) model.Parameter {
	if p == nil {
		return model.Parameter{}
	}
	param := model.Parameter{
		Name: p.Name,
		In:   model.ParameterLocation(strings.ToLower(p.In)),
	}

	if p.Schema != nil {
		param.Schema = t.transformSchemaProxy(p.Schema)
	} else if p.Content != nil && p.Content.Len() > 0 {
		param.HasContent = true
	}

	return param
}

func (t *transformer) transformResponse(resp *v3.Response) *model.Response {
	if resp == nil {
		return nil
	}
	return &model.Response{
		Description: resp.Description,
		Content:     t.transformContent(resp.Content),
	}
}

func (t *transformer) transformContent(content *orderedmap.Map[string, *v3.MediaType]) *orderedmap.Map[string, *model.MediaType] {
	if content == nil {
		return nil
	}
	out := orderedmap.New[string, *model.MediaType]()
	for mediaType, mt := range content.FromOldest() {
		mtc := &model.MediaType{}
		if mt != nil && mt.Schema != nil {
			mtc.Schema = t.transformSchemaProxy(mt.Schema)
		}
		out.Set(mediaType, mtc)
	}
	return out
}

// transformSchemaProxy keeps references unexpanded, so cyclic component
// graphs transform in a single pass.
func (t *transformer) transformSchemaProxy(proxy *base.SchemaProxy) *model.SchemaRef {
	if proxy == nil {
		return nil
	}
	if ref := proxy.GetReference(); ref != "" {
		return model.Ref(ref)
	}
	return model.Inline(t.transformSchema(proxy.Schema()))
}

func (t *transformer) transformSchema(s *base.Schema) *model.Schema {
	if s == nil {
		return unsupported("unbuildable schema")
	}

	switch {
	case len(s.AllOf) > 0:
		return unsupported("allOf")
	case len(s.OneOf) > 0:
		return unsupported("oneOf")
	case len(s.AnyOf) > 0:
		return unsupported("anyOf")
	}

	kind, detail := schemaKind(s.Type)
	schema := &model.Schema{Kind: kind, Unsupported: detail}

	switch kind {
	case model.KindArray:
		if s.Items != nil && s.Items.IsA() && s.Items.A != nil {
			schema.Items = t.transformSchemaProxy(s.Items.A)
		}
	case model.KindObject:
		if s.Properties != nil {
			props := orderedmap.New[string, *model.SchemaRef]()
			for propName, propProxy := range s.Properties.FromOldest() {
				props.Set(propName, t.transformSchemaProxy(propProxy))
			}
			schema.Properties = props
		}
	}

	return schema
}

// schemaKind maps the declared type list onto the closed kind set. A 3.1
// type list is accepted when it names exactly one type besides "null".
func schemaKind(types []string) (model.SchemaKind, string) {
	var declared []string
	for _, typ := range types {
		if typ != "null" {
			declared = append(declared, typ)
		}
	}

	switch len(declared) {
	case 0:
		if len(types) > 0 {
			return model.KindUnsupported, "type null"
		}
		return model.KindUnsupported, "untyped schema"
	case 1:
	default:
		return model.KindUnsupported, "type [" + strings.Join(declared, ", ") + "]"
	}

	switch kind := model.SchemaKind(declared[0]); kind {
	case model.KindString, model.KindNumber, model.KindInteger, model.KindBoolean,
		model.KindArray, model.KindObject:
		return kind, ""
	default:
		return model.KindUnsupported, "type " + declared[0]
	}
}

func unsupported(detail string) *model.Schema {
	return &model.Schema{Kind: model.KindUnsupported, Unsupported: detail}
}
