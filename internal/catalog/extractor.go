package catalog

import (
	"fmt"

	"github.com/kolah/humbler/internal/model"
	"github.com/pb33f/libopenapi/orderedmap"
)

// APIInfo is one catalog row: a single path + method operation.
type APIInfo struct {
	Path       string
	Method     string
	Parameters []Param
	// RequestBody and Response hold the canonical skeleton text, empty when
	// the operation has no body or the first response has no content.
	RequestBody string
	Response    string
	SwaggerURL  string
}

// ParametersText renders the parameters column.
func (a APIInfo) ParametersText() string {
	return FormatParams(a.Parameters)
}

// SwaggerURL builds the Swagger UI deep link for an operation. base must
// not end with a slash; nothing is escaped.
func SwaggerURL(base, tag, operationID string) string {
	return base + "/" + tag + "/" + operationID
}

// Extract builds the catalog row for one operation. Every top-level
// resolution (each parameter, the request body, the response) starts with
// a fresh expansion set.
func Extract(doc *model.Document, baseURL, path string, op *model.Operation) (APIInfo, error) {
	fail := func(location string, err error) (APIInfo, error) {
		return APIInfo{}, &BuildError{Path: path, Method: string(op.Method), Location: location, Err: err}
	}

	if op.ID == "" {
		return fail("", ErrMissingOperationID)
	}
	if len(op.Tags) == 0 {
		return fail("", ErrMissingTag)
	}

	r := NewResolver(doc)

	var params []Param
	for _, p := range op.Parameters {
		if p.Ref != "" {
			continue
		}
		location := fmt.Sprintf("parameter %s", p.Name)
		switch p.In {
		case model.LocationQuery, model.LocationPath:
		case model.LocationHeader:
			continue
		default:
			return fail(location, fmt.Errorf("%w: %s", ErrUnsupportedParameterLocation, p.In))
		}
		if p.Schema == nil {
			detail := "parameter without schema"
			if p.HasContent {
				detail = "content parameter"
			}
			return fail(location, schemaErr(ErrUnsupportedSchemaKind, p.Name, detail))
		}
		sk, err := r.Resolve(p.Schema)
		if err != nil {
			return fail(location, err)
		}
		params = append(params, Param{Name: p.Name, Type: sk})
	}

	var requestBody string
	if op.RequestBody != nil {
		text, err := contentSkeleton(r, op.RequestBody.Content)
		if err != nil {
			return fail("request body", err)
		}
		requestBody = text
	}

	var response string
	if op.Responses != nil {
		if pair := op.Responses.First(); pair != nil {
			if resp := pair.Value(); resp != nil {
				text, err := contentSkeleton(r, resp.Content)
				if err != nil {
					return fail("response "+pair.Key(), err)
				}
				response = text
			}
		}
	}

	return APIInfo{
		Path:        path,
		Method:      string(op.Method),
		Parameters:  params,
		RequestBody: requestBody,
		Response:    response,
		SwaggerURL:  SwaggerURL(baseURL, op.Tags[0], op.ID),
	}, nil
}

// contentSkeleton resolves the first media type of a content map and
// returns its canonical text. No content yields "".
func contentSkeleton(r *Resolver, content *orderedmap.Map[string, *model.MediaType]) (string, error) {
	if content == nil {
		return "", nil
	}
	pair := content.First()
	if pair == nil {
		return "", nil
	}
	var schema *model.SchemaRef
	if mt := pair.Value(); mt != nil {
		schema = mt.Schema
	}
	sk, err := r.Resolve(schema)
	if err != nil {
		return "", fmt.Errorf("%s: %w", pair.Key(), err)
	}
	return sk.String(), nil
}
