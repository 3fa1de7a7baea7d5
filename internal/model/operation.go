package model

import (
	"github.com/pb33f/libopenapi/orderedmap"
)

type Operation struct {
	ID          string
	Method      Method
	Tags        []string
	Parameters  []Parameter
	RequestBody *RequestBody
	// Status code responses in document order. The default response is
	// not among them.
	Responses *orderedmap.Map[string, *Response]
}

type Method string

// Lower-case, as methods appear as keys of an OpenAPI path item.
const (
	MethodGet     Method = "get"
	MethodPut     Method = "put"
	MethodPost    Method = "post"
	MethodDelete  Method = "delete"
	MethodOptions Method = "options"
	MethodHead    Method = "head"
	MethodPatch   Method = "patch"
	MethodTrace   Method = "trace"
)

// Methods lists HTTP methods in the order operations of a path item are walked.
var Methods = []Method{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
}

type ParameterLocation string

const (
	LocationPath        ParameterLocation = "path"
	LocationQuery       ParameterLocation = "query"
	LocationHeader      ParameterLocation = "header"
	LocationCookie      ParameterLocation = "cookie"
	LocationQueryString ParameterLocation = "querystring" // OpenAPI 3.2
)

type Parameter struct {
	// Ref is set when the parameter was declared as a $ref.
	Ref  string
	Name string
	In   ParameterLocation
	// Schema is nil for content-form parameters.
	Schema     *SchemaRef
	HasContent bool
}

type RequestBody struct {
	Content *orderedmap.Map[string, *MediaType]
}

type MediaType struct {
	Schema *SchemaRef
}

type Response struct {
	Description string
	Content     *orderedmap.Map[string, *MediaType]
}
