package loader

import (
	"context"
	"testing"

	"github.com/kolah/humbler/internal/model"
	"github.com/stretchr/testify/require"
)

func loadModel(t *testing.T, path string) *model.Document {
	t.Helper()

	result, err := LoadFile(path)
	require.NoError(t, err)

	doc, err := Transform(context.Background(), result)
	require.NoError(t, err)
	return doc
}

func TestTransformPetstore(t *testing.T) {
	doc := loadModel(t, "testdata/petstore.json")

	require.Equal(t, "3.0.2", doc.Version)
	require.Equal(t, "1.0.17", doc.Info.Version)

	var paths []string
	for p := range doc.Paths.FromOldest() {
		paths = append(paths, p)
	}
	require.Equal(t, []string{
		"/pet",
		"/pet/findByStatus",
		"/pet/{petId}",
		"/store/inventory",
		"/store/order/{orderId}",
		"/user/createWithList",
		"/user/logout",
	}, paths)

	pet, ok := doc.Paths.Get("/pet")
	require.True(t, ok)
	require.Len(t, pet.Operations, 2)
	require.Equal(t, model.MethodPut, pet.Operations[0].Method)
	require.Equal(t, model.MethodPost, pet.Operations[1].Method)

	addPet := pet.Operation(model.MethodPost)
	require.NotNil(t, addPet)
	require.Equal(t, "addPet", addPet.ID)
	require.Equal(t, []string{"pet"}, addPet.Tags)
	require.NotNil(t, addPet.RequestBody)
	first := addPet.RequestBody.Content.First()
	require.Equal(t, "application/json", first.Key())
	require.Equal(t, "#/components/schemas/Pet", first.Value().Schema.Ref)

	var codes []string
	for code := range addPet.Responses.FromOldest() {
		codes = append(codes, code)
	}
	require.Equal(t, []string{"200", "405"}, codes)
}

func TestTransformParameters(t *testing.T) {
	doc := loadModel(t, "testdata/petstore.json")

	item, ok := doc.Paths.Get("/pet/{petId}")
	require.True(t, ok)

	del := item.Operation(model.MethodDelete)
	require.NotNil(t, del)
	require.Len(t, del.Parameters, 2)
	require.Equal(t, model.LocationHeader, del.Parameters[0].In)
	require.Equal(t, "petId", del.Parameters[1].Name)
	require.Equal(t, model.LocationPath, del.Parameters[1].In)
	require.Equal(t, model.KindInteger, del.Parameters[1].Schema.Value.Kind)
}

func TestTransformKeepsComponentRefs(t *testing.T) {
	doc := loadModel(t, "testdata/petstore.json")

	pet, ok := doc.LookupSchema("Pet")
	require.True(t, ok)
	require.False(t, pet.IsReference())
	require.Equal(t, model.KindObject, pet.Value.Kind)

	var props []string
	for name := range pet.Value.Properties.FromOldest() {
		props = append(props, name)
	}
	require.Equal(t, []string{"id", "name", "category", "photoUrls", "tags", "status", "children"}, props)

	category, _ := pet.Value.Properties.Get("category")
	require.Equal(t, "#/components/schemas/Category", category.Ref)

	children, _ := pet.Value.Properties.Get("children")
	require.Equal(t, model.KindArray, children.Value.Kind)
	require.Equal(t, "#/components/schemas/Pet", children.Value.Items.Ref)
}

func TestTransformMarksReferences(t *testing.T) {
	doc := loadModel(t, "testdata/refs.yaml")

	alias, ok := doc.Paths.Get("/items/{id}/alias")
	require.True(t, ok)
	require.Equal(t, "#/components/pathItems/ItemAlias", alias.Ref)
	require.Empty(t, alias.Operations)

	item, ok := doc.Paths.Get("/items/{id}")
	require.True(t, ok)
	get := item.Operation(model.MethodGet)
	require.NotNil(t, get)
	require.Len(t, get.Parameters, 3)
	require.Equal(t, "#/components/parameters/TraceID", get.Parameters[0].Ref)
	require.Empty(t, get.Parameters[1].Ref)
	require.Empty(t, get.Parameters[2].Ref)

	schema, ok := doc.LookupSchema("Item")
	require.True(t, ok)
	score, _ := schema.Value.Properties.Get("score")
	require.Equal(t, model.KindNumber, score.Value.Kind)
}

func TestSchemaKind(t *testing.T) {
	tests := []struct {
		name       string
		types      []string
		wantKind   model.SchemaKind
		wantDetail string
	}{
		{"string", []string{"string"}, model.KindString, ""},
		{"number", []string{"number"}, model.KindNumber, ""},
		{"integer", []string{"integer"}, model.KindInteger, ""},
		{"boolean", []string{"boolean"}, model.KindBoolean, ""},
		{"array", []string{"array"}, model.KindArray, ""},
		{"object", []string{"object"}, model.KindObject, ""},
		{"nullable string", []string{"string", "null"}, model.KindString, ""},
		{"untyped", nil, model.KindUnsupported, "untyped schema"},
		{"null only", []string{"null"}, model.KindUnsupported, "type null"},
		{"multiple", []string{"string", "integer"}, model.KindUnsupported, "type [string, integer]"},
		{"unknown", []string{"file"}, model.KindUnsupported, "type file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, detail := schemaKind(tt.types)
			require.Equal(t, tt.wantKind, kind)
			require.Equal(t, tt.wantDetail, detail)
		})
	}
}
