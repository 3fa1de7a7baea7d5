package catalog

import (
	"encoding/json"
	"testing"

	"github.com/kolah/humbler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkeletonString(t *testing.T) {
	tests := []struct {
		name string
		sk   Skeleton
		want string
	}{
		{"primitive", Primitive(model.KindBoolean), `"boolean"`},
		{"cycle", CycleToken("Pet"), `"Pet"`},
		{"array", ArrayOf(Primitive(model.KindString)), `["string"]`},
		{"empty object", ObjectOf(), `{}`},
		{
			"object keys sorted",
			ObjectOf(
				Field{Name: "zeta", Type: Primitive(model.KindNumber)},
				Field{Name: "alpha", Type: ArrayOf(CycleToken("Node"))},
			),
			`{"alpha":["Node"],"zeta":"number"}`,
		},
		{
			"html characters kept",
			ObjectOf(Field{Name: "<a&b>", Type: Primitive(model.KindString)}),
			`{"<a&b>":"string"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sk.String())
		})
	}
}

func TestSkeletonMarshalNested(t *testing.T) {
	row := map[string]Skeleton{"body": ArrayOf(ObjectOf(Field{Name: "id", Type: Primitive(model.KindInteger)}))}

	b, err := json.Marshal(row)
	require.NoError(t, err)
	require.Equal(t, `{"body":[{"id":"integer"}]}`, string(b))
}

func TestSkeletonEqual(t *testing.T) {
	a := ObjectOf(
		Field{Name: "a", Type: Primitive(model.KindString)},
		Field{Name: "b", Type: ArrayOf(Primitive(model.KindInteger))},
	)
	b := ObjectOf(
		Field{Name: "a", Type: Primitive(model.KindString)},
		Field{Name: "b", Type: ArrayOf(Primitive(model.KindInteger))},
	)
	swapped := ObjectOf(
		Field{Name: "b", Type: ArrayOf(Primitive(model.KindInteger))},
		Field{Name: "a", Type: Primitive(model.KindString)},
	)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(swapped))
	assert.Equal(t, a.String(), swapped.String())
	assert.False(t, Primitive(model.KindString).Equal(CycleToken("string")))
	assert.False(t, ArrayOf(Primitive(model.KindString)).Equal(ArrayOf(Primitive(model.KindNumber))))
}

func TestFormatParams(t *testing.T) {
	params := []Param{
		{Name: "status", Type: Primitive(model.KindString)},
		{Name: "petId", Type: Primitive(model.KindInteger)},
		{Name: "name", Type: Primitive(model.KindString)},
	}

	require.Equal(t, `"name": "string", "petId": "integer", "status": "string"`, FormatParams(params))
	require.Equal(t, "", FormatParams(nil))
	require.Equal(t, `"ids": ["integer"]`, FormatParams([]Param{{Name: "ids", Type: ArrayOf(Primitive(model.KindInteger))}}))
}
