package catalog_test

import (
	"context"
	"testing"

	"github.com/kolah/humbler/internal/catalog"
	"github.com/kolah/humbler/internal/loader"
	"github.com/kolah/humbler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:4000/swagger-ui/index.html#"

func load(t *testing.T, path string) *model.Document {
	t.Helper()

	result, err := loader.LoadFile(path)
	require.NoError(t, err)

	doc, err := loader.Transform(context.Background(), result)
	require.NoError(t, err)
	return doc
}

func find(t *testing.T, infos []catalog.APIInfo, method, path string) catalog.APIInfo {
	t.Helper()
	for _, info := range infos {
		if info.Method == method && info.Path == path {
			return info
		}
	}
	require.Failf(t, "operation not cataloged", "%s %s", method, path)
	return catalog.APIInfo{}
}

func TestPetstoreCatalog(t *testing.T) {
	doc := load(t, "../loader/testdata/petstore.json")

	infos, err := catalog.Build(doc, baseURL)
	require.NoError(t, err)

	var rows []string
	for _, info := range infos {
		rows = append(rows, info.Method+" "+info.Path)
	}
	require.Equal(t, []string{
		"put /pet",
		"post /pet",
		"get /pet/findByStatus",
		"get /pet/{petId}",
		"post /pet/{petId}",
		"delete /pet/{petId}",
		"get /store/inventory",
		"get /store/order/{orderId}",
		"post /user/createWithList",
		"get /user/logout",
	}, rows)

	const pet = `{"category":{"id":"integer","name":"string"},"children":["Pet"],"id":"integer","name":"string","photoUrls":["string"],"status":"string","tags":[{"id":"integer","name":"string"}]}`
	const users = `[{"email":"string","firstName":"string","id":"integer","lastName":"string","password":"string","phone":"string","userStatus":"integer","username":"string"}]`

	addPet := find(t, infos, "post", "/pet")
	assert.Equal(t, pet, addPet.RequestBody)
	assert.Equal(t, pet, addPet.Response)
	assert.Empty(t, addPet.ParametersText())
	assert.Equal(t, baseURL+"/pet/addPet", addPet.SwaggerURL)

	findByStatus := find(t, infos, "get", "/pet/findByStatus")
	assert.Equal(t, `"status": "string"`, findByStatus.ParametersText())
	assert.Equal(t, "["+pet+"]", findByStatus.Response)

	updateWithForm := find(t, infos, "post", "/pet/{petId}")
	assert.Equal(t, `"name": "string", "petId": "integer", "status": "string"`, updateWithForm.ParametersText())
	assert.Empty(t, updateWithForm.Response)

	deletePet := find(t, infos, "delete", "/pet/{petId}")
	require.Len(t, deletePet.Parameters, 1)
	assert.Equal(t, "petId", deletePet.Parameters[0].Name)

	inventory := find(t, infos, "get", "/store/inventory")
	assert.Equal(t, `{}`, inventory.Response)

	createWithList := find(t, infos, "post", "/user/createWithList")
	assert.Equal(t, users, createWithList.RequestBody)
	assert.Equal(t, users, createWithList.Response)
	assert.Equal(t, baseURL+"/user/createUsersWithListInput", createWithList.SwaggerURL)

	logout := find(t, infos, "get", "/user/logout")
	assert.Empty(t, logout.Response)
}

func TestPetstoreCatalogFiltered(t *testing.T) {
	doc := load(t, "../loader/testdata/petstore.json")

	infos, err := catalog.Build(doc, baseURL, catalog.WithFilter("pet", "Id"))
	require.NoError(t, err)
	require.Len(t, infos, 3)
	for _, info := range infos {
		assert.Equal(t, "/pet/{petId}", info.Path)
	}

	infos, err = catalog.Build(doc, baseURL, catalog.WithFilter("user", "pet"))
	require.NoError(t, err)
	require.Empty(t, infos)
}

func TestReferencedShapes(t *testing.T) {
	doc := load(t, "../loader/testdata/refs.yaml")

	infos, err := catalog.Build(doc, baseURL)
	require.NoError(t, err)

	// The path item given as a $ref and the $ref parameter are both skipped.
	require.Len(t, infos, 1)
	info := infos[0]
	assert.Equal(t, "/items/{id}", info.Path)
	assert.Equal(t, `"id": "string"`, info.ParametersText())
	assert.Equal(t, `{"id":"string","parent":"Item","score":"number"}`, info.Response)
}
