package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kolah/humbler/internal/catalog"
	"github.com/kolah/humbler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

const userArray = `[{"email":"string","id":"integer"}]`

func sampleInfos() []catalog.APIInfo {
	return []catalog.APIInfo{
		{
			Path:   "/pet/{petId}",
			Method: "post",
			Parameters: []catalog.Param{
				{Name: "status", Type: catalog.Primitive(model.KindString)},
				{Name: "petId", Type: catalog.Primitive(model.KindInteger)},
			},
			SwaggerURL: "http://localhost:4000/ui/pet/updatePetWithForm",
		},
		{
			Path:        "/user/createWithList",
			Method:      "post",
			RequestBody: userArray,
			Response:    userArray,
			SwaggerURL:  "http://localhost:4000/ui/user/createUsersWithListInput",
		},
	}
}

func render(t *testing.T, format string, page Page) string {
	t.Helper()

	r, err := New("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, format, page))
	return buf.String()
}

func TestRenderMarkdown(t *testing.T) {
	out := render(t, "markdown", NewPage("Petstore", nil, sampleInfos()))

	want := strings.Join([]string{
		"| Path | Method | Parameters | Request Body | Response | Swagger URL |",
		"| ---- | ------ | ---------- | ------------ | -------- | ----------- |",
		`| /pet/{petId} | post | "petId": "integer", "status": "string" |  |  | http://localhost:4000/ui/pet/updatePetWithForm |`,
		`| /user/createWithList | post |  | ` + userArray + ` | ` + userArray + ` | http://localhost:4000/ui/user/createUsersWithListInput |`,
		"",
	}, "\n")
	require.Equal(t, want, out)
}

func TestRenderMarkdownEmpty(t *testing.T) {
	out := render(t, "md", NewPage("", nil, nil))
	require.Equal(t,
		"| Path | Method | Parameters | Request Body | Response | Swagger URL |\n"+
			"| ---- | ------ | ---------- | ------------ | -------- | ----------- |\n",
		out)
}

func TestRenderHTML(t *testing.T) {
	out := render(t, "html", NewPage("Swagger Petstore", []string{"pet", "<id>"}, sampleInfos()))

	assert.Contains(t, out, "<title>Swagger Petstore</title>")
	for _, h := range Headers {
		assert.Contains(t, out, "<th>"+h+"</th>")
	}
	assert.Contains(t, out, "Filtered by: pet, &lt;id&gt;")
	assert.Contains(t, out, "<td>/pet/{petId}</td>")
	assert.Contains(t, out, `<code>&#34;petId&#34;: &#34;integer&#34;, &#34;status&#34;: &#34;string&#34;</code>`)
	assert.Contains(t, out, `<a href="http://localhost:4000/ui/user/createUsersWithListInput">`)
	assert.Equal(t, 2, strings.Count(out, "<tr>\n<td>"))
}

func TestRenderJSON(t *testing.T) {
	out := render(t, "json", NewPage("", nil, sampleInfos()))

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "/pet/{petId}", rows[0]["path"])
	assert.Equal(t, `"petId": "integer", "status": "string"`, rows[0]["parameters"])
	assert.Equal(t, userArray, rows[1]["request_body"])
	assert.Equal(t, "http://localhost:4000/ui/user/createUsersWithListInput", rows[1]["swagger_url"])
}

func TestRenderYAML(t *testing.T) {
	out := render(t, "yaml", NewPage("", nil, sampleInfos()))

	var rows []Row
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Equal(t, Rows(sampleInfos()), rows)
	assert.Contains(t, out, "request_body:")
}

func TestRenderUnknownFormat(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	err = r.Render(&bytes.Buffer{}, "csv", Page{})
	require.EqualError(t, err, "unsupported output format: csv")
}

func TestRenderCustomTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "catalog"), 0755))
	custom := "{{ range .Rows }}{{ .Method }} {{ .Path }}\n{{ end }}"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog", "markdown.tmpl"), []byte(custom), 0644))

	r, err := New(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "markdown", NewPage("", nil, sampleInfos())))
	require.Equal(t, "post /pet/{petId}\npost /user/createWithList\n", buf.String())
}

func TestTargetContentTypes(t *testing.T) {
	for format, want := range map[string]string{
		"markdown": "text/markdown; charset=utf-8",
		"html":     "text/html; charset=utf-8",
		"json":     "application/json",
		"yaml":     "application/yaml",
	} {
		target, err := NewTarget(format)
		require.NoError(t, err)
		assert.Equal(t, want, target.ContentType())
		assert.Equal(t, format, target.Name())
	}
}
