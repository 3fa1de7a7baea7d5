package loader

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// refMarks records which path items and operation parameters were written
// as $ref in the raw document. libopenapi resolves those transparently, so
// the raw nodes are the only place the distinction survives.
type refMarks struct {
	paths  map[string]string
	params map[string][]string // "path method" -> $ref per parameter index
}

func (m *refMarks) pathRef(path string) string {
	if m == nil {
		return ""
	}
	return m.paths[path]
}

func (m *refMarks) paramRef(path, method string, idx int) string {
	if m == nil {
		return ""
	}
	refs := m.params[path+" "+method]
	if idx < len(refs) {
		return refs[idx]
	}
	return ""
}

func scanRefs(data []byte) (*refMarks, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("reading document nodes: %w", err)
	}

	marks := &refMarks{
		paths:  make(map[string]string),
		params: make(map[string][]string),
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}

	paths := mappingValue(doc, "paths")
	if paths == nil || paths.Kind != yaml.MappingNode {
		return marks, nil
	}

	for i := 0; i < len(paths.Content)-1; i += 2 {
		path := paths.Content[i].Value
		item := paths.Content[i+1]

		if ref := refOf(item); ref != "" {
			marks.paths[path] = ref
			continue
		}
		if item.Kind != yaml.MappingNode {
			continue
		}

		for j := 0; j < len(item.Content)-1; j += 2 {
			method := item.Content[j].Value
			params := mappingValue(item.Content[j+1], "parameters")
			if params == nil || params.Kind != yaml.SequenceNode {
				continue
			}
			refs := make([]string, len(params.Content))
			var hasRef bool
			for k, p := range params.Content {
				refs[k] = refOf(p)
				hasRef = hasRef || refs[k] != ""
			}
			if hasRef {
				marks.params[path+" "+method] = refs
			}
		}
	}

	return marks, nil
}

func refOf(node *yaml.Node) string {
	ref := mappingValue(node, "$ref")
	if ref == nil || ref.Kind != yaml.ScalarNode {
		return ""
	}
	return ref.Value
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
