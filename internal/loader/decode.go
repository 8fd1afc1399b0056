package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

// candidates splits a token source document into raw JSON token candidates.
// The document is either a bare array or an object with a "themes" array.
// Any other shape yields no candidates.
func candidates(source string, doc document) ([]json.RawMessage, error) {
	data := doc.data
	if doc.format == formatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, themeerrors.NewParseError(source, yamlLine(err), err)
		}
		data = converted
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, themeerrors.NewParseError(source, 0, errors.New("empty document"))
	}

	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, themeerrors.NewParseError(source, 0, err)
		}
		return list, nil
	case '{':
		var wrapper struct {
			Themes json.RawMessage `json:"themes"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, themeerrors.NewParseError(source, 0, err)
		}
		var list []json.RawMessage
		if err := json.Unmarshal(wrapper.Themes, &list); err != nil {
			return nil, nil
		}
		return list, nil
	default:
		var v interface{}
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, themeerrors.NewParseError(source, 0, err)
		}
		return nil, nil
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	out, err := json.Marshal(normalizeYAML(v))
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	return out, nil
}

// normalizeYAML turns map[interface{}]interface{} nodes, which yaml.v3
// produces for non-string keys, into JSON-encodable maps.
func normalizeYAML(v interface{}) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		for k, child := range node {
			node[k] = normalizeYAML(child)
		}
		return node
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return out
	case []interface{}:
		for i, child := range node {
			node[i] = normalizeYAML(child)
		}
		return node
	default:
		return v
	}
}

// yamlLine extracts the line number from a yaml.v3 syntax error.
func yamlLine(err error) int {
	var line int
	if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil {
		return line
	}
	return 0
}
