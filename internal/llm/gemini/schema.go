package gemini

import (
	"fmt"

	"google.golang.org/genai"
)

// toResponseSchema converts the canonical JSON-Schema map into the genai
// schema type the backend accepts, so there is a single source of truth for
// the output contract. Only the subset of keywords the statement schema uses
// is supported.
func toResponseSchema(m map[string]any) (*genai.Schema, error) {
	s := &genai.Schema{}

	t, _ := m["type"].(string)
	switch t {
	case "object":
		s.Type = genai.TypeObject
	case "array":
		s.Type = genai.TypeArray
	case "string":
		s.Type = genai.TypeString
	case "number":
		s.Type = genai.TypeNumber
	case "integer":
		s.Type = genai.TypeInteger
	case "boolean":
		s.Type = genai.TypeBoolean
	default:
		return nil, fmt.Errorf("unsupported schema type %q", t)
	}

	if f, ok := m["format"].(string); ok {
		s.Format = f
	}
	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			pm, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %q is not an object", name)
			}
			ps, err := toResponseSchema(pm)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			s.Properties[name] = ps
		}
	}
	if items, ok := m["items"].(map[string]any); ok {
		is, err := toResponseSchema(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		s.Items = is
	}
	switch req := m["required"].(type) {
	case []string:
		s.Required = req
	case []any:
		for _, r := range req {
			name, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("required entry %v is not a string", r)
			}
			s.Required = append(s.Required, name)
		}
	}
	return s, nil
}
