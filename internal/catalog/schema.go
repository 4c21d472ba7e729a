package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildTablesJSONSchema returns the JSON-Schema (draft 2020-12 subset) the
// embedded catalog tables must satisfy, as a generic map.
func buildTablesJSONSchema() map[string]any {
	product := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"prefix": map[string]any{"type": "string", "minLength": 1},
			"label":  map[string]any{"type": "string", "minLength": 1},
			"unit":   map[string]any{"type": "string", "minLength": 1},
			"pieces": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
		},
		"required": []string{"prefix", "label", "unit", "pieces"},
	}
	stringMap := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string", "minLength": 1},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"products": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    product,
			},
			"fallback_pieces": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
			"thread_colors": stringMap,
			"color_fixups":  stringMap,
		},
		"required": []string{"products", "thread_colors"},
	}
}

// validateTables validates raw table JSON against the catalog schema.
func validateTables(data []byte) error {
	b, err := json.Marshal(buildTablesJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog-schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("catalog-schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal tables: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("tables do not match schema: %w", err)
	}
	return nil
}
