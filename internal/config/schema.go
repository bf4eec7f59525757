package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/yukin371/lspenc/internal/lsp"
)

const schemaURL = "config.schema.json"

// SchemaLoader handles JSON schema validation
type SchemaLoader struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewSchemaLoader creates a new schema loader
func NewSchemaLoader() *SchemaLoader {
	return &SchemaLoader{}
}

func (sl *SchemaLoader) compiled() (*jsonschema.Schema, error) {
	sl.once.Do(func() {
		sl.schema, sl.err = jsonschema.CompileString(schemaURL, GenerateSchema())
	})
	return sl.schema, sl.err
}

// Validate validates a configuration against the JSON schema
func (sl *SchemaLoader) Validate(cfg *Config) error {
	schema, err := sl.compiled()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config for validation: %w", err)
	}

	var cfgData interface{}
	if err := json.Unmarshal(cfgJSON, &cfgData); err != nil {
		return fmt.Errorf("failed to unmarshal config for validation: %w", err)
	}

	if err := schema.Validate(cfgData); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// GenerateSchema returns the JSON schema for configuration validation. The
// encoding enum is built from the known position encoding kinds.
func GenerateSchema() string {
	var tags []string
	for _, k := range lsp.PositionEncodingKinds() {
		tags = append(tags, k.Tag())
	}

	schema := map[string]interface{}{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title":   "posenc configuration",
		"type":    "object",
		"properties": map[string]interface{}{
			"encoding": map[string]interface{}{
				"type":        "object",
				"description": "Position encoding negotiation",
				"properties": map[string]interface{}{
					"supported": map[string]interface{}{
						"type":        "array",
						"description": "Encodings the server accepts",
						"minItems":    1,
						"uniqueItems": true,
						"items": map[string]interface{}{
							"type": "string",
							"enum": tags,
						},
					},
					"strict": map[string]interface{}{
						"type":        "boolean",
						"description": "Fail negotiation on unknown offered encodings",
					},
				},
				"required": []string{"supported"},
			},
			"log": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"level": map[string]interface{}{
						"type": "string",
						"enum": []string{"debug", "info", "warn", "error"},
					},
				},
			},
		},
		"required": []string{"encoding"},
	}

	schemaJSON, _ := json.MarshalIndent(schema, "", "  ")
	return string(schemaJSON)
}
