package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/quizladder/internal/quiz"
)

// bundleSchemaURL is the resource name the bundle schema is compiled under.
const bundleSchemaURL = "schema://topic-bundle.json"

// BundleSchema is the JSON Schema every topic bundle must satisfy.
var BundleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topic": map[string]any{"type": "string", "minLength": 1},
		"sets": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"setId": map[string]any{"type": "string", "minLength": 1},
					"title": map[string]any{"type": "string"},
					"questions": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":   map[string]any{"type": []any{"string", "integer"}},
								"text": map[string]any{"type": "string"},
								"options": map[string]any{
									"type":     "array",
									"items":    map[string]any{"type": "string"},
									"minItems": 2,
								},
								"correct": map[string]any{"type": "integer", "minimum": 0},
							},
							"required": []any{"id", "text", "options", "correct"},
						},
					},
				},
				"required": []any{"setId", "title", "questions"},
			},
		},
	},
	"required": []any{"topic", "sets"},
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// bundleSchema compiles BundleSchema once and caches the result.
func bundleSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler wants a parsed JSON value, not Go maps with typed slices.
		defBytes, err := json.Marshal(BundleSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(bundleSchemaURL, defParsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(bundleSchemaURL)
	})
	return compiledSchema, schemaErr
}

// Decode validates raw bundle JSON against BundleSchema and decodes it.
// Schema violations are reported as quiz.ErrInvalidBundle.
func Decode(raw []byte) (*quiz.TopicBundle, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", quiz.ErrInvalidBundle, err)
	}

	sch, err := bundleSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bundle schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: schema validation failed: %v", quiz.ErrInvalidBundle, err)
	}

	var b quiz.TopicBundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", quiz.ErrInvalidBundle, err)
	}
	return &b, nil
}
