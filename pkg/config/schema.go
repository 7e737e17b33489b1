package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fulmenhq/tonegen/internal/assets"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// SchemaPath locates the config schema inside the embedded schemas tree.
const SchemaPath = "config/tonegen-config-v1.0.0.json"

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, ok := assets.GetSchema(SchemaPath)
		if !ok {
			schemaErr = fmt.Errorf("embedded schema %s not found", SchemaPath)
			return
		}
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	})
	return schema, schemaErr
}

// ValidateFile checks raw YAML (or JSON) config content against the embedded
// schema. Unknown keys and wrongly typed values are reported as a
// ValidationError listing every problem.
func ValidateFile(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &ValidationError{Problems: []string{fmt.Sprintf("invalid YAML: %v", err)}}
	}
	if doc == nil {
		// empty file
		return nil
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return &ValidationError{Problems: []string{fmt.Sprintf("config is not representable as JSON: %v", err)}}
	}

	s, err := compiledSchema()
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(jsonBytes))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" || field == "(root)" {
			field = "root"
		}
		problems = append(problems, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return &ValidationError{Problems: problems}
}
