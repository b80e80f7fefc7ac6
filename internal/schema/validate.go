// Package schema validates configuration documents against the embedded
// rustcfg.yaml schema.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/rustcfg/schema"
)

// configSchema compiles the embedded schema on first use.
var configSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemafs.Config))
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", schemafs.ConfigFile, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemafs.ConfigFile, doc); err != nil {
		return nil, fmt.Errorf("add %s: %w", schemafs.ConfigFile, err)
	}
	s, err := compiler.Compile(schemafs.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", schemafs.ConfigFile, err)
	}
	return s, nil
})

// ValidateConfig validates a JSON configuration document.
func ValidateConfig(data []byte) error {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return validate(v)
}

// ValidateDocument validates an already decoded document, such as YAML
// unmarshalled into an any. It goes through JSON first so YAML scalars
// take the types the schema expects.
func ValidateDocument(doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config is not representable as JSON: %w", err)
	}
	return ValidateConfig(data)
}

func validate(v any) error {
	s, err := configSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
