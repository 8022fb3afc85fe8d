package app

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/invopop/jsonschema"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var reflector = &jsonschema.Reflector{
	DoNotReference: true,
	ExpandedStruct: true,
}

// JSONSchema reflects the tool's schema struct into the JSON Schema sent to the model
func (d ToolDefinition) JSONSchema() *jsonschema.Schema {
	schema := reflector.Reflect(d.Schema)
	// The model API rejects meta-schema keywords in function parameters.
	schema.Version = ""
	schema.ID = ""
	schema.Title = ""
	schema.Description = ""
	return schema
}

// JSONSchemaMap returns the tool's JSON Schema as a generic map
func (d ToolDefinition) JSONSchemaMap() (map[string]interface{}, error) {
	schemaBytes, err := json.Marshal(d.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s schema: %w", d.Name, err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(schemaBytes, &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s schema: %w", d.Name, err)
	}
	return schema, nil
}

// DecodeTask decodes and validates TaskCategorizer arguments
func DecodeTask(args map[string]interface{}) (*TaskCategorization, error) {
	var task TaskCategorization
	if err := decodeArgs(args, &task); err != nil {
		return nil, fmt.Errorf("%s: %w", TaskCategorizerTool, err)
	}
	return &task, nil
}

// DecodeNote decodes and validates NoteSynthesizer arguments
func DecodeNote(args map[string]interface{}) (*NoteSynthesis, error) {
	var note NoteSynthesis
	if err := decodeArgs(args, &note); err != nil {
		return nil, fmt.Errorf("%s: %w", NoteSynthesizerTool, err)
	}
	return &note, nil
}

func decodeArgs(args map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	return nil
}
