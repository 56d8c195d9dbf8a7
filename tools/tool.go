package tools

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// ToolFunc executes a tool against its raw JSON arguments.
type ToolFunc func(input json.RawMessage) (string, error)

// ToolDefinition describes a tool to the model and binds its handler.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
	Function    ToolFunc
}

// Descriptor is the provider-neutral, JSON-serialisable view of a tool
// (OpenAI-compatible "function" shape).
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Descriptor returns the JSON Schema object form of d.
func (d ToolDefinition) Descriptor() Descriptor {
	params := map[string]any{
		"type":       "object",
		"properties": d.InputSchema.Properties,
	}
	if len(d.InputSchema.Required) > 0 {
		params["required"] = d.InputSchema.Required
	}
	return Descriptor{Name: d.Name, Description: d.Description, Parameters: params}
}

// GenerateSchema reflects T into an object input schema. Fields without
// omitempty are reported as required.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
		Required:   schema.Required,
	}
}

// decodeInput unmarshals raw arguments, treating an empty payload as {}.
func decodeInput(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	return json.Unmarshal(input, v)
}
