// Package tools defines the tool contract and the built-in file tools.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive the JSON Schema sent to the model from a Go input struct.
//   - Registry: immutable name-keyed table of definitions.
//   - File tools: read_file, list_files (recursive), edit_file.
//
// Handlers report failures as errors; the runner turns every error into the
// tool's textual result so the model can adapt.
package tools
