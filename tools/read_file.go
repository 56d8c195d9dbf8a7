package tools

import (
	"encoding/json"
	"errors"

	"github.com/petasbytes/go-chat-agent/internal/fsops"
)

// ErrPathRequired is returned when a tool that needs a path received none.
var ErrPathRequired = errors.New("Path parameter is required")

type ReadFileInput struct {
	Path string `json:"path" jsonschema_description:"The relative path of a file in the working directory."`
}

var ReadFileInputSchema = GenerateSchema[ReadFileInput]()

// ReadFileDefinition returns the read_file tool bound to fs.
func ReadFileDefinition(fs *fsops.FS) ToolDefinition {
	return ToolDefinition{
		Name:        "read_file",
		Description: "Read the contents of a given relative file path. Use this when you want to see what's inside a file. Do not use this with directory names.",
		InputSchema: ReadFileInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return ReadFile(fs, input)
		},
	}
}

// ReadFile returns the full text of the requested file.
func ReadFile(fs *fsops.FS, input json.RawMessage) (string, error) {
	var in ReadFileInput
	if err := decodeInput(input, &in); err != nil {
		return "", err
	}
	if in.Path == "" {
		return "", ErrPathRequired
	}
	return fs.ReadFile(in.Path)
}
