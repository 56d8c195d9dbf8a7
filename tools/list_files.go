package tools

import (
	"encoding/json"

	"github.com/petasbytes/go-chat-agent/internal/fsops"
)

type ListFilesInput struct {
	Path string `json:"path,omitempty" jsonschema_description:"Optional relative path to list files from. Defaults to current directory if not provided."`
}

var ListFilesInputSchema = GenerateSchema[ListFilesInput]()

// ListFilesDefinition returns the list_files tool bound to fs.
func ListFilesDefinition(fs *fsops.FS) ToolDefinition {
	return ToolDefinition{
		Name:        "list_files",
		Description: "List files and directories at a given path. If no path is provided, lists files in the current directory.",
		InputSchema: ListFilesInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return ListFiles(fs, input)
		},
	}
}

// ListFiles walks the requested directory recursively.
//
// Contract: returns a JSON-encoded []string of paths relative to the requested
// directory; directories end in "/". Order is whatever the walk produced.
func ListFiles(fs *fsops.FS, input json.RawMessage) (string, error) {
	var in ListFilesInput
	if err := decodeInput(input, &in); err != nil {
		return "", err
	}
	if in.Path == "" {
		in.Path = "."
	}

	names, err := fs.ListFiles(in.Path)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
