package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/petasbytes/go-chat-agent/internal/fsops"
)

var (
	ErrSameStrings   = errors.New("old_str and new_str must be different")
	ErrAmbiguousEdit = errors.New("File already exists, and old_str is empty")
	ErrOldNotFound   = errors.New("old_str not found in file")
)

type EditFileInput struct {
	Path   string `json:"path" jsonschema_description:"The path to the file"`
	OldStr string `json:"old_str" jsonschema_description:"Literal text to search for. Every occurrence is replaced with new_str. Leave empty to create a new file"`
	NewStr string `json:"new_str" jsonschema_description:"Text to replace old_str with"`
}

var EditFileInputSchema = GenerateSchema[EditFileInput]()

// EditFileDefinition returns the edit_file tool bound to fs.
func EditFileDefinition(fs *fsops.FS) ToolDefinition {
	return ToolDefinition{
		Name: "edit_file",
		Description: `Make edits to a text file.

Replaces 'old_str' with 'new_str' in the given file. 'old_str' and 'new_str' MUST be different from each other.

If the file specified with path doesn't exist, it will be created.
`,
		InputSchema: EditFileInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return EditFile(fs, input)
		},
	}
}

// EditFile creates a file (empty old_str, missing file) or replaces every
// literal occurrence of old_str in an existing one.
func EditFile(fs *fsops.FS, input json.RawMessage) (string, error) {
	var in EditFileInput
	if err := decodeInput(input, &in); err != nil {
		return "", err
	}

	if in.Path == "" {
		return "", ErrPathRequired
	}
	if in.OldStr == in.NewStr {
		return "", ErrSameStrings
	}

	exists, err := fs.Exists(in.Path)
	if err != nil {
		return "", err
	}

	if !exists {
		if in.OldStr != "" {
			return "", fmt.Errorf("File %s does not exist", in.Path)
		}
		if err := fs.WriteFile(in.Path, in.NewStr); err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully created file %s", in.Path), nil
	}

	oldContent, err := fs.ReadFile(in.Path)
	if err != nil {
		return "", err
	}
	// An empty old_str on an existing file could mean "overwrite" or "prepend".
	if in.OldStr == "" {
		return "", ErrAmbiguousEdit
	}

	newContent := strings.ReplaceAll(oldContent, in.OldStr, in.NewStr)
	if newContent == oldContent {
		return "", ErrOldNotFound
	}

	if err := fs.WriteFile(in.Path, newContent); err != nil {
		return "", err
	}
	return "OK", nil
}
