package tools

import "github.com/petasbytes/go-chat-agent/internal/fsops"

// Registry is a fixed, ordered set of tool definitions keyed by name.
// It is built once and never modified.
type Registry struct {
	defs   []ToolDefinition
	byName map[string]int
}

// NewRegistry builds a registry from defs. A later definition with a
// duplicate name replaces the earlier one in lookups and keeps its position.
func NewRegistry(defs ...ToolDefinition) *Registry {
	r := &Registry{byName: make(map[string]int, len(defs))}
	for _, d := range defs {
		if i, ok := r.byName[d.Name]; ok {
			r.defs[i] = d
			continue
		}
		r.byName[d.Name] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r
}

// Default returns the file tools bound to fs: read_file, list_files, edit_file.
func Default(fs *fsops.FS) *Registry {
	return NewRegistry(ReadFileDefinition(fs), ListFilesDefinition(fs), EditFileDefinition(fs))
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (ToolDefinition, bool) {
	i, ok := r.byName[name]
	if !ok {
		return ToolDefinition{}, false
	}
	return r.defs[i], true
}

// Definitions returns a copy of the definitions in registration order.
func (r *Registry) Definitions() []ToolDefinition {
	out := make([]ToolDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Descriptors returns the JSON descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d.Descriptor())
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.defs) }
