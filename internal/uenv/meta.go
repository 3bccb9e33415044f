package uenv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/jsonc"
)

// Meta is the image metadata a uenv exposes at <mount>/meta/env.json.
// Only the fields relevant to uenv-venv are included; other fields are
// silently ignored during parsing.
//
// The metadata is informational: the status command displays it and the
// create command logs it under --verbose. A missing or unreadable file is
// never fatal, so every caller treats LoadMeta errors as soft.
type Meta struct {
	// Name is the image name as recorded at build time
	// (e.g. "prgenv-gnu/24.7:v1").
	Name string `json:"name"`

	// Description is the human-readable image description.
	Description string `json:"description,omitempty"`

	// Views maps view names to their metadata.
	Views map[string]ViewMeta `json:"views,omitempty"`
}

// ViewMeta describes a single view offered by the image.
type ViewMeta struct {
	// Description is the human-readable view description.
	Description string `json:"description,omitempty"`
}

// ViewNames returns the image's view names in sorted order for stable
// display.
func (m *Meta) ViewNames() []string {
	names := make([]string, 0, len(m.Views))
	for name := range m.Views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MetaPath returns the conventional metadata location for a mount.
func MetaPath(mount string) string {
	return filepath.Join(mount, "meta", "env.json")
}

// LoadMeta reads a mounted image's env.json, strips JSONC comments, and
// parses it into a Meta struct.
//
// uenv build pipelines emit plain JSON, but hand-edited or templated
// metadata occasionally carries comments and trailing commas, so the
// bytes are normalized through github.com/tidwall/jsonc before the
// standard encoding/json parse.
func LoadMeta(mount string) (*Meta, error) {
	path := MetaPath(mount)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("uenv metadata not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read uenv metadata: %w", err)
	}

	cleanJSON := jsonc.ToJSON(data)

	// encoding/json silently ignores fields not defined in the struct,
	// which is the desired behavior since uenv images record much more
	// than uenv-venv needs.
	var meta Meta
	if err := json.Unmarshal(cleanJSON, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse uenv metadata at %s: %w", path, err)
	}

	return &meta, nil
}
