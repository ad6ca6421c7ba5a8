// Package export writes parsed areas as JSON documents.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cory-johannsen/mudarea/internal/area"
)

// Marshal renders a as indented JSON. Vnum-keyed collections keep the
// order in which the area file listed them.
//
// Precondition: a must not be nil.
func Marshal(a *area.Area) ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling area %q: %w", a.Source, err)
	}
	return append(data, '\n'), nil
}

// FileName returns the JSON file name for an area file: the base name with
// its extension replaced by ".json".
func FileName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

// WriteDocument writes an already marshaled document into dir under
// FileName(source).
//
// Precondition: dir must exist.
func WriteDocument(dir, source string, doc []byte) (string, error) {
	path := filepath.Join(dir, FileName(source))
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
