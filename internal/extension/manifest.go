package extension

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrManifestNotFound is returned when manifest.json does not exist.
	ErrManifestNotFound = errors.New("manifest.json not found")
	// ErrManifestMalformed is returned when manifest.json is not a JSON object.
	ErrManifestMalformed = errors.New("manifest.json is not valid JSON")
)

// MissingFieldError names the first required manifest field that is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("manifest.json is missing required field %q", e.Field)
}

// Manifest holds the raw top-level members of manifest.json.
type Manifest struct {
	fields map[string]json.RawMessage
}

// Has reports whether the manifest declares key, whatever its value.
func (m Manifest) Has(key string) bool {
	_, ok := m.fields[key]
	return ok
}

// Value returns a display form of a top-level member. Strings are unquoted,
// everything else is the compact JSON text.
func (m Manifest) Value(key string) string {
	raw, ok := m.fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// Name returns the declared extension name.
func (m Manifest) Name() string { return m.Value("name") }

// Version returns the declared extension version.
func (m Manifest) Version() string { return m.Value("version") }

// ParseManifest decodes manifest content and checks the required fields.
func ParseManifest(data []byte) (Manifest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrManifestMalformed, err)
	}
	// "null" decodes into a nil map without error
	if fields == nil {
		return Manifest{}, fmt.Errorf("%w: top-level value is not an object", ErrManifestMalformed)
	}

	m := Manifest{fields: fields}
	for _, field := range RequiredManifestFields {
		if !m.Has(field) {
			return m, &MissingFieldError{Field: field}
		}
	}
	return m, nil
}

// ReadManifest reads and validates manifest.json under root. The file is read on
// every call.
func ReadManifest(root string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{}, ErrManifestNotFound
		}
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}
