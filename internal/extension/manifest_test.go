package extension

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeManifest() map[string]any {
	return map[string]any{
		"manifest_version": 3,
		"name":             "Temu Price Comparison",
		"version":          "1.7.0",
		"description":      "Compare Amazon prices with Temu",
	}
}

func writeManifest(t *testing.T, root string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestFile), content, 0644))
}

func TestReadManifestComplete(t *testing.T) {
	root := t.TempDir()
	data, err := json.Marshal(completeManifest())
	require.NoError(t, err)
	writeManifest(t, root, data)

	m, err := ReadManifest(root)
	require.NoError(t, err)
	assert.Equal(t, "Temu Price Comparison", m.Name())
	assert.Equal(t, "1.7.0", m.Version())
	assert.Equal(t, "3", m.Value("manifest_version"))
}

func TestReadManifestMissingField(t *testing.T) {
	for _, field := range RequiredManifestFields {
		t.Run(field, func(t *testing.T) {
			root := t.TempDir()
			content := completeManifest()
			delete(content, field)
			data, err := json.Marshal(content)
			require.NoError(t, err)
			writeManifest(t, root, data)

			_, err = ReadManifest(root)
			var fieldErr *MissingFieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, field, fieldErr.Field)
			assert.Contains(t, err.Error(), field)
			assert.NotErrorIs(t, err, ErrManifestMalformed)
		})
	}
}

func TestReadManifestNullValueCountsAsPresent(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, []byte(`{"manifest_version":3,"name":"x","version":"1","description":null}`))

	_, err := ReadManifest(root)
	assert.NoError(t, err)
}

func TestReadManifestMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", `{"name": "x",`},
		{"array", `["manifest_version"]`},
		{"null", `null`},
		{"string", `"manifest"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeManifest(t, root, []byte(tt.content))

			_, err := ReadManifest(root)
			assert.ErrorIs(t, err, ErrManifestMalformed)
			assert.NotErrorIs(t, err, ErrManifestNotFound)
		})
	}
}

func TestReadManifestNotFound(t *testing.T) {
	_, err := ReadManifest(t.TempDir())
	assert.ErrorIs(t, err, ErrManifestNotFound)
	assert.NotErrorIs(t, err, ErrManifestMalformed)
}

func TestReadManifestIsNotCached(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, []byte(`{"manifest_version":3,"name":"x","version":"1","description":"d"}`))
	_, err := ReadManifest(root)
	require.NoError(t, err)

	writeManifest(t, root, []byte(`{"manifest_version":3,"name":"x","version":"1"}`))
	_, err = ReadManifest(root)
	var fieldErr *MissingFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "description", fieldErr.Field)
}
