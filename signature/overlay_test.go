package signature_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirou/magiclens/signature"
)



func TestLoadOverlayMissingFileIsNotError(t *testing.T) {
	o, err := signature.LoadOverlay(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Empty(t, o.FileSignatures)
}

func TestLoadOverlayParsesFileSignatures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	doc := `
file_signatures:
  - extension: .foo
    mime: application/x-foo
    description: Custom Foo container
    offset_min: 0
    offset_max: 4
    pattern: "^FOO\\x00"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	o, err := signature.LoadOverlay(path)
	require.NoError(t, err)
	require.Len(t, o.FileSignatures, 1)
	assert.Equal(t, ".foo", o.FileSignatures[0].Extension)
	assert.Equal(t, "application/x-foo", o.FileSignatures[0].MIME)
}

func TestLoadOverlayInvalidYAMLIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))

	_, err := signature.LoadOverlay(path)
	assert.Error(t, err)
}
