package signature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/signature"
)

func mustCatalogue(t *testing.T) *signature.Catalogue {
	t.Helper()
	cat, err := signature.New()
	require.NoError(t, err)
	return cat
}

func TestIdentifyJPEG(t *testing.T) {
	cat := mustCatalogue(t)
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	dt, ok := cat.Identify(buffer.New(data))
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", dt.MIME)
	assert.Equal(t, "jpg", dt.Extension)
}

func TestIdentifyPNG(t *testing.T) {
	cat := mustCatalogue(t)
	data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	dt, ok := cat.Identify(buffer.New(data))
	require.True(t, ok)
	assert.Equal(t, "image/png", dt.MIME)
}

func TestIdentifyGzip(t *testing.T) {
	cat := mustCatalogue(t)
	data := []byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00}
	dt, ok := cat.Identify(buffer.New(data))
	require.True(t, ok)
	assert.Equal(t, "application/gzip", dt.MIME)
}

func TestIdentifyJavaClass(t *testing.T) {
	cat := mustCatalogue(t)
	data := []byte{0xca, 0xfe, 0xba, 0xbe, 0x00, 0x00, 0x00, 0x3d}
	dt, ok := cat.Identify(buffer.New(data))
	require.True(t, ok)
	assert.Equal(t, "application/java-vm", dt.MIME)
}

func TestIdentify7z(t *testing.T) {
	cat := mustCatalogue(t)
	data := []byte{'7', 'z', 0xbc, 0xaf, 0x27, 0x1c, 0x00, 0x04}
	dt, ok := cat.Identify(buffer.New(data))
	require.True(t, ok)
	assert.Equal(t, "application/x-7z-compressed", dt.MIME)
}

func TestIdentifyXML(t *testing.T) {
	cat := mustCatalogue(t)
	dt, ok := cat.Identify(buffer.New([]byte("<?xml version=\"1.0\"?>")))
	require.True(t, ok)
	assert.Equal(t, "application/xml", dt.MIME)
}

func TestIdentifyNoMatch(t *testing.T) {
	cat := mustCatalogue(t)
	_, ok := cat.Identify(buffer.New([]byte("plain ascii text, nothing special")))
	assert.False(t, ok)
}

func TestIdentifyEmptyBuffer(t *testing.T) {
	cat := mustCatalogue(t)
	_, ok := cat.Identify(buffer.New(nil))
	assert.False(t, ok)
}

func TestDetectEncodingsPlausibleUTF8(t *testing.T) {
	cat := mustCatalogue(t)
	results := cat.DetectEncodings(buffer.New([]byte("hello, this is plain english text")), false)
	var found bool
	for _, r := range results {
		if r.Name == "plausible UTF-8" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetectEncodingsSkipsExtensiveUnlessRequested(t *testing.T) {
	cat := mustCatalogue(t)
	nonExtensive := cat.DetectEncodings(buffer.New([]byte("abc")), false)
	for _, r := range nonExtensive {
		assert.NotEqual(t, "ISO-8859-2", r.Name)
		assert.NotEqual(t, "CP437", r.Name)
	}
}

func TestDetectEncodingsMojibakeWindows1251(t *testing.T) {
	cat := mustCatalogue(t)
	// "Привет мир" (Cyrillic "hello world") encoded as Windows-1251 bytes.
	cyrillic1251 := []byte{
		0xcf, 0xf0, 0xe8, 0xe2, 0xe5, 0xf2, // Привет
		0x20,
		0xec, 0xe8, 0xf0, // мир
	}
	results := cat.DetectEncodings(buffer.New(cyrillic1251), true)
	var hit *signature.EncodingResult
	for i := range results {
		if results[i].Name == "Windows-1251" {
			hit = &results[i]
		}
	}
	require.NotNil(t, hit)
	assert.Contains(t, hit.Decoded, "р") // contains a Cyrillic letter
}

func TestWithFileSignaturesOverlay(t *testing.T) {
	cat := mustCatalogue(t)
	withExtra, err := cat.WithFileSignatures([]signature.FileSignatureRow{
		{Extension: "xyz", MIME: "application/x-xyz", Description: "XYZ marker", OffsetMin: 0, OffsetMax: 3, Pattern: `^XYZ`},
	})
	require.NoError(t, err)
	dt, ok := withExtra.Identify(buffer.New([]byte("XYZ-payload")))
	require.True(t, ok)
	assert.Equal(t, "application/x-xyz", dt.MIME)
}
