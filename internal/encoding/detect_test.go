package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetrackhq/closetrack/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "first_name,last_name,email\nJosé,Muñoz,jose@example.com\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	// Excel CSV exports prepend a UTF-8 BOM, which would otherwise end up
	// glued to the first header name.
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("first_name,last_name\nAna,Costa\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "first_name,last_name\nAna,Costa\n", string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Muñoz" in Windows-1252: ñ = 0xF1.
	input := []byte{'M', 'u', 0xF1, 'o', 'z', ',', 'b', 'u', 'y', 'e', 'r', '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Muñoz,buyer\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "Ana\n" as UTF-16 LE with BOM, the shape of an Excel "Unicode Text" export.
	input := []byte{0xFF, 0xFE, 'A', 0x00, 'n', 0x00, 'a', 0x00, '\n', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Ana\n", string(got))
}
