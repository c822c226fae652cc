// Package encoding normalizes uploaded spreadsheet exports to UTF-8.
// Client rosters arrive from a mix of CRM exports and Excel "save as CSV"
// files, which show up as UTF-8 with BOM, UTF-16, or Windows-1252.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r with whatever decoding is needed to produce UTF-8.
// A UTF-8 BOM is stripped, UTF-16 BOMs select the matching decoder, valid
// UTF-8 passes through, and anything else goes through chardet with a
// Windows-1252 fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	return transform.NewReader(br, detectLegacy(buf).NewDecoder()), nil
}

// detectLegacy guesses a single-byte charset for content that is not UTF-8.
func detectLegacy(buf []byte) *charmap.Charmap {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-2":
		return charmap.ISO8859_2
	case "ISO-8859-9":
		return charmap.ISO8859_9
	}

	return charmap.Windows1252
}
