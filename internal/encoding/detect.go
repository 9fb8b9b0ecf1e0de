package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Auto asks NewReader to detect the charset.
const Auto = ""

// NewReader returns a reader that decodes r to UTF-8. With Auto it behaves
// like NewUTF8Reader; otherwise charset is a WHATWG label such as
// "windows-1254" or "iso-8859-9".
func NewReader(r io.Reader, charset string) (io.Reader, error) {
	charset = strings.TrimSpace(charset)
	if charset == Auto || strings.EqualFold(charset, "auto") {
		return NewUTF8Reader(r)
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}

	if enc == unicode.UTF8 {
		return NewUTF8Reader(r)
	}

	return transform.NewReader(r, enc.NewDecoder()), nil
}

// NewUTF8Reader detects the encoding of the input and returns a reader
// that decodes the content to UTF-8.
//
// Detection order:
//  1. Check for BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Validate if the content is valid UTF-8 and return as-is
//  3. Heuristic detection via chardet
//  4. Fallback to Windows-1254, the Turkish superset of ISO-8859-9
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
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	result, detectErr := chardet.NewTextDetector().DetectBest(buf)
	if detectErr == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "ISO-8859-1", "windows-1252":
			return decode(br, charmap.Windows1252), nil
		case "ISO-8859-9", "windows-1254":
			return decode(br, charmap.Windows1254), nil
		}
	}

	return decode(br, charmap.Windows1254), nil
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}
