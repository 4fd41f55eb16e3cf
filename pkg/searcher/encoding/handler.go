// Package encoding is the text-decoding collaborator for the scanner. It
// converts file content from a detected or configured source encoding to
// UTF-8 so substring matching sees one universal representation.
package encoding

import (
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// TextDecoder converts text content to UTF-8.
type TextDecoder interface {
	// Reader wraps r so that reads yield UTF-8 bytes. UTF-8 input passes
	// through untouched; byte-order marks are honored when present.
	Reader(r io.Reader) io.Reader

	// Decode converts a whole byte slice to UTF-8 and reports the IANA name
	// of the encoding that was applied.
	Decode(content []byte) (utf8Content []byte, encodingName string, err error)
}

// charsetDecoder implements TextDecoder on top of
// golang.org/x/net/html/charset and golang.org/x/text/transform.
type charsetDecoder struct {
	defaultEncoding string
}

// NewCharsetDecoder creates a decoder. defaultEncoding names the charset
// assumed when detection is uncertain; empty means UTF-8.
func NewCharsetDecoder(defaultEncoding string) TextDecoder {
	return &charsetDecoder{defaultEncoding: defaultEncoding}
}

func (d *charsetDecoder) contentType() string {
	if d.defaultEncoding == "" {
		return "text/plain"
	}
	return fmt.Sprintf("text/plain; charset=%s", d.defaultEncoding)
}

// Reader implements TextDecoder. If no converter can be constructed the
// original reader is returned and content is treated as already UTF-8.
func (d *charsetDecoder) Reader(r io.Reader) io.Reader {
	converted, err := charset.NewReader(r, d.contentType())
	if err != nil {
		return r
	}
	return converted
}

// Decode implements TextDecoder.
func (d *charsetDecoder) Decode(content []byte) ([]byte, string, error) {
	enc, name, _ := charset.DetermineEncoding(content, d.contentType())
	if enc == nil {
		return content, "utf-8", nil
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), content)
	if err != nil {
		return nil, name, fmt.Errorf("decoding %s content: %w", name, err)
	}
	return decoded, name, nil
}
