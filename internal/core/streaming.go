package core

// streaming.go prepares raw source bytes for ingestion.
//
// Tables exported from spreadsheets arrive with a UTF-8 BOM, stray invalid
// bytes, or in a legacy Windows code page. The readers here fix that while
// streaming:
//
//   - UTF-8 input: BOM stripped, invalid sequences replaced with U+FFFD
//   - Other encodings: decoded to UTF-8 by WHATWG label (windows-1252, ...)
//   - All input: raw bytes counted for ingestion metrics
//
// Use WrapForStreaming to apply all transforms in the correct order.

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is assumed when a source does not declare one.
const DefaultEncoding = "utf-8"

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	r io.Reader
	n atomic.Int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{r: r}
}

// Read implements io.Reader.
func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// BytesRead returns the number of raw bytes consumed so far.
func (c *CountingReader) BytesRead() int64 {
	return c.n.Load()
}

// DecodingReader yields UTF-8 text from a source and reports the number of
// raw bytes it consumed.
type DecodingReader struct {
	io.Reader
	counter *CountingReader
}

// BytesRead returns the number of raw (pre-decoding) bytes consumed.
func (d *DecodingReader) BytesRead() int64 {
	return d.counter.BytesRead()
}

// WrapForStreaming wraps a reader with byte counting and decoding to UTF-8.
//
// The order matters:
//  1. Raw bytes are counted before any transformation
//  2. The BOM is stripped before decoding
//  3. Invalid sequences are replaced during decoding
//
// The encoding is a WHATWG label such as "utf-8" or "windows-1252"; empty
// means DefaultEncoding.
func WrapForStreaming(r io.Reader, encoding string) (*DecodingReader, error) {
	counter := NewCountingReader(r)

	label := strings.ToLower(strings.TrimSpace(encoding))
	if label == "" {
		label = DefaultEncoding
	}

	var t transform.Transformer
	switch label {
	case "utf-8", "utf8":
		t = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	default:
		enc, err := htmlindex.Get(label)
		if err != nil {
			return nil, fmt.Errorf("encoding error: unsupported encoding %q", encoding)
		}
		t = unicode.BOMOverride(enc.NewDecoder())
	}

	return &DecodingReader{
		Reader:  transform.NewReader(counter, t),
		counter: counter,
	}, nil
}
