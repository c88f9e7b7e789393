package ingest

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/dbsmedya/commentetl/internal/textenc"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodingReader wraps r so it yields UTF-8. UTF-8 input is validated strictly and has its
// byte order mark removed; other encodings are transcoded.
func decodingReader(name string, r io.Reader) (io.Reader, error) {
	if !textenc.IsUTF8(name) {
		enc, err := textenc.Lookup(name)
		if err != nil {
			return nil, err
		}
		return enc.NewDecoder().Reader(r), nil
	}

	br := bufio.NewReader(transform.NewReader(r, encoding.UTF8Validator))
	head, err := br.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br, nil
}
