package fetch

import (
	"bufio"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decode reads the whole body, converting it to UTF-8 based on the
// detected source encoding.
func decode(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	e := detectEncoding(br)
	return io.ReadAll(transform.NewReader(br, e.NewDecoder()))
}

// detectEncoding sniffs the encoding from the first bytes of the body.
func detectEncoding(r *bufio.Reader) encoding.Encoding {
	peek, _ := r.Peek(1024)
	if len(peek) == 0 {
		return unicode.UTF8
	}
	e, _, _ := charset.DetermineEncoding(peek, "")
	return e
}
