// Package charset decodes legacy area files into UTF-8.
//
// Area files predate Unicode and were written in whatever code page the
// author's editor used. The parser works on bytes, so decoding only matters
// for text that leaves the parser as JSON or database rows.
package charset

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var encodings = map[string]encoding.Encoding{
	"utf-8":        encoding.Nop,
	"utf8":         encoding.Nop,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"cp437":        charmap.CodePage437,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// Names returns the accepted encoding names, sorted.
func Names() []string {
	out := make([]string, 0, len(encodings))
	for name := range encodings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the encoding registered under name. Matching is
// case-insensitive.
//
// Postcondition: Returns a non-nil Encoding, or an error for unknown names.
func Lookup(name string) (encoding.Encoding, error) {
	enc, ok := encodings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return enc, nil
}

// Decode converts data from the named encoding to UTF-8.
//
// Precondition: name must be accepted by Lookup.
// Postcondition: Returns the UTF-8 bytes, or an error.
func Decode(name string, data []byte) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == encoding.Nop {
		return data, nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return out, nil
}
