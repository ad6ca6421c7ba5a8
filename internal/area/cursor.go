package area

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/mudarea/internal/area/flags"
)

// Cursor owns an immutable area-file buffer and a read position. Every
// primitive except ReadToEOL starts by skipping whitespace.
//
// Invariant: pos only moves forward.
type Cursor struct {
	data    []byte
	pos     int
	source  string
	section string
}

// NewCursor returns a Cursor positioned at the start of data. source is used
// only for error messages.
func NewCursor(source string, data []byte) *Cursor {
	return &Cursor{data: data, source: source}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Section returns the name of the section currently being read.
func (c *Cursor) Section() string { return c.section }

// SetSection records the section name attached to subsequent errors.
func (c *Cursor) SetSection(name string) { c.section = name }

// Failf builds a ParseError at the current position.
func (c *Cursor) Failf(format string, args ...any) *ParseError {
	line, col := position(c.data, c.pos)
	return &ParseError{
		Source:  c.source,
		Offset:  c.pos,
		Line:    line,
		Column:  col,
		Section: c.section,
		Message: fmt.Sprintf(format, args...),
	}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func (c *Cursor) skipSpace() {
	for c.pos < len(c.data) && isSpace(c.data[c.pos]) {
		c.pos++
	}
}

func (c *Cursor) eof(what string) *ParseError {
	return c.Failf("unexpected end of input while reading %s", what)
}

// AtEOF reports whether only whitespace remains.
func (c *Cursor) AtEOF() bool {
	c.skipSpace()
	return c.pos >= len(c.data)
}

// PeekLetter returns the next non-whitespace byte without consuming it.
func (c *Cursor) PeekLetter() (byte, error) {
	c.skipSpace()
	if c.pos >= len(c.data) {
		return 0, c.eof("a letter")
	}
	return c.data[c.pos], nil
}

// ReadLetter consumes and returns the next non-whitespace byte.
func (c *Cursor) ReadLetter() (byte, error) {
	ch, err := c.PeekLetter()
	if err != nil {
		return 0, err
	}
	c.pos++
	return ch, nil
}

// ExpectLetter consumes the next letter and fails unless it equals want.
func (c *Cursor) ExpectLetter(want byte) error {
	got, err := c.PeekLetter()
	if err != nil {
		return err
	}
	if got != want {
		return c.Failf("expected %q but found %q", want, got)
	}
	c.pos++
	return nil
}

// ReadWord reads a whitespace-delimited word. A word opened by a single or
// double quote extends to the matching quote and may contain whitespace.
func (c *Cursor) ReadWord() (string, error) {
	c.skipSpace()
	if c.pos >= len(c.data) {
		return "", c.eof("a word")
	}
	if q := c.data[c.pos]; q == '\'' || q == '"' {
		c.pos++
		return c.ReadUntil(q)
	}
	start := c.pos
	for c.pos < len(c.data) && !isSpace(c.data[c.pos]) {
		c.pos++
	}
	return string(c.data[start:c.pos]), nil
}

// ReadString reads a tilde-terminated string with leading whitespace
// removed. The tilde is consumed but not returned.
func (c *Cursor) ReadString() (string, error) {
	c.skipSpace()
	if c.pos >= len(c.data) {
		return "", c.eof("a string")
	}
	return c.ReadUntil('~')
}

// ReadUntil returns the bytes up to marker and advances past marker.
func (c *Cursor) ReadUntil(marker byte) (string, error) {
	idx := bytes.IndexByte(c.data[c.pos:], marker)
	if idx < 0 {
		c.pos = len(c.data)
		return "", c.Failf("unterminated text: missing %q", marker)
	}
	s := string(c.data[c.pos : c.pos+idx])
	c.pos += idx + 1
	return s, nil
}

// SkipTo advances to the next occurrence of marker without consuming it.
func (c *Cursor) SkipTo(marker byte) error {
	idx := bytes.IndexByte(c.data[c.pos:], marker)
	if idx < 0 {
		c.pos = len(c.data)
		return c.eof(fmt.Sprintf("%q", marker))
	}
	c.pos += idx
	return nil
}

// ReadToEOL returns the rest of the current line, without the line break,
// and positions the cursor at the start of the next line. Leading blanks and
// a trailing carriage return are removed. Reaching the end of input ends the
// line.
func (c *Cursor) ReadToEOL() string {
	start := c.pos
	for c.pos < len(c.data) && c.data[c.pos] != '\n' {
		c.pos++
	}
	line := string(c.data[start:c.pos])
	if c.pos < len(c.data) {
		c.pos++
	}
	return strings.TrimSpace(line)
}

// HasNumberOnLine reports whether the next token on the current line starts
// a number. It never crosses a line break and never consumes input.
func (c *Cursor) HasNumberOnLine() bool {
	i := c.pos
	for i < len(c.data) && (c.data[i] == ' ' || c.data[i] == '\t') {
		i++
	}
	if i < len(c.data) && (c.data[i] == '+' || c.data[i] == '-') {
		i++
	}
	return i < len(c.data) && isDigit(c.data[i])
}

// readSign consumes an optional '+' or '-' and reports whether it was '-'.
func (c *Cursor) readSign() bool {
	if c.pos >= len(c.data) {
		return false
	}
	switch c.data[c.pos] {
	case '+':
		c.pos++
	case '-':
		c.pos++
		return true
	}
	return false
}

func (c *Cursor) readDigits(what string) (int64, error) {
	if c.pos >= len(c.data) {
		return 0, c.eof(what)
	}
	if !isDigit(c.data[c.pos]) {
		return 0, c.Failf("expected %s but found %q", what, c.data[c.pos])
	}
	var n int64
	for c.pos < len(c.data) && isDigit(c.data[c.pos]) {
		d := int64(c.data[c.pos] - '0')
		if n > (math.MaxInt64-d)/10 {
			return 0, c.Failf("%s out of range", what)
		}
		n = n*10 + d
		c.pos++
	}
	return n, nil
}

// pipe consumes a '|' chain separator if one follows.
func (c *Cursor) pipe() bool {
	if c.pos < len(c.data) && c.data[c.pos] == '|' {
		c.pos++
		return true
	}
	return false
}

// ReadNumber reads a signed decimal integer. Terms joined by '|' are summed
// left to right, each with its own sign: "12|-3" reads as 9.
func (c *Cursor) ReadNumber() (int, error) {
	n, err := c.readNumber()
	return int(n), err
}

func (c *Cursor) readNumber() (int64, error) {
	c.skipSpace()
	neg := c.readSign()
	n, err := c.readDigits("a number")
	if err != nil {
		return 0, err
	}
	if neg {
		n = -n
	}
	if c.pipe() {
		rest, err := c.readNumber()
		if err != nil {
			return 0, err
		}
		sum, ok := addInt64(n, rest)
		if !ok {
			return 0, c.Failf("number chain out of range")
		}
		n = sum
	}
	return n, nil
}

// addInt64 returns a+b, or false when the sum overflows.
func addInt64(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

// ReadFlag reads a bitmask written either as a plain integer or as a run of
// flag letters, optionally chained with '|'. A leading '-' negates the whole
// accumulated result, chain included.
func (c *Cursor) ReadFlag() (int64, error) {
	c.skipSpace()
	if c.pos < len(c.data) && c.data[c.pos] == '+' {
		c.pos++
	}
	neg := false
	if c.pos < len(c.data) && c.data[c.pos] == '-' {
		neg = true
		c.pos++
	}
	if c.pos >= len(c.data) {
		return 0, c.eof("a flag")
	}
	var n int64
	if isDigit(c.data[c.pos]) {
		v, err := c.readDigits("a flag")
		if err != nil {
			return 0, err
		}
		n = v
	} else {
		start := c.pos
		for c.pos < len(c.data) && flags.IsLetter(c.data[c.pos]) {
			w, _ := flags.Letter(c.data[c.pos])
			if n > math.MaxInt64-w {
				return 0, c.Failf("flag out of range")
			}
			n += w
			c.pos++
		}
		if c.pos == start {
			return 0, c.Failf("expected a flag but found %q", c.data[c.pos])
		}
	}
	if c.pipe() {
		rest, err := c.ReadFlag()
		if err != nil {
			return 0, err
		}
		sum, ok := addInt64(n, rest)
		if !ok {
			return 0, c.Failf("flag chain out of range")
		}
		n = sum
	}
	if neg {
		if n == math.MinInt64 {
			return 0, c.Failf("flag out of range")
		}
		n = -n
	}
	return n, nil
}

// ReadDice reads "<number>d<sides><bonus>", e.g. "3d9+33". The separator
// letter is not checked.
func (c *Cursor) ReadDice() (Dice, error) {
	var d Dice
	var err error
	if d.Number, err = c.ReadNumber(); err != nil {
		return Dice{}, err
	}
	if _, err = c.ReadLetter(); err != nil {
		return Dice{}, err
	}
	if d.Sides, err = c.ReadNumber(); err != nil {
		return Dice{}, err
	}
	if d.Bonus, err = c.ReadNumber(); err != nil {
		return Dice{}, err
	}
	return d, nil
}
