package area

import (
	"bytes"
	"fmt"
)

// ParseError is the single failure kind produced while reading an area file.
// It carries enough position context for a user to locate the fault.
type ParseError struct {
	// Source names the buffer being parsed, usually the file name.
	Source string
	// Offset is the byte offset at which the failure was detected.
	Offset int
	// Line and Column are 1-based and derived from Offset.
	Line   int
	Column int
	// Section is the lowercased name of the section being processed, or
	// empty before the first section header.
	Section string
	Message string
}

// Error implements error.
func (e *ParseError) Error() string {
	src := e.Source
	if src == "" {
		src = "<input>"
	}
	if e.Section == "" {
		return fmt.Sprintf("%s:%d:%d: %s", src, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: in #%s: %s", src, e.Line, e.Column, e.Section, e.Message)
}

// position derives the 1-based line and column of offset within data.
func position(data []byte, offset int) (line, column int) {
	if offset > len(data) {
		offset = len(data)
	}
	before := data[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	column = offset - bytes.LastIndexByte(before, '\n')
	return line, column
}
