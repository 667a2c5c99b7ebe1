package markup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is matched by every *SyntaxError via errors.Is.
var ErrSyntax = errors.New("markup syntax error")

// SyntaxError reports why a document did not parse.
//
// For streamed documents most syntax errors only mean "not complete yet": a tag,
// expression or comment was cut off by the end of input. Such errors have
// Incomplete set. Both kinds are handled the same way by the render coordinator.
type SyntaxError struct {
	// Offset is the byte offset the error was detected at.
	Offset int

	// Line and Column are 1-indexed; Column counts bytes.
	Line   int
	Column int

	Msg string

	// Incomplete is set when the error is caused by reaching the end of input.
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("markup: %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Is makes errors.Is(err, ErrSyntax) match any SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func newSyntaxError(src string, offset int, incomplete bool, format string, args ...any) *SyntaxError {
	if offset > len(src) {
		offset = len(src)
	}
	line := strings.Count(src[:offset], "\n") + 1
	col := offset - strings.LastIndexByte(src[:offset], '\n')
	return &SyntaxError{
		Offset:     offset,
		Line:       line,
		Column:     col,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: incomplete,
	}
}
