package markup

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// startsESM reports whether src at pos begins an import or export declaration.
// Only called at the start of a root-level line.
func startsESM(src string, pos int) bool {
	rest := src[pos:]
	for _, kw := range [...]string{"import", "export"} {
		if !strings.HasPrefix(rest, kw) || len(rest) == len(kw) {
			continue
		}
		switch rest[len(kw)] {
		case ' ', '\t', '{', '*', '"', '\'':
			return true
		}
	}
	return false
}

// validateESM checks that src is a complete sequence of module statements.
func validateESM(src string) error {
	_, err := js.Parse(parse.NewInputString(src), js.Options{})
	return err
}

// parseESM reads an import/export declaration starting at p.pos. A declaration may
// span several lines; it ends at the first line break after which the text so far
// is valid module code. A blank line ends it unconditionally, as in MDX.
func (p *parser) parseESM() (*Import, error) {
	start := p.pos
	lineEnd := p.pos
	for {
		nl := strings.IndexByte(p.src[lineEnd:], '\n')
		if nl < 0 {
			stmt := p.src[start:]
			if err := validateESM(stmt); err != nil {
				return nil, newSyntaxError(p.src, start, true, "unterminated module declaration: %v", err)
			}
			p.pos = len(p.src)
			return &Import{Src: stmt}, nil
		}

		end := lineEnd + nl
		stmt := p.src[start:end]
		if err := validateESM(stmt); err == nil {
			p.pos = end + 1
			return &Import{Src: stmt}, nil
		} else if end+1 >= len(p.src) {
			return nil, newSyntaxError(p.src, start, true, "unterminated module declaration: %v", err)
		} else if p.src[end+1] == '\n' {
			return nil, newSyntaxError(p.src, start, false, "invalid module declaration: %v", err)
		}
		lineEnd = end + 1
	}
}
