package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TryParse parses doc into a document tree.
//
// It either returns the complete tree or a *SyntaxError and no tree. For a document
// that is still being generated, an error only means the prefix is not parsable yet;
// SyntaxError.Incomplete tells whether more input could fix it.
//
// TryParse keeps no state between calls: the same input always yields an equal tree.
func TryParse(doc string) (*Root, error) {
	p := &parser{src: doc}
	children, err := p.parseContent("", 0)
	if err != nil {
		return nil, err
	}
	return &Root{Children: children}, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	return newSyntaxError(p.src, offset, false, format, args...)
}

func (p *parser) incompletef(offset int, format string, args ...any) error {
	return newSyntaxError(p.src, offset, true, format, args...)
}

// parseContent parses nodes until the closing tag of the element named closing, or
// until end of input when closing is empty (document root). openedAt is the offset
// of the start tag, for error messages.
func (p *parser) parseContent(closing string, openedAt int) ([]Node, error) {
	root := closing == ""

	var (
		children []Node
		text     strings.Builder
	)
	flush := func() {
		if text.Len() == 0 {
			return
		}
		children = append(children, &Text{Value: html.UnescapeString(text.String())})
		text.Reset()
	}

	for {
		if p.eof() {
			if !root {
				return nil, p.incompletef(openedAt, "element <%s> is not closed", closing)
			}
			flush()
			return children, nil
		}

		if root && p.atLineStart() && startsESM(p.src, p.pos) {
			flush()
			imp, err := p.parseESM()
			if err != nil {
				return nil, err
			}
			children = append(children, imp)
			continue
		}

		if p.peek() != '<' {
			text.WriteByte(p.peek())
			p.pos++
			continue
		}

		rest := p.src[p.pos:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			flush()
			if err := p.skipComment(); err != nil {
				return nil, err
			}

		case strings.HasPrefix(rest, "</"):
			flush()
			start := p.pos
			name, err := p.parseCloseTag()
			if err != nil {
				return nil, err
			}
			if root {
				return nil, p.errorf(start, "unexpected closing tag </%s>", name)
			}
			if name != closing {
				return nil, p.errorf(start, "closing tag </%s> does not match <%s>", name, closing)
			}
			return children, nil

		case len(rest) == 1 || (len(rest) < 4 && strings.HasPrefix("<!--", rest)):
			// A lone "<" or a cut-off comment opener at the end of input.
			return nil, p.incompletef(p.pos, "unterminated tag")

		case rest[1] == '>':
			return nil, p.errorf(p.pos, "fragments are not supported")

		case isNameStart(rest[1]):
			flush()
			n, err := p.parseTag()
			if err != nil {
				return nil, err
			}
			children = append(children, n)

		default:
			text.WriteByte('<')
			p.pos++
		}
	}
}

func (p *parser) atLineStart() bool {
	return p.pos == 0 || p.src[p.pos-1] == '\n'
}

func (p *parser) skipComment() error {
	start := p.pos
	end := strings.Index(p.src[p.pos+4:], "-->")
	if end < 0 {
		return p.incompletef(start, "unterminated comment")
	}
	p.pos += 4 + end + 3
	return nil
}

// parseCloseTag reads "</name>" and returns name.
func (p *parser) parseCloseTag() (string, error) {
	start := p.pos
	p.pos += 2
	if p.eof() {
		return "", p.incompletef(start, "unterminated closing tag")
	}
	if !isNameStart(p.peek()) {
		return "", p.errorf(p.pos, "invalid character %q in closing tag", p.peek())
	}
	name := p.readName()
	p.skipSpace()
	if p.eof() {
		return "", p.incompletef(start, "unterminated closing tag")
	}
	if p.peek() != '>' {
		return "", p.errorf(p.pos, "invalid character %q in closing tag", p.peek())
	}
	p.pos++
	return name, nil
}

// parseTag parses a start tag and, unless it closes itself, the element's content
// and closing tag.
func (p *parser) parseTag() (Node, error) {
	start := p.pos
	p.pos++
	name := p.readName()

	attrs, selfClosing, err := p.parseAttrs(start)
	if err != nil {
		return nil, err
	}

	if isComponentName(name) {
		tag := &ComponentTag{Name: name, Attrs: attrs, SelfClosing: selfClosing}
		if !selfClosing {
			if tag.Children, err = p.parseContent(name, start); err != nil {
				return nil, err
			}
		}
		return tag, nil
	}

	el := &Element{Tag: name, Atom: atom.Lookup([]byte(name)), Attrs: attrs, SelfClosing: selfClosing}
	if !selfClosing && voidElements[el.Atom] {
		el.SelfClosing = true
	}
	if !el.SelfClosing {
		if el.Children, err = p.parseContent(name, start); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// parseAttrs parses attributes up to and including the end of the start tag.
func (p *parser) parseAttrs(tagStart int) (attrs []Attr, selfClosing bool, err error) {
	for {
		p.skipSpace()
		if p.eof() {
			return nil, false, p.incompletef(tagStart, "unterminated tag")
		}

		switch c := p.peek(); {
		case c == '>':
			p.pos++
			return attrs, false, nil

		case c == '/':
			p.pos++
			if p.eof() {
				return nil, false, p.incompletef(tagStart, "unterminated tag")
			}
			if p.peek() != '>' {
				return nil, false, p.errorf(p.pos, "expected '>' after '/'")
			}
			p.pos++
			return attrs, true, nil

		case c == '{':
			exprStart := p.pos
			expr, err := p.readExpr()
			if err != nil {
				return nil, false, err
			}
			if !strings.HasPrefix(strings.TrimSpace(expr), "...") {
				return nil, false, p.errorf(exprStart, "expected attribute name, found expression")
			}
			attrs = append(attrs, Attr{Kind: AttrExpr, Expr: expr})

		case isNameStart(c):
			attr, err := p.parseAttr(tagStart)
			if err != nil {
				return nil, false, err
			}
			attrs = append(attrs, attr)

		default:
			return nil, false, p.errorf(p.pos, "invalid character %q in tag", c)
		}
	}
}

func (p *parser) parseAttr(tagStart int) (Attr, error) {
	attr := Attr{Name: p.readName()}

	p.skipSpace()
	if p.eof() {
		return Attr{}, p.incompletef(tagStart, "unterminated tag")
	}
	if p.peek() != '=' {
		attr.Kind = AttrBool
		attr.Value = true
		return attr, nil
	}
	p.pos++
	p.skipSpace()
	if p.eof() {
		return Attr{}, p.incompletef(tagStart, "unterminated tag")
	}

	switch c := p.peek(); c {
	case '"', '\'':
		end := strings.IndexByte(p.src[p.pos+1:], c)
		if end < 0 {
			return Attr{}, p.incompletef(p.pos, "unterminated attribute value")
		}
		attr.Kind = AttrLiteral
		attr.Value = html.UnescapeString(p.src[p.pos+1 : p.pos+1+end])
		p.pos += end + 2
	case '{':
		expr, err := p.readExpr()
		if err != nil {
			return Attr{}, err
		}
		attr.Expr = expr
		attr.Kind, attr.Value = classifyExpr(expr)
	default:
		return Attr{}, p.errorf(p.pos, "attribute %s: value must be quoted or an {expression}", attr.Name)
	}
	return attr, nil
}

// readExpr reads a brace-balanced expression starting at '{' and returns the
// source between the outer braces. Braces inside string and template literals do
// not count.
func (p *parser) readExpr() (string, error) {
	start := p.pos
	depth := 0
	for i := p.pos; i < len(p.src); i++ {
		switch c := p.src[i]; c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos = i + 1
				return p.src[start+1 : i], nil
			}
		case '"', '\'', '`':
			end := skipQuoted(p.src, i)
			if end < 0 {
				return "", p.incompletef(i, "unterminated string in expression")
			}
			i = end
		}
	}
	return "", p.incompletef(start, "unterminated expression")
}

// skipQuoted returns the index of the quote closing the literal that opens at i,
// or -1 when the input ends first.
func skipQuoted(src string, i int) int {
	q := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case q:
			return j
		}
	}
	return -1
}

func (p *parser) readName() string {
	start := p.pos
	for !p.eof() && isNameChar(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c) || c == '-' || c == '.' || c == ':'
}

// isComponentName reports whether a tag name refers to a component rather than a
// plain element.
func isComponentName(name string) bool {
	return (name[0] >= 'A' && name[0] <= 'Z') || strings.Contains(name, ".")
}

var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}
