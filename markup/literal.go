package markup

import (
	"strconv"
	"strings"
)

// classifyExpr decides whether an attribute expression is a single scalar literal.
// Anything that is not a string, number, true, false or null is AttrExpr.
func classifyExpr(src string) (AttrKind, any) {
	s := strings.TrimSpace(src)
	switch s {
	case "true":
		return AttrLiteral, true
	case "false":
		return AttrLiteral, false
	case "null":
		return AttrLiteral, nil
	}
	if isNumber(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return AttrLiteral, f
		}
	}
	if str, ok := unquoteString(s); ok {
		return AttrLiteral, str
	}
	return AttrExpr, nil
}

// isNumber accepts decimal literals with an optional sign, fraction and exponent.
// It rejects what strconv.ParseFloat would otherwise take, such as "Inf" or "0x1p4".
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	if i >= len(s) || !(isDigit(s[i]) || (s[i] == '.' && i+1 < len(s) && isDigit(s[i+1]))) {
		return false
	}
	for ; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && c != '.' && c != 'e' && c != 'E' && c != '+' && c != '-' {
			return false
		}
	}
	return true
}

// unquoteString unquotes a single- or double-quoted string literal. It fails for
// anything that is not exactly one literal, like 'a' + 'b'.
func unquoteString(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return "", false
	}

	// Rewrite as a Go double-quoted literal, checking that the closing quote is the
	// only unescaped quote of its kind.
	inner := s[1 : len(s)-1]
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == '\\':
			if i+1 >= len(inner) {
				return "", false
			}
			next := inner[i+1]
			if next == '\'' {
				sb.WriteByte('\'')
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(next)
			}
			i++
		case c == q:
			return "", false
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			return "", false
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')

	out, err := strconv.Unquote(sb.String())
	if err != nil {
		return "", false
	}
	return out, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
