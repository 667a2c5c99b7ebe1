// Package markup parses generated markup documents: prose interleaved with
// component tags, in the JSX/MDX style that language models produce.
//
// # Grammar
//
//	import { Badge } from './badge'     module declarations (root level only)
//	Some prose with &amp; entities      text, character references decoded
//	<Badge color="red" count={3}/>      component tag (upper-case or dotted name)
//	<p>plain <br> elements</p>          element (lower-case name; void elements self-close)
//	<Chart data={rows} {...rest}/>      complex expressions, kept as source
//	<!-- comments -->                   skipped
//
// Attribute values are quoted strings, {expressions} or absent (a boolean
// attribute). An expression holding a single string, number, true, false or null
// is a literal; anything else is an AttrExpr and carries its source in Attr.Expr.
//
// # Parsing Prefixes
//
// [TryParse] is strict: it returns either a complete tree or a *[SyntaxError]. It
// is meant to be called on every prefix of a document that is still being
// generated, so cheap rejection of cut-off input matters more than recovery:
//
//	root, err := markup.TryParse(prefix)
//	var synErr *markup.SyntaxError
//	if errors.As(err, &synErr) && synErr.Incomplete {
//	    // wait for more input
//	}
package markup
