// Package literal extracts required literal prefixes from parsed patterns
// for prefilter optimization.
//
// Because the compiler rejects alternation, a pattern's leading literal text
// is required: every match must start with it. Multi-pattern sets use the
// prefixes to skip start positions that cannot begin a match.
package literal

import (
	"regexp/syntax"
	"unicode/utf8"
)

// Prefix returns the literal byte prefix every match of re must start with.
// The result is empty when no non-empty prefix is required, e.g. when the
// pattern starts with a character class or an optional element.
func Prefix(re *syntax.Regexp) []byte {
	p, _ := prefix(re)
	return p
}

// prefix walks the pattern front to back. complete reports whether the node
// is fully described by the returned bytes, so a concatenation knows whether
// the following node still contributes.
func prefix(re *syntax.Regexp) (p []byte, complete bool) {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			// A folded literal matches several spellings; none is required.
			return nil, false
		}
		buf := make([]byte, 0, len(re.Rune)*utf8.UTFMax)
		for _, r := range re.Rune {
			buf = utf8.AppendRune(buf, r)
		}
		return buf, true

	case syntax.OpEmptyMatch:
		return nil, true

	// Zero-width assertions consume nothing and hide nothing.
	case syntax.OpBeginText, syntax.OpEndText,
		syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return nil, true

	case syntax.OpCapture:
		return prefix(re.Sub[0])

	case syntax.OpConcat:
		var buf []byte
		for _, sub := range re.Sub {
			sp, ok := prefix(sub)
			buf = append(buf, sp...)
			if !ok {
				return buf, false
			}
		}
		return buf, true

	case syntax.OpPlus:
		// One iteration is required, further ones are not.
		sp, _ := prefix(re.Sub[0])
		return sp, false

	case syntax.OpRepeat:
		if re.Min >= 1 {
			sp, _ := prefix(re.Sub[0])
			return sp, false
		}
		return nil, false

	default:
		return nil, false
	}
}
