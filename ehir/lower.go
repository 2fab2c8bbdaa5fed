package ehir

import (
	"fmt"
	"regexp/syntax"
	"unicode"

	"github.com/coregx/nativeregex/internal/conv"
	"github.com/coregx/nativeregex/literal"
)

// MaxCaptureSlots is the largest capture count a lowered program may have,
// matching the runtime capture store's bitmask capacity.
const MaxCaptureSlots = 63

// LowerPattern parses a pattern with the standard syntax parser and lowers
// it. Parse failures are reported as a *ParseError.
func LowerPattern(pattern string) (*Program, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &ParseError{Pattern: pattern, Err: err}
	}
	// The parser folds single-character alternatives such as a|b into a
	// character class, so the pattern text is also checked for a '|'.
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case c == '[' && !inClass:
			inClass = true
		case c == ']' && inClass:
			inClass = false
		case c == '|' && !inClass:
			return nil, ErrAlternation
		}
	}
	return Lower(re)
}

// Lower translates a parsed pattern into a Program.
//
// Lowering is a single recursive walk. Each node becomes tokens that, read
// sequentially over the cursor, implement the node with greedy semantics:
// quantifiers consume as much as their body allows and never reattempt with
// shorter consumption. Constructs that would need backtracking (alternation,
// non-greedy repetition) fail with a typed error.
func Lower(re *syntax.Regexp) (*Program, error) {
	l := &lowerer{named: map[string]int{}}
	tokens, err := l.lower(re, false)
	if err != nil {
		return nil, err
	}
	count := l.maxIndex + 1
	if count > MaxCaptureSlots {
		return nil, ErrCaptureLimit
	}
	return &Program{
		Tokens:        tokens,
		CaptureCount:  count,
		NamedGroups:   l.named,
		LiteralPrefix: string(literal.Prefix(re)),
	}, nil
}

// lowerer accumulates capture bookkeeping across the recursive walk.
type lowerer struct {
	maxIndex int
	named    map[string]int
}

// noMatchAction picks the bail-out for a failed test: abandon the attempt at
// top level, or exit the quantifier loop when lowered inside one.
func noMatchAction(inLoop bool) NoMatch {
	if inLoop {
		return Break
	}
	return Stop
}

func (l *lowerer) lower(re *syntax.Regexp, inLoop bool) ([]Token, error) {
	switch re.Op {
	case syntax.OpEmptyMatch:
		return []Token{{Op: OpEmpty}}, nil

	case syntax.OpLiteral:
		var tokens []Token
		fold := re.Flags&syntax.FoldCase != 0
		for _, r := range re.Rune {
			tokens = append(tokens, literalTokens(r, fold, inLoop)...)
		}
		return tokens, nil

	case syntax.OpCharClass:
		ranges := make([]Range, 0, len(re.Rune)/2)
		for i := 0; i+1 < len(re.Rune); i += 2 {
			ranges = append(ranges, Range{
				Lo: conv.RuneToUint32(re.Rune[i]),
				Hi: conv.RuneToUint32(re.Rune[i+1]),
			})
		}
		return classTokens(ranges, inLoop), nil

	case syntax.OpAnyChar:
		return classTokens([]Range{{Lo: 0, Hi: unicode.MaxRune}}, inLoop), nil

	case syntax.OpAnyCharNotNL:
		return classTokens([]Range{
			{Lo: 0, Hi: '\n' - 1},
			{Lo: '\n' + 1, Hi: unicode.MaxRune},
		}, inLoop), nil

	case syntax.OpBeginText:
		return anchorTokens(AnchorRegular, LocationStart, inLoop), nil
	case syntax.OpEndText:
		return anchorTokens(AnchorRegular, LocationEnd, inLoop), nil
	case syntax.OpBeginLine:
		return anchorTokens(AnchorNewline, LocationStart, inLoop), nil
	case syntax.OpEndLine:
		return anchorTokens(AnchorNewline, LocationEnd, inLoop), nil

	case syntax.OpWordBoundary:
		return wordBoundaryTokens(ModNot, inLoop), nil
	case syntax.OpNoWordBoundary:
		return wordBoundaryTokens(ModIs, inLoop), nil

	case syntax.OpStar:
		return l.lowerRepeat(re, re.Sub[0], 0, -1, inLoop)
	case syntax.OpPlus:
		return l.lowerRepeat(re, re.Sub[0], 1, -1, inLoop)
	case syntax.OpQuest:
		return l.lowerRepeat(re, re.Sub[0], 0, 1, inLoop)
	case syntax.OpRepeat:
		return l.lowerRepeat(re, re.Sub[0], re.Min, re.Max, inLoop)

	case syntax.OpCapture:
		if re.Cap > l.maxIndex {
			l.maxIndex = re.Cap
		}
		if re.Name != "" {
			l.named[re.Name] = re.Cap
		}
		body, err := l.lower(re.Sub[0], inLoop)
		if err != nil {
			return nil, err
		}
		// A capture token is its own lexical scope; no extra block needed.
		return []Token{{Op: OpCapture, Index: re.Cap, Body: body}}, nil

	case syntax.OpConcat:
		var tokens []Token
		for _, sub := range re.Sub {
			subTokens, err := l.lower(sub, inLoop)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, subTokens...)
		}
		return tokens, nil

	case syntax.OpAlternate:
		return nil, ErrAlternation

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, re.Op)
	}
}

// lowerRepeat lowers a greedy quantifier over sub with bounds [min, max],
// max < 0 meaning unbounded. The loop consumes repetitions until the body
// signals a failed iteration or the upper bound is reached, then the lower
// bound is checked once.
func (l *lowerer) lowerRepeat(re, sub *syntax.Regexp, min, max int, inLoop bool) ([]Token, error) {
	if re.Flags&syntax.NonGreedy != 0 {
		return nil, ErrNonGreedyRepetition
	}
	if max == 0 {
		// x{0} consumes nothing; captures inside still claim their index.
		if _, err := l.lower(sub, true); err != nil {
			return nil, err
		}
		return []Token{{Op: OpEmpty}}, nil
	}
	body, err := l.lower(sub, true)
	if err != nil {
		return nil, err
	}
	body = append(body, Token{Op: OpIncrementCount})
	if max >= 0 {
		body = append(body, Token{
			Op:       OpIf,
			Mod:      ModIs,
			Decision: &Decision{Op: DecisionCountEquals, Count: max},
			NoMatch:  Break,
		})
	}
	block := []Token{
		{Op: OpStartCount},
		{Op: OpWhile, Decision: &Decision{Op: DecisionMiddle}, Body: body},
		{
			Op:       OpIf,
			Mod:      ModIs,
			Decision: &Decision{Op: DecisionCountLessThan, Count: min},
			NoMatch:  noMatchAction(inLoop),
		},
	}
	return []Token{{Op: OpBlock, Body: block}}, nil
}

// literalTokens lowers one literal code point: bounds check, comparison,
// advance. Case-insensitive literals become the character set of the rune's
// fold orbit.
func literalTokens(r rune, fold bool, inLoop bool) []Token {
	if fold {
		if orbit := foldRanges(r); len(orbit) > 1 {
			return classTokens(orbit, inLoop)
		}
	}
	nm := noMatchAction(inLoop)
	return []Token{
		boundsCheck(nm),
		{Op: OpIf, Mod: ModNot, Decision: &Decision{Op: DecisionLiteral, Rune: conv.RuneToUint32(r)}, NoMatch: nm},
		{Op: OpAdvance},
	}
}

// classTokens lowers a character set: bounds check, membership test,
// advance. Adjacent singleton ranges are kept as-is.
func classTokens(ranges []Range, inLoop bool) []Token {
	nm := noMatchAction(inLoop)
	return []Token{
		boundsCheck(nm),
		{Op: OpIf, Mod: ModNot, Decision: &Decision{Op: DecisionCharacterSet, Ranges: ranges}, NoMatch: nm},
		{Op: OpAdvance},
	}
}

func anchorTokens(kind AnchorKind, loc AnchorLocation, inLoop bool) []Token {
	return []Token{{
		Op:       OpIf,
		Mod:      ModNot,
		Decision: &Decision{Op: DecisionAnchor, AnchorKind: kind, AnchorLoc: loc},
		NoMatch:  noMatchAction(inLoop),
	}}
}

// wordBoundaryTokens lowers \b (mod Not) and \B (mod Is). The parser's word
// class is ASCII, so the byte scope is used.
func wordBoundaryTokens(mod Modifier, inLoop bool) []Token {
	return []Token{{
		Op:       OpIf,
		Mod:      mod,
		Decision: &Decision{Op: DecisionWordBoundary, Scope: ScopeByte},
		NoMatch:  noMatchAction(inLoop),
	}}
}

func boundsCheck(nm NoMatch) Token {
	return Token{Op: OpIf, Mod: ModNot, Decision: &Decision{Op: DecisionMiddle}, NoMatch: nm}
}

// foldRanges returns the set of code points equal to r under simple case
// folding, as singleton ranges in ascending order.
func foldRanges(r rune) []Range {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	if len(orbit) == 1 {
		return []Range{{Lo: conv.RuneToUint32(r), Hi: conv.RuneToUint32(r)}}
	}
	for i := 1; i < len(orbit); i++ {
		for j := i; j > 0 && orbit[j] < orbit[j-1]; j-- {
			orbit[j], orbit[j-1] = orbit[j-1], orbit[j]
		}
	}
	ranges := make([]Range, len(orbit))
	for i, f := range orbit {
		v := conv.RuneToUint32(f)
		ranges[i] = Range{Lo: v, Hi: v}
	}
	return ranges
}
