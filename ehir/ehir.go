// Package ehir lowers parsed regular expressions into a small imperative
// token form suitable for direct code emission.
//
// The tokens describe a match attempt over an abstract character cursor:
// conditional bail-outs, counted loops for quantifiers, cursor advances and
// capture recording. Matching is greedy with no backtracking, which is why
// alternation and non-greedy repetition are rejected during lowering rather
// than compiled badly.
package ehir

// TokenOp identifies the kind of a Token.
type TokenOp int

const (
	// OpIf evaluates a decision and takes the no-match action on failure.
	OpIf TokenOp = iota
	// OpWhile loops over Body while the decision holds.
	OpWhile
	// OpStartCount initialises the counter of the enclosing block.
	OpStartCount
	// OpIncrementCount advances the innermost counter.
	OpIncrementCount
	// OpAdvance consumes one character on the cursor.
	OpAdvance
	// OpCapture executes Body and records the consumed range at Index.
	OpCapture
	// OpBlock is a lexical scope; at most one counter lives in a block.
	OpBlock
	// OpEmpty matches nothing and always succeeds.
	OpEmpty
)

// Modifier negates or keeps a decision's outcome.
type Modifier int

const (
	// ModIs takes the no-match action when the decision is true.
	ModIs Modifier = iota
	// ModNot takes the no-match action when the decision is false.
	ModNot
)

// NoMatch is the action taken when an If token's test fails.
type NoMatch int

const (
	// Stop abandons the whole match attempt.
	Stop NoMatch = iota
	// Break exits the innermost quantifier loop.
	Break
)

// Token is one instruction of the lowered program.
type Token struct {
	Op       TokenOp
	Mod      Modifier  // OpIf
	Decision *Decision // OpIf, OpWhile
	NoMatch  NoMatch   // OpIf
	Index    int       // OpCapture
	Body     []Token   // OpWhile, OpCapture, OpBlock
}

// DecisionOp identifies the kind of a Decision.
type DecisionOp int

const (
	// DecisionLiteral tests whether the current code point equals Rune.
	DecisionLiteral DecisionOp = iota
	// DecisionCharacterSet tests whether the current code point lies in
	// any of Ranges.
	DecisionCharacterSet
	// DecisionCountEquals tests the innermost counter against Count.
	DecisionCountEquals
	// DecisionCountLessThan tests the innermost counter against Count.
	DecisionCountLessThan
	// DecisionAnchor tests a text or line anchor at the cursor.
	DecisionAnchor
	// DecisionWordBoundary tests a word boundary at the cursor.
	DecisionWordBoundary
	// DecisionMiddle tests that the cursor has a current character.
	DecisionMiddle
)

// AnchorKind distinguishes text anchors from line anchors.
type AnchorKind int

const (
	// AnchorRegular is \A or \z: the absolute edge of the text.
	AnchorRegular AnchorKind = iota
	// AnchorNewline is the multi-line ^ or $: the text edge or a newline.
	AnchorNewline
)

// AnchorLocation distinguishes start anchors from end anchors.
type AnchorLocation int

const (
	// LocationStart anchors at the beginning.
	LocationStart AnchorLocation = iota
	// LocationEnd anchors at the end.
	LocationEnd
)

// WordBoundaryScope selects the word-character test for \b.
type WordBoundaryScope int

const (
	// ScopeByte uses the ASCII word class [0-9A-Za-z_].
	ScopeByte WordBoundaryScope = iota
	// ScopeCharacter uses the Unicode word class.
	ScopeCharacter
)

// Range is an inclusive code point range. Single-point ranges have Lo == Hi.
type Range struct {
	Lo uint32
	Hi uint32
}

// Decision is the test evaluated by If and While tokens.
type Decision struct {
	Op     DecisionOp
	Rune   uint32  // DecisionLiteral
	Ranges []Range // DecisionCharacterSet
	Count  int     // DecisionCountEquals, DecisionCountLessThan

	AnchorKind AnchorKind     // DecisionAnchor
	AnchorLoc  AnchorLocation // DecisionAnchor

	Scope WordBoundaryScope // DecisionWordBoundary
}

// Program is the lowered form of one pattern: the token list for its body
// (the emitter wraps it in the whole-match capture), the number of capture
// slots including slot 0, the named-group table, and the literal prefix
// every match must begin with (empty when none is known).
type Program struct {
	Tokens        []Token
	CaptureCount  int
	NamedGroups   map[string]int
	LiteralPrefix string
}
