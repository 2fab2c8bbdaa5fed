package native

// Match is a view of one successful whole-pattern match inside a text.
//
// Start is inclusive, End exclusive; both are byte offsets on character
// boundaries of the original input. The text is held by reference, so a
// Match stays cheap to copy and valid as long as the input string.
type Match struct {
	text  string
	start int
	end   int
}

// NewMatch creates a Match over text spanning [start, end).
func NewMatch(text string, start, end int) Match {
	return Match{text: text, start: start, end: end}
}

// Start returns the inclusive start offset of the match.
func (m Match) Start() int {
	return m.start
}

// End returns the exclusive end offset of the match.
func (m Match) End() int {
	return m.end
}

// Range returns the start and end offsets together.
func (m Match) Range() (start, end int) {
	return m.start, m.end
}

// Len returns the match length in bytes.
func (m Match) Len() int {
	return m.end - m.start
}

// IsEmpty reports whether the match has zero length. Patterns like a* can
// match without consuming input.
func (m Match) IsEmpty() bool {
	return m.start == m.end
}

// String returns the matched text as a slice of the original input.
func (m Match) String() string {
	return m.text[m.start:m.end]
}
