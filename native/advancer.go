// Package native is the runtime library consumed by matchers emitted by the
// nativeregex compiler.
//
// A compiled matcher is a step function: it attempts a single match at one
// start position, reading characters through an Advancer and recording group
// ranges into a VectorMap. Everything else (the leftmost scan, iteration,
// replacement, multi-pattern sets) is provided here, once, by Engine and
// RegexSet.
//
// Basic usage with an emitted matcher:
//
//	re := matchers.NewPhoneNumber()
//	if m := re.Find("call 555-0199 today"); m != nil {
//	    println(m.String()) // "555-0199"
//	}
package native

import "unicode/utf8"

// Previous records the character immediately before the cursor position, or
// the start of input when the cursor has not moved past any character yet.
//
// The zero value is the start-of-input state.
type Previous struct {
	ch     rune
	isChar bool
}

// PreviousChar returns a Previous holding the given character.
func PreviousChar(ch rune) Previous {
	return Previous{ch: ch, isChar: true}
}

// IsStart reports whether there is no previous character, i.e. the cursor
// sits at the very beginning of the input.
func (p Previous) IsStart() bool {
	return !p.isChar
}

// Rune returns the previous character. The result is negative when IsStart
// is true; callers are expected to check IsStart first.
func (p Previous) Rune() rune {
	if !p.isChar {
		return -1
	}
	return p.ch
}

// CharacterInfo describes one cursor position: the absolute byte index, the
// character at that position (if any), and the character before it.
//
// Emitted step functions hold exactly one CharacterInfo at a time and refresh
// it with Advancer.Advance.
type CharacterInfo struct {
	index    int
	current  rune
	ok       bool
	previous Previous
}

// Index returns the absolute byte offset of this position in the original
// input. At end of text it equals the input length.
func (c CharacterInfo) Index() int {
	return c.index
}

// HasCurrent reports whether there is a character at this position, i.e. the
// cursor is not at the end of the text.
func (c CharacterInfo) HasCurrent() bool {
	return c.ok
}

// Rune returns the character at this position. The result is negative when
// HasCurrent is false; emitted code always bounds-checks first.
func (c CharacterInfo) Rune() rune {
	if !c.ok {
		return -1
	}
	return c.current
}

// Previous returns the character before this position, or the start marker.
func (c CharacterInfo) Previous() Previous {
	return c.previous
}

// Advancer is a UTF-8 cursor over an input string, positioned at a candidate
// match start. It keeps the previously consumed character so that anchors and
// word boundaries can be decided without re-scanning backwards.
//
// An Advancer is a small value; copying it is a constant-time clone. RegexSet
// relies on this to hand an independent cursor to every engine at every start
// position.
type Advancer struct {
	text string
	pos  int
	prev Previous
}

// NewAdvancer returns a cursor positioned at the given byte offset with the
// given previous-character state. Most callers obtain cursors from an
// AdvancerIterator instead, which seeds the previous character correctly.
func NewAdvancer(text string, pos int, prev Previous) Advancer {
	return Advancer{text: text, pos: pos, prev: prev}
}

// Advance consumes one character and returns its CharacterInfo.
//
// At the end of the text it keeps returning an info whose Index is the text
// length, with no current character and a stable previous character.
func (a *Advancer) Advance() CharacterInfo {
	prev := a.prev
	if a.pos >= len(a.text) {
		return CharacterInfo{index: len(a.text), previous: prev}
	}
	r, size := utf8.DecodeRuneInString(a.text[a.pos:])
	info := CharacterInfo{index: a.pos, current: r, ok: true, previous: prev}
	a.prev = PreviousChar(r)
	a.pos += size
	return info
}

// Previous returns the cached previous character without consuming input.
func (a *Advancer) Previous() Previous {
	return a.prev
}

// AdvancerIterator yields one independent Advancer per character boundary of
// the input, in order, starting at the given byte offset. The end-of-text
// boundary is included, so a pattern that matches the empty string can match
// there too.
//
// This is how the leftmost scan works: try the step function at each start
// until one succeeds.
type AdvancerIterator struct {
	text string
	pos  int
	prev Previous
	done bool
}

// NewAdvancerIterator returns an iterator over match-start cursors beginning
// at start, which must be a character boundary of text.
func NewAdvancerIterator(text string, start int) *AdvancerIterator {
	var prev Previous
	for i, r := range text {
		if i >= start {
			break
		}
		prev = PreviousChar(r)
	}
	return &AdvancerIterator{text: text, pos: start, prev: prev}
}

// Next returns the cursor for the next character boundary. The second result
// is false once all boundaries, including end of text, have been produced.
func (it *AdvancerIterator) Next() (Advancer, bool) {
	if it.done {
		return Advancer{}, false
	}
	adv := Advancer{text: it.text, pos: it.pos, prev: it.prev}
	if it.pos >= len(it.text) {
		it.done = true
		return adv, true
	}
	r, size := utf8.DecodeRuneInString(it.text[it.pos:])
	it.prev = PreviousChar(r)
	it.pos += size
	return adv, true
}

// charWidthAt returns the byte width of the character starting at offset i,
// or 1 at (or past) the end of the text. Iterators use it to skip one full
// character after an empty match.
func charWidthAt(text string, i int) int {
	if i >= len(text) {
		return 1
	}
	_, size := utf8.DecodeRuneInString(text[i:])
	return size
}
