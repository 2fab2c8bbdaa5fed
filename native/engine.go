package native

import (
	"fmt"
	"strings"
)

// StepFunc attempts one match at the cursor's position. On success it returns
// true with every matched group range recorded in captures; on failure it
// returns false, in which case captures may be partially filled and the
// caller must Clear it before the next attempt.
//
// Step functions are emitted by the nativeregex compiler; they are pure and
// never fail other than by returning false.
type StepFunc func(chars *Advancer, captures *VectorMap) bool

// EngineConfig carries a compiled pattern's step function and metadata.
// Emitted constructors fill one of these and hand it to NewEngine.
type EngineConfig struct {
	// Step is the per-start match attempt.
	Step StepFunc

	// NamedGroups maps group names to capture indices. May be nil when the
	// pattern has no named groups.
	NamedGroups map[string]int

	// CaptureCount is the number of capture slots including slot 0, the
	// whole match.
	CaptureCount int

	// LiteralPrefix is the literal text every match must start with, or
	// empty when no such prefix is known. RegexSet uses it to prefilter
	// candidate start positions.
	LiteralPrefix string
}

// Engine is a compiled matcher: a step function plus its metadata. Engines
// are immutable after construction and safe for concurrent use; per-call
// state (capture maps, iterators) is never shared.
//
// All user-facing matching operations live here, so an emitted matcher only
// has to supply its step function.
type Engine struct {
	step          StepFunc
	namedGroups   map[string]int
	captureCount  int
	literalPrefix string
}

// NewEngine builds an Engine from a config. It panics on a nil step or a
// capture count outside [1, MaxCaptureSlots]; emitted code never violates
// either.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Step == nil {
		panic("native: NewEngine requires a step function")
	}
	if cfg.CaptureCount < 1 || cfg.CaptureCount > MaxCaptureSlots {
		panic(fmt.Sprintf("native: capture count %d out of range [1, %d]", cfg.CaptureCount, MaxCaptureSlots))
	}
	named := cfg.NamedGroups
	if named == nil {
		named = map[string]int{}
	}
	return &Engine{
		step:          cfg.Step,
		namedGroups:   named,
		captureCount:  cfg.CaptureCount,
		literalPrefix: cfg.LiteralPrefix,
	}
}

// Step runs one match attempt at the cursor position. Most callers want
// IsMatch, Find or the iterators instead; Step exists for composition, e.g.
// by RegexSet.
func (e *Engine) Step(chars *Advancer, captures *VectorMap) bool {
	return e.step(chars, captures)
}

// CaptureNames returns the name to index map for named groups. The map is
// shared; callers must not modify it.
func (e *Engine) CaptureNames() map[string]int {
	return e.namedGroups
}

// CaptureCount returns the number of capture slots including the whole
// match.
func (e *Engine) CaptureCount() int {
	return e.captureCount
}

// LiteralPrefix returns the literal text every match starts with, or "".
func (e *Engine) LiteralPrefix() string {
	return e.literalPrefix
}

// regexFunction is the leftmost scan: it tries the step function at every
// character boundary from start onward and returns the capture map of the
// first success, or nil. One VectorMap is allocated per call and reused
// across attempts.
func (e *Engine) regexFunction(text string, start int) *VectorMap {
	captures := NewVectorMap(e.captureCount)
	it := NewAdvancerIterator(text, start)
	for {
		adv, ok := it.Next()
		if !ok {
			return nil
		}
		if e.step(&adv, captures) {
			return captures
		}
		captures.Clear()
	}
}

// IsMatch reports whether the pattern matches anywhere in text.
//
// Example:
//
//	re := matchers.NewDigits()
//	re.IsMatch("age 42") // true
func (e *Engine) IsMatch(text string) bool {
	return e.regexFunction(text, 0) != nil
}

// Find returns the leftmost match in text, or nil if there is none.
//
// Example:
//
//	re := matchers.NewDigits()
//	m := re.Find("age 42")
//	m.String() // "42"
func (e *Engine) Find(text string) *Match {
	locations := e.regexFunction(text, 0)
	if locations == nil {
		return nil
	}
	loc, _ := locations.Get(0)
	m := NewMatch(text, loc.Start, loc.End)
	return &m
}

// Captures returns the capture groups of the leftmost match, or nil.
//
// Example:
//
//	re := matchers.NewDate()
//	caps := re.Captures("on 2020-07-14")
//	caps.Name("y").String() // "2020"
func (e *Engine) Captures(text string) *Captures {
	locations := e.regexFunction(text, 0)
	if locations == nil {
		return nil
	}
	return &Captures{text: text, locations: locations, namedGroups: e.namedGroups}
}

// FindIter returns an iterator over all non-overlapping matches in text,
// leftmost first.
//
// Example:
//
//	it := re.FindIter("1 22 333")
//	for m := it.Next(); m != nil; m = it.Next() {
//	    println(m.String())
//	}
func (e *Engine) FindIter(text string) *Matches {
	return &Matches{inner: e.CapturesIter(text)}
}

// CapturesIter returns an iterator over the capture groups of all
// non-overlapping matches in text, leftmost first.
func (e *Engine) CapturesIter(text string) *CaptureMatches {
	return &CaptureMatches{engine: e, text: text}
}

// Split returns an iterator over the substrings of text between matches.
// Adjacent matches produce empty substrings, and the text after the final
// match is yielded last, so interleaving the pieces with the matches
// reconstructs text exactly.
func (e *Engine) Split(text string) *Split {
	return &Split{finder: e.FindIter(text), text: text}
}

// Replace returns text with every match replaced by the Replacer's output.
// Text between matches is copied verbatim.
//
// Example:
//
//	re.Replace("hello hello", native.Template("${1}!"))
func (e *Engine) Replace(text string, rep Replacer) string {
	it := e.CapturesIter(text)
	caps := it.Next()
	if caps == nil {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for ; caps != nil; caps = it.Next() {
		m := caps.First()
		b.WriteString(text[last:m.Start()])
		rep.ReplaceAppend(caps, &b)
		last = m.End()
	}
	b.WriteString(text[last:])
	return b.String()
}

// ReplaceAll is shorthand for Replace with a Template replacer, expanding
// $$ and ${name} references in template for each match.
func (e *Engine) ReplaceAll(text, template string) string {
	return e.Replace(text, Template(template))
}
