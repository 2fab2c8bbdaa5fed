package native

import (
	"sort"

	"github.com/coregx/ahocorasick"
)

// RegexSet runs several compiled matchers over a text in a single scan and
// reports which of them match.
//
// Example:
//
//	set := native.NewRegexSet(matchers.NewDigits(), matchers.NewWord())
//	set.IsMatch("123 abc") // true
type RegexSet struct {
	engines         []*Engine
	maxCaptureCount int

	// prefilter is an Aho-Corasick automaton over the engines' literal
	// prefixes. It is built only when every engine carries a non-empty
	// prefix; then a position where no prefix occurs cannot start a match
	// for any engine, and IsMatch can skip straight between candidates.
	prefilter *ahocorasick.Automaton
}

// NewRegexSet builds a set from the given engines. An empty set is valid
// and matches nothing.
func NewRegexSet(engines ...*Engine) *RegexSet {
	s := &RegexSet{engines: engines, maxCaptureCount: 1}
	allPrefixed := len(engines) > 0
	for _, e := range engines {
		if e.CaptureCount() > s.maxCaptureCount {
			s.maxCaptureCount = e.CaptureCount()
		}
		if e.LiteralPrefix() == "" {
			allPrefixed = false
		}
	}
	if allPrefixed {
		builder := ahocorasick.NewBuilder()
		for _, e := range engines {
			builder.AddPattern([]byte(e.LiteralPrefix()))
		}
		if auto, err := builder.Build(); err == nil {
			s.prefilter = auto
		}
	}
	return s
}

// Len returns the number of engines in the set.
func (s *RegexSet) Len() int {
	return len(s.engines)
}

// IsMatch reports whether any engine in the set matches text.
func (s *RegexSet) IsMatch(text string) bool {
	if len(s.engines) == 0 {
		return false
	}
	captures := NewVectorMap(s.maxCaptureCount)
	if s.prefilter != nil {
		return s.isMatchPrefiltered(text, captures)
	}
	it := NewAdvancerIterator(text, 0)
	for {
		adv, ok := it.Next()
		if !ok {
			return false
		}
		for _, e := range s.engines {
			clone := adv
			if e.step(&clone, captures) {
				return true
			}
			captures.Clear()
		}
	}
}

// isMatchPrefiltered scans only positions where some engine's literal
// prefix occurs. Prefix occurrences always fall on character boundaries
// because the leading byte of a UTF-8 sequence never doubles as a
// continuation byte.
func (s *RegexSet) isMatchPrefiltered(text string, captures *VectorMap) bool {
	haystack := []byte(text)
	at := 0
	for at < len(text) {
		m := s.prefilter.Find(haystack, at)
		if m == nil {
			return false
		}
		adv, ok := NewAdvancerIterator(text, m.Start).Next()
		if !ok {
			return false
		}
		for _, e := range s.engines {
			clone := adv
			if e.step(&clone, captures) {
				return true
			}
			captures.Clear()
		}
		at = m.Start + 1
	}
	return false
}

// Matches scans text once and records the first match of every engine. The
// scan stops as soon as all engines have matched. At equal start positions
// engines are attempted in registration order.
func (s *RegexSet) Matches(text string) *SetMatches {
	sm := &SetMatches{matches: map[int]*Captures{}}
	if len(s.engines) == 0 {
		return sm
	}
	captures := NewVectorMap(s.maxCaptureCount)
	it := NewAdvancerIterator(text, 0)
	for len(sm.matches) < len(s.engines) {
		adv, ok := it.Next()
		if !ok {
			break
		}
		for i, e := range s.engines {
			if _, done := sm.matches[i]; done {
				continue
			}
			clone := adv
			if e.step(&clone, captures) {
				sm.matches[i] = &Captures{
					text:        text,
					locations:   captures.Snapshot(e.CaptureCount()),
					namedGroups: e.namedGroups,
				}
			}
			captures.Clear()
		}
	}
	return sm
}

// SetMatches is the result of RegexSet.Matches: the first captures of each
// engine that matched, keyed by engine index.
type SetMatches struct {
	matches map[int]*Captures
}

// Matched reports whether engine i matched.
func (sm *SetMatches) Matched(i int) bool {
	_, ok := sm.matches[i]
	return ok
}

// Get returns the captures of engine i's first match, or nil.
func (sm *SetMatches) Get(i int) *Captures {
	return sm.matches[i]
}

// Len returns how many engines matched.
func (sm *SetMatches) Len() int {
	return len(sm.matches)
}

// Indices returns the indices of the engines that matched, in ascending
// order.
func (sm *SetMatches) Indices() []int {
	out := make([]int, 0, len(sm.matches))
	for i := range sm.matches {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
