package native

import (
	"strconv"
	"strings"
)

// Captures holds the group ranges of one successful match. Slot 0 is the
// whole match; explicit groups follow in pattern order. Unmatched optional
// groups are unset.
type Captures struct {
	text        string
	locations   *VectorMap
	namedGroups map[string]int
}

// Get returns the match for group i, or nil when the group did not
// participate in the match or i is out of range.
func (c *Captures) Get(i int) *Match {
	loc, ok := c.locations.Get(i)
	if !ok {
		return nil
	}
	m := NewMatch(c.text, loc.Start, loc.End)
	return &m
}

// Name returns the match for the named group, or nil when the name is
// unknown or the group did not participate.
func (c *Captures) Name(name string) *Match {
	i, ok := c.namedGroups[name]
	if !ok {
		return nil
	}
	return c.Get(i)
}

// First returns the whole-match range, slot 0, which is always set on a
// successful match.
func (c *Captures) First() Match {
	loc, _ := c.locations.Get(0)
	return NewMatch(c.text, loc.Start, loc.End)
}

// Len returns the number of capture slots, counting slot 0 and unset
// groups.
func (c *Captures) Len() int {
	return c.locations.Len()
}

// Iter calls f for each slot in index order; m is nil for groups that did
// not participate in the match.
func (c *Captures) Iter(f func(i int, m *Match)) {
	c.locations.Iter(func(i int, loc Location, ok bool) {
		if !ok {
			f(i, nil)
			return
		}
		m := NewMatch(c.text, loc.Start, loc.End)
		f(i, &m)
	})
}

// Expand appends template to dst with capture references substituted:
//
//	$$          a literal dollar sign
//	${name}     the text of the named group, or "" if it did not match
//	${2}        the text of group 2 (a braced decimal is a group index)
//
// A dollar sign not forming one of these consumes just itself. All other
// text is copied verbatim. The template is scanned with a pre-compiled
// matcher for `\$(\$)?(?:\{([^{}]*)\})?`, itself emitted by this compiler.
func (c *Captures) Expand(template string, dst *strings.Builder) {
	rest := template
	for rest != "" {
		caps := templateEngine.Captures(rest)
		if caps == nil {
			dst.WriteString(rest)
			return
		}
		first := caps.First()
		dst.WriteString(rest[:first.Start()])
		if m := caps.Get(1); m != nil {
			// Escaped dollar sign, $$.
			rest = rest[m.End():]
			dst.WriteByte('$')
			continue
		}
		m := caps.Get(2)
		if m == nil || !strings.HasSuffix(first.String(), "}") {
			// A bare dollar, or one before an unclosed brace, consumes
			// just itself.
			rest = rest[first.Start()+1:]
			continue
		}
		rest = rest[first.End():]
		body := m.String()
		if n, err := strconv.Atoi(body); err == nil {
			if g := c.Get(n); g != nil {
				dst.WriteString(g.String())
			}
		} else if g := c.Name(body); g != nil {
			dst.WriteString(g.String())
		}
	}
}

// CaptureMatches iterates over the captures of every non-overlapping match
// in a text, leftmost first. After an empty match it advances one full
// character, so iteration always terminates, and an empty match directly
// after a non-empty one at the same position is suppressed.
type CaptureMatches struct {
	engine    *Engine
	text      string
	lastEnd   int
	lastMatch int
	hasLast   bool
}

// Next returns the next match's captures, or nil when iteration is done.
func (it *CaptureMatches) Next() *Captures {
	for {
		if it.lastEnd > len(it.text) {
			return nil
		}
		locations := it.engine.regexFunction(it.text, it.lastEnd)
		if locations == nil {
			return nil
		}
		loc, _ := locations.Get(0)
		skip := false
		if loc.Start == loc.End {
			it.lastEnd = loc.End + charWidthAt(it.text, loc.End)
			// An empty match right where the previous match ended was
			// already covered by that match.
			skip = it.hasLast && it.lastMatch == loc.End
		} else {
			it.lastEnd = loc.End
		}
		if skip {
			continue
		}
		it.lastMatch = loc.End
		it.hasLast = true
		return &Captures{text: it.text, locations: locations, namedGroups: it.engine.namedGroups}
	}
}

// Matches iterates over every non-overlapping match in a text, leftmost
// first, yielding only the whole-match ranges.
type Matches struct {
	inner *CaptureMatches
}

// Next returns the next match, or nil when iteration is done.
func (it *Matches) Next() *Match {
	caps := it.inner.Next()
	if caps == nil {
		return nil
	}
	m := caps.First()
	return &m
}

// Split iterates over the substrings of a text between matches.
type Split struct {
	finder *Matches
	text   string
	last   int
}

// Next returns the next substring. The second result is false once the
// piece after the final match has been yielded.
func (s *Split) Next() (string, bool) {
	m := s.finder.Next()
	if m == nil {
		if s.last > len(s.text) {
			return "", false
		}
		piece := s.text[s.last:]
		s.last = len(s.text) + 1
		return piece, true
	}
	piece := s.text[s.last:m.Start()]
	s.last = m.End()
	return piece, true
}
