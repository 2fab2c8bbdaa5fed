// Package nativeregex compiles regular expressions ahead of time into Go
// source code.
//
// Translate turns a pattern into a standalone matcher: a source file that,
// compiled together with the runtime package native, exposes the usual regex
// operations (IsMatch, Find, FindIter, Captures, CapturesIter, Split,
// Replace) for that one pattern. There is no matching machinery left at run
// time beyond a scan loop driving the emitted step function.
//
// Basic usage:
//
//	src, err := nativeregex.Translate(`(?P<area>[0-9]{3})-[0-9]{4}`, "PhoneNumber")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("phone_number.go", []byte(src), 0o644)
//
// The emitted file provides:
//
//	func NewPhoneNumber() *native.Engine
//
// Matching is greedy with no backtracking: a quantifier commits to the
// longest run its body can consume and never reattempts with less. This
// keeps emitted matchers linear and allocation-free per attempt, and it is
// why alternation and non-greedy quantifiers are compile-time errors rather
// than supported constructs.
//
// Limitations:
//   - No alternation (a|b) and no non-greedy quantifiers (a*?).
//   - No lookaround.
//   - At most 63 capture slots, including the whole match.
package nativeregex

import (
	"github.com/coregx/nativeregex/codegen"
	"github.com/coregx/nativeregex/ehir"
)

// Translate compiles pattern and returns Go source implementing its matcher
// under the given identifier.
//
// The identifier names the emitted constructor (New<identifier>) and must be
// an exported Go identifier. Errors are returned for invalid patterns,
// invalid identifiers and for constructs matching cannot support
// (ehir.ErrAlternation, ehir.ErrNonGreedyRepetition, ehir.ErrCaptureLimit).
//
// Example:
//
//	src, err := nativeregex.Translate(`[0-9]+`, "Digits")
func Translate(pattern, identifier string) (string, error) {
	return TranslateWithConfig(pattern, identifier, codegen.DefaultConfig())
}

// TranslateWithConfig is Translate with explicit emission configuration,
// e.g. a custom package name for the emitted file.
//
// Example:
//
//	cfg := codegen.DefaultConfig()
//	cfg.PackageName = "patterns"
//	src, err := nativeregex.TranslateWithConfig(`[0-9]+`, "Digits", cfg)
func TranslateWithConfig(pattern, identifier string, cfg codegen.Config) (string, error) {
	prog, err := ehir.LowerPattern(pattern)
	if err != nil {
		return "", err
	}
	return codegen.Emit(prog, pattern, identifier, cfg)
}

// MustTranslate is Translate but panics on error.
//
// This is useful in generators for patterns known to be valid.
func MustTranslate(pattern, identifier string) string {
	src, err := Translate(pattern, identifier)
	if err != nil {
		panic("nativeregex: Translate(" + pattern + "): " + err.Error())
	}
	return src
}
