package nativeregex

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/nativeregex/codegen"
	"github.com/coregx/nativeregex/ehir"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		identifier string
	}{
		{"digits", `[0-9]+`, "Digits"},
		{"date", `(?P<y>[0-9]{4})-(?P<m>[0-9]{2})`, "Date"},
		{"word boundary", `\bword\b`, "Word"},
		{"anchored", `^start`, "Start"},
		{"capture", `h(e)llo`, "Hello"},
		{"star", `a*`, "StarA"},
		{"bounded", `a{2,4}`, "BoundedA"},
		// The template scanner used by the runtime's expand grammar.
		{"self hosted", `\$(\$)?(?:\{([^{}]*)\})?`, "CaptureTemplate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Translate(tt.pattern, tt.identifier)
			if err != nil {
				t.Fatalf("Translate(%q) error: %v", tt.pattern, err)
			}
			for _, fragment := range []string{
				"// Code generated by nativeregex. DO NOT EDIT.",
				"func New" + tt.identifier + "() *native.Engine",
				") bool {",
			} {
				if !strings.Contains(src, fragment) {
					t.Errorf("Translate(%q) output lacks %q", tt.pattern, fragment)
				}
			}
		})
	}
}

func TestTranslateWithConfig(t *testing.T) {
	cfg := codegen.DefaultConfig()
	cfg.PackageName = "patterns"

	src, err := TranslateWithConfig(`[0-9]+`, "Digits", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(src, "package patterns") {
		t.Errorf("output lacks custom package clause:\n%s", src)
	}
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		identifier string
		want       error
	}{
		{"alternation", `a|b`, "Alt", ehir.ErrAlternation},
		{"non-greedy", `a*?`, "Lazy", ehir.ErrNonGreedyRepetition},
		{"capture limit", strings.Repeat("(a)", 64), "Many", ehir.ErrCaptureLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.pattern, tt.identifier)
			if !errors.Is(err, tt.want) {
				t.Errorf("Translate(%q) error = %v, want %v", tt.pattern, err, tt.want)
			}
		})
	}
}

func TestTranslateInvalidPattern(t *testing.T) {
	_, err := Translate("(", "Broken")
	var parseErr *ehir.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ehir.ParseError", err)
	}
}

func TestTranslateInvalidIdentifier(t *testing.T) {
	_, err := Translate(`[0-9]+`, "digits")
	var identErr *codegen.IdentifierError
	if !errors.As(err, &identErr) {
		t.Fatalf("error = %v, want *codegen.IdentifierError", err)
	}
}

func TestMustTranslate(t *testing.T) {
	if src := MustTranslate(`[0-9]+`, "Digits"); src == "" {
		t.Error("MustTranslate returned empty source")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustTranslate did not panic on invalid pattern")
		}
	}()
	MustTranslate(`a|b`, "Alt")
}
