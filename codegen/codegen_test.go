package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/nativeregex/ehir"
)

func emit(t *testing.T, pattern, identifier string, cfg Config) string {
	t.Helper()
	prog, err := ehir.LowerPattern(pattern)
	if err != nil {
		t.Fatalf("LowerPattern(%q): %v", pattern, err)
	}
	src, err := Emit(prog, pattern, identifier, cfg)
	if err != nil {
		t.Fatalf("Emit(%q): %v", pattern, err)
	}
	return src
}

// contains asserts every fragment occurs in src, ignoring differences in
// whitespace so gofmt alignment does not matter.
func contains(t *testing.T, src string, fragments ...string) {
	t.Helper()
	normalized := strings.Join(strings.Fields(src), " ")
	for _, fragment := range fragments {
		want := strings.Join(strings.Fields(fragment), " ")
		if !strings.Contains(normalized, want) {
			t.Errorf("emitted source lacks %q\n%s", fragment, src)
		}
	}
}

func TestEmitDigits(t *testing.T) {
	src := emit(t, "[0-9]+", "Digits", DefaultConfig())

	contains(t, src,
		"// Code generated by nativeregex. DO NOT EDIT.",
		"package matchers",
		`native "github.com/coregx/nativeregex/native"`,
		"func NewDigits() *native.Engine",
		"native.NewEngine(native.EngineConfig{",
		"CaptureCount: 1",
		"Step:         digitsStep",
		"func digitsStep(chars *native.Advancer, captures *native.VectorMap) bool",
		"character := chars.Advance()",
		"capture0Start := character.Index()",
		"matchCount := 0",
		"for character.HasCurrent()",
		"character.Rune() >= 48 && character.Rune() <= 57",
		"if matchCount < 1",
		"captures.Insert(0, native.Location{",
		"return true",
	)
}

func TestEmitLiteralAndPrefix(t *testing.T) {
	src := emit(t, "abc", "Abc", DefaultConfig())

	contains(t, src,
		`LiteralPrefix: "abc"`,
		"if character.Rune() != 97",
		"character = chars.Advance()",
		"return false",
	)
}

func TestEmitNamedGroups(t *testing.T) {
	src := emit(t, `(?P<y>[0-9]{4})-(?P<m>[0-9]{2})`, "Date", DefaultConfig())

	contains(t, src,
		"NamedGroups:  map[string]int{",
		`"m": 2`,
		`"y": 1`,
		"CaptureCount: 3",
		"capture1Start := character.Index()",
		"captures.Insert(1, native.Location{",
		"captures.Insert(2, native.Location{",
		"if matchCount == 4",
		"if matchCount < 4",
		"if matchCount == 2",
	)
}

func TestEmitAnchorsAndBoundaries(t *testing.T) {
	src := emit(t, `^start`, "StartAnchor", DefaultConfig())
	contains(t, src, "if !character.Previous().IsStart()")

	src = emit(t, `end$`, "EndAnchor", DefaultConfig())
	contains(t, src, "if character.HasCurrent()")

	src = emit(t, `(?m)^a`, "LineStart", DefaultConfig())
	contains(t, src, "if !(character.Previous().IsStart() || character.Previous().Rune() == 10)")

	src = emit(t, `\bword\b`, "Word", DefaultConfig())
	contains(t, src, "if !native.WordBoundaryByte(character)")

	src = emit(t, `a\Bb`, "NoBoundary", DefaultConfig())
	contains(t, src, "if native.WordBoundaryByte(character)")
}

func TestEmitQuantifierBreaks(t *testing.T) {
	src := emit(t, "a+b", "Plus", DefaultConfig())

	// Inside the quantifier loop a failed literal exits the loop.
	contains(t, src, "break")
	if strings.Count(src, "matchCount := 0") != 1 {
		t.Errorf("expected exactly one counter, source:\n%s", src)
	}
}

func TestEmitCustomConfig(t *testing.T) {
	cfg := Config{PackageName: "patterns", RuntimePath: "example.com/rt/native"}
	src := emit(t, "x", "X", cfg)

	contains(t, src,
		"package patterns",
		`native "example.com/rt/native"`,
	)
}

func TestEmitDeterministic(t *testing.T) {
	first := emit(t, `(?P<a>x)(?P<b>y)(?P<c>z)`, "Three", DefaultConfig())
	second := emit(t, `(?P<a>x)(?P<b>y)(?P<c>z)`, "Three", DefaultConfig())

	if first != second {
		t.Error("emission is not deterministic")
	}
}

func TestEmitInvalidIdentifier(t *testing.T) {
	prog, err := ehir.LowerPattern("a")
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"", "digits", "1Digits", "Digi-ts", "_Digits"} {
		_, err := Emit(prog, "a", name, DefaultConfig())
		var identErr *IdentifierError
		if !errors.As(err, &identErr) {
			t.Errorf("Emit with identifier %q: error = %v, want *IdentifierError", name, err)
		}
	}
}

func TestValidateIdentifier(t *testing.T) {
	valid := []string{"Digits", "PhoneNumber", "A", "Word2", "Ünïcode"}
	for _, name := range valid {
		if err := ValidateIdentifier(name); err != nil {
			t.Errorf("ValidateIdentifier(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "digits", "9Lives", "has space", "semi;colon", "_Hidden"}
	for _, name := range invalid {
		if err := ValidateIdentifier(name); err == nil {
			t.Errorf("ValidateIdentifier(%q) = nil, want error", name)
		}
	}
}

func TestStepFuncName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Digits", "digitsStep"},
		{"PhoneNumber", "phoneNumberStep"},
		{"A", "aStep"},
	}
	for _, tt := range tests {
		if got := stepFuncName(tt.in); got != tt.want {
			t.Errorf("stepFuncName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
