package native

import (
	"strings"
	"testing"
)

func TestReplaceTemplate(t *testing.T) {
	tests := []struct {
		name     string
		engine   *Engine
		input    string
		template string
		want     string
	}{
		{"group reference", newHello(), "hello hello", "${1}!", "e! e!"},
		{"named groups", newDate(), "on 2020-07 ok", "${m}/${y}", "on 07/2020 ok"},
		{"whole match", newDigits(), "a 12 b", "<${0}>", "a <12> b"},
		{"escaped dollar", newDigits(), "a 12 b", "$$", "a $ b"},
		{"missing group empty", newDigits(), "a 12 b", "${9}x", "a x b"},
		{"no match", newDigits(), "plain", "X", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.engine.ReplaceAll(tt.input, tt.template)
			if got != tt.want {
				t.Errorf("ReplaceAll(%q, %q) = %q, want %q", tt.input, tt.template, got, tt.want)
			}
		})
	}
}

func TestReplaceFunc(t *testing.T) {
	re := newDigits()

	got := re.Replace("1 22 333", ReplacerFunc(func(caps *Captures) string {
		return strings.Repeat("#", caps.First().Len())
	}))
	if got != "# ## ###" {
		t.Errorf("Replace() = %q, want %q", got, "# ## ###")
	}

	// Replacing every match with itself is the identity.
	inputs := []string{"", "1 22 333", "no digits", "7"}
	identity := ReplacerFunc(func(caps *Captures) string {
		return caps.First().String()
	})
	for _, input := range inputs {
		if got := re.Replace(input, identity); got != input {
			t.Errorf("identity Replace(%q) = %q", input, got)
		}
	}
}

func TestReplaceNoExpand(t *testing.T) {
	re := newDigits()

	got := re.Replace("a 12 b", NoExpand("${0}"))
	if got != "a ${0} b" {
		t.Errorf("Replace() = %q, want %q", got, "a ${0} b")
	}
}

func TestExpand(t *testing.T) {
	caps := newDate().Captures("2020-07")
	if caps == nil {
		t.Fatal("Captures() = nil, want match")
	}

	tests := []struct {
		template string
		want     string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"${y}", "2020"},
		{"${m}/${y}", "07/2020"},
		{"${0}", "2020-07"},
		{"${1}-${2}", "2020-07"},
		{"$$${y}", "$2020"},
		{"$$", "$"},
		{"${missing}", ""},
		{"${42}", ""},
		// A bare dollar consumes only itself; the braced form is the only
		// group reference.
		{"a$b", "ab"},
		{"$y", "y"},
	}

	for _, tt := range tests {
		var b strings.Builder
		caps.Expand(tt.template, &b)
		if b.String() != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.template, b.String(), tt.want)
		}
	}
}

func TestTemplateEngineSelfHosted(t *testing.T) {
	tests := []struct {
		input     string
		wantMatch bool
		wantSpan  [2]int
		group1    string
		group2    string
	}{
		{"$$", true, [2]int{0, 2}, "$", ""},
		{"${abc}", true, [2]int{0, 6}, "", "abc"},
		{"x${y}z", true, [2]int{1, 5}, "", "y"},
		{"$", true, [2]int{0, 1}, "", ""},
		{"no dollars", false, [2]int{}, "", ""},
	}

	for _, tt := range tests {
		caps := templateEngine.Captures(tt.input)
		if (caps != nil) != tt.wantMatch {
			t.Errorf("Captures(%q) match = %v, want %v", tt.input, caps != nil, tt.wantMatch)
			continue
		}
		if caps == nil {
			continue
		}
		first := caps.First()
		if first.Start() != tt.wantSpan[0] || first.End() != tt.wantSpan[1] {
			t.Errorf("Captures(%q) span = (%d,%d), want %v", tt.input, first.Start(), first.End(), tt.wantSpan)
		}
		got1 := ""
		if m := caps.Get(1); m != nil {
			got1 = m.String()
		}
		got2 := ""
		if m := caps.Get(2); m != nil {
			got2 = m.String()
		}
		if got1 != tt.group1 || got2 != tt.group2 {
			t.Errorf("Captures(%q) groups = (%q,%q), want (%q,%q)", tt.input, got1, got2, tt.group1, tt.group2)
		}
	}
}
