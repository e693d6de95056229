package pattern

import (
	"regexp"
	"testing"
)

func TestEscape_MarkerAlphabet(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~~", want: "~~"},
		{in: "**", want: `\*\*`},
		{in: "## ", want: `\#\# `},
		{in: "{num}. ", want: `\{num\}\. `},
		{in: "(a)/$&", want: `\(a\)\/\$\&`},
		{in: "- [ ] ", want: `- \[ \] `},
		{in: `a\b`, want: `a\\b`},
		{in: "^+?|", want: `\^\+\?\|`},
	}

	for _, tc := range cases {
		if got := Escape(tc.in); got != tc.want {
			t.Fatalf("Escape(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscape_CompilesAsLiteral(t *testing.T) {
	markers := []string{"**", "*", "~~", "`", "# ", "###### ", "> ", "{num}. ", "- [ ] ", "[x](y)", "$.&/#"}
	for _, m := range markers {
		re, err := regexp.Compile("^" + Escape(m) + "$")
		if err != nil {
			t.Fatalf("compile %q: %v", m, err)
		}
		if !re.MatchString(m) {
			t.Fatalf("escaped %q does not match itself", m)
		}
	}
}

func TestHasPrefixSuffix(t *testing.T) {
	if !HasPrefix("**bold**", "**") {
		t.Fatalf("expected ** prefix")
	}
	if HasPrefix("*it*", "**") {
		t.Fatalf("unexpected ** prefix on single star")
	}
	if !HasSuffix("**bold**", "**") {
		t.Fatalf("expected ** suffix")
	}
	// '.' must not act as a wildcard.
	if HasPrefix("1x ", "1. ") {
		t.Fatalf("dot matched as wildcard")
	}
	if HasPrefix("anything", "") || HasSuffix("anything", "") {
		t.Fatalf("empty marker must never be present")
	}
}

func TestTrimPrefixSuffix_RemovesOneOccurrence(t *testing.T) {
	if got, want := TrimPrefix("## ## x", "## "), "## x"; got != want {
		t.Fatalf("TrimPrefix: got %q, want %q", got, want)
	}
	if got, want := TrimSuffix("a~~~~", "~~"), "a~~"; got != want {
		t.Fatalf("TrimSuffix: got %q, want %q", got, want)
	}
	if got, want := TrimPrefix("x", ""), "x"; got != want {
		t.Fatalf("TrimPrefix empty marker: got %q, want %q", got, want)
	}
}
