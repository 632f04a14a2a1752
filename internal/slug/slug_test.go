package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Acme", "acme"},
		{"spaces", "Acme Panels", "acme-panels"},
		{"punctuation", "Acme Panels, Inc.", "acme-panels-inc"},
		{"multiple spaces", "Acme   Panels", "acme-panels"},
		{"existing hyphens", "Acme--Panels", "acme-panels"},
		{"leading trailing", "  Acme Panels  ", "acme-panels"},
		{"mixed case", "ACME pAnElS", "acme-panels"},
		{"digits", "Acme 508A Shop", "acme-508a-shop"},
		{"unicode dropped", "Çontrôl Systèms", "ontrl-systms"},
		{"empty", "", DefaultToken},
		{"only punctuation", "!!!", DefaultToken},
		{"only hyphens", "---", DefaultToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.input); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMake_Charset(t *testing.T) {
	inputs := []string{
		"Acme Panels, Inc.",
		"Übermensch GmbH & Co. KG",
		"  --- weird --- input ---  ",
		"tabs\tand\nnewlines",
	}

	for _, in := range inputs {
		got := Make(in)
		if got == "" {
			t.Errorf("Make(%q) returned empty string", in)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Make(%q) = %q has a leading or trailing hyphen", in, got)
		}
		if strings.Contains(got, "--") {
			t.Errorf("Make(%q) = %q has consecutive hyphens", in, got)
		}
		for _, r := range got {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
				t.Errorf("Make(%q) = %q contains disallowed rune %q", in, got, r)
			}
		}
	}
}
