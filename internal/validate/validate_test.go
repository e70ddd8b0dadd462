package validate

import (
	"strings"
	"testing"
)

func TestPrompt_Valid(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{"short greeting", "Halo"},
		{"minimum length", "Hi"},
		{"surrounding whitespace", "   apa kabar?   "},
		{"maximum length", strings.Repeat("a", 4000)},
		{"mentions sql words without shape", "jelaskan apa itu tabel database"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if errs := Prompt(tc.prompt); len(errs) != 0 {
				t.Errorf("expected no violations, got %v", errs)
			}
		})
	}
}

func TestPrompt_Violations(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		first  string
	}{
		{"empty", "", MsgEmpty},
		{"whitespace only", "   \n\t  ", MsgEmpty},
		{"too long", strings.Repeat("a", 4001), MsgTooLong},
		{"too short", "a", MsgTooShort},
		{"eval call", "eval(process.env)", MsgDisallowed},
		{"drop table", "'; DROP TABLE users; --", MsgDisallowed},
		{"select from", "SELECT password FROM users", MsgDisallowed},
		{"script tag", "<script>alert(1)</script>", MsgDisallowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := Prompt(tc.prompt)
			if len(errs) == 0 {
				t.Fatal("expected violations, got none")
			}
			if errs[0] != tc.first {
				t.Errorf("expected first violation %q, got %q", tc.first, errs[0])
			}
		})
	}
}

func TestPrompt_PatternCheckShortCircuits(t *testing.T) {
	// Matches both the exec and drop-table patterns; only one violation is reported.
	errs := Prompt("exec(x); DROP TABLE users")
	count := 0
	for _, e := range errs {
		if e == MsgDisallowed {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly 1 disallowed-content violation, got %d", count)
	}
}

func TestPrompt_LengthCountsRunes(t *testing.T) {
	// 4000 multi-byte runes are still within the limit.
	if errs := Prompt(strings.Repeat("é", 4000)); len(errs) != 0 {
		t.Errorf("expected no violations for 4000 runes, got %v", errs)
	}
	if errs := Prompt(strings.Repeat("é", 4001)); len(errs) == 0 || errs[0] != MsgTooLong {
		t.Errorf("expected too-long violation for 4001 runes, got %v", errs)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips angle brackets", "a <b> c", "a b c"},
		{"strips javascript protocol", "javascript:alert(1)", "alert(1)"},
		{"strips event handlers", "img onerror=x", "img x"},
		{"strips null bytes", "a\x00b", "ab"},
		{"trims whitespace", "  halo  ", "halo"},
		{"plain text untouched", "apa kabar?", "apa kabar?"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.input); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"halo dunia",
		"<div onclick=javascript:x>teks</div>",
		"  spasi  ",
		"a\x00<b>javascript:onload=c",
		// Removing the inner match must not splice a fresh one together.
		"oonload=nload=x",
		"javascrjavascript:ipt:alert(1)",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
