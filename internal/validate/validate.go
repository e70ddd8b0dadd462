// Package validate checks and sanitizes user prompts before they reach the
// upstream completion API.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxPromptLength is the maximum prompt length after trimming.
	MaxPromptLength = 4000
	// MinPromptLength is the minimum prompt length after trimming.
	MinPromptLength = 2
)

// Violation messages surfaced to users.
const (
	MsgEmpty      = "Prompt tidak boleh kosong."
	MsgTooLong    = "Prompt terlalu panjang. Maksimal 4000 karakter."
	MsgTooShort   = "Prompt terlalu pendek. Minimal 2 karakter."
	MsgDisallowed = "Input mengandung konten yang tidak diizinkan."
	MsgNotString  = "Prompt harus berupa string yang valid."
)

// suspiciousPatterns rejects prompts that look like code execution, destructive
// SQL, SQL injection, or embedded script tags.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(eval|exec|system|shell_exec)\s*\(`),
	regexp.MustCompile(`(?i)\b(drop|delete|truncate|alter)\s+table\b`),
	regexp.MustCompile(`(?i)\b(union|select|insert|update)\s+.*from\b`),
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
}

// Prompt returns the list of violations for a candidate prompt, in evaluation
// order. An empty list means the prompt is valid. Callers surface only the
// first violation.
func Prompt(prompt string) []string {
	var errs []string

	trimmed := strings.TrimSpace(prompt)
	length := utf8.RuneCountInString(trimmed)

	if length == 0 {
		errs = append(errs, MsgEmpty)
	}
	if length > MaxPromptLength {
		errs = append(errs, MsgTooLong)
	}
	if length < MinPromptLength {
		errs = append(errs, MsgTooShort)
	}

	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(trimmed) {
			errs = append(errs, MsgDisallowed)
			break
		}
	}

	return errs
}

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	jsProtocol    = regexp.MustCompile(`(?i)javascript:`)
	eventHandlers = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// Sanitize strips potentially dangerous fragments from a prompt that already
// passed validation. Runs to a fixpoint so removals cannot splice a new match
// together; idempotent.
func Sanitize(prompt string) string {
	s := prompt
	for {
		next := sanitizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func sanitizeOnce(s string) string {
	s = angleBrackets.ReplaceAllString(s, "")
	s = jsProtocol.ReplaceAllString(s, "")
	s = eventHandlers.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}
