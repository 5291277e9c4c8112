package record

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxTextLength is the maximum number of characters in a task's text.
const MaxTextLength = 200

// ValidateText checks that v is a non-empty string of at most MaxTextLength
// characters once surrounding whitespace is removed, and returns the
// trimmed string.
func ValidateText(v any) (string, error) {
	text, ok := v.(string)
	if !ok {
		return "", newValidationError(ErrCodeNotText, "Todo text must be a string")
	}

	trimmed := strings.TrimFunc(text, isTrimmable)
	if trimmed == "" {
		return "", newValidationError(ErrCodeEmptyText, "Todo text cannot be empty")
	}

	if textLength(trimmed) > MaxTextLength {
		return "", newValidationError(ErrCodeTooLong, "Todo text is too long (max %d characters)", MaxTextLength)
	}

	return trimmed, nil
}

// textLength counts code points of the NFC form so that a composed and a
// decomposed spelling of the same text measure the same.
func textLength(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// isTrimmable matches Unicode white space plus the byte order mark.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
