package promo

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MinLength is the shortest code worth sending to the service.
const MinLength = 3

// Normalize trims and uppercases a raw promo input. NFC composition keeps
// "Ё" typed as E+diaeresis equal to the precomposed letter.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(norm.NFC.String(raw))
	if trimmed == "" {
		return ""
	}
	return cases.Upper(language.Und).String(trimmed)
}

// CheckFormat validates a normalized code locally. It returns the message to
// show, or "" when the code may be sent for validation.
func CheckFormat(code string) string {
	if utf8.RuneCountInString(code) < MinLength {
		return MsgTooShort
	}
	for _, r := range code {
		if !allowedRune(r) {
			return MsgBadChars
		}
	}
	return ""
}

// allowedRune accepts uppercase Latin and Cyrillic letters and ASCII digits.
func allowedRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 'А' && r <= 'Я':
		return true
	case r == 'Ё':
		return true
	}
	return false
}
