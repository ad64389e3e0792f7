package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares Vietnamese text for matching: NFC-composes diacritic
// encoding variants, lowercases, drops punctuation that carries no matching
// signal and collapses whitespace. Decimal separators and the slash in
// measurement units (0,25 mg/l, 60 km/h) are preserved. Pure function, no
// state.
func Normalize(text string) string {
	text = norm.NFC.String(text)
	text = strings.ToLower(text)

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '/':
			b.WriteRune(r)
		case r == '.' || r == ',':
			// keep only as a decimal separator
			if i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
				b.WriteRune(r)
			} else {
				b.WriteRune(' ')
			}
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
