package transcode

import (
	"strconv"
	"strings"
)

// StrictErrors aborts the operation by returning exc as the error.
func StrictErrors(exc *UnicodeError) (Replacement, error) {
	if !validKind(exc) {
		return Replacement{}, mismatch(exc)
	}
	return Replacement{}, exc
}

// IgnoreErrors drops the offending span.
func IgnoreErrors(exc *UnicodeError) (Replacement, error) {
	if !validKind(exc) {
		return Replacement{}, mismatch(exc)
	}
	return Replacement{Text: "", Next: exc.end}, nil
}

// ReplaceErrors substitutes a placeholder: one "?" per codepoint when
// encoding, a single U+FFFD for the whole span when decoding, one U+FFFD per
// codepoint when translating.
func ReplaceErrors(exc *UnicodeError) (Replacement, error) {
	if !validKind(exc) {
		return Replacement{}, mismatch(exc)
	}
	n := exc.end - exc.start
	switch exc.kind {
	case KindEncode:
		return Replacement{Text: strings.Repeat("?", n), Next: exc.end}, nil
	case KindDecode:
		return Replacement{Text: "\uFFFD", Next: exc.end}, nil
	default:
		return Replacement{Text: strings.Repeat("\uFFFD", n), Next: exc.end}, nil
	}
}

// XMLCharRefReplaceErrors substitutes a decimal numeric character reference
// for each offending codepoint. Encode failures only.
func XMLCharRefReplaceErrors(exc *UnicodeError) (Replacement, error) {
	if exc == nil || exc.kind != KindEncode {
		return Replacement{}, mismatch(exc)
	}
	var b strings.Builder
	for _, r := range exc.Runes() {
		writeCharRef(&b, r)
	}
	return Replacement{Text: b.String(), Next: exc.end}, nil
}

// BackslashReplaceErrors substitutes a backslash escape for each offending
// codepoint. Encode failures only.
func BackslashReplaceErrors(exc *UnicodeError) (Replacement, error) {
	if exc == nil || exc.kind != KindEncode {
		return Replacement{}, mismatch(exc)
	}
	var b strings.Builder
	for _, r := range exc.Runes() {
		b.WriteString(escapeRune(r))
	}
	return Replacement{Text: b.String(), Next: exc.end}, nil
}

func validKind(exc *UnicodeError) bool {
	if exc == nil {
		return false
	}
	switch exc.kind {
	case KindEncode, KindDecode, KindTranslate:
		return true
	}
	return false
}

func writeCharRef(b *strings.Builder, r rune) {
	b.WriteString("&#")
	b.WriteString(strconv.FormatInt(int64(r), 10))
	b.WriteByte(';')
}
