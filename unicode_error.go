package transcode

import (
	"fmt"
)

// Kind identifies which transcoding direction produced a UnicodeError.
type Kind int

const (
	// KindInvalid is the zero Kind; handlers reject it.
	KindInvalid Kind = iota
	// KindEncode marks text that cannot be represented in the target encoding.
	KindEncode
	// KindDecode marks bytes that are invalid for the source encoding.
	KindDecode
	// KindTranslate marks text that cannot be mapped by a translation.
	KindTranslate
)

func (k Kind) String() string {
	switch k {
	case KindEncode:
		return "encode error"
	case KindDecode:
		return "decode error"
	case KindTranslate:
		return "translate error"
	default:
		return "invalid error kind"
	}
}

// UnicodeError describes one transcoding failure and is the context handed
// to error handlers. It is immutable once constructed; the source object is
// shared with the caller, not copied, and handlers must not modify it.
//
// A UnicodeError is also an error: it is what a transcode operation returns
// when the failure is not recovered.
type UnicodeError struct {
	kind     Kind
	encoding string
	text     []rune // encode, translate
	data     []byte // decode
	start    int
	end      int
	reason   string
}

// NewEncodeError builds an encode failure over text[start:end].
func NewEncodeError(encoding string, text []rune, start, end int, reason string) (*UnicodeError, error) {
	if err := checkSpan(len(text), start, end); err != nil {
		return nil, err
	}
	return newEncodeError(encoding, text, start, end, reason), nil
}

// NewDecodeError builds a decode failure over data[start:end].
func NewDecodeError(encoding string, data []byte, start, end int, reason string) (*UnicodeError, error) {
	if err := checkSpan(len(data), start, end); err != nil {
		return nil, err
	}
	return newDecodeError(encoding, data, start, end, reason), nil
}

// NewTranslateError builds a translate failure over text[start:end].
// Translation involves no byte encoding, so the context has no encoding name.
func NewTranslateError(text []rune, start, end int, reason string) (*UnicodeError, error) {
	if err := checkSpan(len(text), start, end); err != nil {
		return nil, err
	}
	return newTranslateError(text, start, end, reason), nil
}

func checkSpan(n, start, end int) error {
	if start < 0 || start >= end || end > n {
		return fmt.Errorf("%w: span [%d, %d) over object of length %d", ErrInvalidContext, start, end, n)
	}
	return nil
}

func newEncodeError(encoding string, text []rune, start, end int, reason string) *UnicodeError {
	return &UnicodeError{kind: KindEncode, encoding: encoding, text: text, start: start, end: end, reason: reason}
}

func newDecodeError(encoding string, data []byte, start, end int, reason string) *UnicodeError {
	return &UnicodeError{kind: KindDecode, encoding: encoding, data: data, start: start, end: end, reason: reason}
}

func newTranslateError(text []rune, start, end int, reason string) *UnicodeError {
	return &UnicodeError{kind: KindTranslate, text: text, start: start, end: end, reason: reason}
}

// Kind returns the failure direction.
func (e *UnicodeError) Kind() Kind { return e.kind }

// Encoding returns the codec name; empty for translate failures.
func (e *UnicodeError) Encoding() string { return e.encoding }

// Text returns the source text of an encode or translate failure.
func (e *UnicodeError) Text() []rune { return e.text }

// Data returns the source bytes of a decode failure.
func (e *UnicodeError) Data() []byte { return e.data }

// Start returns the first offending index.
func (e *UnicodeError) Start() int { return e.start }

// End returns the index just past the offending span.
func (e *UnicodeError) End() int { return e.end }

// Reason returns the codec's diagnostic.
func (e *UnicodeError) Reason() string { return e.reason }

// Len returns the length of the source object in units.
func (e *UnicodeError) Len() int {
	if e.kind == KindDecode {
		return len(e.data)
	}
	return len(e.text)
}

// Unit returns the unit at index i of the source object: a codepoint for
// encode and translate failures, a byte value for decode failures.
func (e *UnicodeError) Unit(i int) rune {
	if e.kind == KindDecode {
		return rune(e.data[i])
	}
	return e.text[i]
}

// Runes returns the offending codepoints of an encode or translate failure.
func (e *UnicodeError) Runes() []rune {
	if e.kind == KindDecode {
		return nil
	}
	return e.text[e.start:e.end]
}

// Bytes returns the offending bytes of a decode failure.
func (e *UnicodeError) Bytes() []byte {
	if e.kind != KindDecode {
		return nil
	}
	return e.data[e.start:e.end]
}

func (e *UnicodeError) Error() string {
	single := e.end == e.start+1
	switch e.kind {
	case KindEncode:
		if single {
			return fmt.Sprintf("'%s' codec can't encode character '%s' in position %d: %s",
				e.encoding, escapeRune(e.text[e.start]), e.start, e.reason)
		}
		return fmt.Sprintf("'%s' codec can't encode characters in position %d-%d: %s",
			e.encoding, e.start, e.end-1, e.reason)
	case KindDecode:
		if single {
			return fmt.Sprintf("'%s' codec can't decode byte 0x%02x in position %d: %s",
				e.encoding, e.data[e.start], e.start, e.reason)
		}
		return fmt.Sprintf("'%s' codec can't decode bytes in position %d-%d: %s",
			e.encoding, e.start, e.end-1, e.reason)
	case KindTranslate:
		if single {
			return fmt.Sprintf("can't translate character '%s' in position %d: %s",
				escapeRune(e.text[e.start]), e.start, e.reason)
		}
		return fmt.Sprintf("can't translate characters in position %d-%d: %s",
			e.start, e.end-1, e.reason)
	default:
		return e.reason
	}
}

// Is reports whether target is the sentinel for this error's kind.
func (e *UnicodeError) Is(target error) bool {
	switch target {
	case ErrEncode:
		return e.kind == KindEncode
	case ErrDecode:
		return e.kind == KindDecode
	case ErrTranslate:
		return e.kind == KindTranslate
	}
	return false
}

// escapeRune renders r in backslash notation: \xHH, \uHHHH or \UHHHHHHHH.
func escapeRune(r rune) string {
	switch {
	case r >= 0 && r <= 0xff:
		return fmt.Sprintf(`\x%02x`, r)
	case r >= 0 && r <= 0xffff:
		return fmt.Sprintf(`\u%04x`, r)
	default:
		return fmt.Sprintf(`\U%08x`, uint32(r))
	}
}
