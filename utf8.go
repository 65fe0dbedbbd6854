package transcode

import (
	"unicode/utf8"
)

// utf8Codec is UTF-8 with strict validation: overlong forms, surrogates and
// codepoints above U+10FFFF are reported, covering the whole sequence, so a
// handler can inspect and accept them.
type utf8Codec struct{}

func (utf8Codec) Name() string { return "utf-8" }

func (utf8Codec) Encode(text []rune, errors string) ([]byte, int, error) {
	e := newEncoder("utf-8", "surrogates not allowed", errors, appendUTF8)
	out, err := e.encode(make([]byte, 0, len(text)), text)
	if err != nil {
		return nil, 0, err
	}
	return out, len(text), nil
}

func appendUTF8(dst []byte, r rune) ([]byte, bool) {
	if !utf8.ValidRune(r) {
		return dst, false
	}
	return utf8.AppendRune(dst, r), true
}

// minRune is the smallest codepoint that needs a sequence of the given length.
var minRune = [5]rune{0, 0, 0x80, 0x800, 0x10000}

// utf8SeqLen returns the sequence length announced by a lead byte, or 0 for
// bytes that cannot start a sequence.
func utf8SeqLen(b byte) int {
	switch {
	case b >= 0xc0 && b <= 0xdf:
		return 2
	case b >= 0xe0 && b <= 0xef:
		return 3
	case b >= 0xf0 && b <= 0xf7:
		return 4
	}
	return 0
}

func (utf8Codec) Decode(data []byte, errors string, final bool) (string, int, error) {
	d := newDecoder("utf-8", data, errors)
	n := len(data)
	i := 0

	for i < n {
		b := data[i]
		if b < utf8.RuneSelf {
			d.out.WriteByte(b)
			i++
			continue
		}

		var (
			end    int
			reason string
		)
		size := utf8SeqLen(b)
		k := 1
		for size > 0 && k < size && i+k < n && data[i+k]&0xc0 == 0x80 {
			k++
		}

		switch {
		case size == 0:
			end, reason = i+1, "invalid start byte"
		case k < size && i+k < n:
			end, reason = i+k, "invalid continuation byte"
		case k < size:
			if !final {
				return d.out.String(), i, nil
			}
			end, reason = n, "unexpected end of data"
		default:
			r := rune(b) & (0x7f >> size)
			for _, c := range data[i+1 : i+size] {
				r = r<<6 | rune(c&0x3f)
			}
			if r >= minRune[size] && utf8.ValidRune(r) {
				d.out.WriteRune(r)
				i += size
				continue
			}
			end, reason = i+size, "illegal encoding"
		}

		next, err := d.handle(i, end, reason)
		if err != nil {
			return "", 0, err
		}
		i = next
	}
	return d.out.String(), i, nil
}
