package transcode

import (
	"errors"
)

// EncodingMap maps codepoints to byte sequences. A codepoint with no entry
// cannot be encoded; an empty sequence encodes to nothing.
type EncodingMap map[rune][]byte

// DecodingMap maps bytes to text. A byte with no entry, or mapped to
// U+FFFE, cannot be decoded; an empty string decodes to nothing.
type DecodingMap map[byte]string

// undefinedMapping marks a byte with no decoding in a decoding table.
const undefinedMapping = "\uFFFE"

// maxCharmapDepth bounds how deeply handler output is re-encoded through a
// charmap. Output still unencodable at the limit fails with the original
// error.
const maxCharmapDepth = 4

const charmapReason = "character maps to <undefined>"

// DecodingTable builds a DecodingMap from a table of up to 256 codepoints
// indexed by byte value. U+FFFE entries are left undefined.
func DecodingTable(table string) DecodingMap {
	m := make(DecodingMap, 256)
	b := 0
	for _, r := range table {
		if b > 0xff {
			break
		}
		if s := string(r); s != undefinedMapping {
			m[byte(b)] = s
		}
		b++
	}
	return m
}

// Inverse builds the EncodingMap of a DecodingMap. Entries decoding to a
// single codepoint are inverted; for codepoints reachable from several bytes
// the lowest byte wins.
func (m DecodingMap) Inverse() EncodingMap {
	enc := make(EncodingMap, len(m))
	for b := 0xff; b >= 0; b-- {
		s, ok := m[byte(b)]
		if !ok || s == undefinedMapping {
			continue
		}
		rs := []rune(s)
		if len(rs) == 1 {
			enc[rs[0]] = []byte{byte(b)}
		}
	}
	return enc
}

// CharmapEncode encodes text through m under the named handler and reports
// the codepoints consumed. Handler output is re-encoded through the same
// charmap and handler, so a handler's replacement must itself be mappable:
// to use "replace", m needs an entry for '?'.
func CharmapEncode(text []rune, handler string, m EncodingMap) ([]byte, int, error) {
	return charmapEncode("charmap", text, handler, m)
}

// CharmapDecode decodes data through m under the named handler and reports
// the bytes consumed.
func CharmapDecode(data []byte, handler string, m DecodingMap) (string, int, error) {
	return charmapDecode("charmap", data, handler, m)
}

func charmapEncode(name string, text []rune, handler string, m EncodingMap) ([]byte, int, error) {
	e := newEncoder(name, charmapReason, handler, func(dst []byte, r rune) ([]byte, bool) {
		b, ok := m[r]
		if !ok {
			return dst, false
		}
		return append(dst, b...), true
	})
	e.splice = nestedSplice(e, 0)

	out, err := e.encode(make([]byte, 0, len(text)), text)
	if err != nil {
		return nil, 0, err
	}
	return out, len(text), nil
}

// nestedSplice re-runs the encoder over handler output. A failure the
// inner pass raised over the replacement itself, or nesting past
// maxCharmapDepth, reports the original error. Errors a handler built on
// its own pass through unchanged.
func nestedSplice(e *encoder, depth int) spliceFunc {
	return func(out []byte, exc *UnicodeError, replacement string) ([]byte, error) {
		if depth >= maxCharmapDepth {
			return e.spliceDirect(out, exc, replacement)
		}
		inner := &encoder{
			encoding: e.encoding,
			reason:   e.reason,
			enc:      e.enc,
			res:      e.res,
		}
		inner.splice = nestedSplice(inner, depth+1)

		runes := []rune(replacement)
		res, err := inner.encode(out, runes)
		var nested *UnicodeError
		if errors.As(err, &nested) && sameText(nested.text, runes) {
			return nil, exc
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}

func sameText(a, b []rune) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

func charmapDecode(name string, data []byte, handler string, m DecodingMap) (string, int, error) {
	d := newDecoder(name, data, handler)
	for i := 0; i < len(data); {
		if s, ok := m[data[i]]; ok && s != undefinedMapping {
			d.out.WriteString(s)
			i++
			continue
		}
		next, err := d.handle(i, i+1, charmapReason)
		if err != nil {
			return "", 0, err
		}
		i = next
	}
	return d.out.String(), len(data), nil
}

// charmapCodec is a named Codec over caller-supplied maps.
type charmapCodec struct {
	name string
	enc  EncodingMap
	dec  DecodingMap
}

// NewCharmapCodec returns a Codec encoding through enc and decoding through
// dec. A nil enc is derived from dec.
func NewCharmapCodec(name string, enc EncodingMap, dec DecodingMap) Codec {
	if enc == nil {
		enc = dec.Inverse()
	}
	return &charmapCodec{name: normalizeEncoding(name), enc: enc, dec: dec}
}

func (c *charmapCodec) Name() string { return c.name }

func (c *charmapCodec) Encode(text []rune, handler string) ([]byte, int, error) {
	return charmapEncode(c.name, text, handler, c.enc)
}

func (c *charmapCodec) Decode(data []byte, handler string, _ bool) (string, int, error) {
	return charmapDecode(c.name, data, handler, c.dec)
}
