package transcode

import (
	"bytes"
	"unicode/utf8"

	"github.com/zoobzio/transcode/unicodenames"
)

// escapeCodec is the unicode-escape textual encoding: printable ASCII as
// is, everything else as a backslash escape. Non-escape bytes decode as
// Latin-1.
type escapeCodec struct{}

func (escapeCodec) Name() string { return "unicode-escape" }

func (escapeCodec) Encode(text []rune, errors string) ([]byte, int, error) {
	e := newEncoder("unicode-escape", "illegal Unicode character", errors, appendEscaped)
	out, err := e.encode(make([]byte, 0, len(text)), text)
	if err != nil {
		return nil, 0, err
	}
	return out, len(text), nil
}

func appendEscaped(dst []byte, r rune) ([]byte, bool) {
	switch {
	case r < 0 || r > utf8.MaxRune:
		return dst, false
	case r == '\\':
		return append(dst, '\\', '\\'), true
	case r == '\t':
		return append(dst, '\\', 't'), true
	case r == '\n':
		return append(dst, '\\', 'n'), true
	case r == '\r':
		return append(dst, '\\', 'r'), true
	case r >= 0x20 && r < 0x7f:
		return append(dst, byte(r)), true
	}
	return append(dst, escapeRune(r)...), true
}

var simpleEscapes = map[byte]byte{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

func (escapeCodec) Decode(data []byte, errors string, final bool) (string, int, error) {
	d := newDecoder("unicode-escape", data, errors)
	n := len(data)
	i := 0

	for i < n {
		b := data[i]
		if b != '\\' {
			d.out.WriteRune(rune(b))
			i++
			continue
		}
		if i+1 >= n {
			if !final {
				break
			}
			next, err := d.handle(i, n, `\ at end of string`)
			if err != nil {
				return "", 0, err
			}
			i = next
			continue
		}

		c := data[i+1]
		if v, ok := simpleEscapes[c]; ok {
			d.out.WriteByte(v)
			i += 2
			continue
		}

		var (
			r      rune
			size   int
			end    int
			reason string
			more   bool
		)
		switch c {
		case '\n':
			i += 2
			continue
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i + 1
			for j < n && j < i+4 && data[j] >= '0' && data[j] <= '7' {
				r = r<<3 | rune(data[j]-'0')
				j++
			}
			if !final && j == n && j < i+4 {
				more = true
				break
			}
			d.out.WriteRune(r)
			i = j
			continue
		case 'x':
			r, size, end, more = scanHex(data, i, 2, final)
			reason = `truncated \xXX escape`
		case 'u':
			r, size, end, more = scanHex(data, i, 4, final)
			reason = `truncated \uXXXX escape`
		case 'U':
			r, size, end, more = scanHex(data, i, 8, final)
			reason = `truncated \UXXXXXXXX escape`
			if size > 0 && (r < 0 || r > utf8.MaxRune) {
				size, end, reason = 0, i+size, "illegal Unicode character"
			}
		case 'N':
			r, size, end, reason, more = scanName(data, i, final)
		default:
			d.out.WriteByte('\\')
			d.out.WriteByte(c)
			i += 2
			continue
		}

		if more {
			break
		}
		if size > 0 {
			d.out.WriteRune(r)
			i += size
			continue
		}
		next, err := d.handle(i, end, reason)
		if err != nil {
			return "", 0, err
		}
		i = next
	}
	return d.out.String(), i, nil
}

// scanHex parses the hex escape of the given digit count starting at the
// backslash at i. On success size is the escape length. On failure end
// bounds the bad span: to the end of data when fewer digits remain than
// required, otherwise through the first bad digit. more reports that
// decoding should stop and wait for input.
func scanHex(data []byte, i, digits int, final bool) (r rune, size, end int, more bool) {
	p := i + 2
	avail := len(data) - p
	if avail < digits && final {
		return 0, 0, len(data), false
	}
	for k := 0; k < digits && k < avail; k++ {
		v, ok := hexValue(data[p+k])
		if !ok {
			return 0, 0, p + k + 1, false
		}
		r = r<<4 | v
	}
	if avail < digits {
		return 0, 0, len(data), true
	}
	return r, digits + 2, 0, false
}

// scanName parses \N{NAME} starting at the backslash at i.
func scanName(data []byte, i int, final bool) (r rune, size, end int, reason string, more bool) {
	const malformed = `malformed \N character escape`
	n := len(data)
	if i+2 >= n {
		return 0, 0, n, malformed, !final
	}
	if data[i+2] != '{' {
		return 0, 0, i + 2, malformed, false
	}
	closing := bytes.IndexByte(data[i+3:], '}')
	if closing < 0 {
		return 0, 0, n, malformed, !final
	}
	if closing == 0 {
		return 0, 0, i + 4, malformed, false
	}
	nameEnd := i + 3 + closing
	r, ok := unicodenames.Lookup(string(data[i+3 : nameEnd]))
	if !ok {
		return 0, 0, nameEnd + 1, "unknown Unicode character name", false
	}
	return r, nameEnd + 1 - i, 0, "", false
}

func hexValue(c byte) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return rune(c - '0'), true
	case c >= 'a' && c <= 'f':
		return rune(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return rune(c-'A') + 10, true
	}
	return 0, false
}
