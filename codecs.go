package transcode

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	codecs   = make(map[string]Codec)
	codecsMu sync.RWMutex
)

func init() {
	builtin := []struct {
		codec   Codec
		aliases []string
	}{
		{asciiCodec(), []string{"us-ascii", "646"}},
		{latin1Codec(), []string{"latin1", "iso-8859-1", "iso8859-1", "l1"}},
		{isoTableCodec("iso-8859-15", charmap.ISO8859_15), []string{"iso8859-15", "latin-9", "latin9"}},
		{tableCodec("cp1252", charmap.Windows1252), []string{"windows-1252"}},
		{tableCodec("koi8-r", charmap.KOI8R), []string{"koi8r"}},
		{utf8Codec{}, []string{"utf8", "u8"}},
		{utf16Codec{name: "utf-16", order: orderBOM}, []string{"utf16"}},
		{utf16Codec{name: "utf-16-le", order: orderLE}, []string{"utf-16le"}},
		{utf16Codec{name: "utf-16-be", order: orderBE}, []string{"utf-16be"}},
		{escapeCodec{}, nil},
	}
	for _, b := range builtin {
		codecs[b.codec.Name()] = b.codec
		for _, alias := range b.aliases {
			codecs[alias] = b.codec
		}
	}
}

// RegisterCodec makes c available to Encode and Decode under its name and
// any aliases. Names are normalised: case-insensitive, with '_' and ' '
// treated as '-'. A later registration replaces an earlier one.
func RegisterCodec(c Codec, aliases ...string) {
	codecsMu.Lock()
	defer codecsMu.Unlock()
	codecs[normalizeEncoding(c.Name())] = c
	for _, alias := range aliases {
		codecs[normalizeEncoding(alias)] = c
	}
}

// LookupCodec returns the codec registered under name.
// Returns a *LookupError wrapping ErrUnknownEncoding if there is none.
func LookupCodec(name string) (Codec, error) {
	codecsMu.RLock()
	c, ok := codecs[normalizeEncoding(name)]
	codecsMu.RUnlock()
	if !ok {
		return nil, newLookupError(ErrUnknownEncoding, name)
	}
	return c, nil
}

func normalizeEncoding(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "-", " ", "-").Replace(name)
}

// Encode encodes text with the named codec, using the named error handler
// for unencodable codepoints.
//
// Bytes of text that are not valid UTF-8 are carried as the lone surrogates
// U+DC80-U+DCFF (byte 0xNN becomes U+DCNN), which no built-in byte codec
// can encode, so they reach the handler instead of being replaced silently.
// unicode-escape renders them as \udcNN.
func Encode(text string, encoding, errors string) ([]byte, error) {
	return EncodeRunes(toRunes(text), encoding, errors)
}

// toRunes is []rune(text) with invalid bytes escaped to U+DC80-U+DCFF.
func toRunes(text string) []rune {
	if utf8.ValidString(text) {
		return []rune(text)
	}
	out := make([]rune, 0, len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			r = 0xdc00 + rune(text[i])
		}
		out = append(out, r)
		i += size
	}
	return out
}

// EncodeRunes is Encode for a codepoint slice. Unlike a string, a slice can
// carry surrogate codepoints.
func EncodeRunes(text []rune, encoding, errors string) ([]byte, error) {
	c, err := LookupCodec(encoding)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, _, err := c.Encode(text, errors)
	emitEncodeComplete(context.Background(), c.Name(), errors, len(out), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decode decodes data with the named codec, using the named error handler
// for invalid input.
func Decode(data []byte, encoding, errors string) (string, error) {
	c, err := LookupCodec(encoding)
	if err != nil {
		return "", err
	}
	start := time.Now()
	text, _, err := c.Decode(data, errors, true)
	emitDecodeComplete(context.Background(), c.Name(), errors, len(data), time.Since(start), err)
	if err != nil {
		return "", err
	}
	return text, nil
}

// singleByte is a codec mapping each codepoint to at most one byte.
type singleByte struct {
	name         string
	encodeReason string
	decodeReason string
	encodeRune   func(r rune) (byte, bool)
	decodeByte   func(b byte) (rune, bool)
}

func asciiCodec() *singleByte {
	const reason = "ordinal not in range(128)"
	return &singleByte{
		name:         "ascii",
		encodeReason: reason,
		decodeReason: reason,
		encodeRune: func(r rune) (byte, bool) {
			return byte(r), r >= 0 && r < utf8.RuneSelf
		},
		decodeByte: func(b byte) (rune, bool) {
			return rune(b), b < utf8.RuneSelf
		},
	}
}

func latin1Codec() *singleByte {
	return &singleByte{
		name:         "latin-1",
		encodeReason: "ordinal not in range(256)",
		encodeRune: func(r rune) (byte, bool) {
			return byte(r), r >= 0 && r <= 0xff
		},
		decodeByte: func(b byte) (rune, bool) {
			return rune(b), true
		},
	}
}

// tableCodec adapts an x/text single-byte charmap.
func tableCodec(name string, cm *charmap.Charmap) *singleByte {
	const reason = "character maps to <undefined>"
	return &singleByte{
		name:         name,
		encodeReason: reason,
		decodeReason: reason,
		encodeRune:   cm.EncodeRune,
		decodeByte: func(b byte) (rune, bool) {
			r := cm.DecodeByte(b)
			return r, r != utf8.RuneError
		},
	}
}

// isoTableCodec adapts an ISO-8859 charmap. x/text leaves 0x80-0x9F
// undefined there; they are the C1 controls and map to themselves.
func isoTableCodec(name string, cm *charmap.Charmap) *singleByte {
	c := tableCodec(name, cm)
	c.encodeRune = func(r rune) (byte, bool) {
		if isC1(r) {
			return byte(r), true
		}
		return cm.EncodeRune(r)
	}
	c.decodeByte = func(b byte) (rune, bool) {
		if isC1(rune(b)) {
			return rune(b), true
		}
		r := cm.DecodeByte(b)
		return r, r != utf8.RuneError
	}
	return c
}

func isC1(r rune) bool {
	return r >= 0x80 && r <= 0x9f
}

func (c *singleByte) Name() string { return c.name }

func (c *singleByte) Encode(text []rune, errors string) ([]byte, int, error) {
	e := newEncoder(c.name, c.encodeReason, errors, func(dst []byte, r rune) ([]byte, bool) {
		b, ok := c.encodeRune(r)
		if !ok {
			return dst, false
		}
		return append(dst, b), true
	})
	out, err := e.encode(make([]byte, 0, len(text)), text)
	if err != nil {
		return nil, 0, err
	}
	return out, len(text), nil
}

func (c *singleByte) Decode(data []byte, errors string, _ bool) (string, int, error) {
	d := newDecoder(c.name, data, errors)
	for i := 0; i < len(data); {
		if r, ok := c.decodeByte(data[i]); ok {
			d.out.WriteRune(r)
			i++
			continue
		}
		next, err := d.handle(i, i+1, c.decodeReason)
		if err != nil {
			return "", 0, err
		}
		i = next
	}
	return d.out.String(), len(data), nil
}
