package transcode

import (
	"strings"
)

// runeEncoder appends the encoding of r to dst. It reports false, leaving
// dst unchanged, when r cannot be represented.
type runeEncoder func(dst []byte, r rune) ([]byte, bool)

// spliceFunc appends encoded handler output to out. exc is the failure the
// replacement answers; splicers return it when the replacement itself cannot
// be encoded.
type spliceFunc func(out []byte, exc *UnicodeError, replacement string) ([]byte, error)

// encoder drives a codepoint-at-a-time encode. Consecutive unencodable
// codepoints are reported to the handler as one span.
type encoder struct {
	encoding string
	reason   string
	enc      runeEncoder
	res      *resolver
	splice   spliceFunc
}

func newEncoder(encoding, reason, errors string, enc runeEncoder) *encoder {
	e := &encoder{
		encoding: encoding,
		reason:   reason,
		enc:      enc,
		res:      &resolver{name: errors},
	}
	e.splice = e.spliceDirect
	return e
}

func (e *encoder) encode(out []byte, text []rune) ([]byte, error) {
	var scratch [8]byte
	var ok bool
	i := 0
	for i < len(text) {
		if out, ok = e.enc(out, text[i]); ok {
			i++
			continue
		}

		j := i + 1
		for j < len(text) {
			if _, ok := e.enc(scratch[:0], text[j]); ok {
				break
			}
			j++
		}

		exc := newEncodeError(e.encoding, text, i, j, e.reason)
		h, err := e.res.resolve()
		if err != nil {
			return nil, err
		}
		rep, err := call(e.res.name, h, exc)
		if err != nil {
			return nil, err
		}
		if out, err = e.splice(out, exc, rep.Text); err != nil {
			return nil, err
		}
		i = rep.Next
	}
	return out, nil
}

// spliceDirect encodes the replacement with the same encoder. A replacement
// the encoding cannot represent fails with the original error.
func (e *encoder) spliceDirect(out []byte, exc *UnicodeError, replacement string) ([]byte, error) {
	var ok bool
	for _, r := range replacement {
		if out, ok = e.enc(out, r); !ok {
			return nil, exc
		}
	}
	return out, nil
}

// decoder collects decoded text and routes failures through the handler.
type decoder struct {
	encoding string
	data     []byte
	res      *resolver
	out      strings.Builder
}

func newDecoder(encoding string, data []byte, errors string) *decoder {
	d := &decoder{
		encoding: encoding,
		data:     data,
		res:      &resolver{name: errors},
	}
	d.out.Grow(len(data))
	return d
}

// handle reports data[start:end] to the handler, appends its replacement
// and returns where decoding resumes.
func (d *decoder) handle(start, end int, reason string) (int, error) {
	exc := newDecodeError(d.encoding, d.data, start, end, reason)
	h, err := d.res.resolve()
	if err != nil {
		return 0, err
	}
	rep, err := call(d.res.name, h, exc)
	if err != nil {
		return 0, err
	}
	d.out.WriteString(rep.Text)
	return rep.Next, nil
}
