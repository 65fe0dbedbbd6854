package transcode

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"
)

type byteOrder int

const (
	orderBOM byteOrder = iota // detect on decode, write little-endian BOM on encode
	orderLE
	orderBE
)

// endian is satisfied by binary.LittleEndian and binary.BigEndian.
type endian interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

type utf16Codec struct {
	name  string
	order byteOrder
}

func (c utf16Codec) Name() string { return c.name }

func (c utf16Codec) Encode(text []rune, errors string) ([]byte, int, error) {
	var order endian = binary.LittleEndian
	out := make([]byte, 0, 2*len(text)+2)
	switch c.order {
	case orderBOM:
		out = append(out, 0xff, 0xfe)
	case orderBE:
		order = binary.BigEndian
	}

	e := newEncoder(c.name, "surrogates not allowed", errors, func(dst []byte, r rune) ([]byte, bool) {
		if !utf8.ValidRune(r) {
			return dst, false
		}
		if r < 0x10000 {
			return order.AppendUint16(dst, uint16(r)), true
		}
		hi, lo := utf16.EncodeRune(r)
		dst = order.AppendUint16(dst, uint16(hi))
		return order.AppendUint16(dst, uint16(lo)), true
	})
	out, err := e.encode(out, text)
	if err != nil {
		return nil, 0, err
	}
	return out, len(text), nil
}

func (c utf16Codec) Decode(data []byte, errors string, final bool) (string, int, error) {
	var order endian = binary.LittleEndian
	i := 0
	switch c.order {
	case orderBE:
		order = binary.BigEndian
	case orderBOM:
		if len(data) < 2 {
			if !final {
				return "", 0, nil
			}
			break
		}
		switch {
		case data[0] == 0xff && data[1] == 0xfe:
			i = 2
		case data[0] == 0xfe && data[1] == 0xff:
			order = binary.BigEndian
			i = 2
		}
	}

	d := newDecoder(c.name, data, errors)
	n := len(data)
	for i < n {
		var (
			end    int
			reason string
		)
		switch {
		case n-i < 2:
			if !final {
				return d.out.String(), i, nil
			}
			end, reason = n, "truncated data"
		default:
			u := rune(order.Uint16(data[i:]))
			if !utf16.IsSurrogate(u) {
				d.out.WriteRune(u)
				i += 2
				continue
			}
			if u >= 0xdc00 {
				end, reason = i+2, "illegal encoding"
				break
			}
			if n-i < 4 {
				if !final {
					return d.out.String(), i, nil
				}
				end, reason = n, "unexpected end of data"
				break
			}
			u2 := rune(order.Uint16(data[i+2:]))
			if u2 >= 0xdc00 && u2 <= 0xdfff {
				d.out.WriteRune(utf16.DecodeRune(u, u2))
				i += 4
				continue
			}
			end, reason = i+2, "illegal UTF-16 surrogate"
		}

		next, err := d.handle(i, end, reason)
		if err != nil {
			return "", 0, err
		}
		i = next
	}
	return d.out.String(), i, nil
}
