package transcode

// IncrementalDecoder decodes a byte stream delivered in chunks. Sequences
// split across chunk boundaries are held back until the rest arrives.
// An IncrementalDecoder is not safe for concurrent use.
type IncrementalDecoder struct {
	codec   Codec
	errors  string
	pending []byte
	started bool
}

// NewIncrementalDecoder returns a decoder for the named codec and handler.
func NewIncrementalDecoder(encoding, errors string) (*IncrementalDecoder, error) {
	c, err := LookupCodec(encoding)
	if err != nil {
		return nil, err
	}
	return &IncrementalDecoder{codec: c, errors: errors}, nil
}

// Decode decodes data following any held-back bytes. With final set, an
// incomplete trailing sequence is reported to the handler instead of held.
// Positions in a returned *UnicodeError are relative to the held-back bytes
// followed by data.
func (d *IncrementalDecoder) Decode(data []byte, final bool) (string, error) {
	buf := data
	if len(d.pending) > 0 {
		buf = append(d.pending, data...)
	}

	text, n, err := d.codec.Decode(buf, d.errors, final)
	if err != nil {
		d.pending = nil
		return "", err
	}
	if n > 0 && !d.started {
		d.started = true
		d.fixByteOrder(buf)
	}
	d.pending = append([]byte(nil), buf[n:]...)
	return text, nil
}

// fixByteOrder pins a BOM-detecting UTF-16 codec to the order found at the
// start of the stream so later chunks are not mistaken for a BOM.
func (d *IncrementalDecoder) fixByteOrder(head []byte) {
	c, ok := d.codec.(utf16Codec)
	if !ok || c.order != orderBOM {
		return
	}
	c.order = orderLE
	if len(head) >= 2 && head[0] == 0xfe && head[1] == 0xff {
		c.order = orderBE
	}
	d.codec = c
}

// Pending returns the number of held-back bytes.
func (d *IncrementalDecoder) Pending() int {
	return len(d.pending)
}

// Reset discards held-back bytes and any detected byte order.
func (d *IncrementalDecoder) Reset() {
	d.pending = nil
	if d.started {
		if c, ok := d.codec.(utf16Codec); ok {
			if orig, err := LookupCodec(c.name); err == nil {
				d.codec = orig
			}
		}
	}
	d.started = false
}
