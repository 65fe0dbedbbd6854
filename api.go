// Package transcode provides text codecs with pluggable error recovery.
//
// When encoding text to bytes or decoding bytes to text fails at a specific
// position, the codec builds a UnicodeError describing the offending span and
// hands it to an error handler looked up by name. The handler decides how to
// proceed: substitute replacement text, skip input, abort, or resume at a
// different position.
//
// # Handlers
//
// Five handlers are registered at startup:
//
//   - strict: fail with the UnicodeError
//   - ignore: drop the offending span
//   - replace: substitute "?" (encode) or U+FFFD (decode, translate)
//   - xmlcharrefreplace: substitute &#NNNN; references (encode only)
//   - backslashreplace: substitute \xHH, \uHHHH, \UHHHHHHHH (encode only)
//
// Custom handlers are registered with Register and found with Lookup:
//
//	transcode.Register("relaxed", func(exc *transcode.UnicodeError) (transcode.Replacement, error) {
//	    if exc.Kind() == transcode.KindDecode && bytes.HasPrefix(exc.Bytes(), []byte{0xc0, 0x80}) {
//	        return transcode.Replacement{Text: "\x00", Next: exc.Start() + 2}, nil
//	    }
//	    return transcode.Replacement{}, exc
//	})
//
//	text, err := transcode.Decode(data, "utf-8", "relaxed")
//
// # Handler Protocol
//
// A handler returns either a Replacement or an error. Returning an error
// (the UnicodeError itself or any other) aborts the operation and the error
// reaches the caller unchanged. A Replacement is validated before use: its
// text must be valid UTF-8 and its Next position must satisfy
// start < Next <= len(object). Next may be less than End (retry with part of
// the span consumed) or greater (skip additional input).
//
// Encode failures are batched: a run of consecutive unencodable codepoints
// produces one UnicodeError. Encode replacement text is itself encoded with
// the target codec; for charmap encodings it is re-encoded through the same
// charmap and handler.
//
// # Codecs
//
// Built-in codecs: ascii, latin-1, iso-8859-15, cp1252, koi8-r, utf-8,
// utf-16, utf-16-le, utf-16-be and unicode-escape. Further codecs may be
// added with RegisterCodec; see the tables package for charmap codecs loaded
// from YAML, JSON or MessagePack files.
package transcode

// Replacement is a handler's successful result: text to splice into the
// output and the position at which to resume scanning the input.
type Replacement struct {
	Text string
	Next int
}

// Handler is an error recovery strategy. It receives the failure context and
// returns a Replacement, or an error to abort the operation.
type Handler func(exc *UnicodeError) (Replacement, error)

// Codec converts between text and bytes, consulting a named error handler
// on failure.
type Codec interface {
	// Name returns the canonical encoding name.
	Name() string

	// Encode converts text to bytes. It returns the number of codepoints
	// consumed, which is len(text) on success.
	Encode(text []rune, errors string) ([]byte, int, error)

	// Decode converts bytes to text. When final is false an incomplete
	// trailing sequence is left unconsumed; the returned count tells the
	// caller where to resume.
	Decode(data []byte, errors string, final bool) (string, int, error)
}
