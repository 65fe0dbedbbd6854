package transcode_test

import (
	"errors"
	"testing"

	"github.com/zoobzio/transcode"
)

func TestUnicodeEscape_Encode(t *testing.T) {
	out, err := transcode.Encode("a\\b\t\n\x01é\u3042\U0001F600", "unicode-escape", "strict")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := `a\\b\t\n\x01\xe9\u3042\U0001f600`
	if string(out) != want {
		t.Errorf("Encode() = %q, want %q", out, want)
	}
}

func TestUnicodeEscape_EncodeInvalidRune(t *testing.T) {
	_, err := transcode.EncodeRunes([]rune{'a', -1}, "unicode-escape", "strict")
	var exc *transcode.UnicodeError
	if !errors.As(err, &exc) {
		t.Fatalf("EncodeRunes() error = %v, want *UnicodeError", err)
	}
	if exc.Start() != 1 || exc.Reason() != "illegal Unicode character" {
		t.Errorf("got position %d %q", exc.Start(), exc.Reason())
	}
}

func TestUnicodeEscape_Decode(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"plain", "abc", "abc"},
		{"latin-1 bytes", "\xe9", "\u00e9"},
		{"simple escapes", `\\\'\"\a\b\f\n\r\t\v`, "\\'\"\a\b\f\n\r\t\v"},
		{"line continuation", "a\\\nb", "ab"},
		{"octal", `\101\7\0`, "A\x07\x00"},
		{"hex", `\x41\xe9`, "A\u00e9"},
		{"bmp", `\u3042`, "\u3042"},
		{"astral", `\U0001F600`, "\U0001F600"},
		{"named", `\N{EURO SIGN}\N{latin small letter a}`, "\u20aca"},
		{"named ideograph", `\N{CJK UNIFIED IDEOGRAPH-8000}`, "\u8000"},
		{"unknown escape kept", `\q\z`, `\q\z`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := transcode.Decode([]byte(tt.data), "unicode-escape", "strict")
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if text != tt.want {
				t.Errorf("Decode() = %q, want %q", text, tt.want)
			}
		})
	}
}

func TestUnicodeEscape_DecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		start  int
		end    int
		reason string
	}{
		{"trailing backslash", `ab\`, 2, 3, `\ at end of string`},
		{"short hex at end", `\x4`, 0, 3, `truncated \xXX escape`},
		{"bad hex digit", `\x4g!`, 0, 4, `truncated \xXX escape`},
		{"short u", `a\u30`, 1, 5, `truncated \uXXXX escape`},
		{"bad u digit", `\u3xxx`, 0, 4, `truncated \uXXXX escape`},
		{"short U", `\U0001F6`, 0, 8, `truncated \UXXXXXXXX escape`},
		{"U above max", `\U00110000!`, 0, 10, "illegal Unicode character"},
		{"N without brace", `\Nx`, 0, 2, `malformed \N character escape`},
		{"N at end", `\N`, 0, 2, `malformed \N character escape`},
		{"N unclosed", `\N{EURO`, 0, 7, `malformed \N character escape`},
		{"N empty", `\N{}`, 0, 4, `malformed \N character escape`},
		{"N unknown", `\N{NO SUCH THING}!`, 0, 17, "unknown Unicode character name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transcode.Decode([]byte(tt.data), "unicode-escape", "strict")
			var exc *transcode.UnicodeError
			if !errors.As(err, &exc) {
				t.Fatalf("Decode() error = %v, want *UnicodeError", err)
			}
			if exc.Start() != tt.start || exc.End() != tt.end {
				t.Errorf("span = [%d, %d), want [%d, %d)", exc.Start(), exc.End(), tt.start, tt.end)
			}
			if exc.Reason() != tt.reason {
				t.Errorf("Reason() = %q, want %q", exc.Reason(), tt.reason)
			}
		})
	}
}

func TestUnicodeEscape_DecodeNotFinal(t *testing.T) {
	c, err := transcode.LookupCodec("unicode-escape")
	if err != nil {
		t.Fatalf("LookupCodec() error: %v", err)
	}

	tests := []struct {
		name string
		data string
		text string
		n    int
	}{
		{"short u", `ab\u30`, "ab", 2},
		{"backslash", `ab\`, "ab", 2},
		{"unclosed name", `a\N{EURO`, "a", 1},
		{"complete", `a\x41`, "aA", 5},
		{"short octal", `a\12`, "a", 1},
		{"full octal", `a\123`, "aS", 5},
		{"octal ended by non-digit", `a\12b`, "a\nb", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, n, err := c.Decode([]byte(tt.data), "strict", false)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if text != tt.text || n != tt.n {
				t.Errorf("Decode() = %q, %d; want %q, %d", text, n, tt.text, tt.n)
			}
		})
	}
}

func TestUnicodeEscape_RoundTrip(t *testing.T) {
	in := "tab\there, quote' backslash\\ \u00ff\u0100\uffff\U00010000"
	out, err := transcode.Encode(in, "unicode-escape", "strict")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	text, err := transcode.Decode(out, "unicode-escape", "strict")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if text != in {
		t.Errorf("round trip = %q, want %q", text, in)
	}
}
