package transcode

import (
	"errors"
	"testing"
)

func encodeErr(t *testing.T, text string, start, end int) *UnicodeError {
	t.Helper()
	exc, err := NewEncodeError("ascii", []rune(text), start, end, "ouch")
	if err != nil {
		t.Fatalf("NewEncodeError() error: %v", err)
	}
	return exc
}

func decodeErr(t *testing.T, data string, start, end int) *UnicodeError {
	t.Helper()
	exc, err := NewDecodeError("ascii", []byte(data), start, end, "ouch")
	if err != nil {
		t.Fatalf("NewDecodeError() error: %v", err)
	}
	return exc
}

func translateErr(t *testing.T, text string, start, end int) *UnicodeError {
	t.Helper()
	exc, err := NewTranslateError([]rune(text), start, end, "ouch")
	if err != nil {
		t.Fatalf("NewTranslateError() error: %v", err)
	}
	return exc
}

func TestBuiltins_RejectInvalidContext(t *testing.T) {
	builtins := map[string]Handler{
		Strict:            StrictErrors,
		Ignore:            IgnoreErrors,
		Replace:           ReplaceErrors,
		XMLCharRefReplace: XMLCharRefReplaceErrors,
		BackslashReplace:  BackslashReplaceErrors,
	}

	for name, h := range builtins {
		t.Run(name, func(t *testing.T) {
			if _, err := h(nil); !errors.Is(err, ErrHandlerTypeMismatch) {
				t.Errorf("nil context: error = %v, want ErrHandlerTypeMismatch", err)
			}
			if _, err := h(&UnicodeError{reason: "ouch"}); !errors.Is(err, ErrHandlerTypeMismatch) {
				t.Errorf("zero kind: error = %v, want ErrHandlerTypeMismatch", err)
			}
		})
	}
}

func TestStrictErrors(t *testing.T) {
	exc := encodeErr(t, "あ", 0, 1)

	_, err := StrictErrors(exc)
	if err != exc {
		t.Errorf("StrictErrors() error = %v, want the context itself", err)
	}

	dexc := decodeErr(t, "\xff", 0, 1)
	if _, err := StrictErrors(dexc); err != dexc {
		t.Errorf("StrictErrors() error = %v, want the context itself", err)
	}
}

func TestIgnoreErrors(t *testing.T) {
	contexts := []*UnicodeError{
		encodeErr(t, "あ", 0, 1),
		decodeErr(t, "\xff", 0, 1),
		translateErr(t, "あ", 0, 1),
	}

	for _, exc := range contexts {
		rep, err := IgnoreErrors(exc)
		if err != nil {
			t.Fatalf("IgnoreErrors(%v) error: %v", exc.Kind(), err)
		}
		if rep != (Replacement{Text: "", Next: 1}) {
			t.Errorf("IgnoreErrors(%v) = %+v, want {\"\" 1}", exc.Kind(), rep)
		}
	}
}

func TestReplaceErrors(t *testing.T) {
	tests := []struct {
		name string
		exc  *UnicodeError
		want Replacement
	}{
		{"encode", encodeErr(t, "あ", 0, 1), Replacement{Text: "?", Next: 1}},
		{"decode", decodeErr(t, "\xff", 0, 1), Replacement{Text: "\uFFFD", Next: 1}},
		{"translate", translateErr(t, "あ", 0, 1), Replacement{Text: "\uFFFD", Next: 1}},
		{"encode run", encodeErr(t, "aあいう", 1, 4), Replacement{Text: "???", Next: 4}},
		{"decode run", decodeErr(t, "a\xe3\x81", 1, 3), Replacement{Text: "\uFFFD", Next: 3}},
		{"translate run", translateErr(t, "あい", 0, 2), Replacement{Text: "\uFFFD\uFFFD", Next: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := ReplaceErrors(tt.exc)
			if err != nil {
				t.Fatalf("ReplaceErrors() error: %v", err)
			}
			if rep != tt.want {
				t.Errorf("ReplaceErrors() = %+v, want %+v", rep, tt.want)
			}
		})
	}
}

func TestXMLCharRefReplaceErrors(t *testing.T) {
	rep, err := XMLCharRefReplaceErrors(encodeErr(t, "あ", 0, 1))
	if err != nil {
		t.Fatalf("XMLCharRefReplaceErrors() error: %v", err)
	}
	if rep != (Replacement{Text: "&#12354;", Next: 1}) {
		t.Errorf("XMLCharRefReplaceErrors() = %+v, want {&#12354; 1}", rep)
	}

	rep, err = XMLCharRefReplaceErrors(encodeErr(t, "xä\U0010ffff", 1, 3))
	if err != nil {
		t.Fatalf("XMLCharRefReplaceErrors() error: %v", err)
	}
	if rep.Text != "&#228;&#1114111;" {
		t.Errorf("XMLCharRefReplaceErrors() text = %q, want %q", rep.Text, "&#228;&#1114111;")
	}

	if _, err := XMLCharRefReplaceErrors(decodeErr(t, "\xff", 0, 1)); !errors.Is(err, ErrHandlerTypeMismatch) {
		t.Errorf("decode context: error = %v, want ErrHandlerTypeMismatch", err)
	}
	if _, err := XMLCharRefReplaceErrors(translateErr(t, "あ", 0, 1)); !errors.Is(err, ErrHandlerTypeMismatch) {
		t.Errorf("translate context: error = %v, want ErrHandlerTypeMismatch", err)
	}
}

func TestBackslashReplaceErrors(t *testing.T) {
	tests := []struct {
		in   rune
		want string
	}{
		{0x3042, `\u3042`},
		{0x00, `\x00`},
		{0xff, `\xff`},
		{0x100, `\u0100`},
		{0xffff, `\uffff`},
		{0x10000, `\U00010000`},
		{0x10ffff, `\U0010ffff`},
	}

	for _, tt := range tests {
		exc, err := NewEncodeError("ascii", []rune{tt.in}, 0, 1, "ouch")
		if err != nil {
			t.Fatalf("NewEncodeError() error: %v", err)
		}
		rep, err := BackslashReplaceErrors(exc)
		if err != nil {
			t.Fatalf("BackslashReplaceErrors(%#x) error: %v", tt.in, err)
		}
		if rep != (Replacement{Text: tt.want, Next: 1}) {
			t.Errorf("BackslashReplaceErrors(%#x) = %+v, want {%s 1}", tt.in, rep, tt.want)
		}
	}

	if _, err := BackslashReplaceErrors(decodeErr(t, "\xff", 0, 1)); !errors.Is(err, ErrHandlerTypeMismatch) {
		t.Errorf("decode context: error = %v, want ErrHandlerTypeMismatch", err)
	}
	if _, err := BackslashReplaceErrors(translateErr(t, "あ", 0, 1)); !errors.Is(err, ErrHandlerTypeMismatch) {
		t.Errorf("translate context: error = %v, want ErrHandlerTypeMismatch", err)
	}
}
