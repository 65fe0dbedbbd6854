package transcode_test

import (
	"errors"
	"testing"

	"github.com/zoobzio/transcode"
	tctest "github.com/zoobzio/transcode/testing"
)

func TestTranslate(t *testing.T) {
	tr := transcode.MapTranslator(map[rune]string{
		'a': "x",
		'b': "yz",
		'c': "",
	})

	tests := []struct {
		name    string
		text    string
		handler string
		want    string
	}{
		{"all mapped", "abcab", "strict", "xyzxyz"},
		{"ignore", "aqb", "ignore", "xyz"},
		{"replace run", "aqrb", "replace", "x\uFFFD\uFFFDyz"},
		{"empty", "", "strict", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transcode.Translate([]rune(tt.text), tt.handler, tr)
			if err != nil {
				t.Fatalf("Translate() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Translate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranslate_Strict(t *testing.T) {
	tr := transcode.MapTranslator(map[rune]string{'a': "x"})

	_, err := transcode.Translate([]rune("aqa"), "strict", tr)
	if !errors.Is(err, transcode.ErrTranslate) {
		t.Fatalf("Translate() error = %v, want translate error", err)
	}
	want := `can't translate character '\x71' in position 1: character maps to <undefined>`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestTranslate_Batching(t *testing.T) {
	rec := tctest.NewRecorder(transcode.ReplaceErrors)
	transcode.Register("test.translate.counting", rec.Handle)

	tr := transcode.MapTranslator(map[rune]string{'a': "a"})
	got, err := transcode.Translate([]rune("qqaqa"), "test.translate.counting", tr)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if want := "\uFFFD\uFFFDa\uFFFDa"; got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}

	spans := rec.Spans()
	if len(spans) != 2 {
		t.Fatalf("handler called %d times, want 2", len(spans))
	}
	if spans[0].Kind != transcode.KindTranslate || spans[0].Start != 0 || spans[0].End != 2 {
		t.Errorf("first span = %+v, want translate [0,2)", spans[0])
	}
	if spans[1].Start != 3 || spans[1].End != 4 {
		t.Errorf("second span = %+v, want [3,4)", spans[1])
	}
}

func TestTranslate_ReplacementNotRetranslated(t *testing.T) {
	tr := transcode.MapTranslator(map[rune]string{'a': "b"})
	transcode.Register("test.translate.fixed", func(exc *transcode.UnicodeError) (transcode.Replacement, error) {
		return transcode.Replacement{Text: "a", Next: exc.End()}, nil
	})

	got, err := transcode.Translate([]rune("aq"), "test.translate.fixed", tr)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if got != "ba" {
		t.Errorf("Translate() = %q, want %q", got, "ba")
	}
}

func TestTranslate_HandlerMismatch(t *testing.T) {
	tr := transcode.MapTranslator(nil)
	for _, h := range []string{"xmlcharrefreplace", "backslashreplace"} {
		_, err := transcode.Translate([]rune("q"), h, tr)
		if !errors.Is(err, transcode.ErrHandlerTypeMismatch) {
			t.Errorf("Translate(%s) error = %v, want ErrHandlerTypeMismatch", h, err)
		}
	}
}
