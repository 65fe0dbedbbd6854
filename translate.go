package transcode

import (
	"strings"
)

// Translator maps one codepoint to its translation, reporting false when
// the codepoint cannot be translated.
type Translator func(r rune) (string, bool)

// MapTranslator translates through m. Codepoints without an entry cannot be
// translated.
func MapTranslator(m map[rune]string) Translator {
	return func(r rune) (string, bool) {
		s, ok := m[r]
		return s, ok
	}
}

// Translate maps text codepoint by codepoint through tr. Runs of
// untranslatable codepoints go to the named handler as one span and its
// replacement is inserted verbatim.
func Translate(text []rune, handler string, tr Translator) (string, error) {
	res := &resolver{name: handler}
	var out strings.Builder
	out.Grow(len(text))

	i := 0
	for i < len(text) {
		if s, ok := tr(text[i]); ok {
			out.WriteString(s)
			i++
			continue
		}

		j := i + 1
		for j < len(text) {
			if _, ok := tr(text[j]); ok {
				break
			}
			j++
		}

		exc := newTranslateError(text, i, j, charmapReason)
		h, err := res.resolve()
		if err != nil {
			return "", err
		}
		rep, err := call(handler, h, exc)
		if err != nil {
			return "", err
		}
		out.WriteString(rep.Text)
		i = rep.Next
	}
	return out.String(), nil
}
