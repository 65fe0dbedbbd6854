package transcode

import (
	"fmt"
	"strings"

	"github.com/zoobzio/transcode/unicodenames"
)

// NameLookup resolves a codepoint to a name, reporting false if it has none.
type NameLookup func(r rune) (string, bool)

// XMLCharNameReplace returns an encode handler substituting a named entity
// reference (&name;) for each offending codepoint with an entry in entities,
// and a decimal character reference otherwise.
func XMLCharNameReplace(entities map[rune]string) Handler {
	return func(exc *UnicodeError) (Replacement, error) {
		if exc == nil || exc.kind != KindEncode {
			return Replacement{}, mismatch(exc)
		}
		var b strings.Builder
		for _, r := range exc.Runes() {
			if name, ok := entities[r]; ok {
				b.WriteByte('&')
				b.WriteString(name)
				b.WriteByte(';')
				continue
			}
			writeCharRef(&b, r)
		}
		return Replacement{Text: b.String(), Next: exc.end}, nil
	}
}

// UniNameReplace returns an encode handler substituting the Unicode names of
// the offending run, comma-separated and wrapped in ANSI bold. Codepoints
// without a name render as 0x<hex>. A nil lookup uses unicodenames.Name.
//
// Because a run of unencodable codepoints arrives as one span, the run gets
// a single pair of escape sequences.
func UniNameReplace(lookup NameLookup) Handler {
	if lookup == nil {
		lookup = unicodenames.Name
	}
	return func(exc *UnicodeError) (Replacement, error) {
		if exc == nil || exc.kind != KindEncode {
			return Replacement{}, mismatch(exc)
		}
		names := make([]string, 0, exc.end-exc.start)
		for _, r := range exc.Runes() {
			name, ok := lookup(r)
			if !ok {
				name = fmt.Sprintf("0x%x", r)
			}
			names = append(names, name)
		}
		return Replacement{
			Text: "\x1b[1m" + strings.Join(names, ", ") + "\x1b[0m",
			Next: exc.end,
		}, nil
	}
}
