// Package unicodenames maps codepoints to Unicode character names and back.
//
// Names come from golang.org/x/text/unicode/runenames. Names the database
// stores only as ranges (CJK unified ideographs, Tangut ideographs, Hangul
// syllables) are derived algorithmically, so every assigned graphic
// character has a name. Control characters and other "<...>" labels have
// none.
package unicodenames

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

const (
	cjkPrefix    = "CJK UNIFIED IDEOGRAPH-"
	tangutPrefix = "TANGUT IDEOGRAPH-"
	hangulPrefix = "HANGUL SYLLABLE "

	hangulBase  = 0xac00
	hangulCount = 11172
	vCount      = 21
	tCount      = 28
)

var (
	jamoL = []string{"G", "GG", "N", "D", "DD", "R", "M", "B", "BB", "S", "SS", "", "J", "JJ", "C", "K", "T", "P", "H"}
	jamoV = []string{"A", "AE", "YA", "YAE", "EO", "E", "YEO", "YE", "O", "WA", "WAE", "OE", "YO", "U", "WEO", "WE", "WI", "YU", "EU", "YI", "I"}
	jamoT = []string{"", "G", "GG", "GS", "N", "NJ", "NH", "D", "L", "LG", "LM", "LB", "LS", "LT", "LP", "LH", "M", "B", "BS", "S", "SS", "NG", "J", "C", "K", "T", "P", "H"}
)

// Name returns the character name of r, or false if r has none.
func Name(r rune) (string, bool) {
	if r < 0 || r > unicode.MaxRune {
		return "", false
	}
	if r >= hangulBase && r < hangulBase+hangulCount {
		return hangulName(r), true
	}

	name := runenames.Name(r)
	switch {
	case name == "":
		return "", false
	case strings.HasPrefix(name, "<CJK Ideograph"):
		return fmt.Sprintf("%s%04X", cjkPrefix, r), true
	case strings.HasPrefix(name, "<Tangut Ideograph"):
		return fmt.Sprintf("%s%04X", tangutPrefix, r), true
	case strings.HasPrefix(name, "<"):
		return "", false
	}
	return name, true
}

func hangulName(r rune) string {
	s := int(r - hangulBase)
	l := s / (vCount * tCount)
	v := (s % (vCount * tCount)) / tCount
	t := s % tCount
	return hangulPrefix + jamoL[l] + jamoV[v] + jamoT[t]
}

var (
	index     map[string]rune
	indexOnce sync.Once
)

// buildIndex inverts Name over the whole codepoint range. Derived ideograph
// names are resolved arithmetically in Lookup and are not indexed.
func buildIndex() {
	index = make(map[string]rune, 48000)
	for r := rune(0); r <= unicode.MaxRune; r++ {
		if r >= 0xd800 && r <= 0xdfff {
			continue
		}
		name, ok := Name(r)
		if !ok || strings.HasPrefix(name, cjkPrefix) || strings.HasPrefix(name, tangutPrefix) {
			continue
		}
		index[name] = r
	}
}

// Lookup returns the codepoint named name. Matching is case-insensitive.
// The first call builds the reverse index.
func Lookup(name string) (rune, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return 0, false
	}
	for _, prefix := range []string{cjkPrefix, tangutPrefix} {
		if hex, ok := strings.CutPrefix(name, prefix); ok {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return 0, false
			}
			r := rune(v)
			if got, ok := Name(r); ok && got == name {
				return r, true
			}
			return 0, false
		}
	}

	indexOnce.Do(buildIndex)
	r, ok := index[name]
	return r, ok
}
