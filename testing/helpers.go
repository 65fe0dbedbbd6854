// Package testing provides test utilities for transcode.
package testing

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/zoobzio/transcode"
)

// Span is one recorded handler call.
type Span struct {
	Kind  transcode.Kind
	Start int
	End   int
}

// Recorder wraps a handler and records every span it is called with.
// Safe for concurrent use.
type Recorder struct {
	inner transcode.Handler

	mu    sync.Mutex
	spans []Span
}

// NewRecorder returns a Recorder delegating to inner.
func NewRecorder(inner transcode.Handler) *Recorder {
	return &Recorder{inner: inner}
}

// Handle records exc and delegates.
func (r *Recorder) Handle(exc *transcode.UnicodeError) (transcode.Replacement, error) {
	r.mu.Lock()
	r.spans = append(r.spans, Span{Kind: exc.Kind(), Start: exc.Start(), End: exc.End()})
	r.mu.Unlock()
	return r.inner(exc)
}

// Count returns the number of recorded calls.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spans)
}

// Spans returns a copy of the recorded spans.
func (r *Recorder) Spans() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Span(nil), r.spans...)
}

// Bracket returns a handler rendering each offending unit as <N> inside
// brackets and resuming skip units past the span end. It handles encode and
// decode failures only.
func Bracket(skip int) transcode.Handler {
	return func(exc *transcode.UnicodeError) (transcode.Replacement, error) {
		if exc.Kind() != transcode.KindEncode && exc.Kind() != transcode.KindDecode {
			return transcode.Replacement{}, exc
		}
		var b strings.Builder
		b.WriteByte('[')
		for i := exc.Start(); i < exc.End(); i++ {
			b.WriteByte('<')
			b.WriteString(strconv.Itoa(int(exc.Unit(i))))
			b.WriteByte('>')
		}
		b.WriteByte(']')
		return transcode.Replacement{Text: b.String(), Next: exc.End() + skip}, nil
	}
}

// Fixed returns a handler that always answers with rep.
func Fixed(rep transcode.Replacement) transcode.Handler {
	return func(*transcode.UnicodeError) (transcode.Replacement, error) {
		return rep, nil
	}
}

// DoubledUpper returns an encoding map sending each character of chars to
// its upper case written twice: 'a' -> "AA".
func DoubledUpper(chars string) transcode.EncodingMap {
	m := make(transcode.EncodingMap, len(chars))
	for _, r := range chars {
		u := string(unicode.ToUpper(r))
		m[r] = []byte(u + u)
	}
	return m
}
