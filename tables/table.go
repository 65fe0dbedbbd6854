package tables

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/sourcegraph/conc/pool"
	"github.com/zoobzio/transcode"
)

// Table is a serialisable single-byte charmap.
type Table struct {
	// Name is the codec name the table registers under.
	Name string `json:"name" yaml:"name" msgpack:"name"`

	// Aliases are additional codec names.
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty" msgpack:"aliases,omitempty"`

	// Chars lists the decoding of bytes 0x00 upward, one codepoint each.
	// U+FFFE marks an undefined byte.
	Chars string `json:"chars,omitempty" yaml:"chars,omitempty" msgpack:"chars,omitempty"`

	// Decode maps byte values to text. Entries override Chars.
	Decode map[int]string `json:"decode,omitempty" yaml:"decode,omitempty" msgpack:"decode,omitempty"`

	// Encode maps single characters to byte values. When empty the encoding
	// is the inverse of the decoding.
	Encode map[string][]int `json:"encode,omitempty" yaml:"encode,omitempty" msgpack:"encode,omitempty"`
}

// DecodingMap returns the table's decoding.
func (t *Table) DecodingMap() transcode.DecodingMap {
	m := transcode.DecodingTable(t.Chars)
	for b, s := range t.Decode {
		m[byte(b)] = s
	}
	return m
}

// EncodingMap returns the table's encoding: the explicit Encode entries, or
// the inverse of the decoding when there are none.
func (t *Table) EncodingMap() transcode.EncodingMap {
	if len(t.Encode) == 0 {
		return t.DecodingMap().Inverse()
	}
	m := make(transcode.EncodingMap, len(t.Encode))
	for k, seq := range t.Encode {
		r, _ := utf8.DecodeRuneInString(k)
		b := make([]byte, len(seq))
		for i, v := range seq {
			b[i] = byte(v)
		}
		m[r] = b
	}
	return m
}

// Codec returns a transcode codec over the table.
func (t *Table) Codec() transcode.Codec {
	return transcode.NewCharmapCodec(t.Name, t.EncodingMap(), t.DecodingMap())
}

// FromCodec captures a single-byte codec as a table by decoding every byte
// value strictly. Undefined bytes are left out.
func FromCodec(name string, c transcode.Codec) *Table {
	t := &Table{Name: name, Decode: make(map[int]string, 256)}
	for b := 0; b <= 0xff; b++ {
		s, _, err := c.Decode([]byte{byte(b)}, transcode.Strict, true)
		if err != nil {
			continue
		}
		t.Decode[b] = s
	}
	return t
}

// Load unmarshals and validates a table.
func Load(data []byte, c Codec) (*Table, error) {
	var t Table
	if err := c.Unmarshal(data, &t); err != nil {
		return nil, newCodecError(ErrUnmarshal, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Dump validates and marshals a table.
func Dump(t *Table, c Codec) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	data, err := c.Marshal(t)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// LoadFile reads a table file, choosing the codec by extension.
func LoadFile(path string) (*Table, error) {
	c, err := CodecFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data, c)
}

// maxLoaders bounds concurrent file reads in LoadDir.
const maxLoaders = 8

// LoadDir loads every table file directly inside dir, sorted by table name.
// Files with an unrecognised extension are skipped. Files are read
// concurrently; any failure fails the whole load.
func LoadDir(dir string) ([]*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[*Table]().WithErrors().WithMaxGoroutines(maxLoaders)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, err := CodecFor(path); err != nil {
			continue
		}
		p.Go(func() (*Table, error) {
			t, err := LoadFile(path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return t, nil
		})
	}

	loaded, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.Slice(loaded, func(i, j int) bool { return loaded[i].Name < loaded[j].Name })
	return loaded, nil
}

// Register validates t and installs it as a transcode codec under its name
// and aliases.
func Register(t *Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	transcode.RegisterCodec(t.Codec(), t.Aliases...)
	emitTableRegistered(context.Background(), t.Name, len(t.Aliases))
	return nil
}

// RegisterDir loads and registers every table in dir. Nothing is registered
// if any file fails to load.
func RegisterDir(dir string) ([]*Table, error) {
	loaded, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, t := range loaded {
		if err := Register(t); err != nil {
			return nil, err
		}
	}
	return loaded, nil
}
