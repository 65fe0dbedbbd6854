// Package tables loads and stores charmap definitions.
//
// A Table describes a single-byte charmap: a decoding map from byte values
// to text, optionally a 256-entry decoding string, and optionally an
// explicit encoding map. Tables can be authored as YAML or JSON and shipped
// as MessagePack; Register installs a table as a transcode codec.
//
//	t, err := tables.LoadFile("koi8-u.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := tables.Register(t); err != nil {
//	    return err
//	}
//	data, err := transcode.Encode(text, t.Name, "replace")
//
// Tables are validated against an embedded JSON schema. A directory of
// tables can be loaded at once with LoadDir or RegisterDir, and kept in step
// with the registry by a Watcher.
package tables

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Codec provides content-type aware marshaling of tables.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/yaml").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// format is a Codec assembled from a content type and a marshal pair.
type format struct {
	contentType string
	marshal     func(v any) ([]byte, error)
	unmarshal   func(data []byte, v any) error
}

func (f *format) ContentType() string                { return f.contentType }
func (f *format) Marshal(v any) ([]byte, error)      { return f.marshal(v) }
func (f *format) Unmarshal(data []byte, v any) error { return f.unmarshal(data, v) }

var (
	jsonFormat = &format{
		contentType: "application/json",
		marshal:     func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") },
		unmarshal:   json.Unmarshal,
	}
	yamlFormat = &format{
		contentType: "application/yaml",
		marshal:     yaml.Marshal,
		unmarshal:   yaml.Unmarshal,
	}
	msgpackFormat = &format{
		contentType: "application/msgpack",
		marshal:     msgpack.Marshal,
		unmarshal:   msgpack.Unmarshal,
	}
)

// formats maps lower-cased file extensions to their codec.
var formats = map[string]*format{
	".json":    jsonFormat,
	".yaml":    yamlFormat,
	".yml":     yamlFormat,
	".msgpack": msgpackFormat,
	".mpk":     msgpackFormat,
}

// JSON returns the indented JSON codec.
func JSON() Codec { return jsonFormat }

// YAML returns the YAML codec.
func YAML() Codec { return yamlFormat }

// MsgPack returns the MessagePack codec.
func MsgPack() Codec { return msgpackFormat }

// CodecFor returns the codec for a file name by its extension:
// .yaml/.yml, .json, or .msgpack/.mpk.
func CodecFor(path string) (Codec, error) {
	if f, ok := formats[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}
