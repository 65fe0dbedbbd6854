package tables

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/table.schema.json
var tableSchemaJSON string

const tableSchemaURL = "https://zoobzio.github.io/transcode/table.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// tableSchema compiles the embedded table schema on first use.
func tableSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(tableSchemaJSON), &doc); err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(tableSchemaURL, doc); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile(tableSchemaURL)
	})
	return schema, schemaErr
}

// Validate checks t against the table schema: a non-blank name, at most 256
// chars, decode keys that are byte values, encode keys that are a single
// character mapping to byte values.
func (t *Table) Validate() error {
	sch, err := tableSchema()
	if err != nil {
		return newTableError(t.Name, "schema: %v", err)
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	data, err := json.Marshal(t)
	if err != nil {
		return newTableError(t.Name, "%v", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return newTableError(t.Name, "%v", err)
	}

	if err := sch.Validate(doc); err != nil {
		return newTableError(t.Name, "%s", flatten(err))
	}
	return nil
}

// flatten joins a multi-line validation report into one line.
func flatten(err error) string {
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
	}
	return strings.Join(lines, "; ")
}
