package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// maxReported caps how many violations an error message lists.
const maxReported = 3

// Validator checks JSON documents against JSON schemas, caching each
// compiled schema by its canonical JSON.
type Validator struct {
	cache sync.Map // map[string]*gojsonschema.Schema
}

func NewValidator() *Validator {
	return &Validator{}
}

// Violations is returned when a document does not match its schema.
type Violations []string

func (v Violations) Error() string {
	if len(v) == 0 {
		return "document does not match schema"
	}
	shown := v
	suffix := ""
	if len(shown) > maxReported {
		suffix = fmt.Sprintf(" (and %d more)", len(shown)-maxReported)
		shown = shown[:maxReported]
	}
	return "document does not match schema: " + strings.Join(shown, "; ") + suffix
}

// Validate checks doc against schemaData, which may be a map, a struct or a
// JSON string. A nil error means doc is valid JSON that matches the schema.
func (v *Validator) Validate(schemaData any, doc []byte) error {
	compiled, err := v.compile(schemaData)
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}

	result, err := compiled.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		// gojsonschema reports unparsable documents here.
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	out := make(Violations, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		out = append(out, desc.String())
	}
	return out
}

func (v *Validator) compile(schemaData any) (*gojsonschema.Schema, error) {
	var raw []byte
	switch s := schemaData.(type) {
	case string:
		raw = []byte(s)
	case []byte:
		raw = s
	default:
		b, err := json.Marshal(schemaData)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	key := string(raw)

	if val, ok := v.cache.Load(key); ok {
		return val.(*gojsonschema.Schema), nil
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}
	v.cache.Store(key, compiled)
	return compiled, nil
}
