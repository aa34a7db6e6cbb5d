package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kapu/sheos-insight-go/pkg/errors"
)

var (
	compiledMu sync.RWMutex
	compiled   = make(map[*Schema]*gojsonschema.Schema)
)

// Validate checks a raw JSON document against the schema: required fields,
// primitive types and enumerated values. It returns an InsightError of kind
// KindMalformedJSON when doc is not JSON and KindSchemaViolation when it does
// not match.
func (s *Schema) Validate(doc []byte) error {
	if !json.Valid(doc) {
		return errors.NewInsightError(errors.KindMalformedJSON, "payload is not valid JSON", nil)
	}

	compiledSchema, err := s.compile()
	if err != nil {
		return err
	}

	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return errors.NewInsightError(errors.KindMalformedJSON, "payload could not be loaded", nil).WithCause(err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return errors.NewInsightError(errors.KindSchemaViolation, "payload does not match schema", map[string]any{
			"violations": errs,
		}).WithCause(fmt.Errorf("%s", strings.Join(errs, "; ")))
	}

	return nil
}

func (s *Schema) compile() (*gojsonschema.Schema, error) {
	compiledMu.RLock()
	if c, ok := compiled[s]; ok {
		compiledMu.RUnlock()
		return c, nil
	}
	compiledMu.RUnlock()

	c, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.JSONSchema()))
	if err != nil {
		return nil, fmt.Errorf("compile response schema: %w", err)
	}

	compiledMu.Lock()
	defer compiledMu.Unlock()
	compiled[s] = c

	return c, nil
}
