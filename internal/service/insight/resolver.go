// Package insight runs the insight request contract for every feature: it
// composes the prompt, invokes the model and resolves the answer into a typed
// result, substituting the feature's fallback literal on any failure.
package insight

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/internal/schema"
	"github.com/kapu/sheos-insight-go/internal/service/ai"
	"github.com/kapu/sheos-insight-go/internal/util"
	"github.com/kapu/sheos-insight-go/pkg/errors"
)

// Decode parses a raw model payload as T. The payload must be a JSON document
// that satisfies s; a partially matching document is rejected as a whole.
func Decode[T any](raw string, s *schema.Schema) (T, error) {
	var zero T

	cleaned := util.StripCodeFence(raw)
	if cleaned == "" {
		return zero, errors.NewEmptyPayloadError("")
	}

	if s != nil {
		if err := s.Validate([]byte(cleaned)); err != nil {
			return zero, err
		}
	}

	doc, err := integralNumbers([]byte(cleaned))
	if err != nil {
		return zero, errors.NewInsightError(errors.KindMalformedJSON, "payload could not be parsed", nil).WithCause(err)
	}

	var value T
	if err := json.Unmarshal(doc, &value); err != nil {
		kind := errors.KindSchemaViolation
		if s == nil {
			kind = errors.KindMalformedJSON
		}
		return zero, errors.NewInsightError(kind, "payload does not fit result type", nil).WithCause(err)
	}

	return value, nil
}

// integralNumbers rewrites whole-valued numbers such as 8.0 or 1e1 as plain
// integers so they decode into int fields the schema already accepted.
func integralNumbers(doc []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(rewriteNumbers(v))
}

func rewriteNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = rewriteNumbers(item)
		}
	case []any:
		for i, item := range t {
			t[i] = rewriteNumbers(item)
		}
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return t
		}
		f, err := t.Float64()
		if err == nil && f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
			return json.Number(strconv.FormatInt(int64(f), 10))
		}
	}
	return v
}

const maxExactInt = 1 << 53

// Resolve collapses one invocation into a result that is always usable. On
// success the decoded value is normalized and marked live; on any failure the
// fallback literal is returned with the failure reason.
func Resolve[T any](
	raw string,
	invokeErr error,
	meta *ai.GenerateMetadata,
	s *schema.Schema,
	fallback func() T,
	normalize func(T) T,
) domain.Result[T] {
	result := domain.Result[T]{}
	if meta != nil {
		result.Provider = meta.Provider
		result.Model = meta.Model
	}

	err := invokeErr
	var value T
	if err == nil {
		value, err = Decode[T](raw, s)
	}

	if err != nil {
		result.Value = fallback()
		result.Reason = errors.KindOf(err).String()
		return result
	}

	if normalize != nil {
		value = normalize(value)
	}
	result.Value = value
	result.Live = true
	return result
}

// ResolveText resolves a free-text answer. Empty text and failures have
// separate fallbacks.
func ResolveText(raw string, invokeErr error, meta *ai.GenerateMetadata, emptyFallback, errorFallback string) domain.Result[string] {
	result := domain.Result[string]{}
	if meta != nil {
		result.Provider = meta.Provider
		result.Model = meta.Model
	}

	if invokeErr != nil {
		kind := errors.KindOf(invokeErr)
		if kind == errors.KindEmptyPayload {
			result.Value = emptyFallback
		} else {
			result.Value = errorFallback
		}
		result.Reason = kind.String()
		return result
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		result.Value = emptyFallback
		result.Reason = errors.KindEmptyPayload.String()
		return result
	}

	result.Value = text
	result.Live = true
	return result
}
