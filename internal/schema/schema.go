// Package schema declares the structured-output shape of every JSON insight
// and checks model payloads against it.
package schema

import (
	"fmt"
	"sort"

	"google.golang.org/genai"
)

type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

// Schema is a response shape. Minimum and Maximum are advisory: they are
// shown to the model but not enforced by Validate.
type Schema struct {
	Type        Type
	Description string
	Enum        []string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
	Minimum     *float64
	Maximum     *float64
}

var genaiTypes = map[Type]genai.Type{
	TypeObject:  genai.TypeObject,
	TypeArray:   genai.TypeArray,
	TypeString:  genai.TypeString,
	TypeInteger: genai.TypeInteger,
	TypeNumber:  genai.TypeNumber,
	TypeBoolean: genai.TypeBoolean,
}

// ToGenAI converts the schema into the form declared on a Gemini request.
func (s *Schema) ToGenAI() *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiTypes[s.Type],
		Description: s.describe(),
	}
	if len(s.Enum) > 0 {
		out.Enum = append([]string(nil), s.Enum...)
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Items != nil {
		out.Items = s.Items.ToGenAI()
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.ToGenAI()
		}
	}
	return out
}

// JSONSchema renders the schema as a JSON-Schema document.
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return map[string]any{}
	}

	doc := map[string]any{"type": string(s.Type)}
	if desc := s.describe(); desc != "" {
		doc["description"] = desc
	}
	if len(s.Enum) > 0 {
		enum := make([]any, len(s.Enum))
		for i, v := range s.Enum {
			enum[i] = v
		}
		doc["enum"] = enum
	}
	if len(s.Required) > 0 {
		required := make([]any, len(s.Required))
		for i, v := range s.Required {
			required[i] = v
		}
		doc["required"] = required
	}
	if s.Items != nil {
		doc["items"] = s.Items.JSONSchema()
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.JSONSchema()
		}
		doc["properties"] = props
	}
	return doc
}

// PropertyNames returns the object's property names in sorted order.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Schema) describe() string {
	switch {
	case s.Minimum != nil && s.Maximum != nil:
		return joinDescription(s.Description, fmt.Sprintf("Range %g to %g.", *s.Minimum, *s.Maximum))
	case s.Minimum != nil:
		return joinDescription(s.Description, fmt.Sprintf("At least %g.", *s.Minimum))
	case s.Maximum != nil:
		return joinDescription(s.Description, fmt.Sprintf("At most %g.", *s.Maximum))
	}
	return s.Description
}

func joinDescription(desc, extra string) string {
	if desc == "" {
		return extra
	}
	return desc + " " + extra
}
