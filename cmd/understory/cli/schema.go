// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Schema is a JSON Schema representation covering the subset needed to
// describe command parameters and results to agents.
type Schema struct {
	// Type is the JSON Schema type: "object", "string", "boolean",
	// "integer", "number", or "array". Empty for values of any type.
	Type string `json:"type,omitempty"`

	// Description is a human-readable explanation of the parameter.
	// Populated from the desc struct tag.
	Description string `json:"description,omitempty"`

	// Properties maps property names to their schemas. Only set when
	// Type is "object".
	Properties map[string]*Schema `json:"properties,omitempty"`

	// Required lists property names that must be provided. Only set
	// when Type is "object".
	Required []string `json:"required,omitempty"`

	// Default is the default value for the parameter. Populated from
	// the default struct tag, parsed to the appropriate Go type so
	// it marshals correctly (string as string, int as number, etc.).
	Default any `json:"default,omitempty"`

	// Items describes the element type for array schemas.
	Items *Schema `json:"items,omitempty"`

	// AdditionalProperties describes the value type for map-typed
	// object schemas.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`

	// Format is an optional format hint (e.g., "date-time").
	Format string `json:"format,omitempty"`
}

// ParamsSchema generates a JSON Schema from a parameter struct's type
// information. Property names come from json struct tags, descriptions
// from desc tags, and defaults from default tags. Fields without a json
// tag, or tagged "-", are excluded.
//
// A field is marked required when it has a required:"true" tag. Fields
// with a default tag are always optional.
//
// params must be a pointer to a struct (same value passed to [BindFlags]).
func ParamsSchema(params any) (*Schema, error) {
	value := reflect.ValueOf(params)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, Internal("params must be a struct or pointer to struct, got %T", params)
	}

	return buildObjectSchema(value.Type())
}

// buildObjectSchema constructs a JSON Schema object from a struct type.
func buildObjectSchema(structType reflect.Type) (*Schema, error) {
	schema := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema),
	}

	for i := range structType.NumField() {
		field := structType.Field(i)

		// Embedded structs: recurse and merge their properties into
		// the parent, matching encoding/json's flattening.
		if field.Anonymous && field.Type.Kind() == reflect.Struct && field.Tag.Get("json") == "" {
			embedded, err := buildObjectSchema(field.Type)
			if err != nil {
				return nil, Internal("embedded %s: %w", field.Name, err)
			}
			for name, prop := range embedded.Properties {
				schema.Properties[name] = prop
			}
			schema.Required = append(schema.Required, embedded.Required...)
			continue
		}

		// Skip unexported non-embedded fields.
		if !field.IsExported() {
			continue
		}

		// Determine the JSON property name.
		propertyName := jsonPropertyName(field)
		if propertyName == "" || propertyName == "-" {
			continue
		}

		// Build the property schema from the field's type and tags.
		propSchema, err := fieldSchema(field)
		if err != nil {
			return nil, Internal("field %s: %w", field.Name, err)
		}

		schema.Properties[propertyName] = propSchema

		// Mark as required if explicitly tagged and no default provided.
		if field.Tag.Get("required") == "true" && field.Tag.Get("default") == "" {
			schema.Required = append(schema.Required, propertyName)
		}
	}

	// Remove properties key if empty (cleaner JSON output).
	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}

	return schema, nil
}

// jsonPropertyName extracts the JSON property name from a struct field's
// json tag. Returns "" if no json tag, or "-" if the field is excluded.
func jsonPropertyName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// fieldSchema builds a JSON Schema for a single struct field based on
// its Go type and struct tags. Primitive types are handled directly
// with support for desc and default tags. Compound types delegate to
// [schemaForType] and overlay the desc tag.
func fieldSchema(field reflect.StructField) (*Schema, error) {
	description := field.Tag.Get("desc")

	fieldType := field.Type
	if fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}

	// Primitive types support default values via struct tags.
	switch fieldType.Kind() {
	case reflect.String:
		return fieldSchemaWithDefault(&Schema{Type: "string", Description: description}, fieldType, field)
	case reflect.Bool:
		return fieldSchemaWithDefault(&Schema{Type: "boolean", Description: description}, fieldType, field)
	case reflect.Int:
		return fieldSchemaWithDefault(&Schema{Type: "integer", Description: description}, fieldType, field)
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			return fieldSchemaWithDefault(&Schema{Type: "array", Items: &Schema{Type: "string"}, Description: description}, fieldType, field)
		}
	}

	schema, err := schemaForType(fieldType)
	if err != nil {
		return nil, err
	}
	schema.Description = description
	return schema, nil
}

// fieldSchemaWithDefault applies the default struct tag (if present)
// to a primitive field schema.
func fieldSchemaWithDefault(schema *Schema, fieldType reflect.Type, field reflect.StructField) (*Schema, error) {
	if defaultString := field.Tag.Get("default"); defaultString != "" {
		defaultValue, err := parseDefault(fieldType, defaultString)
		if err != nil {
			return nil, Internal("default: %w", err)
		}
		schema.Default = defaultValue
	}
	return schema, nil
}

// parseDefault parses a default value string into the appropriate Go type
// so it marshals to the correct JSON type (number, boolean, etc.).
func parseDefault(fieldType reflect.Type, value string) (any, error) {
	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Bool:
		return strconv.ParseBool(value)
	case reflect.Int:
		return strconv.Atoi(value)
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			return strings.Split(value, ","), nil
		}
		return nil, Internal("unsupported slice type %s", fieldType)
	default:
		return nil, Internal("unsupported type %s", fieldType)
	}
}

// OutputSchema generates a JSON Schema from a command's output type.
// Pointers are dereferenced; slices produce array schemas; structs use
// the same rules as [ParamsSchema].
//
// output is the value returned by [Command.Output], typically a
// pointer to the output type's zero value.
func OutputSchema(output any) (*Schema, error) {
	typ := reflect.TypeOf(output)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return schemaForType(typ)
}

// Well-known types that require special JSON Schema handling because
// their JSON representation differs from their Go structure.
var (
	timeType       = reflect.TypeOf(time.Time{})
	rawMessageType = reflect.TypeOf(json.RawMessage{})
	marshalerType  = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
)

// schemaForType generates a JSON Schema from a reflect.Type.
func schemaForType(typ reflect.Type) (*Schema, error) {
	switch typ {
	case timeType:
		return &Schema{Type: "string", Format: "date-time"}, nil
	case rawMessageType:
		// json.RawMessage passes API objects through unchanged.
		return &Schema{Type: "object"}, nil
	}

	// Structs with their own JSON encoding (API resources that keep
	// the raw object) are opaque objects.
	if typ.Kind() == reflect.Struct && typ.Implements(marshalerType) {
		return &Schema{Type: "object"}, nil
	}

	switch typ.Kind() {
	case reflect.Struct:
		return buildObjectSchema(typ)
	case reflect.Slice, reflect.Array:
		items, err := schemaForType(typ.Elem())
		if err != nil {
			return nil, Internal("array element: %w", err)
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Ptr:
		return schemaForType(typ.Elem())
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Schema{Type: "integer"}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return nil, Internal("unsupported map key type %s", typ.Key())
		}
		if typ.Elem().Kind() == reflect.Interface {
			return &Schema{Type: "object"}, nil
		}
		valueSchema, err := schemaForType(typ.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: valueSchema}, nil
	case reflect.Interface:
		// any: no type constraint.
		return &Schema{}, nil
	default:
		return nil, Internal("unsupported type %s (%s)", typ, typ.Kind())
	}
}
