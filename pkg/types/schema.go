// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the OpenAPI and JSON Schema object model consumed by the generator.
package types

// Schema represents an OpenAPI schema object.
// It follows the JSON Schema Specification with OpenAPI extensions.
type Schema struct {
	// Ref is a reference to another schema ($ref)
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Type is the data type; a single kind or a list of kinds (OpenAPI 3.1)
	Type SchemaType `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the data format (date-time, email, uuid, etc.)
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Title is a short title for the schema
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Description is a detailed description of the schema
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Default is the default value
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`

	// Example is an example value
	Example interface{} `json:"example,omitempty" yaml:"example,omitempty"`

	// Enum is a list of allowed values
	Enum []interface{} `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Nullable indicates if the value can be null
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// ReadOnly indicates the value is read-only
	ReadOnly bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`

	// WriteOnly indicates the value is write-only
	WriteOnly bool `json:"writeOnly,omitempty" yaml:"writeOnly,omitempty"`

	// Deprecated indicates the schema is deprecated
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// --- String Validation ---

	// MinLength is the minimum string length
	MinLength *int `json:"minLength,omitempty" yaml:"minLength,omitempty"`

	// MaxLength is the maximum string length
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`

	// Pattern is a regex pattern for string validation
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// --- Numeric Validation ---

	// Minimum is the minimum numeric value
	Minimum *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`

	// Maximum is the maximum numeric value
	Maximum *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	// ExclusiveMinimum is either a flag modifying Minimum (3.0) or a bound of its own (3.1)
	ExclusiveMinimum *Bound `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`

	// ExclusiveMaximum is either a flag modifying Maximum (3.0) or a bound of its own (3.1)
	ExclusiveMaximum *Bound `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`

	// MultipleOf specifies the value must be a multiple of this number
	MultipleOf *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`

	// --- Array Validation ---

	// Items is the schema for array items, or an ordered list for tuple-like arrays
	Items *Items `json:"items,omitempty" yaml:"items,omitempty"`

	// MinItems is the minimum number of array items
	MinItems *int `json:"minItems,omitempty" yaml:"minItems,omitempty"`

	// MaxItems is the maximum number of array items
	MaxItems *int `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// UniqueItems indicates if array items must be unique
	UniqueItems bool `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`

	// --- Object Validation ---

	// Properties maps property names to their schemas, in document order
	Properties Properties `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Required is a list of required property names
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// AdditionalProperties is either a boolean or the schema of additional properties
	AdditionalProperties *AdditionalProperties `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// MinProperties is the minimum number of properties
	MinProperties *int `json:"minProperties,omitempty" yaml:"minProperties,omitempty"`

	// MaxProperties is the maximum number of properties
	MaxProperties *int `json:"maxProperties,omitempty" yaml:"maxProperties,omitempty"`

	// --- Composition ---

	// AllOf is a list of schemas that must all be valid
	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`

	// OneOf is a list of schemas where exactly one must be valid
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`

	// AnyOf is a list of schemas where at least one must be valid
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`

	// Not is a schema that must not be valid
	Not *Schema `json:"not,omitempty" yaml:"not,omitempty"`

	// Discriminator is used for polymorphism
	Discriminator *Discriminator `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
}

// Discriminator is used for polymorphic schemas.
type Discriminator struct {
	// PropertyName is the name of the property used for discrimination
	PropertyName string `json:"propertyName" yaml:"propertyName"`

	// Mapping maps discriminator values to schema references
	Mapping map[string]string `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// SchemaType holds the declared kinds of a schema. OpenAPI 3.0 documents
// declare at most one kind; 3.1 documents may declare several.
type SchemaType []string

// Single returns the only declared kind, or false when zero or several kinds are declared.
func (t SchemaType) Single() (string, bool) {
	if len(t) != 1 {
		return "", false
	}
	return t[0], true
}

// Is reports whether the type declares exactly the given kind.
func (t SchemaType) Is(kind string) bool {
	k, ok := t.Single()
	return ok && k == kind
}

// Bound is an exclusive bound, spelled either as a boolean flag or as a number.
type Bound struct {
	// Flag is set when the bound is the OpenAPI 3.0 boolean spelling
	Flag bool

	// Value is set when the bound is the OpenAPI 3.1 numeric spelling
	Value *float64
}

// Items is either a single item schema or an ordered tuple of item schemas.
type Items struct {
	// Schema is the schema shared by every item
	Schema *Schema

	// Tuple holds positional item schemas
	Tuple []*Schema
}

// All returns every item schema, single or positional.
func (i *Items) All() []*Schema {
	if i == nil {
		return nil
	}
	if i.Schema != nil {
		return []*Schema{i.Schema}
	}
	return i.Tuple
}

// AdditionalProperties is either a boolean or a schema for unknown keys.
type AdditionalProperties struct {
	// Allowed is the boolean spelling; a schema implies true
	Allowed bool

	// Schema is the value schema of a dictionary-like object
	Schema *Schema
}

// Property is one named entry of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is an ordered list of object properties.
type Properties []Property

// Get returns the schema of the named property.
func (p Properties) Get(name string) (*Schema, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// Names returns the property names in declaration order.
func (p Properties) Names() []string {
	names := make([]string, 0, len(p))
	for _, prop := range p {
		names = append(names, prop.Name)
	}
	return names
}

// Kind returns the single declared kind, or "" when the kind is absent or multi-valued.
func (s *Schema) Kind() string {
	k, _ := s.Type.Single()
	return k
}

// IsNullable reports whether the schema accepts null through the nullable flag or a null enum member.
func (s *Schema) IsNullable() bool {
	if s.Nullable {
		return true
	}
	for _, v := range s.Enum {
		if v == nil {
			return true
		}
	}
	return false
}

// IsObjectLike reports whether the schema is an object, explicitly or implicitly.
func (s *Schema) IsObjectLike() bool {
	return s.Type.Is("object") || len(s.Properties) > 0 || s.AdditionalProperties != nil
}

// DefinesType reports whether the schema carries fields that define a type,
// as opposed to pure annotations.
func (s *Schema) DefinesType() bool {
	return len(s.Type) > 0 ||
		len(s.Properties) > 0 ||
		s.Items != nil ||
		len(s.Enum) > 0 ||
		len(s.AllOf) > 0 ||
		len(s.OneOf) > 0 ||
		len(s.AnyOf) > 0 ||
		s.AdditionalProperties != nil
}

// Clone returns a shallow copy of the schema.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
