package jsonschema

import (
	"fmt"
	"strings"
)

// Error is a structured validation failure. The set of implementations is
// closed: callers distinguish failures by type-switching on the concrete
// error structs below. Human-readable formatting via Error() is provided for
// convenience; presentation layers are expected to build their own messages
// from the struct fields.
type Error interface {
	error
	validationError()
}

type UnmatchingTypeError struct {
	Expected string // The type name the schema required
}

func (e *UnmatchingTypeError) Error() string {
	return fmt.Sprintf("value is not of type %q", e.Expected)
}

// InvalidTypeError reports a `type` keyword whose payload is neither a
// string nor an array of strings.
type InvalidTypeError struct{}

func (e *InvalidTypeError) Error() string {
	return "type must be a string or an array of strings"
}

type AnyOfError struct {
	Alternatives int // How many alternative schemas were tried
}

func (e *AnyOfError) Error() string {
	return fmt.Sprintf("value matched none of the %d anyOf alternatives", e.Alternatives)
}

type OneOfError struct {
	Passed int // How many alternative schemas validated
}

func (e *OneOfError) Error() string {
	return fmt.Sprintf("value must match exactly one oneOf alternative, matched %d", e.Passed)
}

type NotError struct{}

func (e *NotError) Error() string {
	return "value matches the schema it must not match"
}

type EnumError struct {
	Allowed []any // The values the schema permits
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("value is not one of the %d permitted enum values", len(e.Allowed))
}

type MaxLengthError struct {
	Limit  int
	Length int
}

func (e *MaxLengthError) Error() string {
	return fmt.Sprintf("string has %d characters, maximum is %d", e.Length, e.Limit)
}

type MinLengthError struct {
	Limit  int
	Length int
}

func (e *MinLengthError) Error() string {
	return fmt.Sprintf("string has %d characters, minimum is %d", e.Length, e.Limit)
}

type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("string does not match pattern %q", e.Pattern)
}

// InvalidRegexError reports a pattern or patternProperties entry that is not
// a valid regular expression.
type InvalidRegexError struct {
	Pattern string
}

func (e *InvalidRegexError) Error() string {
	return fmt.Sprintf("%q is not a valid regular expression", e.Pattern)
}

type MultipleOfError struct {
	Divisor float64
}

func (e *MultipleOfError) Error() string {
	return fmt.Sprintf("number is not a multiple of %v", e.Divisor)
}

type MinimumError struct {
	Bound     float64
	Exclusive bool
}

func (e *MinimumError) Error() string {
	if e.Exclusive {
		return fmt.Sprintf("number must be greater than %v", e.Bound)
	}
	return fmt.Sprintf("number must be at least %v", e.Bound)
}

type MaximumError struct {
	Bound     float64
	Exclusive bool
}

func (e *MaximumError) Error() string {
	if e.Exclusive {
		return fmt.Sprintf("number must be less than %v", e.Bound)
	}
	return fmt.Sprintf("number must be at most %v", e.Bound)
}

type MinItemsError struct {
	Limit int
	Count int
}

func (e *MinItemsError) Error() string {
	return fmt.Sprintf("array has %d items, minimum is %d", e.Count, e.Limit)
}

type MaxItemsError struct {
	Limit int
	Count int
}

func (e *MaxItemsError) Error() string {
	return fmt.Sprintf("array has %d items, maximum is %d", e.Count, e.Limit)
}

type UniqueItemsError struct{}

func (e *UniqueItemsError) Error() string {
	return "array items are not unique"
}

// AdditionalPropertiesError reports a value rejected by an
// additionalProperties or additionalItems of false. On records whether the
// offending value was an object member (KindObject) or an array element
// beyond the items list (KindArray).
type AdditionalPropertiesError struct {
	On Kind
}

func (e *AdditionalPropertiesError) Error() string {
	if e.On == KindArray {
		return "additional array items are not permitted"
	}
	return "additional object properties are not permitted"
}

type MinPropertiesError struct {
	Limit int
	Count int
}

func (e *MinPropertiesError) Error() string {
	return fmt.Sprintf("object has %d properties, minimum is %d", e.Count, e.Limit)
}

type MaxPropertiesError struct {
	Limit int
	Count int
}

func (e *MaxPropertiesError) Error() string {
	return fmt.Sprintf("object has %d properties, maximum is %d", e.Count, e.Limit)
}

// RequiredError reports that one or more required properties are absent.
// Required names the full required list from the schema, not only the
// missing keys.
type RequiredError struct {
	Required []string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("object is missing required properties of [%s]", strings.Join(e.Required, ", "))
}

type DependencyMissingError struct {
	Property   string // The property that triggered the dependency
	Dependency string // The property that must accompany it
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("property %q requires property %q to be present", e.Property, e.Dependency)
}

type FormatUnsupportedError struct {
	Format string
}

func (e *FormatUnsupportedError) Error() string {
	return fmt.Sprintf("format %q is not supported", e.Format)
}

type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("value is not a valid %s", e.Format)
}

// RemoteReferenceError reports a $ref that points outside the current
// document. Remote resolution is unsupported and never attempted.
type RemoteReferenceError struct {
	Reference string
}

func (e *RemoteReferenceError) Error() string {
	return fmt.Sprintf("remote reference %q is not supported", e.Reference)
}

type ReferenceNotFoundError struct {
	Reference string
	Segment   string // The path segment at which resolution failed
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("reference %q cannot be resolved at segment %q", e.Reference, e.Segment)
}

// ReferenceDepthError reports that evaluation abandoned a chain of $ref
// expansions deeper than the schema's configured ceiling. It guards against
// cyclic references with no terminating base case.
type ReferenceDepthError struct {
	Reference string
	Depth     int
}

func (e *ReferenceDepthError) Error() string {
	return fmt.Sprintf("reference %q exceeded the expansion depth limit of %d", e.Reference, e.Depth)
}

func (e *UnmatchingTypeError) validationError() {}
func (e *InvalidTypeError) validationError() {}
func (e *AnyOfError) validationError() {}
func (e *OneOfError) validationError() {}
func (e *NotError) validationError() {}
func (e *EnumError) validationError() {}
func (e *MaxLengthError) validationError() {}
func (e *MinLengthError) validationError() {}
func (e *PatternError) validationError() {}
func (e *InvalidRegexError) validationError() {}
func (e *MultipleOfError) validationError() {}
func (e *MinimumError) validationError() {}
func (e *MaximumError) validationError() {}
func (e *MinItemsError) validationError() {}
func (e *MaxItemsError) validationError() {}
func (e *UniqueItemsError) validationError() {}
func (e *AdditionalPropertiesError) validationError() {}
func (e *MinPropertiesError) validationError() {}
func (e *MaxPropertiesError) validationError() {}
func (e *RequiredError) validationError() {}
func (e *DependencyMissingError) validationError() {}
func (e *FormatUnsupportedError) validationError() {}
func (e *FormatError) validationError() {}
func (e *RemoteReferenceError) validationError() {}
func (e *ReferenceNotFoundError) validationError() {}
func (e *ReferenceDepthError) validationError() {}
