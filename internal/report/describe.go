// Package report renders validation reports for humans and machines. The
// engine emits structured errors only; every human-readable message lives
// here.
package report

import (
	"fmt"
	"strings"

	"github.com/andyballingall/json-schema-validator/jsonschema"
)

// ErrorInfo is the machine-readable rendering of one validation error.
type ErrorInfo struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// Describe converts an engine error into its presentation form. The default
// branch keeps the reporter total if the engine grows a new error kind.
func Describe(err jsonschema.Error) ErrorInfo {
	switch e := err.(type) {
	case *jsonschema.UnmatchingTypeError:
		return info("type", fmt.Sprintf("expected a value of type %s", e.Expected),
			"expected", e.Expected)
	case *jsonschema.InvalidTypeError:
		return info("invalid-type", "the type keyword must be a string or an array of strings")
	case *jsonschema.AnyOfError:
		return info("anyOf", fmt.Sprintf("value matched none of the %d alternatives", e.Alternatives),
			"alternatives", e.Alternatives)
	case *jsonschema.OneOfError:
		return info("oneOf", fmt.Sprintf("value must match exactly one alternative but matched %d", e.Passed),
			"passed", e.Passed)
	case *jsonschema.NotError:
		return info("not", "value matches the schema it must not match")
	case *jsonschema.EnumError:
		return info("enum", fmt.Sprintf("value is not one of the %d permitted values", len(e.Allowed)),
			"allowed", e.Allowed)
	case *jsonschema.MaxLengthError:
		return info("maxLength", fmt.Sprintf("string is %d characters long, the maximum is %d", e.Length, e.Limit),
			"limit", e.Limit, "length", e.Length)
	case *jsonschema.MinLengthError:
		return info("minLength", fmt.Sprintf("string is %d characters long, the minimum is %d", e.Length, e.Limit),
			"limit", e.Limit, "length", e.Length)
	case *jsonschema.PatternError:
		return info("pattern", fmt.Sprintf("string does not match the pattern %q", e.Pattern),
			"pattern", e.Pattern)
	case *jsonschema.InvalidRegexError:
		return info("invalid-regex", fmt.Sprintf("the schema pattern %q is not a valid regular expression", e.Pattern),
			"pattern", e.Pattern)
	case *jsonschema.MultipleOfError:
		return info("multipleOf", fmt.Sprintf("number is not a multiple of %v", e.Divisor),
			"divisor", e.Divisor)
	case *jsonschema.MinimumError:
		cmp := "at least"
		if e.Exclusive {
			cmp = "greater than"
		}
		return info("minimum", fmt.Sprintf("number must be %s %v", cmp, e.Bound),
			"bound", e.Bound, "exclusive", e.Exclusive)
	case *jsonschema.MaximumError:
		cmp := "at most"
		if e.Exclusive {
			cmp = "less than"
		}
		return info("maximum", fmt.Sprintf("number must be %s %v", cmp, e.Bound),
			"bound", e.Bound, "exclusive", e.Exclusive)
	case *jsonschema.MinItemsError:
		return info("minItems", fmt.Sprintf("array has %d items, the minimum is %d", e.Count, e.Limit),
			"limit", e.Limit, "count", e.Count)
	case *jsonschema.MaxItemsError:
		return info("maxItems", fmt.Sprintf("array has %d items, the maximum is %d", e.Count, e.Limit),
			"limit", e.Limit, "count", e.Count)
	case *jsonschema.UniqueItemsError:
		return info("uniqueItems", "array items are not unique")
	case *jsonschema.AdditionalPropertiesError:
		if e.On == jsonschema.KindArray {
			return info("additionalItems", "the array has items beyond those the schema permits")
		}
		return info("additionalProperties", "the object has properties the schema does not permit")
	case *jsonschema.MinPropertiesError:
		return info("minProperties", fmt.Sprintf("object has %d properties, the minimum is %d", e.Count, e.Limit),
			"limit", e.Limit, "count", e.Count)
	case *jsonschema.MaxPropertiesError:
		return info("maxProperties", fmt.Sprintf("object has %d properties, the maximum is %d", e.Count, e.Limit),
			"limit", e.Limit, "count", e.Count)
	case *jsonschema.RequiredError:
		return info("required",
			fmt.Sprintf("object is missing one or more required properties of [%s]", strings.Join(e.Required, ", ")),
			"required", e.Required)
	case *jsonschema.DependencyMissingError:
		return info("dependencies",
			fmt.Sprintf("property %q requires property %q to be present", e.Property, e.Dependency),
			"property", e.Property, "dependency", e.Dependency)
	case *jsonschema.FormatUnsupportedError:
		return info("format-unsupported", fmt.Sprintf("the format %q is not supported", e.Format),
			"format", e.Format)
	case *jsonschema.FormatError:
		return info("format", fmt.Sprintf("value is not a valid %s", e.Format),
			"format", e.Format)
	case *jsonschema.RemoteReferenceError:
		return info("remote-reference",
			fmt.Sprintf("the reference %q points outside the document and cannot be resolved", e.Reference),
			"reference", e.Reference)
	case *jsonschema.ReferenceNotFoundError:
		return info("reference-not-found",
			fmt.Sprintf("the reference %q could not be resolved at %q", e.Reference, e.Segment),
			"reference", e.Reference, "segment", e.Segment)
	case *jsonschema.ReferenceDepthError:
		return info("reference-depth",
			fmt.Sprintf("the reference %q expanded beyond the depth limit of %d", e.Reference, e.Depth),
			"reference", e.Reference, "depth", e.Depth)
	default:
		return info("unknown", err.Error())
	}
}

func info(code, message string, detail ...any) ErrorInfo {
	ei := ErrorInfo{Code: code, Message: message}
	if len(detail) > 0 {
		ei.Detail = make(map[string]any, len(detail)/2)
		for i := 0; i+1 < len(detail); i += 2 {
			ei.Detail[detail[i].(string)] = detail[i+1]
		}
	}
	return ei
}
