// Package jsonschema validates decoded JSON values against draft-4 style
// JSON Schema documents. It reports every violation found, not just the
// first, as a list of typed errors.
//
// The package consumes values as produced by encoding/json: nil, bool,
// float64 (or json.Number), string, []any and map[string]any. Programmatic
// int and int64 values are accepted too.
package jsonschema

import (
	"encoding/json"
	"math"
)

// Kind identifies the JSON type of a decoded value.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInteger
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON Schema type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// kindOf classifies a decoded JSON value. Numeric values with a zero
// fractional part are KindInteger; booleans are never numeric even if the
// host encoding shares their representation with numbers.
func kindOf(v any) Kind {
	switch val := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	case int, int64:
		return KindInteger
	case float64:
		if math.Trunc(val) == val {
			return KindInteger
		}
		return KindNumber
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return KindInvalid
		}
		if math.Trunc(f) == f {
			return KindInteger
		}
		return KindNumber
	default:
		return KindInvalid
	}
}

// asNumber extracts the numeric value of v. Booleans are not numbers.
func asNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// matchesType reports whether v matches the given JSON Schema type name.
// Unrecognised names never match.
func matchesType(v any, name string) bool {
	k := kindOf(v)
	switch name {
	case "object":
		return k == KindObject
	case "array":
		return k == KindArray
	case "string":
		return k == KindString
	case "boolean":
		return k == KindBool
	case "integer":
		return k == KindInteger
	case "number":
		return k == KindInteger || k == KindNumber
	case "null":
		return k == KindNull
	default:
		return false
	}
}

// jsonEqual compares two decoded JSON values by value. Numbers compare
// numerically (5 equals 5.0) but booleans only equal booleans. Object key
// order is irrelevant.
func jsonEqual(a, b any) bool {
	return valueEqual(a, b, false)
}

// uniqueEqual is the equality used by uniqueItems. It behaves like
// jsonEqual except that booleans additionally compare equal to the numbers
// 1 (true) and 0 (false), matching the encoding shared by the two types.
func uniqueEqual(a, b any) bool {
	return valueEqual(a, b, true)
}

func valueEqual(a, b any, coerceBool bool) bool {
	if na, aOK := coercedNumber(a, coerceBool); aOK {
		nb, bOK := coercedNumber(b, coerceBool)
		return bOK && na == nb
	}

	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i], coerceBool) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bVal, present := bv[k]
			if !present || !valueEqual(v, bVal, coerceBool) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// coercedNumber returns the numeric value of v for equality purposes.
// With coerceBool set, true and false count as 1 and 0.
func coercedNumber(v any, coerceBool bool) (float64, bool) {
	if bv, ok := v.(bool); ok {
		if !coerceBool {
			return 0, false
		}
		if bv {
			return 1, true
		}
		return 0, true
	}
	return asNumber(v)
}
