package jsonschema

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBasicObjectSchema(t *testing.T) {
	t.Parallel()

	schema := decodeSchema(t, `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"price": {"type": "number"}
		},
		"required": ["name"]
	}`)

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()
		res := Validate(decodeValue(t, `{"name":"Eggs","price":34.99}`), schema)
		assert.True(t, res.Valid(), "errors: %v", res.Errors())
	})

	t.Run("missing required property", func(t *testing.T) {
		t.Parallel()
		res := Validate(decodeValue(t, `{"price":34.99}`), schema)
		require.False(t, res.Valid())
		require.Len(t, res.Errors(), 1)
		reqErr, ok := res.Errors()[0].(*RequiredError)
		require.True(t, ok)
		assert.Equal(t, []string{"name"}, reqErr.Required)
	})
}

func TestReferenceResolutionScenarios(t *testing.T) {
	t.Parallel()

	schema := decodeSchema(t, `{
		"$ref": "#/definitions/positiveInteger",
		"definitions": {
			"positiveInteger": {"type": "integer", "minimum": 0}
		}
	}`)

	t.Run("valid value", func(t *testing.T) {
		t.Parallel()
		assert.True(t, Validate(decodeValue(t, `5`), schema).Valid())
	})

	t.Run("bounds violation", func(t *testing.T) {
		t.Parallel()
		res := Validate(decodeValue(t, `-5`), schema)
		require.Len(t, res.Errors(), 1)
		assert.IsType(t, &MinimumError{}, res.Errors()[0])
	})

	t.Run("type violation", func(t *testing.T) {
		t.Parallel()
		res := Validate(decodeValue(t, `"a"`), schema)
		require.Len(t, res.Errors(), 1)
		assert.IsType(t, &UnmatchingTypeError{}, res.Errors()[0])
	})
}

func TestUnresolvableReference(t *testing.T) {
	t.Parallel()

	res := Validate(decodeValue(t, `5`), decodeSchema(t, `{"$ref":"#/missing"}`))
	require.False(t, res.Valid())
	require.Len(t, res.Errors(), 1)
	nfErr, ok := res.Errors()[0].(*ReferenceNotFoundError)
	require.True(t, ok)
	assert.Equal(t, "#/missing", nfErr.Reference)
	assert.Equal(t, "missing", nfErr.Segment)
}

func TestRemoteReferenceFailsClosed(t *testing.T) {
	t.Parallel()

	res := Validate(decodeValue(t, `5`), decodeSchema(t, `{"$ref":"http://example.com/s.json#"}`))
	require.False(t, res.Valid())
	require.Len(t, res.Errors(), 1)
	assert.IsType(t, &RemoteReferenceError{}, res.Errors()[0])
}

func TestRecursiveSchema(t *testing.T) {
	t.Parallel()

	// A linked-list schema: each node has an integer value and an optional
	// next node. Legitimate recursion terminates on finite values.
	schema := decodeSchema(t, `{
		"$ref": "#/definitions/node",
		"definitions": {
			"node": {
				"type": "object",
				"required": ["value"],
				"properties": {
					"value": {"type": "integer"},
					"next": {"$ref": "#/definitions/node"}
				}
			}
		}
	}`)
	s := NewSchema(schema)

	t.Run("nested list validates", func(t *testing.T) {
		t.Parallel()
		res := s.Validate(decodeValue(t, `{"value":1,"next":{"value":2,"next":{"value":3}}}`))
		assert.True(t, res.Valid(), "errors: %v", res.Errors())
	})

	t.Run("violation deep in the chain", func(t *testing.T) {
		t.Parallel()
		res := s.Validate(decodeValue(t, `{"value":1,"next":{"value":"x"}}`))
		require.False(t, res.Valid())
		assert.IsType(t, &UnmatchingTypeError{}, res.Errors()[0])
	})
}

func TestSelfReferenceDepthGuard(t *testing.T) {
	t.Parallel()

	// {"$ref": "#"} has no terminating base case: every expansion re-enters
	// the root. Evaluation must fail with a depth error instead of
	// overflowing the stack.
	s := NewSchema(decodeSchema(t, `{"$ref":"#"}`))
	res := s.Validate(decodeValue(t, `5`))
	require.False(t, res.Valid())
	require.Len(t, res.Errors(), 1)
	depthErr, ok := res.Errors()[0].(*ReferenceDepthError)
	require.True(t, ok)
	assert.Equal(t, "#", depthErr.Reference)
	assert.Equal(t, DefaultMaxReferenceDepth, depthErr.Depth)
}

func TestWithMaxReferenceDepth(t *testing.T) {
	t.Parallel()

	// Depth 3 permits a chain of three nodes but not four.
	schema := decodeSchema(t, `{
		"$ref": "#/definitions/node",
		"definitions": {
			"node": {
				"properties": {
					"next": {"$ref": "#/definitions/node"}
				}
			}
		}
	}`)
	s := NewSchema(schema, WithMaxReferenceDepth(3))

	shallow := decodeValue(t, `{"next":{"next":{}}}`)
	assert.True(t, s.Validate(shallow).Valid())

	deep := decodeValue(t, `{"next":{"next":{"next":{"next":{}}}}}`)
	res := s.Validate(deep)
	require.False(t, res.Valid())
	assert.IsType(t, &ReferenceDepthError{}, res.Errors()[0])
}

func TestWithFormat(t *testing.T) {
	t.Parallel()

	even := func(v any) bool {
		n, ok := asNumber(v)
		return !ok || n == 2*float64(int64(n/2))
	}

	schema := decodeSchema(t, `{"format":"even"}`)

	t.Run("custom format registered", func(t *testing.T) {
		t.Parallel()
		s := NewSchema(schema, WithFormat("even", even))
		assert.True(t, s.Validate(decodeValue(t, `4`)).Valid())

		res := s.Validate(decodeValue(t, `3`))
		require.Len(t, res.Errors(), 1)
		fmtErr, ok := res.Errors()[0].(*FormatError)
		require.True(t, ok)
		assert.Equal(t, "even", fmtErr.Format)
	})

	t.Run("unregistered format is unsupported", func(t *testing.T) {
		t.Parallel()
		res := NewSchema(schema).Validate(decodeValue(t, `4`))
		require.Len(t, res.Errors(), 1)
		assert.IsType(t, &FormatUnsupportedError{}, res.Errors()[0])
	})
}

func TestValidateDeterminism(t *testing.T) {
	t.Parallel()

	schema := decodeSchema(t, `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"b": {"type": "string"},
			"a": {"type": "integer"},
			"c": {"pattern": "^v"}
		},
		"additionalProperties": false,
		"minProperties": 5
	}`)
	value := decodeValue(t, `{"a":"x","b":2,"c":"nope","d":1,"e":2}`)

	s := NewSchema(schema)
	first := s.Validate(value)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Validate(value))
	}

	// A fresh compilation produces the same result too.
	assert.Equal(t, first, Validate(value, schema))
}

func TestConcurrentValidation(t *testing.T) {
	t.Parallel()

	schema := decodeSchema(t, `{
		"$ref": "#/definitions/item",
		"definitions": {
			"item": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "integer"},
					"child": {"$ref": "#/definitions/item"}
				}
			}
		}
	}`)
	s := NewSchema(schema)

	good := decodeValue(t, `{"id":1,"child":{"id":2}}`)
	bad := decodeValue(t, `{"id":"x"}`)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(fail bool) {
			defer wg.Done()
			if fail {
				assert.False(t, s.Validate(bad).Valid())
			} else {
				assert.True(t, s.Validate(good).Valid())
			}
		}(i%2 == 0)
	}
	wg.Wait()
}

func TestSchemaAccessors(t *testing.T) {
	t.Parallel()

	s := NewSchema(decodeSchema(t, `{
		"title": "Product",
		"description": "A product in the catalogue",
		"type": ["object", "null"],
		"properties": {
			"name": {"type": "string"}
		}
	}`))

	assert.Equal(t, "Product", s.Title())
	assert.Equal(t, "A product in the catalogue", s.Description())
	assert.Equal(t, []string{"object", "null"}, s.Types())
	require.Contains(t, s.Properties(), "name")

	empty := NewSchema(decodeSchema(t, `{}`))
	assert.Empty(t, empty.Title())
	assert.Empty(t, empty.Description())
	assert.Nil(t, empty.Types())
	assert.Nil(t, empty.Properties())
}

func TestErrorMessagesAreDescriptive(t *testing.T) {
	t.Parallel()

	res := Validate(decodeValue(t, `{"price":1}`), decodeSchema(t, `{"required":["name","price"]}`))
	require.Len(t, res.Errors(), 1)
	msg := res.Errors()[0].Error()
	assert.True(t, strings.Contains(msg, "name"), "message should name the property: %s", msg)
}
