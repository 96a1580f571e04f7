package jsonschema

import (
	"net/url"
	"strconv"
	"strings"
)

// resolveReference resolves a local $ref against the root schema document.
// Only fragment references into the current document are supported; anything
// else fails with RemoteReferenceError. The returned node is the referenced
// sub-schema, which is always an object.
//
// The pointer walk follows the document structure: an object key descends
// into its value when that value is an object; when the value is an array,
// the next path segment is consumed as a zero-based index into it.
func resolveReference(root map[string]any, ref string) (map[string]any, Error) {
	rest, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return nil, &RemoteReferenceError{Reference: ref}
	}

	if rest == "" {
		return root, nil
	}

	if !strings.HasPrefix(rest, "/") {
		return nil, &ReferenceNotFoundError{Reference: ref, Segment: rest}
	}

	decoded, err := url.PathUnescape(rest)
	if err != nil {
		return nil, &ReferenceNotFoundError{Reference: ref, Segment: rest}
	}

	segments := strings.Split(decoded[1:], "/")

	current := root
	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		next, present := current[seg]
		if !present {
			return nil, &ReferenceNotFoundError{Reference: ref, Segment: seg}
		}

		switch node := next.(type) {
		case map[string]any:
			current = node
		case []any:
			// The key addressed an array, so the following segment must be
			// an index into it.
			i++
			if i >= len(segments) {
				return nil, &ReferenceNotFoundError{Reference: ref, Segment: seg}
			}
			idx, convErr := strconv.Atoi(segments[i])
			if convErr != nil || idx < 0 || idx >= len(node) {
				return nil, &ReferenceNotFoundError{Reference: ref, Segment: segments[i]}
			}
			elem, isObject := node[idx].(map[string]any)
			if !isObject {
				return nil, &ReferenceNotFoundError{Reference: ref, Segment: segments[i]}
			}
			current = elem
		default:
			return nil, &ReferenceNotFoundError{Reference: ref, Segment: seg}
		}
	}

	return current, nil
}
