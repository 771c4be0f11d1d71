/*
Package store persists user records in a DynamoDB table keyed on username.

This file compiles sparse update documents into DynamoDB update expressions.
The store supports only flat path assignment, so nested documents are
flattened into dotted paths with one SET clause per remaining leaf.
*/
package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UpdateExpression is a compiled SET expression together with its attribute
// name and value placeholder maps.
type UpdateExpression struct {
	Expression string
	Names      map[string]string
	Values     map[string]types.AttributeValue
}

// pathValue is one flattened leaf: the dotted attribute path and its value.
type pathValue struct {
	path  string
	value any
}

// flattenDocument walks the nested document depth-first and emits one
// pathValue per concrete leaf. Keys are visited in sorted order so compiled
// expressions are deterministic. Empty subtrees produce nothing.
func flattenDocument(doc map[string]any, prefix string, out []pathValue) []pathValue {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nested, ok := doc[key].(map[string]any); ok {
			out = flattenDocument(nested, path, out)
		} else {
			out = append(out, pathValue{path: path, value: doc[key]})
		}
	}

	return out
}

// valuePlaceholder derives a value placeholder from the full flattened path,
// not just the leaf key, so leaves with the same name at different nesting
// levels (address.city vs. a top-level city) can never collide.
func valuePlaceholder(path string) string {
	return ":u_" + strings.ReplaceAll(path, ".", "_")
}

// namePlaceholder aliases a single path segment so attribute names that
// collide with DynamoDB reserved words (state, zip) stay usable.
func namePlaceholder(segment string) string {
	return "#" + segment
}

// CompileUpdate turns a sparse nested document into a single SET expression.
// The boolean result reports whether there is anything to write: a document
// with no concrete leaves compiles to a no-op and the caller must not issue
// a mutation, since an update expression with zero assignments is invalid.
func CompileUpdate(doc map[string]any) (UpdateExpression, bool, error) {
	leaves := flattenDocument(doc, "", nil)
	if len(leaves) == 0 {
		return UpdateExpression{}, false, nil
	}

	assignments := make([]string, 0, len(leaves))
	names := make(map[string]string)
	values := make(map[string]types.AttributeValue, len(leaves))

	for _, leaf := range leaves {
		segments := strings.Split(leaf.path, ".")
		aliased := make([]string, len(segments))
		for i, segment := range segments {
			alias := namePlaceholder(segment)
			names[alias] = segment
			aliased[i] = alias
		}

		placeholder := valuePlaceholder(leaf.path)
		attr, err := attributevalue.Marshal(leaf.value)
		if err != nil {
			return UpdateExpression{}, false, fmt.Errorf("marshaling value for %s: %w", leaf.path, err)
		}
		values[placeholder] = attr

		assignments = append(assignments, fmt.Sprintf("%s = %s", strings.Join(aliased, "."), placeholder))
	}

	compiled := UpdateExpression{
		Expression: "SET " + strings.Join(assignments, ", "),
		Names:      names,
		Values:     values,
	}
	return compiled, true, nil
}
