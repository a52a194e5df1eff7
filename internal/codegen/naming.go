// Package codegen turns the exported schema document into Go client
// bindings. All output is a pure function of the document: ordered
// parsing, a documented naming scheme, and template rendering with no
// other inputs, so regeneration against an unchanged document is
// byte-identical.
package codegen

import (
	"fmt"
	"strings"
)

// BindingName maps an operation's HTTP method and path template to its
// binding identifier. The mapping is the published contract for
// predicting binding names without inspecting generator internals:
//
//   - the method contributes its title-cased form: GET -> Get
//   - each literal path segment is split on "-" and "_" and each part is
//     title-cased: "users" -> Users, "order-items" -> OrderItems
//   - each templated segment {name} contributes "By" plus the
//     title-cased parameter name: "{id}" -> ById
//   - segments are concatenated in path order after the method
//
// So GET /api/users/{id} -> GetApiUsersById.
//
// Two distinct operations can collapse to the same identifier (for
// example /api/order-items and /api/order_items). BindingName stays a
// pure function; callers detect collisions and must fail generation
// rather than rename.
func BindingName(method, path string) string {
	var b strings.Builder
	b.WriteString(titleCase(method))
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			b.WriteString("By")
			b.WriteString(titleCase(seg[1 : len(seg)-1]))
			continue
		}
		b.WriteString(titleCase(seg))
	}
	return b.String()
}

// checkCollisions returns an error naming the first pair of operations
// whose binding identifiers collide.
func checkCollisions(ops []Operation) error {
	seen := make(map[string]Operation, len(ops))
	for _, op := range ops {
		if prev, ok := seen[op.Name]; ok {
			return fmt.Errorf("binding name collision: %s %s and %s %s both map to %q",
				prev.Method, prev.Path, op.Method, op.Path, op.Name)
		}
		seen[op.Name] = op
	}
	return nil
}

// titleCase upper-cases the first letter of every "-"/"_"-separated part
// and lower-cases the rest. Initialisms are deliberately not special-
// cased ("api" -> "Api"); the scheme trades Go naming convention for
// predictability.
func titleCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return b.String()
}

// exportedField maps a JSON property name to a generated struct field
// name. Same scheme as titleCase: "firstName" -> "FirstName",
// "imageUrl" -> "ImageUrl".
func exportedField(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
