package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is the parsed schema document, reduced to what rendering
// needs. Slices preserve the document's own key order so that output
// order is the document's order.
type Document struct {
	Schemas    []SchemaDef
	Operations []Operation
}

// SchemaDef is one named object schema from components.schemas.
type SchemaDef struct {
	Name   string
	Fields []FieldDef
}

// FieldDef is one property of an object schema.
type FieldDef struct {
	Name     string // JSON property name
	GoName   string
	GoType   string
	Optional bool
}

// Operation is one method+path pair from the paths section.
type Operation struct {
	Name           string // binding identifier
	Method         string // upper-case HTTP method
	Path           string
	IDParam        string // path parameter name, "" if none
	RequestRef     string // request body schema name, "" if none
	ResponseRef    string // success response schema name, "" for 204
	ResponseIsList bool
	SuccessStatus  int
}

// member is one key/value pair of a JSON object in document order.
type member struct {
	key string
	raw json.RawMessage
}

// decodeOrdered reads a JSON object keeping member order, which
// encoding/json's map decoding would discard.
func decodeOrdered(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}
	var members []member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		members = append(members, member{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

func lookup(members []member, key string) (json.RawMessage, bool) {
	for _, m := range members {
		if m.key == key {
			return m.raw, true
		}
	}
	return nil, false
}

// propSchema is the subset of a property schema the generator maps to
// Go types.
type propSchema struct {
	Type   string      `json:"type"`
	Format string      `json:"format"`
	Items  *propSchema `json:"items"`
	Ref    string      `json:"$ref"`
}

// ParseDocument parses the schema document. Every referenced type must
// resolve to a concrete structural definition; anything unresolved is an
// error here, before any file is rendered.
func ParseDocument(data []byte) (*Document, error) {
	top, err := decodeOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}

	doc := &Document{}
	if err := parseSchemas(top, doc); err != nil {
		return nil, err
	}
	if err := parsePaths(top, doc); err != nil {
		return nil, err
	}
	if err := checkCollisions(doc.Operations); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseSchemas(top []member, doc *Document) error {
	componentsRaw, ok := lookup(top, "components")
	if !ok {
		return fmt.Errorf("schema document has no components section")
	}
	components, err := decodeOrdered(componentsRaw)
	if err != nil {
		return err
	}
	schemasRaw, ok := lookup(components, "schemas")
	if !ok {
		return fmt.Errorf("schema document has no components.schemas")
	}
	schemas, err := decodeOrdered(schemasRaw)
	if err != nil {
		return err
	}

	for _, s := range schemas {
		def, err := parseSchemaDef(s.key, s.raw)
		if err != nil {
			return err
		}
		doc.Schemas = append(doc.Schemas, def)
	}
	return nil
}

func parseSchemaDef(name string, raw json.RawMessage) (SchemaDef, error) {
	obj, err := decodeOrdered(raw)
	if err != nil {
		return SchemaDef{}, fmt.Errorf("schema %s: %w", name, err)
	}

	required := map[string]bool{}
	if reqRaw, ok := lookup(obj, "required"); ok {
		var names []string
		if err := json.Unmarshal(reqRaw, &names); err != nil {
			return SchemaDef{}, fmt.Errorf("schema %s: required: %w", name, err)
		}
		for _, n := range names {
			required[n] = true
		}
	}

	propsRaw, ok := lookup(obj, "properties")
	if !ok {
		return SchemaDef{}, fmt.Errorf("schema %s has no properties", name)
	}
	props, err := decodeOrdered(propsRaw)
	if err != nil {
		return SchemaDef{}, fmt.Errorf("schema %s: %w", name, err)
	}

	def := SchemaDef{Name: name}
	for _, p := range props {
		var ps propSchema
		if err := json.Unmarshal(p.raw, &ps); err != nil {
			return SchemaDef{}, fmt.Errorf("schema %s.%s: %w", name, p.key, err)
		}
		goType, err := goTypeFor(ps)
		if err != nil {
			return SchemaDef{}, fmt.Errorf("schema %s.%s: %w", name, p.key, err)
		}
		optional := !required[p.key]
		if optional && !strings.HasPrefix(goType, "[]") {
			goType = "*" + goType
		}
		def.Fields = append(def.Fields, FieldDef{
			Name:     p.key,
			GoName:   exportedField(p.key),
			GoType:   goType,
			Optional: optional,
		})
	}
	return def, nil
}

func goTypeFor(ps propSchema) (string, error) {
	if ps.Ref != "" {
		return "", fmt.Errorf("unresolved reference %q: nested schema references are not part of the contract", ps.Ref)
	}
	switch ps.Type {
	case "string":
		if ps.Format == "date-time" {
			return "time.Time", nil
		}
		return "string", nil
	case "integer":
		return "int64", nil
	case "number":
		return "float64", nil
	case "boolean":
		return "bool", nil
	case "array":
		if ps.Items == nil {
			return "", fmt.Errorf("array property without items")
		}
		elem, err := goTypeFor(*ps.Items)
		if err != nil {
			return "", err
		}
		return "[]" + elem, nil
	}
	return "", fmt.Errorf("unresolvable type %q", ps.Type)
}

func parsePaths(top []member, doc *Document) error {
	pathsRaw, ok := lookup(top, "paths")
	if !ok {
		return fmt.Errorf("schema document has no paths section")
	}
	paths, err := decodeOrdered(pathsRaw)
	if err != nil {
		return err
	}

	known := map[string]bool{}
	for _, s := range doc.Schemas {
		known[s.Name] = true
	}

	for _, p := range paths {
		methods, err := decodeOrdered(p.raw)
		if err != nil {
			return fmt.Errorf("path %s: %w", p.key, err)
		}
		for _, m := range methods {
			op, err := parseOperation(strings.ToUpper(m.key), p.key, m.raw, known)
			if err != nil {
				return err
			}
			doc.Operations = append(doc.Operations, op)
		}
	}
	return nil
}

// wire shapes for the parts of a path item we read with plain decoding.
type opBody struct {
	OperationID string `json:"operationId"`
	RequestBody *struct {
		Content map[string]struct {
			Schema propSchema `json:"schema"`
		} `json:"content"`
	} `json:"requestBody"`
	Responses map[string]struct {
		Content map[string]struct {
			Schema struct {
				Ref   string      `json:"$ref"`
				Type  string      `json:"type"`
				Items *propSchema `json:"items"`
			} `json:"schema"`
		} `json:"content"`
	} `json:"responses"`
}

func parseOperation(method, path string, raw json.RawMessage, known map[string]bool) (Operation, error) {
	var body opBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return Operation{}, fmt.Errorf("%s %s: %w", method, path, err)
	}

	op := Operation{
		Method: method,
		Path:   path,
		Name:   body.OperationID,
	}
	if op.Name == "" {
		op.Name = BindingName(method, path)
	}
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			op.IDParam = seg[1 : len(seg)-1]
		}
	}

	if body.RequestBody != nil {
		js, ok := body.RequestBody.Content["application/json"]
		if !ok {
			return Operation{}, fmt.Errorf("%s %s: request body is not application/json", method, path)
		}
		name, err := resolveRef(js.Schema.Ref, known)
		if err != nil {
			return Operation{}, fmt.Errorf("%s %s: request body: %w", method, path, err)
		}
		op.RequestRef = name
	}

	for _, status := range []string{"200", "201", "204"} {
		resp, ok := body.Responses[status]
		if !ok {
			continue
		}
		op.SuccessStatus = statusCode(status)
		if status == "204" {
			break
		}
		js, ok := resp.Content["application/json"]
		if !ok {
			break
		}
		if js.Schema.Type == "array" {
			if js.Schema.Items == nil {
				return Operation{}, fmt.Errorf("%s %s: array response without items", method, path)
			}
			name, err := resolveRef(js.Schema.Items.Ref, known)
			if err != nil {
				return Operation{}, fmt.Errorf("%s %s: response: %w", method, path, err)
			}
			op.ResponseRef = name
			op.ResponseIsList = true
			break
		}
		name, err := resolveRef(js.Schema.Ref, known)
		if err != nil {
			return Operation{}, fmt.Errorf("%s %s: response: %w", method, path, err)
		}
		op.ResponseRef = name
		break
	}
	if op.SuccessStatus == 0 {
		return Operation{}, fmt.Errorf("%s %s: no success response declared", method, path)
	}
	return op, nil
}

const schemaRefPrefix = "#/components/schemas/"

func resolveRef(ref string, known map[string]bool) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("missing schema reference")
	}
	if !strings.HasPrefix(ref, schemaRefPrefix) {
		return "", fmt.Errorf("unresolved reference %q", ref)
	}
	name := strings.TrimPrefix(ref, schemaRefPrefix)
	if !known[name] {
		return "", fmt.Errorf("reference %q does not resolve to a declared schema", ref)
	}
	return name, nil
}

func statusCode(s string) int {
	switch s {
	case "200":
		return 200
	case "201":
		return 201
	case "204":
		return 204
	}
	return 0
}
