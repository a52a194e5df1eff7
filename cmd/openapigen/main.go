// cmd/openapigen derives the published schema document from the entity
// declarations in schema/ and the operation declarations in codegen/.
//
// Output: gen/openapi/swagger.json (plus the embed shim the server uses
// to publish it at /swagger/v1/swagger.json).
//
// The document is a pure function of the declarations: no stored data is
// consulted, and ordered maps keep the output byte-stable so repeated
// runs produce no diffs. Any field or operation that does not resolve to
// a concrete structural definition is fatal here, before anything is
// written.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/mattbenson/storefront/internal/codegen"
)

// ─── Data types ──────────────────────────────────────────────────────────────

type fieldDef struct {
	Name       string
	FieldType  string // "string","int","float","bool","time","enum","stringlist"
	Optional   bool
	EnumValues []string
}

type entityInfo struct {
	Name   string
	Fields []fieldDef
}

type serviceDef struct {
	Name       string
	Entity     string
	Path       string
	Operations []string // "list","get","create","update","delete"
}

// ─── CUE parsing ─────────────────────────────────────────────────────────────

func findProjectRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			log.Fatal("no go.mod found")
		}
		dir = parent
	}
}

func findReference(val cue.Value) string {
	_, path := val.ReferencePath()
	if path.String() != "" {
		sels := path.Selectors()
		if len(sels) > 0 {
			return sels[len(sels)-1].String()
		}
	}
	op, args := val.Expr()
	if op == cue.AndOp || op == cue.OrOp {
		for _, a := range args {
			if r := findReference(a); r != "" {
				return r
			}
		}
	}
	if op == cue.SelectorOp && len(args) >= 2 {
		if s, err := args[1].String(); err == nil && s == "Time" {
			return "time.Time"
		}
	}
	return ""
}

func isTimeField(val cue.Value) bool {
	r := findReference(val)
	return r == "time.Time" || r == "Time"
}

func isEnum(val cue.Value) bool {
	op, args := val.Expr()
	if op != cue.OrOp || len(args) < 2 {
		return false
	}
	for _, a := range args {
		if a.IncompleteKind() != cue.StringKind {
			return false
		}
	}
	return true
}

func extractEnumValues(val cue.Value) []string {
	op, args := val.Expr()
	if op != cue.OrOp {
		return nil
	}
	var values []string
	for _, arg := range args {
		if s, err := arg.String(); err == nil {
			values = append(values, s)
			continue
		}
		if d, ok := arg.Default(); ok {
			if s, err := d.String(); err == nil {
				values = append(values, s)
			}
		}
	}
	return values
}

func inferKindFromExpr(val cue.Value) cue.Kind {
	op, args := val.Expr()
	if op == cue.AndOp || op == cue.OrOp {
		for _, a := range args {
			if k := a.IncompleteKind(); k != cue.BottomKind {
				return k
			}
			if k := inferKindFromExpr(a); k != cue.BottomKind {
				return k
			}
		}
	}
	return cue.BottomKind
}

// classifyField resolves a declared field to one of the schema's
// primitive shapes. A field that resolves to nothing is a schema
// resolution failure and aborts the export.
func classifyField(entity, name string, val cue.Value, optional bool) fieldDef {
	fd := fieldDef{Name: name, Optional: optional}

	if isTimeField(val) {
		fd.FieldType = "time"
		return fd
	}

	if isEnum(val) {
		fd.FieldType = "enum"
		fd.EnumValues = extractEnumValues(val)
		return fd
	}

	if val.IncompleteKind() == cue.ListKind {
		elem := val.LookupPath(cue.MakePath(cue.AnyIndex))
		if elem.Err() == nil && elem.IncompleteKind() == cue.StringKind {
			fd.FieldType = "stringlist"
			return fd
		}
		log.Fatalf("schema resolution: field %s.%s is a list of an unsupported element type", entity, name)
	}

	kind := val.IncompleteKind()
	if kind == cue.BottomKind {
		kind = inferKindFromExpr(val)
	}

	switch kind {
	case cue.StringKind:
		fd.FieldType = "string"
	case cue.IntKind:
		fd.FieldType = "int"
	case cue.FloatKind, cue.NumberKind:
		fd.FieldType = "float"
	case cue.BoolKind:
		fd.FieldType = "bool"
	default:
		log.Fatalf("schema resolution: field %s.%s does not resolve to a concrete structural type", entity, name)
	}
	return fd
}

// parseEntities walks the schema package. A definition is an entity when
// it declares both id and createdAt.
func parseEntities(val cue.Value) map[string]*entityInfo {
	entities := make(map[string]*entityInfo)
	iter, _ := val.Fields(cue.Definitions(true))
	for iter.Next() {
		label := iter.Selector().String()
		defVal := iter.Value()
		if defVal.LookupPath(cue.ParsePath("id")).Err() != nil {
			continue
		}
		if defVal.LookupPath(cue.ParsePath("createdAt")).Err() != nil {
			continue
		}
		name := strings.TrimPrefix(label, "#")
		ent := &entityInfo{Name: name}
		fIter, _ := defVal.Fields(cue.Optional(true))
		for fIter.Next() {
			fLabel := strings.TrimSuffix(fIter.Selector().String(), "?")
			if strings.HasPrefix(fLabel, "_") {
				continue
			}
			ent.Fields = append(ent.Fields,
				classifyField(name, fLabel, fIter.Value(), fIter.IsOptional()))
		}
		entities[name] = ent
	}
	return entities
}

func parseServices(ctx *cue.Context, projectRoot string) []serviceDef {
	insts := load.Instances([]string{"./codegen"}, &load.Config{Dir: projectRoot})
	if len(insts) == 0 || insts[0].Err != nil {
		log.Fatalf("loading codegen: %v", insts[0].Err)
	}
	val := ctx.BuildInstance(insts[0])
	if val.Err() != nil {
		log.Fatalf("building codegen: %v", val.Err())
	}
	svcList := val.LookupPath(cue.ParsePath("services"))
	if svcList.Err() != nil {
		log.Fatalf("no services in codegen: %v", svcList.Err())
	}
	var services []serviceDef
	iter, _ := svcList.List()
	for iter.Next() {
		s := iter.Value()
		svc := serviceDef{}
		svc.Name, _ = s.LookupPath(cue.ParsePath("name")).String()
		svc.Entity, _ = s.LookupPath(cue.ParsePath("entity")).String()
		svc.Path, _ = s.LookupPath(cue.ParsePath("path")).String()
		oIter, _ := s.LookupPath(cue.ParsePath("operations")).List()
		for oIter.Next() {
			op, err := oIter.Value().String()
			if err != nil {
				log.Fatalf("service %s: bad operation: %v", svc.Name, err)
			}
			svc.Operations = append(svc.Operations, op)
		}
		services = append(services, svc)
	}
	return services
}

// ─── OpenAPI spec building ───────────────────────────────────────────────────

// orderedMap marshals its members in insertion order. Plain Go maps are
// fine for leaf objects (encoding/json sorts their keys); the document's
// top level, paths and schemas carry meaning in their order.
type orderedMap struct {
	keys   []string
	values map[string]interface{}
}

func newOrderedMap() *orderedMap {
	return &orderedMap{values: make(map[string]interface{})}
}

func (om *orderedMap) Set(key string, value interface{}) {
	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
}

func (om *orderedMap) MarshalJSON() ([]byte, error) {
	var buf strings.Builder
	buf.WriteString("{")
	for i, key := range om.keys {
		if i > 0 {
			buf.WriteString(",")
		}
		keyJSON, _ := json.Marshal(key)
		buf.Write(keyJSON)
		buf.WriteString(":")
		valJSON, err := json.Marshal(om.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteString("}")
	return []byte(buf.String()), nil
}

func fieldToSchema(f fieldDef) map[string]interface{} {
	switch f.FieldType {
	case "string":
		return map[string]interface{}{"type": "string"}
	case "int":
		return map[string]interface{}{"type": "integer", "format": "int64"}
	case "float":
		return map[string]interface{}{"type": "number", "format": "double"}
	case "bool":
		return map[string]interface{}{"type": "boolean"}
	case "time":
		return map[string]interface{}{"type": "string", "format": "date-time"}
	case "enum":
		return map[string]interface{}{"type": "string", "enum": f.EnumValues}
	case "stringlist":
		return map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		}
	}
	log.Fatalf("unmapped field type %q", f.FieldType)
	return nil
}

func buildEntitySchema(ent *entityInfo) *orderedMap {
	schema := newOrderedMap()
	schema.Set("type", "object")

	props := newOrderedMap()
	var required []string
	for _, f := range ent.Fields {
		props.Set(f.Name, fieldToSchema(f))
		if !f.Optional {
			required = append(required, f.Name)
		}
	}
	schema.Set("properties", props)
	if len(required) > 0 {
		schema.Set("required", required)
	}
	return schema
}

func idParameter() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "id", "in": "path", "required": true,
			"schema": map[string]interface{}{"type": "integer", "format": "int64"}},
	}
}

func entityRef(entity string) map[string]interface{} {
	return map[string]interface{}{"$ref": "#/components/schemas/" + entity}
}

func jsonContent(schema map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"application/json": map[string]interface{}{"schema": schema},
	}
}

func httpMethod(opKind string) string {
	switch opKind {
	case "list", "get":
		return "get"
	case "create":
		return "post"
	case "update":
		return "put"
	case "delete":
		return "delete"
	}
	log.Fatalf("unknown operation kind %q", opKind)
	return ""
}

func opPath(basePath, opKind string) string {
	switch opKind {
	case "list", "create":
		return basePath
	default:
		return basePath + "/{id}"
	}
}

func buildPathItem(svc serviceDef, opKind, method, path string) map[string]interface{} {
	item := map[string]interface{}{
		"operationId": codegen.BindingName(strings.ToUpper(method), path),
		"tags":        []string{svc.Name},
	}

	switch opKind {
	case "list":
		item["responses"] = map[string]interface{}{
			"200": map[string]interface{}{
				"description": "OK",
				"content": jsonContent(map[string]interface{}{
					"type":  "array",
					"items": entityRef(svc.Entity),
				}),
			},
		}

	case "get":
		item["parameters"] = idParameter()
		item["responses"] = map[string]interface{}{
			"200": map[string]interface{}{
				"description": "OK",
				"content":     jsonContent(entityRef(svc.Entity)),
			},
			"404": map[string]interface{}{"description": "Not Found"},
		}

	case "create":
		item["requestBody"] = map[string]interface{}{
			"required": true,
			"content":  jsonContent(entityRef(svc.Entity)),
		}
		item["responses"] = map[string]interface{}{
			"201": map[string]interface{}{
				"description": "Created",
				"content":     jsonContent(entityRef(svc.Entity)),
			},
			"400": map[string]interface{}{"description": "Bad Request"},
		}

	case "update":
		item["parameters"] = idParameter()
		item["requestBody"] = map[string]interface{}{
			"required": true,
			"content":  jsonContent(entityRef(svc.Entity)),
		}
		item["responses"] = map[string]interface{}{
			"204": map[string]interface{}{"description": "No Content"},
			"400": map[string]interface{}{"description": "Bad Request"},
			"404": map[string]interface{}{"description": "Not Found"},
		}

	case "delete":
		item["parameters"] = idParameter()
		item["responses"] = map[string]interface{}{
			"204": map[string]interface{}{"description": "No Content"},
			"404": map[string]interface{}{"description": "Not Found"},
		}
	}

	return item
}

// ─── Main ────────────────────────────────────────────────────────────────────

const embedShim = `// Code generated by openapigen. DO NOT EDIT.

// Package openapi embeds the exported schema document.
package openapi

import _ "embed"

// Document is the machine-readable API description published at
// /swagger/v1/swagger.json.
//
//go:embed swagger.json
var Document []byte
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("openapigen: ")

	ctx := cuecontext.New()
	projectRoot := findProjectRoot()

	insts := load.Instances([]string{"./schema"}, &load.Config{Dir: projectRoot})
	if len(insts) == 0 || insts[0].Err != nil {
		log.Fatalf("loading schema: %v", insts[0].Err)
	}
	val := ctx.BuildInstance(insts[0])
	if val.Err() != nil {
		log.Fatalf("building schema: %v", val.Err())
	}

	entities := parseEntities(val)
	services := parseServices(ctx, projectRoot)
	for _, svc := range services {
		if _, ok := entities[svc.Entity]; !ok {
			log.Fatalf("schema resolution: service %s references undeclared entity %q", svc.Name, svc.Entity)
		}
	}

	spec := newOrderedMap()
	spec.Set("openapi", "3.1.0")
	spec.Set("info", map[string]interface{}{
		"title":       "Storefront API",
		"version":     "1.0.0",
		"description": "CRUD API derived from the declarations in schema/. All endpoints accept and return JSON.",
	})
	spec.Set("servers", []map[string]interface{}{
		{"url": "http://localhost:8080", "description": "Local development"},
	})

	paths := newOrderedMap()
	for _, svc := range services {
		basePath := "/api/" + svc.Path
		for _, opKind := range svc.Operations {
			method := httpMethod(opKind)
			path := opPath(basePath, opKind)

			var entry *orderedMap
			if existing, ok := paths.values[path]; ok {
				entry = existing.(*orderedMap)
			} else {
				entry = newOrderedMap()
				paths.Set(path, entry)
			}
			entry.Set(method, buildPathItem(svc, opKind, method, path))
		}
	}
	spec.Set("paths", paths)

	schemas := newOrderedMap()
	for _, svc := range services {
		schemas.Set(svc.Entity, buildEntitySchema(entities[svc.Entity]))
	}
	schemas.Set("Error", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"code":  map[string]interface{}{"type": "string"},
			"error": map[string]interface{}{"type": "string"},
		},
		"required": []string{"code", "error"},
	})

	components := newOrderedMap()
	components.Set("schemas", schemas)
	spec.Set("components", components)

	outDir := filepath.Join(projectRoot, "gen", "openapi")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("creating %s: %v", outDir, err)
	}
	data, err := json.MarshalIndent(spec, "", "    ")
	if err != nil {
		log.Fatalf("marshaling spec: %v", err)
	}
	data = append(data, '\n')
	outPath := filepath.Join(outDir, "swagger.json")
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		log.Fatalf("writing %s: %v", outPath, err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "openapi.go"), []byte(embedShim), 0644); err != nil {
		log.Fatalf("writing embed shim: %v", err)
	}

	fmt.Printf("openapigen: generated %s (%d bytes, %d paths, %d schemas)\n",
		outPath, len(data), len(paths.keys), len(schemas.keys))
}
