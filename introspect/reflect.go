package introspect

import (
	"reflect"
	"strings"
	"time"

	"github.com/vitalvas/apidocs/definition"
)

var timeType = reflect.TypeFor[time.Time]()

var primitiveNames = map[string]bool{
	"integer": true,
	"number":  true,
	"string":  true,
	"boolean": true,
	"object":  true,
}

// Describer can be implemented by representation types to provide the
// description of the generated model.
//
//	func (Bookmark) APIDescription() string {
//	    return "A bookmarked URI"
//	}
type Describer interface {
	APIDescription() string
}

// typeInfo is the documentation type of a Go type.
type typeInfo struct {
	typ    string
	format string
	array  bool
	ref    *RepresentationClass
}

// ClassOf returns the representation class of a value whose type, after
// unwrapping pointers, slices, arrays and maps, is a named struct.
func ClassOf(v any) (RepresentationClass, bool) {
	if v == nil {
		return RepresentationClass{}, false
	}
	info := describeType(reflect.TypeOf(v))
	if info.ref == nil {
		return RepresentationClass{}, false
	}
	return *info.ref, true
}

// Named is a payload known only by its type name, for resource classes
// declared without Go types. Names other than the primitive types
// (integer, number, string, boolean, object) refer to representations.
//
//	dispatch.MethodSpec{Method: http.MethodGet, Output: introspect.Named{Name: "Bookmark", Array: true}}
type Named struct {
	Name  string
	Array bool
}

// PayloadOf describes the payload carried by a sample value. It returns
// nil for a nil value. Named struct types are reported as representation
// classes to be documented.
func PayloadOf(v any) (*definition.Payload, []RepresentationClass) {
	if v == nil {
		return nil, nil
	}

	if n, ok := v.(Named); ok {
		if n.Name == "" {
			return nil, nil
		}
		payload := &definition.Payload{Type: n.Name, Array: n.Array}
		if primitiveNames[n.Name] {
			return payload, nil
		}
		return payload, []RepresentationClass{{Name: n.Name}}
	}

	info := describeType(reflect.TypeOf(v))
	payload := &definition.Payload{Type: info.typ, Format: info.format, Array: info.array}
	if info.ref == nil {
		return payload, nil
	}
	payload.Type = info.ref.Name
	return payload, []RepresentationClass{*info.ref}
}

// describeType maps a Go type to a documentation type. Named structs other
// than time.Time become references; nested collections flatten to an
// array of their innermost element.
func describeType(t reflect.Type) typeInfo {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == timeType {
		return typeInfo{typ: "string", format: "date-time"}
	}

	switch t.Kind() {
	case reflect.Bool:
		return typeInfo{typ: "boolean"}

	case reflect.Int64, reflect.Uint64, reflect.Int, reflect.Uint:
		return typeInfo{typ: "integer", format: "int64"}

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return typeInfo{typ: "integer", format: "int32"}

	case reflect.Float32:
		return typeInfo{typ: "number", format: "float"}

	case reflect.Float64:
		return typeInfo{typ: "number", format: "double"}

	case reflect.String:
		return typeInfo{typ: "string"}

	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return typeInfo{typ: "string", format: "byte"}
		}
		info := describeType(t.Elem())
		info.array = true
		return info

	case reflect.Struct:
		if name := representationName(t); name != "" {
			return typeInfo{ref: &RepresentationClass{Name: name, Type: t}}
		}
		return typeInfo{typ: "object"}
	}

	return typeInfo{typ: "object"}
}

// representationName returns the model name of a named struct type.
// Generic instantiations such as Page[Bookmark] become "PageBookmark".
func representationName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return ""
	}

	name := t.Name()
	idx := strings.IndexByte(name, '[')
	if idx < 0 {
		return name
	}

	base := name[:idx]
	inner := name[idx+1 : len(name)-1]

	isList := strings.HasPrefix(inner, "[]")
	inner = strings.TrimPrefix(inner, "[]")

	if dot := strings.LastIndexByte(inner, '.'); dot >= 0 {
		inner = inner[dot+1:]
	}

	result := base + inner
	if isList {
		result += "List"
	}
	return result
}

// structField is one documented field of a representation type.
type structField struct {
	prop  *definition.Property
	field reflect.StructField
	ref   *RepresentationClass
}

// structFields enumerates the JSON-visible fields of a struct type.
func structFields(t reflect.Type) []structField {
	if t == nil {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []structField
	collectFields(t, &fields, false)
	return fields
}

// collectFields appends the fields of t. Embedded structs without a json
// name are inlined; fields of a pointer-embedded struct are optional
// since the pointer may be nil.
func collectFields(t reflect.Type, fields *[]structField, allOptional bool) {
	for i := range t.NumField() {
		field := t.Field(i)

		if !field.IsExported() {
			continue
		}

		if field.Anonymous {
			jsonName, _ := parseJSONTag(field.Tag.Get("json"))
			if jsonName == "" {
				ft := field.Type
				isPtr := ft.Kind() == reflect.Pointer
				if isPtr {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					collectFields(ft, fields, allOptional || isPtr)
					continue
				}
			}
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name, opts := parseJSONTag(jsonTag)
		if name == "" {
			name = field.Name
		}

		if hasField(*fields, name) {
			continue
		}

		info := describeType(field.Type)
		prop := &definition.Property{
			Name:     name,
			Type:     info.typ,
			Format:   info.format,
			Array:    info.array,
			Required: !opts.omitempty && !allOptional,
		}
		if info.ref != nil {
			prop.Ref = info.ref.Name
		}

		// ",string" encodes numbers and booleans as JSON strings.
		if opts.stringEncode && info.ref == nil && !info.array {
			switch prop.Type {
			case "integer", "number", "boolean":
				prop.Type = "string"
				prop.Format = ""
			}
		}

		*fields = append(*fields, structField{prop: prop, field: field, ref: info.ref})
	}
}

func hasField(fields []structField, name string) bool {
	for _, f := range fields {
		if f.prop.Name == name {
			return true
		}
	}
	return false
}

type jsonTagOpts struct {
	omitempty    bool
	stringEncode bool
}

func parseJSONTag(tag string) (string, jsonTagOpts) {
	if tag == "" {
		return "", jsonTagOpts{}
	}
	name, rest, _ := strings.Cut(tag, ",")

	var opts jsonTagOpts
	for opt := range strings.SplitSeq(rest, ",") {
		switch opt {
		case "omitempty", "omitzero":
			opts.omitempty = true
		case "string":
			opts.stringEncode = true
		}
	}
	return name, opts
}
