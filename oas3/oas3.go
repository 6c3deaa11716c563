// Package oas3 exports a definition.Definition as an OpenAPI 3.0 document
// built with kin-openapi.
//
// Each category becomes a tag, each representation a component schema,
// and payloads reference those schemas. Operations without any documented
// response get a default response, which OpenAPI 3 requires.
package oas3

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/apidocs/definition"
)

// OpenAPIVersion is the version of the emitted documents.
const OpenAPIVersion = "3.0.3"

const (
	mimeJSON = "application/json"
	mimeForm = "application/x-www-form-urlencoded"

	defaultTitle = "API"
)

// supportedMethods are the methods a path item can hold.
var supportedMethods = []string{
	http.MethodConnect,
	http.MethodDelete,
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
	http.MethodTrace,
}

// Translate converts def into a validated OpenAPI 3 document. Operations
// using a method OpenAPI cannot express are left out. The definition is
// not modified.
func Translate(def *definition.Definition) (*openapi3.T, error) {
	t := &translator{
		def:        def,
		schemas:    make(openapi3.Schemas),
		operations: make(map[string]int),
	}

	doc, err := t.document()
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("oas3: invalid document: %w", err)
	}
	return doc, nil
}

type translator struct {
	def        *definition.Definition
	schemas    openapi3.Schemas
	operations map[string]int
}

func (t *translator) document() (*openapi3.T, error) {
	def := t.def

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:          def.Title,
			Description:    def.Description,
			TermsOfService: def.TermsOfService,
			Version:        def.EffectiveVersion(),
		},
		Paths: openapi3.NewPaths(),
	}
	if doc.Info.Title == "" {
		doc.Info.Title = defaultTitle
	}
	if def.Contact != nil {
		doc.Info.Contact = &openapi3.Contact{Name: def.Contact.Name, URL: def.Contact.URL, Email: def.Contact.Email}
	}
	if def.License != nil {
		doc.Info.License = &openapi3.License{Name: def.License.Name, URL: def.License.URL}
	}
	if def.BasePath != "" {
		doc.Servers = openapi3.Servers{{URL: def.BasePath}}
	}

	// Declare every component first so references can point at them.
	for _, repr := range def.Representations() {
		t.schemas[repr.Name] = &openapi3.SchemaRef{Value: openapi3.NewObjectSchema()}
	}
	for _, repr := range def.Representations() {
		t.fillSchema(t.schemas[repr.Name].Value, repr)
	}

	for _, category := range def.Categories() {
		tag := &openapi3.Tag{Name: category}
		for _, res := range def.ResourcesIn(category) {
			if res.Description != "" {
				tag.Description = res.Description
				break
			}
		}
		doc.Tags = append(doc.Tags, tag)
	}

	for _, res := range def.Resources {
		item := doc.Paths.Value(res.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(res.Path, item)
		}

		for _, op := range res.Operations {
			if !slices.Contains(supportedMethods, op.Method) {
				continue
			}
			if item.GetOperation(op.Method) != nil {
				return nil, fmt.Errorf("oas3: duplicate operation %s %s", op.Method, res.Path)
			}
			item.SetOperation(op.Method, t.operation(res, op))
		}
	}

	if len(t.schemas) > 0 {
		doc.Components = &openapi3.Components{Schemas: t.schemas}
	}
	return doc, nil
}

func (t *translator) operation(res *definition.Resource, op *definition.Operation) *openapi3.Operation {
	out := &openapi3.Operation{
		Tags:        []string{res.Category},
		Summary:     op.Summary,
		Description: op.Description,
		OperationID: t.operationID(op.Name),
		Deprecated:  op.Deprecated,
		Responses:   openapi3.NewResponsesWithCapacity(op.Responses.Len()),
	}

	var form *openapi3.Schema
	for _, p := range op.Parameters {
		switch p.In {
		case definition.InBody:
			out.RequestBody = t.requestBody(op, t.typeRef(p.Type, p.Format, p.AllowMultiple), p.Required, p.Description)
		case definition.InForm:
			if form == nil {
				form = openapi3.NewObjectSchema()
				form.Properties = make(openapi3.Schemas)
			}
			form.Properties[p.Name] = &openapi3.SchemaRef{Value: parameterSchema(p)}
			if p.Required {
				form.Required = append(form.Required, p.Name)
			}
		default:
			out.Parameters = append(out.Parameters, &openapi3.ParameterRef{Value: &openapi3.Parameter{
				Name:        p.Name,
				In:          p.In,
				Description: p.Description,
				Required:    p.Required || p.In == definition.InPath,
				Schema:      &openapi3.SchemaRef{Value: parameterSchema(p)},
			}})
		}
	}

	if out.RequestBody == nil && op.Input != nil {
		out.RequestBody = t.requestBody(op, t.payloadRef(op.Input), true, "")
	}
	if out.RequestBody == nil && form != nil {
		out.RequestBody = &openapi3.RequestBodyRef{Value: &openapi3.RequestBody{
			Required: len(form.Required) > 0,
			Content:  openapi3.Content{mimeForm: &openapi3.MediaType{Schema: &openapi3.SchemaRef{Value: form}}},
		}}
	}

	for _, r := range op.Responses.All() {
		desc := r.Message
		if desc == "" {
			desc = http.StatusText(r.Code)
		}
		resp := &openapi3.Response{Description: &desc}

		if r.Representation != "" {
			ref := t.typeRef(r.Representation, "", false)
			if op.Output != nil && op.Output.Type == r.Representation {
				ref = t.payloadRef(op.Output)
			}
			resp.Content = content(op.Produces, ref)
		}

		out.Responses.Set(strconv.Itoa(r.Code), &openapi3.ResponseRef{Value: resp})
	}

	if op.Responses.Len() == 0 {
		desc := "Default response"
		out.Responses.Set("default", &openapi3.ResponseRef{Value: &openapi3.Response{Description: &desc}})
	}

	return out
}

// operationID returns nickname, suffixed with a counter when it was
// already used.
func (t *translator) operationID(nickname string) string {
	if nickname == "" {
		return ""
	}

	t.operations[nickname]++
	if n := t.operations[nickname]; n > 1 {
		return nickname + strconv.Itoa(n)
	}
	return nickname
}

func (t *translator) requestBody(op *definition.Operation, ref *openapi3.SchemaRef, required bool, desc string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: &openapi3.RequestBody{
		Description: desc,
		Required:    required,
		Content:     content(op.Consumes, ref),
	}}
}

func content(mediaTypes []string, ref *openapi3.SchemaRef) openapi3.Content {
	if len(mediaTypes) == 0 {
		mediaTypes = []string{mimeJSON}
	}

	c := make(openapi3.Content, len(mediaTypes))
	for _, mt := range mediaTypes {
		c[mt] = &openapi3.MediaType{Schema: ref}
	}
	return c
}

func (t *translator) payloadRef(p *definition.Payload) *openapi3.SchemaRef {
	return t.typeRef(p.Type, p.Format, p.Array)
}

// typeRef returns a schema for a type name: a component reference for
// representations, an inline schema for primitives.
func (t *translator) typeRef(typ, format string, array bool) *openapi3.SchemaRef {
	var ref *openapi3.SchemaRef
	if isPrimitive(typ) {
		ref = &openapi3.SchemaRef{Value: primitiveSchema(typ, format)}
	} else {
		ref = t.componentRef(typ)
	}

	if !array {
		return ref
	}
	arr := openapi3.NewArraySchema()
	arr.Items = ref
	return &openapi3.SchemaRef{Value: arr}
}

// componentRef references a component schema, declaring an empty object
// schema for names no representation was registered under.
func (t *translator) componentRef(name string) *openapi3.SchemaRef {
	target, ok := t.schemas[name]
	if !ok {
		target = &openapi3.SchemaRef{Value: openapi3.NewObjectSchema()}
		t.schemas[name] = target
	}
	return openapi3.NewSchemaRef("#/components/schemas/"+name, target.Value)
}

func (t *translator) fillSchema(s *openapi3.Schema, repr *definition.Representation) {
	s.Description = repr.Description
	s.Required = repr.Properties.Required()
	s.Properties = make(openapi3.Schemas, repr.Properties.Len())

	for _, p := range repr.Properties.All() {
		s.Properties[p.Name] = t.propertyRef(p)
	}
}

func (t *translator) propertyRef(p *definition.Property) *openapi3.SchemaRef {
	if p.Ref != "" {
		return t.typeRef(p.Ref, "", p.Array)
	}

	s := primitiveSchema(p.Type, p.Format)
	s.Description = p.Description
	s.ReadOnly = p.ReadOnly
	s.Min = cloneFloat(p.Minimum)
	s.Max = cloneFloat(p.Maximum)
	s.Enum = typedValues(p.Type, p.Enum)
	if p.DefaultValue != "" {
		if v := typedValues(p.Type, []string{p.DefaultValue}); len(v) == 1 {
			s.Default = v[0]
		}
	}

	if !p.Array {
		return &openapi3.SchemaRef{Value: s}
	}
	arr := openapi3.NewArraySchema()
	arr.Description = s.Description
	s.Description = ""
	arr.Items = &openapi3.SchemaRef{Value: s}
	return &openapi3.SchemaRef{Value: arr}
}

func parameterSchema(p *definition.Parameter) *openapi3.Schema {
	s := primitiveSchema(p.Type, p.Format)
	s.Min = cloneFloat(p.Minimum)
	s.Max = cloneFloat(p.Maximum)
	s.Enum = typedValues(p.Type, p.Enum)
	if p.DefaultValue != "" {
		if v := typedValues(p.Type, []string{p.DefaultValue}); len(v) == 1 {
			s.Default = v[0]
		}
	}

	if !p.AllowMultiple {
		return s
	}
	arr := openapi3.NewArraySchema()
	arr.Items = &openapi3.SchemaRef{Value: s}
	return arr
}

func isPrimitive(typ string) bool {
	switch typ {
	case "", "integer", "number", "string", "boolean", "object":
		return true
	}
	return false
}

func primitiveSchema(typ, format string) *openapi3.Schema {
	var s *openapi3.Schema
	switch typ {
	case "integer":
		s = openapi3.NewIntegerSchema()
	case "number":
		s = openapi3.NewFloat64Schema()
	case "boolean":
		s = openapi3.NewBoolSchema()
	case "object":
		s = openapi3.NewObjectSchema()
	default:
		s = openapi3.NewStringSchema()
	}
	if format != "" {
		s.Format = format
	}
	return s
}

// typedValues converts enum or default values to the JSON type of typ,
// dropping values that do not parse.
func typedValues(typ string, values []string) []any {
	if len(values) == 0 {
		return nil
	}

	out := make([]any, 0, len(values))
	for _, v := range values {
		switch typ {
		case "integer":
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				out = append(out, n)
			}
		case "number":
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				out = append(out, f)
			}
		case "boolean":
			if b, err := strconv.ParseBool(v); err == nil {
				out = append(out, b)
			}
		default:
			out = append(out, v)
		}
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// MarshalYAML encodes doc as block-style YAML, keeping the key order of
// its JSON encoding.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)

	return yaml.Marshal(&node)
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
