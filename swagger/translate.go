package swagger

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/vitalvas/apidocs/definition"
)

// primitiveTypes are the Swagger 1.2 data types that are not model ids.
var primitiveTypes = map[string]bool{
	"integer": true,
	"number":  true,
	"string":  true,
	"boolean": true,
	"object":  true,
	"array":   true,
	"void":    true,
	"File":    true,
}

func isModel(typ string) bool {
	return typ != "" && !primitiveTypes[typ]
}

// CategoryPath returns the path of a category's API declaration relative
// to the resource listing.
func CategoryPath(category string) string {
	return "/" + url.PathEscape(category)
}

// ToIndexDocument returns the resource listing of def. Each category is
// listed once, in the order of its first resource; its description is the
// first non-empty description among its resources.
func ToIndexDocument(def *definition.Definition) *ResourceListing {
	listing := &ResourceListing{
		SwaggerVersion: SwaggerVersion,
		APIVersion:     def.EffectiveVersion(),
		BasePath:       def.BasePath,
		APIs:           make([]ResourceRef, 0),
		Info:           toInfo(def),
	}

	for _, category := range def.Categories() {
		ref := ResourceRef{Path: CategoryPath(category)}
		for _, res := range def.ResourcesIn(category) {
			if res.Description != "" {
				ref.Description = res.Description
				break
			}
		}
		listing.APIs = append(listing.APIs, ref)
	}

	return listing
}

func toInfo(def *definition.Definition) *Info {
	if def.Title == "" && def.Description == "" {
		return nil
	}

	info := &Info{
		Title:             def.Title,
		Description:       def.Description,
		TermsOfServiceURL: def.TermsOfService,
	}
	if def.Contact != nil {
		info.Contact = def.Contact.Email
	}
	if def.License != nil {
		info.License = def.License.Name
		info.LicenseURL = def.License.URL
	}
	return info
}

// ToDetailDocument returns the API declaration of one category. It fails
// with *UnknownCategoryError when no resource belongs to the category.
//
// Resources of the category sharing a path are grouped into one API entry.
// Models hold every representation reachable from the category's
// operations, directly or through property references, in definition
// order.
func ToDetailDocument(def *definition.Definition, category string) (*APIDeclaration, error) {
	resources := def.ResourcesIn(category)
	if len(resources) == 0 {
		return nil, &UnknownCategoryError{Category: category}
	}

	decl := &APIDeclaration{
		SwaggerVersion: SwaggerVersion,
		APIVersion:     def.EffectiveVersion(),
		BasePath:       def.BasePath,
		ResourcePath:   CategoryPath(category),
		APIs:           make([]API, 0, len(resources)),
	}

	var referenced []string
	paths := make(map[string]int)

	for _, res := range resources {
		idx, ok := paths[res.Path]
		if !ok {
			idx = len(decl.APIs)
			paths[res.Path] = idx
			decl.APIs = append(decl.APIs, API{
				Path:        res.Path,
				Description: res.Description,
				Operations:  make([]Operation, 0, len(res.Operations)),
			})
		}

		for _, op := range res.Operations {
			decl.APIs[idx].Operations = append(decl.APIs[idx].Operations, toOperation(op))
			referenced = append(referenced, operationRefs(op)...)
			decl.Produces = appendDistinct(decl.Produces, op.Produces...)
			decl.Consumes = appendDistinct(decl.Consumes, op.Consumes...)
		}
	}

	decl.Models = toModels(def, referenced)
	return decl, nil
}

func toOperation(op *definition.Operation) Operation {
	out := Operation{
		Method:     op.Method,
		Summary:    op.Summary,
		Notes:      op.Description,
		Nickname:   op.Name,
		Type:       "void",
		Parameters: make([]Parameter, 0, len(op.Parameters)+1),
		Produces:   slices.Clone(op.Produces),
		Consumes:   slices.Clone(op.Consumes),
	}
	if op.Deprecated {
		out.Deprecated = "true"
	}

	if op.Output != nil {
		out.Type, out.Format, out.Items = payloadType(op.Output)
	}

	hasBody := false
	for _, p := range op.Parameters {
		if p.In == definition.InBody {
			hasBody = true
		}
		out.Parameters = append(out.Parameters, toParameter(p))
	}

	if op.Input != nil && !hasBody {
		typ, format, items := payloadType(op.Input)
		out.Parameters = append(out.Parameters, Parameter{
			ParamType: definition.InBody,
			Name:      "body",
			Type:      typ,
			Format:    format,
			Items:     items,
			Required:  true,
		})
	}

	for _, r := range op.Responses.All() {
		out.ResponseMessages = append(out.ResponseMessages, ResponseMessage{
			Code:          r.Code,
			Message:       r.Message,
			ResponseModel: r.Representation,
		})
	}

	return out
}

// payloadType maps a payload to an operation or parameter type.
func payloadType(p *definition.Payload) (typ, format string, items *Items) {
	if p.Array {
		return "array", "", toItems(p.Type, p.Format)
	}
	return p.Type, p.Format, nil
}

func toItems(typ, format string) *Items {
	if isModel(typ) {
		return &Items{Ref: typ}
	}
	return &Items{Type: typ, Format: format}
}

func toParameter(p *definition.Parameter) Parameter {
	out := Parameter{
		ParamType:     p.In,
		Name:          p.Name,
		Description:   p.Description,
		Type:          p.Type,
		Format:        p.Format,
		Required:      p.Required,
		AllowMultiple: p.AllowMultiple,
		DefaultValue:  p.DefaultValue,
		Enum:          slices.Clone(p.Enum),
		Minimum:       formatBound(p.Minimum),
		Maximum:       formatBound(p.Maximum),
	}
	if out.Type == "" {
		out.Type = "string"
	}
	return out
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// operationRefs returns the model names an operation references.
func operationRefs(op *definition.Operation) []string {
	var refs []string
	if op.Output != nil && isModel(op.Output.Type) {
		refs = append(refs, op.Output.Type)
	}
	if op.Input != nil && isModel(op.Input.Type) {
		refs = append(refs, op.Input.Type)
	}
	for _, p := range op.Parameters {
		if isModel(p.Type) {
			refs = append(refs, p.Type)
		}
	}
	for _, r := range op.Responses.All() {
		if r.Representation != "" {
			refs = append(refs, r.Representation)
		}
	}
	return refs
}

// toModels collects the representations reachable from names and returns
// them in definition order.
func toModels(def *definition.Definition, names []string) OrderedMap[*Model] {
	reachable := make(map[string]bool)
	queue := slices.Clone(names)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if reachable[name] {
			continue
		}

		repr, ok := def.Representation(name)
		if !ok {
			continue
		}
		reachable[name] = true

		for _, p := range repr.Properties.All() {
			if p.Ref != "" && !reachable[p.Ref] {
				queue = append(queue, p.Ref)
			}
		}
	}

	var models OrderedMap[*Model]
	for _, repr := range def.Representations() {
		if reachable[repr.Name] {
			models = append(models, Entry[*Model]{Key: repr.Name, Value: toModel(repr)})
		}
	}
	return models
}

func toModel(repr *definition.Representation) *Model {
	m := &Model{
		ID:          repr.Name,
		Description: repr.Description,
		Required:    repr.Properties.Required(),
		Properties:  make(OrderedMap[*ModelProperty], 0, repr.Properties.Len()),
	}

	for _, p := range repr.Properties.All() {
		m.Properties = append(m.Properties, Entry[*ModelProperty]{Key: p.Name, Value: toModelProperty(p)})
	}
	return m
}

func toModelProperty(p *definition.Property) *ModelProperty {
	out := &ModelProperty{
		Description:  p.Description,
		DefaultValue: p.DefaultValue,
		Enum:         slices.Clone(p.Enum),
		Minimum:      formatBound(p.Minimum),
		Maximum:      formatBound(p.Maximum),
	}

	typ := p.Type
	if p.Ref != "" {
		typ = p.Ref
	}
	if typ == "" {
		typ = "string"
	}

	switch {
	case p.Array:
		out.Type = "array"
		out.Items = toItems(typ, p.Format)
	case p.Ref != "":
		out.Ref = p.Ref
	default:
		out.Type = typ
		out.Format = p.Format
	}
	return out
}

func appendDistinct(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
