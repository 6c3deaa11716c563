package metadata

import (
	"github.com/vitalvas/apidocs/definition"
	"github.com/vitalvas/apidocs/dispatch"
	"github.com/vitalvas/apidocs/introspect"
)

// Extractor applies documentation from a Source. Fields set in the source
// override what earlier extractors produced; parameters and responses
// merge by key.
type Extractor struct {
	introspect.BaseExtractor
	src Source
}

var _ introspect.Extractor = (*Extractor)(nil)

// NewExtractor creates an extractor reading from src.
func NewExtractor(src Source) *Extractor {
	return &Extractor{src: src}
}

// Name implements introspect.Extractor.
func (e *Extractor) Name() string {
	return "metadata"
}

// ContributeToDefinition implements introspect.Extractor.
func (e *Extractor) ContributeToDefinition(def *definition.Definition, _ introspect.Application) error {
	api, ok := e.src.Definition()
	if !ok {
		return nil
	}

	setString(&def.Version, api.Version)
	setString(&def.Title, api.Title)
	setString(&def.Description, api.Description)
	setString(&def.TermsOfService, api.TermsOfService)

	if api.Contact != nil {
		def.Contact = &definition.Contact{Name: api.Contact.Name, URL: api.Contact.URL, Email: api.Contact.Email}
	}
	if api.License != nil {
		def.License = &definition.License{Name: api.License.Name, URL: api.License.URL}
	}
	return nil
}

// ContributeToResource implements introspect.Extractor.
func (e *Extractor) ContributeToResource(res *definition.Resource, class *dispatch.ResourceClass) error {
	meta, ok := e.src.Resource(class.Name)
	if !ok {
		return nil
	}

	setString(&res.Category, meta.Category)
	setString(&res.Description, meta.Description)
	return nil
}

// ContributeToOperation implements introspect.Extractor. Operations are
// looked up by method spec key, then by HTTP method. Models named by
// responses and body parameters are returned for documentation.
func (e *Extractor) ContributeToOperation(_ *definition.Resource, op *definition.Operation, src introspect.OperationSource) ([]introspect.RepresentationClass, error) {
	meta, ok := e.src.Operation(src.Class.Name, src.Method.Key())
	if !ok {
		meta, ok = e.src.Operation(src.Class.Name, op.Method)
	}
	if !ok {
		return nil, nil
	}

	setString(&op.Name, meta.Nickname)
	setString(&op.Summary, meta.Summary)
	setString(&op.Description, meta.Notes)
	if meta.Deprecated {
		op.Deprecated = true
	}
	if len(meta.Produces) > 0 {
		op.Produces = append([]string(nil), meta.Produces...)
	}
	if len(meta.Consumes) > 0 {
		op.Consumes = append([]string(nil), meta.Consumes...)
	}

	var refs []introspect.RepresentationClass

	for _, p := range meta.Parameters {
		op.SetParameter(&definition.Parameter{
			Name:          p.Name,
			In:            p.In,
			Type:          p.Type,
			Format:        p.Format,
			Description:   p.Description,
			Required:      p.Required || p.In == definition.InPath,
			AllowMultiple: p.AllowMultiple,
			DefaultValue:  p.Default,
			Enum:          append([]string(nil), p.Enum...),
			Minimum:       copyFloat(p.Minimum),
			Maximum:       copyFloat(p.Maximum),
		})

		if p.In == definition.InBody {
			if _, ok := e.src.Representation(p.Type); ok {
				refs = append(refs, introspect.RepresentationClass{Name: p.Type})
			}
		}
	}

	for _, r := range meta.Responses {
		op.Responses.Set(&definition.Response{Code: r.Code, Message: r.Message, Representation: r.Model})
		if r.Model != "" {
			refs = append(refs, introspect.RepresentationClass{Name: r.Model})
		}
	}

	return refs, nil
}

// ContributeToRepresentation implements introspect.Extractor. Properties
// declared in the source but absent from the representation are added.
func (e *Extractor) ContributeToRepresentation(repr *definition.Representation, _ introspect.RepresentationClass) error {
	meta, ok := e.src.Representation(repr.Name)
	if !ok {
		return nil
	}

	setString(&repr.Description, meta.Description)

	for _, name := range meta.PropertyNames() {
		if _, exists := repr.Properties.Get(name); exists {
			continue
		}
		prop := &definition.Property{Name: name}
		if pm, ok := e.src.Property(repr.Name, name); ok {
			applyProperty(prop, pm)
		}
		repr.Properties.Set(prop)
	}
	return nil
}

// ContributeToProperty implements introspect.Extractor.
func (e *Extractor) ContributeToProperty(prop *definition.Property, src introspect.PropertySource) error {
	meta, ok := e.src.Property(src.Owner.Name, prop.Name)
	if !ok {
		return nil
	}

	applyProperty(prop, meta)
	return nil
}

func applyProperty(prop *definition.Property, meta *Property) {
	setString(&prop.Type, meta.Type)
	setString(&prop.Format, meta.Format)
	setString(&prop.Description, meta.Description)
	setString(&prop.Ref, meta.Ref)
	setString(&prop.DefaultValue, meta.Default)

	if meta.Required != nil {
		prop.Required = *meta.Required
	}
	if meta.ReadOnly != nil {
		prop.ReadOnly = *meta.ReadOnly
	}
	if meta.Array {
		prop.Array = true
	}
	if len(meta.Enum) > 0 {
		prop.Enum = append([]string(nil), meta.Enum...)
	}
	if meta.Minimum != nil {
		prop.Minimum = copyFloat(meta.Minimum)
	}
	if meta.Maximum != nil {
		prop.Maximum = copyFloat(meta.Maximum)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
