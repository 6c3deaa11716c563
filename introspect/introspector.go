package introspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vitalvas/apidocs/definition"
	"github.com/vitalvas/apidocs/dispatch"
)

// Config configures an Introspector.
type Config struct {
	// Graph is the dispatch graph to document. Required.
	Graph dispatch.Reader

	// Prefix is prepended to every discovered path.
	Prefix string

	// Version is the API version. Defaults to definition.DefaultVersion.
	Version string

	// BasePath is the absolute base URL of the API.
	BasePath string

	Title          string
	Description    string
	TermsOfService string
	Contact        *definition.Contact
	License        *definition.License

	// Extractors run in order; later extractors override earlier ones.
	Extractors []Extractor
}

// Result is the outcome of one introspection.
type Result struct {
	Definition *definition.Definition

	// Warnings lists the problems that did not prevent producing a
	// definition: abandoned cyclic branches and extractor failures.
	Warnings []error
}

// Err joins the warnings into a single error, or returns nil.
func (r *Result) Err() error {
	return errors.Join(r.Warnings...)
}

// Introspector builds definitions from a dispatch graph.
type Introspector struct {
	cfg Config
}

// New creates an Introspector.
func New(cfg Config) *Introspector {
	return &Introspector{cfg: cfg}
}

// pendingResource pairs a discovered resource with the record it came from.
type pendingResource struct {
	res    *definition.Resource
	record Record
	vars   []dispatch.PathVar
}

// Introspect walks the graph and builds a fresh Definition.
//
// It fails only when the graph is missing or a leaf has no resource class.
// Cyclic branches and extractor failures are reported as warnings.
func (in *Introspector) Introspect() (*Result, error) {
	if in.cfg.Graph == nil {
		return nil, errors.New("introspect: no dispatch graph")
	}

	result := &Result{}

	records, err := Walk(in.cfg.Graph, in.cfg.Prefix)
	for _, e := range flatten(err) {
		if errors.Is(e, ErrMissingResourceClass) {
			return nil, e
		}
		result.Warnings = append(result.Warnings, e)
	}

	def := definition.New()
	def.Version = in.cfg.Version
	def.BasePath = in.cfg.BasePath
	def.Title = in.cfg.Title
	def.Description = in.cfg.Description
	def.TermsOfService = in.cfg.TermsOfService
	if in.cfg.Contact != nil {
		c := *in.cfg.Contact
		def.Contact = &c
	}
	if in.cfg.License != nil {
		l := *in.cfg.License
		def.License = &l
	}

	in.contributeDefinition(def, result)

	pending := in.discoverResources(def, records, result)
	queue := in.discoverOperations(pending, result)
	in.documentRepresentations(def, queue, result)

	if def.Version == "" {
		def.Version = definition.DefaultVersion
	}

	result.Definition = def
	return result, nil
}

func (in *Introspector) contributeDefinition(def *definition.Definition, result *Result) {
	app := Application{Graph: in.cfg.Graph, Prefix: in.cfg.Prefix}

	for _, ext := range in.cfg.Extractors {
		clone := def.Clone()
		if in.run(ext, "definition", result, func() error {
			return ext.ContributeToDefinition(clone, app)
		}) {
			*def = *clone
		}
	}
}

// discoverResources registers one resource per (path, class) pair and
// runs resource extractors on each new resource.
func (in *Introspector) discoverResources(def *definition.Definition, records []Record, result *Result) []pendingResource {
	pending := make([]pendingResource, 0, len(records))

	for _, rec := range records {
		path, vars := dispatch.ParseTemplate(rec.Path)

		res, ok := def.Resource(path, rec.Class.Name)
		if !ok {
			res = &definition.Resource{
				Path:        path,
				Name:        rec.Class.Name,
				Category:    DefaultCategory(rec.Class.Name),
				Description: rec.Class.Description,
			}
			in.contributeResource(res, rec.Class, result)
			def.AddResource(res)
		}

		pending = append(pending, pendingResource{res: res, record: rec, vars: vars})
	}

	return pending
}

func (in *Introspector) contributeResource(res *definition.Resource, class *dispatch.ResourceClass, result *Result) {
	element := "resource " + res.Path

	for _, ext := range in.cfg.Extractors {
		clone := res.Clone()
		if in.run(ext, element, result, func() error {
			return ext.ContributeToResource(clone, class)
		}) {
			*res = *clone
		}
	}
}

// discoverOperations adds one operation per distinct method of every
// resource and returns the representation classes they reference.
func (in *Introspector) discoverOperations(pending []pendingResource, result *Result) []RepresentationClass {
	var queue []RepresentationClass

	for _, p := range pending {
		class := p.record.Class

		for _, method := range p.record.Methods {
			if _, exists := p.res.Operation(method); exists {
				continue
			}

			spec, ok := class.Method(method)
			if !ok {
				spec = dispatch.MethodSpec{Method: method}
			}

			op := &definition.Operation{Method: method}
			if spec.Name != "" {
				op.Name = Nickname(spec.Name)
			} else {
				op.Name = Nickname(strings.ToLower(method), class.Name)
			}
			for _, v := range p.vars {
				typ, format := v.Type()
				op.SetParameter(&definition.Parameter{
					Name:     v.Name,
					In:       definition.InPath,
					Type:     typ,
					Format:   format,
					Required: true,
				})
			}

			src := OperationSource{Class: class, Method: spec, Path: p.record.Path}
			queue = append(queue, in.contributeOperation(p.res, op, src, result)...)

			p.res.AddOperation(op)
		}
	}

	return queue
}

func (in *Introspector) contributeOperation(res *definition.Resource, op *definition.Operation, src OperationSource, result *Result) []RepresentationClass {
	element := fmt.Sprintf("operation %s %s", op.Method, res.Path)

	var refs []RepresentationClass
	for _, ext := range in.cfg.Extractors {
		clone := op.Clone()

		var found []RepresentationClass
		if in.run(ext, element, result, func() (err error) {
			found, err = ext.ContributeToOperation(res, clone, src)
			return err
		}) {
			// The method is the operation's identity within its resource.
			clone.Method = op.Method
			*op = *clone
			refs = append(refs, found...)
		}
	}
	return refs
}

// documentRepresentations drains the representation queue. Each name is
// documented once; when a name first seen without a Go type arrives again
// with one, the struct fields missing from the representation are merged
// in. Properties referencing further representations extend the queue.
func (in *Introspector) documentRepresentations(def *definition.Definition, queue []RepresentationClass, result *Result) {
	// typed records every documented name and whether a Go type backed it.
	typed := make(map[string]bool)

	for len(queue) > 0 {
		class := queue[0]
		queue = queue[1:]

		if class.Name == "" {
			continue
		}
		if wasTyped, seen := typed[class.Name]; seen && (wasTyped || class.Type == nil) {
			continue
		}
		typed[class.Name] = class.Type != nil

		repr, _ := def.AddRepresentation(class.Name)

		existing := make(map[string]bool, repr.Properties.Len())
		for _, prop := range repr.Properties.All() {
			existing[prop.Name] = true
		}

		fields := structFields(class.Type)
		refs := make(map[string]RepresentationClass)
		for _, f := range fields {
			if _, ok := repr.Properties.Get(f.prop.Name); !ok {
				repr.Properties.Set(f.prop)
			}
			if f.ref != nil {
				refs[f.ref.Name] = *f.ref
			}
		}

		in.contributeRepresentation(repr, class, result)

		for _, prop := range repr.Properties.All() {
			if existing[prop.Name] {
				continue
			}

			src := PropertySource{Owner: class, Name: prop.Name}
			for i := range fields {
				if fields[i].prop.Name == prop.Name {
					src.Field = &fields[i].field
					break
				}
			}

			in.contributeProperty(repr.Name, prop, src, result)

			if prop.Ref == "" || typed[prop.Ref] {
				continue
			}
			if ref, ok := refs[prop.Ref]; ok {
				queue = append(queue, ref)
			} else if _, seen := typed[prop.Ref]; !seen {
				queue = append(queue, RepresentationClass{Name: prop.Ref})
			}
		}
	}
}

func (in *Introspector) contributeRepresentation(repr *definition.Representation, class RepresentationClass, result *Result) {
	element := "representation " + repr.Name

	for _, ext := range in.cfg.Extractors {
		clone := repr.Clone()
		if in.run(ext, element, result, func() error {
			return ext.ContributeToRepresentation(clone, class)
		}) {
			clone.Name = repr.Name
			*repr = *clone
		}
	}
}

func (in *Introspector) contributeProperty(owner string, prop *definition.Property, src PropertySource, result *Result) {
	element := "property " + owner + "." + prop.Name

	for _, ext := range in.cfg.Extractors {
		clone := prop.Clone()
		if in.run(ext, element, result, func() error {
			return ext.ContributeToProperty(clone, src)
		}) {
			clone.Name = prop.Name
			*prop = *clone
		}
	}
}

// run invokes fn and reports whether it succeeded. Errors and panics are
// recorded as *ExtractorFailure warnings.
func (in *Introspector) run(ext Extractor, element string, result *Result, fn func() error) (ok bool) {
	defer func() {
		if rv := recover(); rv != nil {
			result.Warnings = append(result.Warnings, &ExtractorFailure{
				Extractor: extractorName(ext),
				Element:   element,
				Err:       fmt.Errorf("panic: %v", rv),
			})
			ok = false
		}
	}()

	if err := fn(); err != nil {
		result.Warnings = append(result.Warnings, &ExtractorFailure{
			Extractor: extractorName(ext),
			Element:   element,
			Err:       err,
		})
		return false
	}
	return true
}
