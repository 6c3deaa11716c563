package definition

import (
	"slices"
	"strings"
)

// Resource is one documented path, filed under a category.
type Resource struct {
	// Path is the URI template relative to the definition base path.
	Path string

	// Name is the resource class name.
	Name string

	// Category groups resources into one detail document.
	Category string

	Description string

	// Operations in discovery order, one per HTTP method.
	Operations []*Operation
}

// Operation returns the operation registered for method.
func (r *Resource) Operation(method string) (*Operation, bool) {
	method = strings.ToUpper(method)
	for _, op := range r.Operations {
		if op.Method == method {
			return op, true
		}
	}
	return nil, false
}

// AddOperation appends op, or returns the operation already registered for
// the same method.
func (r *Resource) AddOperation(op *Operation) *Operation {
	if existing, ok := r.Operation(op.Method); ok {
		return existing
	}
	op.Method = strings.ToUpper(op.Method)
	r.Operations = append(r.Operations, op)
	return op
}

// Clone returns a deep copy of the resource.
func (r *Resource) Clone() *Resource {
	c := *r
	if r.Operations != nil {
		c.Operations = make([]*Operation, len(r.Operations))
		for i, op := range r.Operations {
			c.Operations[i] = op.Clone()
		}
	}
	return &c
}

// Payload references the body of a request or response. Type is either a
// representation name or a primitive type name; Format refines primitives.
type Payload struct {
	Type   string
	Format string
	Array  bool
}

// Operation is one HTTP method exposed by a resource.
type Operation struct {
	Method string

	// Name is the operation nickname.
	Name string

	Summary     string
	Description string
	Deprecated  bool

	Parameters []*Parameter
	Responses  Responses

	// Produces and Consumes list media types.
	Produces []string
	Consumes []string

	Input  *Payload
	Output *Payload
}

// Parameter looks up a parameter by name and location.
func (o *Operation) Parameter(name, in string) (*Parameter, bool) {
	for _, p := range o.Parameters {
		if p.Name == name && p.In == in {
			return p, true
		}
	}
	return nil, false
}

// SetParameter adds p, replacing a parameter with the same name and
// location in place.
func (o *Operation) SetParameter(p *Parameter) {
	for i, existing := range o.Parameters {
		if existing.Name == p.Name && existing.In == p.In {
			o.Parameters[i] = p
			return
		}
	}
	o.Parameters = append(o.Parameters, p)
}

// Clone returns a deep copy of the operation.
func (o *Operation) Clone() *Operation {
	c := *o
	if o.Parameters != nil {
		c.Parameters = make([]*Parameter, len(o.Parameters))
		for i, p := range o.Parameters {
			c.Parameters[i] = p.Clone()
		}
	}
	c.Responses = o.Responses.Clone()
	c.Produces = slices.Clone(o.Produces)
	c.Consumes = slices.Clone(o.Consumes)
	if o.Input != nil {
		in := *o.Input
		c.Input = &in
	}
	if o.Output != nil {
		out := *o.Output
		c.Output = &out
	}
	return &c
}

// Parameter locations.
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InBody   = "body"
	InForm   = "form"
)

// Parameter describes one operation input.
type Parameter struct {
	Name        string
	In          string
	Type        string
	Format      string
	Description string
	Required    bool

	AllowMultiple bool
	DefaultValue  string
	Enum          []string
	Minimum       *float64
	Maximum       *float64
}

// Clone returns a deep copy of the parameter.
func (p *Parameter) Clone() *Parameter {
	c := *p
	c.Enum = slices.Clone(p.Enum)
	c.Minimum = cloneFloat(p.Minimum)
	c.Maximum = cloneFloat(p.Maximum)
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}
