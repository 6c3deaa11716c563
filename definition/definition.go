package definition

// DefaultVersion is the API version used when neither the caller nor any
// extractor provides one.
const DefaultVersion = "1.0"

// Contact describes who maintains the API.
type Contact struct {
	Name  string
	URL   string
	Email string
}

// License describes the license the API is published under.
type License struct {
	Name string
	URL  string
}

// Definition is the root of the model.
type Definition struct {
	// Version is the API version. Translators fall back to DefaultVersion
	// when it is empty.
	Version string

	// BasePath is the URI every resource path is relative to.
	BasePath string

	Title          string
	Description    string
	TermsOfService string
	Contact        *Contact
	License        *License

	// Resources in discovery order.
	Resources []*Resource

	reprs  []*Representation
	byName map[string]*Representation
}

// New returns an empty definition.
func New() *Definition {
	return &Definition{byName: make(map[string]*Representation)}
}

// EffectiveVersion returns Version, or DefaultVersion when it is unset.
func (d *Definition) EffectiveVersion() string {
	if d.Version == "" {
		return DefaultVersion
	}
	return d.Version
}

// AddResource appends a resource.
func (d *Definition) AddResource(r *Resource) {
	d.Resources = append(d.Resources, r)
}

// Resource returns the resource bound to the given path and class name.
func (d *Definition) Resource(path, name string) (*Resource, bool) {
	for _, r := range d.Resources {
		if r.Path == path && r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// Categories returns the distinct resource categories in discovery order.
func (d *Definition) Categories() []string {
	seen := make(map[string]bool)
	var categories []string

	for _, r := range d.Resources {
		if seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		categories = append(categories, r.Category)
	}
	return categories
}

// ResourcesIn returns the resources filed under category, in discovery order.
func (d *Definition) ResourcesIn(category string) []*Resource {
	var out []*Resource
	for _, r := range d.Resources {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// AddRepresentation registers a representation under name and returns it.
// When the name is already registered, the existing instance is returned
// and created is false: the first writer wins.
func (d *Definition) AddRepresentation(name string) (repr *Representation, created bool) {
	if d.byName == nil {
		d.byName = make(map[string]*Representation)
	}
	if existing, ok := d.byName[name]; ok {
		return existing, false
	}

	repr = &Representation{Name: name}
	d.byName[name] = repr
	d.reprs = append(d.reprs, repr)
	return repr, true
}

// Representation looks up a registered representation.
func (d *Definition) Representation(name string) (*Representation, bool) {
	repr, ok := d.byName[name]
	return repr, ok
}

// Representations returns every registered representation in registration order.
func (d *Definition) Representations() []*Representation {
	return d.reprs
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	c := *d
	if d.Contact != nil {
		contact := *d.Contact
		c.Contact = &contact
	}
	if d.License != nil {
		license := *d.License
		c.License = &license
	}

	if d.Resources != nil {
		c.Resources = make([]*Resource, len(d.Resources))
		for i, r := range d.Resources {
			c.Resources[i] = r.Clone()
		}
	}

	if d.byName != nil {
		c.byName = make(map[string]*Representation, len(d.reprs))
	}
	if d.reprs != nil {
		c.reprs = make([]*Representation, len(d.reprs))
		for i, r := range d.reprs {
			rc := r.Clone()
			c.reprs[i] = rc
			c.byName[rc.Name] = rc
		}
	}
	return &c
}
