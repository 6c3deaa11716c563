package definition

import "slices"

// Representation is a named payload schema.
type Representation struct {
	Name        string
	Description string
	Properties  Properties
}

// Clone returns a deep copy of the representation.
func (r *Representation) Clone() *Representation {
	c := *r
	c.Properties = r.Properties.Clone()
	return &c
}

// Property is a leaf schema node of a representation.
type Property struct {
	Name        string
	Type        string
	Format      string
	Description string
	Required    bool
	ReadOnly    bool

	// Array marks a list of Type (or of Ref).
	Array bool

	// Ref names another representation this property holds.
	Ref string

	DefaultValue string
	Enum         []string
	Minimum      *float64
	Maximum      *float64
}

// Clone returns a deep copy of the property.
func (p *Property) Clone() *Property {
	c := *p
	c.Enum = slices.Clone(p.Enum)
	c.Minimum = cloneFloat(p.Minimum)
	c.Maximum = cloneFloat(p.Maximum)
	return &c
}

// Properties is an ordered set of properties keyed by name.
// The zero value is ready to use.
type Properties struct {
	items []*Property
	index map[string]int
}

// Set adds p, replacing a property with the same name in place.
func (ps *Properties) Set(p *Property) {
	if ps.index == nil {
		ps.index = make(map[string]int)
	}
	if i, ok := ps.index[p.Name]; ok {
		ps.items[i] = p
		return
	}
	ps.index[p.Name] = len(ps.items)
	ps.items = append(ps.items, p)
}

// Get returns the property with the given name.
func (ps *Properties) Get(name string) (*Property, bool) {
	i, ok := ps.index[name]
	if !ok {
		return nil, false
	}
	return ps.items[i], true
}

// All returns the properties in insertion order.
func (ps *Properties) All() []*Property {
	return ps.items
}

// Len returns the number of properties.
func (ps *Properties) Len() int {
	return len(ps.items)
}

// Required returns the names of required properties in insertion order.
func (ps *Properties) Required() []string {
	var names []string
	for _, p := range ps.items {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// Clone returns a deep copy.
func (ps *Properties) Clone() Properties {
	var c Properties
	if ps.items != nil {
		c.items = make([]*Property, 0, len(ps.items))
	}
	if ps.index != nil {
		c.index = make(map[string]int, len(ps.index))
	}
	for _, p := range ps.items {
		c.Set(p.Clone())
	}
	return c
}
