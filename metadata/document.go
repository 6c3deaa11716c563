package metadata

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when a document fails validation.
var ErrInvalidDocument = errors.New("invalid metadata document")

// Source looks up documentation by element key. Absence is reported with
// a false second result and is not an error.
type Source interface {
	// Definition returns definition-level documentation.
	Definition() (*API, bool)
	// Resource returns the documentation of a resource class.
	Resource(class string) (*Resource, bool)
	// Operation returns the documentation of one method of a class, keyed
	// by method spec name or upper-cased HTTP method.
	Operation(class, key string) (*Operation, bool)
	// Representation returns the documentation of a model.
	Representation(name string) (*Model, bool)
	// Property returns the documentation of one property of a model.
	Property(representation, name string) (*Property, bool)
}

// Document is a YAML documentation source. It implements Source.
type Document struct {
	Info      *API                 `yaml:"api,omitempty"`
	Resources map[string]*Resource `yaml:"resources,omitempty" validate:"dive"`
	Models    map[string]*Model    `yaml:"models,omitempty" validate:"dive"`
}

// API documents the definition.
type API struct {
	Version        string   `yaml:"version,omitempty"`
	Title          string   `yaml:"title,omitempty"`
	Description    string   `yaml:"description,omitempty"`
	TermsOfService string   `yaml:"terms_of_service,omitempty" validate:"omitempty,url"`
	Contact        *Contact `yaml:"contact,omitempty"`
	License        *License `yaml:"license,omitempty"`
}

type Contact struct {
	Name  string `yaml:"name,omitempty"`
	URL   string `yaml:"url,omitempty" validate:"omitempty,url"`
	Email string `yaml:"email,omitempty" validate:"omitempty,email"`
}

type License struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url,omitempty" validate:"omitempty,url"`
}

// Resource documents a resource class.
type Resource struct {
	Category    string                `yaml:"category,omitempty"`
	Description string                `yaml:"description,omitempty"`
	Operations  map[string]*Operation `yaml:"operations,omitempty" validate:"dive"`
}

// Operation documents one method of a resource class.
type Operation struct {
	Nickname   string       `yaml:"nickname,omitempty"`
	Summary    string       `yaml:"summary,omitempty"`
	Notes      string       `yaml:"notes,omitempty"`
	Deprecated bool         `yaml:"deprecated,omitempty"`
	Produces   []string     `yaml:"produces,omitempty"`
	Consumes   []string     `yaml:"consumes,omitempty"`
	Parameters []*Parameter `yaml:"parameters,omitempty" validate:"dive"`
	Responses  []*Response  `yaml:"responses,omitempty" validate:"dive"`
}

// Parameter documents an implicit operation parameter.
type Parameter struct {
	Name          string   `yaml:"name" validate:"required"`
	In            string   `yaml:"in" validate:"required,oneof=path query header body form"`
	Type          string   `yaml:"type,omitempty"`
	Format        string   `yaml:"format,omitempty"`
	Description   string   `yaml:"description,omitempty"`
	Required      bool     `yaml:"required,omitempty"`
	AllowMultiple bool     `yaml:"allow_multiple,omitempty"`
	Default       string   `yaml:"default,omitempty"`
	Enum          []string `yaml:"enum,omitempty"`
	Minimum       *float64 `yaml:"minimum,omitempty"`
	Maximum       *float64 `yaml:"maximum,omitempty"`
}

// Response documents one response message.
type Response struct {
	Code    int    `yaml:"code" validate:"min=100,max=599"`
	Message string `yaml:"message" validate:"required"`
	Model   string `yaml:"model,omitempty"`
}

// Model documents a representation.
type Model struct {
	Description string               `yaml:"description,omitempty"`
	Properties  map[string]*Property `yaml:"properties,omitempty" validate:"dive"`
	// Order lists property names in declaration order.
	Order []string `yaml:"-"`
}

// Property documents one property of a model.
type Property struct {
	Type        string   `yaml:"type,omitempty"`
	Format      string   `yaml:"format,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Required    *bool    `yaml:"required,omitempty"`
	ReadOnly    *bool    `yaml:"read_only,omitempty"`
	Array       bool     `yaml:"array,omitempty"`
	Ref         string   `yaml:"ref,omitempty"`
	Default     string   `yaml:"default,omitempty"`
	Enum        []string `yaml:"enum,omitempty"`
	Minimum     *float64 `yaml:"minimum,omitempty"`
	Maximum     *float64 `yaml:"maximum,omitempty"`
}

// UnmarshalYAML decodes a model and records its property order.
func (m *Model) UnmarshalYAML(value *yaml.Node) error {
	type plain Model
	if err := value.Decode((*plain)(m)); err != nil {
		return err
	}

	m.Order = nil
	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value != "properties" {
			continue
		}
		props := value.Content[i+1]
		for j := 0; j+1 < len(props.Content); j += 2 {
			m.Order = append(m.Order, props.Content[j].Value)
		}
	}
	return nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadFile reads and parses a YAML document from path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Merge copies the entries of other into d. Entries of other replace
// entries of d with the same key.
func (d *Document) Merge(other *Document) {
	if other == nil {
		return
	}
	if other.Info != nil {
		d.Info = other.Info
	}
	if d.Resources == nil && len(other.Resources) > 0 {
		d.Resources = make(map[string]*Resource, len(other.Resources))
	}
	maps.Copy(d.Resources, other.Resources)

	if d.Models == nil && len(other.Models) > 0 {
		d.Models = make(map[string]*Model, len(other.Models))
	}
	maps.Copy(d.Models, other.Models)
}

// Definition implements Source.
func (d *Document) Definition() (*API, bool) {
	return d.Info, d.Info != nil
}

// Resource implements Source.
func (d *Document) Resource(class string) (*Resource, bool) {
	r, ok := d.Resources[class]
	return r, ok && r != nil
}

// Operation implements Source.
func (d *Document) Operation(class, key string) (*Operation, bool) {
	r, ok := d.Resource(class)
	if !ok {
		return nil, false
	}
	op, ok := r.Operations[key]
	return op, ok && op != nil
}

// Representation implements Source.
func (d *Document) Representation(name string) (*Model, bool) {
	m, ok := d.Models[name]
	return m, ok && m != nil
}

// Property implements Source.
func (d *Document) Property(representation, name string) (*Property, bool) {
	m, ok := d.Representation(representation)
	if !ok {
		return nil, false
	}
	p, ok := m.Properties[name]
	return p, ok && p != nil
}

// PropertyNames returns the model's property names in declaration order.
// Names missing from Order, as in models built in code, follow sorted.
func (m *Model) PropertyNames() []string {
	names := make([]string, 0, len(m.Properties))
	for _, name := range m.Order {
		if _, ok := m.Properties[name]; ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(m.Properties)) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}
