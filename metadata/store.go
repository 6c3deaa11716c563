package metadata

// Store is a Source built in code. Setters return the store for chaining
// and must not be called once the store is in use by an extractor.
//
//	store := metadata.NewStore().
//	    SetOperation("Bookmarks", "GET", &metadata.Operation{Summary: "List bookmarks"}).
//	    SetProperty("Error", "message", &metadata.Property{Type: "string"})
type Store struct {
	Document
}

var _ Source = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Document: Document{
		Resources: make(map[string]*Resource),
		Models:    make(map[string]*Model),
	}}
}

// SetDefinition sets the definition-level documentation.
func (s *Store) SetDefinition(api *API) *Store {
	s.Info = api
	return s
}

// SetResource sets the documentation of a resource class, keeping
// operations registered earlier.
func (s *Store) SetResource(class string, r *Resource) *Store {
	if existing, ok := s.Resources[class]; ok && r.Operations == nil {
		r.Operations = existing.Operations
	}
	s.Resources[class] = r
	return s
}

// SetOperation sets the documentation of one method of a class.
func (s *Store) SetOperation(class, key string, op *Operation) *Store {
	r, ok := s.Resources[class]
	if !ok {
		r = &Resource{}
		s.Resources[class] = r
	}
	if r.Operations == nil {
		r.Operations = make(map[string]*Operation)
	}
	r.Operations[key] = op
	return s
}

// SetRepresentation sets the documentation of a model, keeping
// properties registered earlier.
func (s *Store) SetRepresentation(name string, m *Model) *Store {
	if existing, ok := s.Models[name]; ok && m.Properties == nil {
		m.Properties = existing.Properties
		m.Order = existing.Order
	}
	s.Models[name] = m
	return s
}

// SetProperty sets the documentation of one model property. Properties
// keep the order they were first set in.
func (s *Store) SetProperty(representation, name string, p *Property) *Store {
	m, ok := s.Models[representation]
	if !ok {
		m = &Model{}
		s.Models[representation] = m
	}
	if m.Properties == nil {
		m.Properties = make(map[string]*Property)
	}
	if _, exists := m.Properties[name]; !exists {
		m.Order = append(m.Order, name)
	}
	m.Properties[name] = p
	return s
}
