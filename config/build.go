package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vitalvas/apidocs/definition"
	"github.com/vitalvas/apidocs/dispatch"
	"github.com/vitalvas/apidocs/docs"
	"github.com/vitalvas/apidocs/introspect"
	"github.com/vitalvas/apidocs/metadata"
)

// Classes returns the declared resource classes by name.
func (c *Config) Classes() map[string]*dispatch.ResourceClass {
	classes := make(map[string]*dispatch.ResourceClass, len(c.Resources))
	for _, r := range c.Resources {
		class := &dispatch.ResourceClass{Name: r.Name, Description: r.Description}
		for _, m := range r.Methods {
			class.Methods = append(class.Methods, dispatch.MethodSpec{
				Method: strings.ToUpper(m.Method),
				Name:   m.Name,
				Input:  payload(m.Input),
				Output: payload(m.Output),
				Status: m.Status,
			})
		}
		classes[r.Name] = class
	}
	return classes
}

// payload turns a declared type name into a MethodSpec sample value.
func payload(name string) any {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	elem, array := strings.CutPrefix(name, "[]")
	return introspect.Named{Name: elem, Array: array}
}

// Graph builds the dispatch graph declared by the routes. Routes are
// children of the graph root.
func (c *Config) Graph() (*dispatch.Graph, error) {
	b := &graphBuilder{
		g:       dispatch.NewGraph(),
		classes: c.Classes(),
		ids:     make(map[string]dispatch.NodeID),
	}

	for _, r := range c.Routes {
		if err := b.add(b.g.Root(), r); err != nil {
			return nil, err
		}
	}
	return b.g, nil
}

type graphBuilder struct {
	g       *dispatch.Graph
	classes map[string]*dispatch.ResourceClass
	ids     map[string]dispatch.NodeID
}

func (b *graphBuilder) add(parent dispatch.NodeID, r Route) error {
	var id dispatch.NodeID

	switch {
	case r.Resource != "":
		class, ok := b.classes[r.Resource]
		if !ok {
			return fmt.Errorf("%w: unknown resource %q", ErrInvalidConfig, r.Resource)
		}
		id = b.g.Leaf(parent, r.Path, class)
	case r.Ref != "":
		target, ok := b.ids[r.Ref]
		if !ok {
			return fmt.Errorf("%w: unknown route id %q", ErrInvalidConfig, r.Ref)
		}
		return b.g.Link(parent, r.Path, target)
	case r.Filter:
		id = b.g.Filter(parent)
	default:
		id = b.g.Composite(parent, r.Path)
	}

	if r.ID != "" {
		b.ids[r.ID] = id
	}

	for _, child := range r.Children {
		if err := b.add(id, child); err != nil {
			return err
		}
	}
	return nil
}

// Extractors returns the default extractors followed by a metadata
// extractor when metadata is configured.
func (c *Config) Extractors() []introspect.Extractor {
	extractors := introspect.DefaultExtractors()
	if c.Metadata != nil {
		extractors = append(extractors, metadata.NewExtractor(c.Metadata))
	}
	return extractors
}

// DocsConfig returns the documentation endpoint configuration.
func (c *Config) DocsConfig(logger *slog.Logger) docs.Config {
	cfg := docs.Config{
		MountPath:      c.MountPath,
		APIVersion:     c.APIVersion,
		BasePath:       c.BasePath,
		Prefix:         c.Prefix,
		Title:          c.Title,
		Description:    c.Description,
		TermsOfService: c.TermsOfService,
		Extractors:     c.Extractors(),
		CORS: docs.CORSConfig{
			AllowedOrigins:   c.CORS.AllowedOrigins,
			AllowedHeaders:   c.CORS.AllowedHeaders,
			ExposeHeaders:    c.CORS.ExposeHeaders,
			AllowCredentials: c.CORS.AllowCredentials,
			MaxAge:           c.CORS.MaxAge,
		},
		Logger: logger,
	}
	if c.Contact != nil {
		cfg.Contact = &definition.Contact{Name: c.Contact.Name, URL: c.Contact.URL, Email: c.Contact.Email}
	}
	if c.License != nil {
		cfg.License = &definition.License{Name: c.License.Name, URL: c.License.URL}
	}
	return cfg
}

// Handler builds the graph and the documentation endpoint.
func (c *Config) Handler(logger *slog.Logger) (*docs.Handler, error) {
	g, err := c.Graph()
	if err != nil {
		return nil, err
	}
	return docs.New(g, c.DocsConfig(logger))
}
