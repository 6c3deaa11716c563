package introspect

import (
	"fmt"
	"reflect"

	"github.com/vitalvas/apidocs/definition"
	"github.com/vitalvas/apidocs/dispatch"
)

// Application describes the introspected application to definition-level
// extractors.
type Application struct {
	// Graph is the dispatch graph being documented.
	Graph dispatch.Reader
	// Prefix is the path prefix prepended to every discovered path.
	Prefix string
}

// OperationSource is the origin of one operation.
type OperationSource struct {
	// Class is the resource class serving the operation.
	Class *dispatch.ResourceClass
	// Method is the class method. Only Method is set when the class does
	// not declare the token explicitly.
	Method dispatch.MethodSpec
	// Path is the path template the operation was discovered under.
	Path string
}

// RepresentationClass identifies a payload type to be documented as a
// model. Type may be nil for models known only by name, in which case the
// model's properties come entirely from extractors.
type RepresentationClass struct {
	Name string
	Type reflect.Type
}

// PropertySource is the origin of one representation property.
type PropertySource struct {
	// Owner is the representation class declaring the property.
	Owner RepresentationClass
	// Name is the property name.
	Name string
	// Field is the struct field backing the property, or nil when the
	// property was added by an extractor.
	Field *reflect.StructField
}

// Extractor contributes documentation to the elements of a definition.
//
// Methods run in a fixed order over the whole definition, see the package
// documentation. An element passed to a method is a private copy which is
// committed only when the method returns without error and without
// panicking. Implementations must not retain elements after returning and
// must not share mutable state with other extractors.
//
// Embed BaseExtractor to implement only the stages of interest.
type Extractor interface {
	// Name identifies the extractor in warnings. An empty name falls back
	// to the Go type name.
	Name() string
	ContributeToDefinition(def *definition.Definition, app Application) error
	ContributeToResource(res *definition.Resource, class *dispatch.ResourceClass) error
	// ContributeToOperation may return representation classes the
	// operation references; each is documented once across the definition.
	// The resource is read-only at this stage.
	ContributeToOperation(res *definition.Resource, op *definition.Operation, src OperationSource) ([]RepresentationClass, error)
	ContributeToRepresentation(repr *definition.Representation, class RepresentationClass) error
	ContributeToProperty(prop *definition.Property, src PropertySource) error
}

func extractorName(ext Extractor) string {
	if name := ext.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("%T", ext)
}

// BaseExtractor implements every Extractor method as a no-op.
type BaseExtractor struct{}

// Name implements Extractor.
func (BaseExtractor) Name() string {
	return ""
}

// ContributeToDefinition implements Extractor.
func (BaseExtractor) ContributeToDefinition(*definition.Definition, Application) error {
	return nil
}

// ContributeToResource implements Extractor.
func (BaseExtractor) ContributeToResource(*definition.Resource, *dispatch.ResourceClass) error {
	return nil
}

// ContributeToOperation implements Extractor.
func (BaseExtractor) ContributeToOperation(*definition.Resource, *definition.Operation, OperationSource) ([]RepresentationClass, error) {
	return nil, nil
}

// ContributeToRepresentation implements Extractor.
func (BaseExtractor) ContributeToRepresentation(*definition.Representation, RepresentationClass) error {
	return nil
}

// ContributeToProperty implements Extractor.
func (BaseExtractor) ContributeToProperty(*definition.Property, PropertySource) error {
	return nil
}

// DefaultExtractors returns the built-in extractors in their default
// order: payload signatures, then struct tags.
func DefaultExtractors() []Extractor {
	return []Extractor{SignatureExtractor{}, TagExtractor{}}
}
