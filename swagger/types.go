package swagger

// SwaggerVersion is the specification version emitted by this package.
const SwaggerVersion = "1.2"

// ResourceListing is the index document. It lists every category with its
// path relative to the listing and a short description.
//
// See: https://github.com/OAI/OpenAPI-Specification/blob/main/versions/1.2.md#51-resource-listing
type ResourceListing struct {
	SwaggerVersion string        `json:"swaggerVersion" yaml:"swaggerVersion"`
	APIVersion     string        `json:"apiVersion" yaml:"apiVersion"`
	BasePath       string        `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	APIs           []ResourceRef `json:"apis" yaml:"apis"`
	Info           *Info         `json:"info,omitempty" yaml:"info,omitempty"`
}

// ResourceRef points at one API declaration.
type ResourceRef struct {
	Path        string `json:"path" yaml:"path"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	Title             string `json:"title" yaml:"title"`
	Description       string `json:"description" yaml:"description"`
	TermsOfServiceURL string `json:"termsOfServiceUrl,omitempty" yaml:"termsOfServiceUrl,omitempty"`
	Contact           string `json:"contact,omitempty" yaml:"contact,omitempty"`
	License           string `json:"license,omitempty" yaml:"license,omitempty"`
	LicenseURL        string `json:"licenseUrl,omitempty" yaml:"licenseUrl,omitempty"`
}

// APIDeclaration is the detail document of one category.
//
// See: https://github.com/OAI/OpenAPI-Specification/blob/main/versions/1.2.md#52-api-declaration
type APIDeclaration struct {
	SwaggerVersion string             `json:"swaggerVersion" yaml:"swaggerVersion"`
	APIVersion     string             `json:"apiVersion" yaml:"apiVersion"`
	BasePath       string             `json:"basePath" yaml:"basePath"`
	ResourcePath   string             `json:"resourcePath" yaml:"resourcePath"`
	Produces       []string           `json:"produces,omitempty" yaml:"produces,omitempty"`
	Consumes       []string           `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	APIs           []API              `json:"apis" yaml:"apis"`
	Models         OrderedMap[*Model] `json:"models,omitempty" yaml:"models,omitempty"`
}

// API groups the operations available on one path.
type API struct {
	Path        string      `json:"path" yaml:"path"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Operations  []Operation `json:"operations" yaml:"operations"`
}

// Operation describes one HTTP method on a path.
type Operation struct {
	Method           string            `json:"method" yaml:"method"`
	Summary          string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Notes            string            `json:"notes,omitempty" yaml:"notes,omitempty"`
	Nickname         string            `json:"nickname" yaml:"nickname"`
	Type             string            `json:"type" yaml:"type"`
	Format           string            `json:"format,omitempty" yaml:"format,omitempty"`
	Items            *Items            `json:"items,omitempty" yaml:"items,omitempty"`
	Parameters       []Parameter       `json:"parameters" yaml:"parameters"`
	ResponseMessages []ResponseMessage `json:"responseMessages,omitempty" yaml:"responseMessages,omitempty"`
	Produces         []string          `json:"produces,omitempty" yaml:"produces,omitempty"`
	Consumes         []string          `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Deprecated       string            `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Parameter describes one operation parameter.
type Parameter struct {
	ParamType     string   `json:"paramType" yaml:"paramType"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Type          string   `json:"type" yaml:"type"`
	Format        string   `json:"format,omitempty" yaml:"format,omitempty"`
	Items         *Items   `json:"items,omitempty" yaml:"items,omitempty"`
	Required      bool     `json:"required" yaml:"required"`
	AllowMultiple bool     `json:"allowMultiple,omitempty" yaml:"allowMultiple,omitempty"`
	DefaultValue  string   `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Enum          []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Minimum       string   `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum       string   `json:"maximum,omitempty" yaml:"maximum,omitempty"`
}

// ResponseMessage describes one possible response.
type ResponseMessage struct {
	Code          int    `json:"code" yaml:"code"`
	Message       string `json:"message" yaml:"message"`
	ResponseModel string `json:"responseModel,omitempty" yaml:"responseModel,omitempty"`
}

// Items describes the elements of an array.
type Items struct {
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	Ref    string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

// Model describes a payload schema.
type Model struct {
	ID          string                     `json:"id" yaml:"id"`
	Description string                     `json:"description,omitempty" yaml:"description,omitempty"`
	Required    []string                   `json:"required,omitempty" yaml:"required,omitempty"`
	Properties  OrderedMap[*ModelProperty] `json:"properties" yaml:"properties"`
}

// ModelProperty describes one model property.
type ModelProperty struct {
	Type         string   `json:"type,omitempty" yaml:"type,omitempty"`
	Format       string   `json:"format,omitempty" yaml:"format,omitempty"`
	Ref          string   `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Items        *Items   `json:"items,omitempty" yaml:"items,omitempty"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	DefaultValue string   `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Enum         []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Minimum      string   `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum      string   `json:"maximum,omitempty" yaml:"maximum,omitempty"`
}
