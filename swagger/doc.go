// Package swagger renders a definition.Definition as Swagger 1.2
// documents: a resource listing (the index) and one API declaration per
// category (the detail documents).
//
// Translation is pure. The same definition always yields the same
// documents, and the definition is never modified. Maps in the output,
// such as models and their properties, keep definition order in both
// JSON and YAML.
//
// See: https://github.com/OAI/OpenAPI-Specification/blob/main/versions/1.2.md
package swagger
