// Package definition holds the format-neutral description of an API
// surface assembled by introspection.
//
// A Definition owns its Resources, a Resource owns its Operations, and a
// Representation owns its Properties. Operations reference Representations
// by name only; representations are registered once per Definition and
// shared by every operation that names them.
//
// Collections that merge contributions from several sources (Responses,
// Properties and the representation registry) keep insertion order so
// that documents generated from a Definition are deterministic.
//
// A Definition is mutable while it is being built and must be treated as
// read-only once published.
package definition
