// Package introspect discovers the resources of a dispatch graph and
// assembles a definition.Definition from them.
//
// Introspection runs in two stages. Walk traverses the graph depth-first
// and returns one Record per reachable leaf with its absolute path, its
// resource class and the methods the class supports. The Introspector then
// turns the records into a Definition and lets an ordered chain of
// Extractors enrich every element:
//
//  1. the definition itself (ContributeToDefinition),
//  2. every resource (ContributeToResource),
//  3. every operation of every resource (ContributeToOperation), which may
//     report the representation classes it references,
//  4. every referenced representation, once per name, and each of its
//     properties (ContributeToRepresentation, ContributeToProperty),
//     including representations only reachable through other
//     representations' properties.
//
// Extractors run in registration order; a later extractor overwrites
// fields written by an earlier one, while responses and properties merge
// by key. Each extractor call works on a copy of the element which is
// committed only if the call succeeds, so a failing extractor contributes
// nothing for that element and the others are unaffected. Failures are
// collected as warnings on the Result.
//
// # Usage
//
//	in := introspect.New(introspect.Config{
//	    Graph:      graph,
//	    Version:    "1.0",
//	    BasePath:   "https://api.example.com/v1",
//	    Extractors: append(introspect.DefaultExtractors(), metadata.NewExtractor(store)),
//	})
//
//	res, err := in.Introspect()
//	if err != nil {
//	    return err
//	}
//	for _, w := range res.Warnings {
//	    log.Println(w)
//	}
//
// # Struct Tags
//
// Representation properties are enumerated from Go struct fields using
// the json tag for names and omitempty for optionality. TagExtractor reads
// an additional doc tag:
//
//	type Bookmark struct {
//	    URI    string `json:"uri" doc:"description=Bookmarked URI,format=uri"`
//	    Rating int    `json:"rating,omitempty" doc:"min=0,max=5"`
//	}
package introspect
