// Package docs serves the documentation of a dispatch graph over HTTP.
//
// A Handler answers two read-only routes relative to its mount path:
//
//	GET <mount>             resource listing (Swagger 1.2 index document)
//	GET <mount>/{category}  API declaration of one category
//
// The definition is built on the first request that needs it and reused
// afterwards. Concurrent first requests share a single build; a failed
// build is not cached and the next request tries again.
//
// Usage:
//
//	h, err := docs.New(graph, docs.Config{
//	    APIVersion: "1.2.0",
//	    BasePath:   "https://api.example.com/v1",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mux := http.NewServeMux()
//	h.Attach(mux)
//
// Documents are JSON by default. Add ?format=yaml or send
// Accept: application/x-yaml for YAML, and ?pretty=true for indented JSON.
package docs
