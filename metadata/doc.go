// Package metadata supplies hand-written documentation for resources,
// operations and models, and an introspect.Extractor that applies it.
//
// Documentation is keyed by resource class name, method key (the method
// spec name, or the upper-cased HTTP method) and model name, and is
// usually loaded from YAML:
//
//	api:
//	  title: Bookmarks API
//	resources:
//	  Bookmarks:
//	    category: bookmarks
//	    operations:
//	      GET:
//	        summary: List bookmarks
//	        parameters:
//	          - name: limit
//	            in: query
//	            type: integer
//	        responses:
//	          - code: 400
//	            message: Invalid limit
//	            model: Error
//	models:
//	  Error:
//	    properties:
//	      code:
//	        type: integer
//	        required: true
package metadata
