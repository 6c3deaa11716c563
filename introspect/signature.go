package introspect

import (
	"net/http"

	"github.com/vitalvas/apidocs/definition"
)

const mimeJSON = "application/json"

// SignatureExtractor documents operation payloads from the sample Input
// and Output values of a dispatch.MethodSpec.
//
// An input sets the operation's input payload; an output sets the output
// payload and a success response with the method's status (200 OK by
// default). Both default the media type to application/json.
type SignatureExtractor struct {
	BaseExtractor
}

// Name implements Extractor.
func (SignatureExtractor) Name() string {
	return "signature"
}

// ContributeToOperation implements Extractor.
func (SignatureExtractor) ContributeToOperation(_ *definition.Resource, op *definition.Operation, src OperationSource) ([]RepresentationClass, error) {
	var refs []RepresentationClass

	if payload, classes := PayloadOf(src.Method.Input); payload != nil {
		op.Input = payload
		if len(op.Consumes) == 0 {
			op.Consumes = []string{mimeJSON}
		}
		refs = append(refs, classes...)
	}

	code := src.Method.Status
	if code == 0 {
		code = http.StatusOK
	}

	payload, classes := PayloadOf(src.Method.Output)
	if payload != nil {
		op.Output = payload
		if len(op.Produces) == 0 {
			op.Produces = []string{mimeJSON}
		}
		refs = append(refs, classes...)
	}

	if payload == nil && src.Method.Status == 0 {
		return refs, nil
	}

	if _, ok := op.Responses.Get(code); !ok {
		resp := &definition.Response{Code: code, Message: http.StatusText(code)}
		if len(classes) > 0 {
			resp.Representation = classes[0].Name
		}
		op.Responses.Set(resp)
	}

	return refs, nil
}

// ContributeToRepresentation implements Extractor. Types implementing
// Describer supply the representation description.
func (SignatureExtractor) ContributeToRepresentation(repr *definition.Representation, class RepresentationClass) error {
	if class.Type == nil {
		return nil
	}
	if d, ok := reflectNew(class.Type).(Describer); ok {
		if desc := d.APIDescription(); desc != "" {
			repr.Description = desc
		}
	}
	return nil
}
