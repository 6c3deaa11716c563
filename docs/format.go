package docs

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/schema"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"

	contentTypeJSON = "application/json"
	contentTypeYAML = "application/x-yaml"
)

var yamlMediaTypes = map[string]bool{
	"application/x-yaml": true,
	"application/yaml":   true,
	"text/yaml":          true,
	"text/x-yaml":        true,
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// options are the query parameters accepted by both routes.
type options struct {
	Format string `schema:"format"`
	Pretty bool   `schema:"pretty"`
}

// parseOptions reads the output options of r. An explicit format query
// parameter wins over the Accept header.
func parseOptions(r *http.Request) (options, error) {
	var opts options
	if err := queryDecoder.Decode(&opts, r.URL.Query()); err != nil {
		return opts, fmt.Errorf("invalid query: %w", err)
	}

	switch strings.ToLower(opts.Format) {
	case "":
		opts.Format = formatJSON
		if acceptsYAML(r.Header.Values("Accept")) {
			opts.Format = formatYAML
		}
	case formatJSON:
		opts.Format = formatJSON
	case formatYAML, "yml":
		opts.Format = formatYAML
	default:
		return opts, fmt.Errorf("unsupported format %q", opts.Format)
	}

	return opts, nil
}

func acceptsYAML(values []string) bool {
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
			if err == nil && yamlMediaTypes[mt] {
				return true
			}
		}
	}
	return false
}

// variant names the encoding selected by opts. It is part of the ETag.
func (o options) variant() string {
	if o.Format == formatJSON && o.Pretty {
		return "json-pretty"
	}
	return o.Format
}

func encode(v any, opts options) (data []byte, contentType string, err error) {
	switch opts.Format {
	case formatYAML:
		data, err = yaml.Marshal(v)
		return data, contentTypeYAML, err
	default:
		if opts.Pretty {
			data, err = json.MarshalIndent(v, "", "  ")
		} else {
			data, err = json.Marshal(v)
		}
		return data, contentTypeJSON, err
	}
}
