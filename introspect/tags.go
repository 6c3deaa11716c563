package introspect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/vitalvas/apidocs/definition"
)

// TagName is the struct tag read by TagExtractor.
const TagName = "doc"

// TagExtractor refines properties from the doc struct tag of their field.
// The tag is a comma separated list of key or key=value items:
//
//	description=text   property description
//	format=uri         data type format
//	type=string        data type override
//	min=0 / max=5      numeric bounds (also minimum / maximum)
//	enum=a|b|c         allowed values
//	default=value      default value
//	readOnly           the property is read-only
//	required           the property is required
//	optional           the property is optional
//
// A malformed numeric bound fails the property, which then keeps the
// values it had before this extractor ran.
type TagExtractor struct {
	BaseExtractor
}

// Name implements Extractor.
func (TagExtractor) Name() string {
	return "tags"
}

// ContributeToProperty implements Extractor.
func (TagExtractor) ContributeToProperty(prop *definition.Property, src PropertySource) error {
	if src.Field == nil {
		return nil
	}
	return applyDocTag(prop, src.Field.Tag.Get(TagName))
}

func applyDocTag(prop *definition.Property, tag string) error {
	if tag == "" {
		return nil
	}

	for part := range strings.SplitSeq(tag, ",") {
		key, value, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "description":
			prop.Description = value
		case "format":
			prop.Format = value
		case "type":
			prop.Type = value
		case "min", "minimum":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%s %q: %w", key, value, err)
			}
			prop.Minimum = &v
		case "max", "maximum":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%s %q: %w", key, value, err)
			}
			prop.Maximum = &v
		case "enum":
			prop.Enum = strings.Split(value, "|")
		case "default":
			prop.DefaultValue = value
		case "readOnly":
			prop.ReadOnly = true
		case "required":
			prop.Required = true
		case "optional":
			prop.Required = false
		}
	}

	return nil
}

// reflectNew returns a zero value of t as an interface, for interface
// assertions on value receivers.
func reflectNew(t reflect.Type) any {
	return reflect.New(t).Elem().Interface()
}
