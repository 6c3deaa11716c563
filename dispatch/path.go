package dispatch

import (
	"regexp"
	"strings"
)

// macroTypes maps route macros to a documentation type and format.
var macroTypes = map[string][2]string{
	"uuid":     {"string", "uuid"},
	"int":      {"integer", "int64"},
	"float":    {"number", "double"},
	"slug":     {"string", ""},
	"alpha":    {"string", ""},
	"alphanum": {"string", ""},
	"date":     {"string", "date"},
	"hex":      {"string", ""},
	"domain":   {"string", "hostname"},
}

// pathVarRegexp matches template variables in the form {name} or {name:macro}.
var pathVarRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// PathVar is a variable found in a path template.
type PathVar struct {
	Name  string
	Macro string
}

// Type returns the documentation type and format implied by the macro.
// Unknown macros and plain variables are strings.
func (v PathVar) Type() (typ, format string) {
	if info, ok := macroTypes[v.Macro]; ok {
		return info[0], info[1]
	}
	return "string", ""
}

// ParseTemplate strips macros from a path template and returns the
// normalized path together with its variables in order of appearance.
func ParseTemplate(tpl string) (string, []PathVar) {
	var vars []PathVar

	path := pathVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		inner := match[1 : len(match)-1]
		name, macro, _ := strings.Cut(inner, ":")
		name = strings.TrimSpace(name)

		vars = append(vars, PathVar{Name: name, Macro: strings.TrimSpace(macro)})
		return "{" + name + "}"
	})

	return path, vars
}

// JoinPath appends a segment to an accumulated prefix, keeping exactly one
// slash between them. An empty segment leaves the prefix unchanged.
func JoinPath(prefix, segment string) string {
	if segment == "" {
		return prefix
	}

	switch {
	case strings.HasSuffix(prefix, "/") && strings.HasPrefix(segment, "/"):
		return prefix + segment[1:]
	case !strings.HasSuffix(prefix, "/") && !strings.HasPrefix(segment, "/"):
		return prefix + "/" + segment
	}
	return prefix + segment
}
