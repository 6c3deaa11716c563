package mux

import (
	"fmt"
	"regexp"
	"strings"
)

// patternMacros maps macro names to the pattern they expand to in
// {name:macro} route variables.
var patternMacros = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
	"domain":   `(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`,
}

func expandMacro(pattern string) string {
	if expanded, ok := patternMacros[pattern]; ok {
		return expanded
	}
	return pattern
}

// pathTemplate is a compiled path template.
type pathTemplate struct {
	template string
	regexp   *regexp.Regexp
	vars     []string
}

// compileTemplate compiles tpl. A prefix template matches any path that
// starts with it.
func compileTemplate(tpl string, prefix bool) (*pathTemplate, error) {
	idxs, err := braceIndices(tpl)
	if err != nil {
		return nil, err
	}

	var (
		pattern strings.Builder
		vars    []string
		end     int
	)
	pattern.WriteByte('^')

	for i := 0; i < len(idxs); i += 2 {
		pattern.WriteString(regexp.QuoteMeta(tpl[end:idxs[i]]))
		end = idxs[i+1]

		name, patt, ok := strings.Cut(tpl[idxs[i]+1:end-1], ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("mux: missing name in %q from %q", tpl[idxs[i]:end], tpl)
		}
		if !ok {
			patt = "[^/]+"
		}
		for _, v := range vars {
			if v == name {
				return nil, fmt.Errorf("mux: duplicated route variable %q in %q", name, tpl)
			}
		}

		fmt.Fprintf(&pattern, "(%s)", expandMacro(strings.TrimSpace(patt)))
		vars = append(vars, name)
	}

	pattern.WriteString(regexp.QuoteMeta(tpl[end:]))
	if !prefix {
		pattern.WriteByte('$')
	}

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("mux: invalid template %q: %w", tpl, err)
	}
	if re.NumSubexp() != len(vars) {
		return nil, fmt.Errorf("mux: capturing groups are not allowed in variable patterns of %q; use (?:pattern)", tpl)
	}

	return &pathTemplate{template: tpl, regexp: re, vars: vars}, nil
}

// match reports whether path matches and returns the variable values.
func (t *pathTemplate) match(path string) (map[string]string, bool) {
	groups := t.regexp.FindStringSubmatch(path)
	if groups == nil {
		return nil, false
	}

	vars := make(map[string]string, len(t.vars))
	for i, name := range t.vars {
		vars[name] = groups[i+1]
	}
	return vars, true
}

// braceIndices returns the start and end offsets of every top-level
// {...} group in s.
func braceIndices(s string) ([]int, error) {
	var (
		level, idx int
		idxs       []int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idx = i
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, idx, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("mux: unbalanced braces in %q", s)
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("mux: unbalanced braces in %q", s)
	}
	return idxs, nil
}
