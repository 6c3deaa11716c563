package docs

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// ErrWildcardCredentials is returned when AllowedOrigins contains "*" and
// AllowCredentials is true.
var ErrWildcardCredentials = errors.New("docs: wildcard origin \"*\" cannot be used with AllowCredentials")

// allowedMethods are advertised to cross-origin callers.
const allowedMethods = "GET, HEAD"

// CORSConfig controls the cross-origin headers added to responses. The
// headers are only added when the request carries an Origin header. With
// the default "*" origin every cross-origin response carries them. Listing
// specific origins narrows that: a request from an origin that is not
// listed is still served, just without the headers.
type CORSConfig struct {
	// AllowedOrigins is a list of exact origins, "*", or subdomain
	// patterns like "https://*.example.com". Empty means "*".
	AllowedOrigins []string

	// AllowedHeaders lists the request headers callers may send. When
	// empty the Access-Control-Request-Headers value is reflected.
	AllowedHeaders []string

	// ExposeHeaders lists the response headers browsers may expose.
	ExposeHeaders []string

	// AllowCredentials sets Access-Control-Allow-Credentials: true.
	AllowCredentials bool

	// MaxAge is sent as Access-Control-Max-Age when positive.
	MaxAge int
}

type wildcardPattern struct {
	prefix string
	suffix string
}

// corsPolicy is the parsed form of a CORSConfig.
type corsPolicy struct {
	cfg      CORSConfig
	any      bool
	exact    []string
	patterns []wildcardPattern
}

func newCORSPolicy(cfg CORSConfig) (*corsPolicy, error) {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	p := &corsPolicy{cfg: cfg}
	for _, o := range origins {
		if o == "*" {
			p.any = true
			continue
		}

		lower := strings.ToLower(o)
		prefix, suffix, found := strings.Cut(lower, "*")
		if !found {
			p.exact = append(p.exact, lower)
			continue
		}
		if strings.Contains(suffix, "*") {
			return nil, fmt.Errorf("docs: origin pattern contains multiple wildcards: %s", o)
		}
		p.patterns = append(p.patterns, wildcardPattern{prefix: prefix, suffix: suffix})
	}

	if p.any && cfg.AllowCredentials {
		return nil, ErrWildcardCredentials
	}

	for _, name := range slices.Concat(cfg.AllowedHeaders, cfg.ExposeHeaders) {
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, fmt.Errorf("docs: invalid header name %q", name)
		}
	}

	return p, nil
}

func (p *corsPolicy) allows(origin string) bool {
	if p.any {
		return true
	}

	lower := strings.ToLower(origin)
	if slices.Contains(p.exact, lower) {
		return true
	}
	for _, wp := range p.patterns {
		if len(lower) >= len(wp.prefix)+len(wp.suffix) &&
			strings.HasPrefix(lower, wp.prefix) &&
			strings.HasSuffix(lower, wp.suffix) {
			return true
		}
	}
	return false
}

// apply adds the cross-origin headers for r to w. It never rejects.
func (p *corsPolicy) apply(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		if !p.any {
			w.Header().Add("Vary", "Origin")
		}
		return
	}
	if !p.allows(origin) {
		return
	}

	h := w.Header()
	if p.any {
		h.Set("Access-Control-Allow-Origin", "*")
	} else {
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
	}
	if p.cfg.AllowCredentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}

	h.Set("Access-Control-Allow-Methods", allowedMethods)

	if len(p.cfg.AllowedHeaders) > 0 {
		h.Set("Access-Control-Allow-Headers", strings.Join(p.cfg.AllowedHeaders, ","))
	} else if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
		h.Set("Access-Control-Allow-Headers", requested)
	}

	if len(p.cfg.ExposeHeaders) > 0 {
		h.Set("Access-Control-Expose-Headers", strings.Join(p.cfg.ExposeHeaders, ","))
	}

	if p.cfg.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(p.cfg.MaxAge))
	}
}
