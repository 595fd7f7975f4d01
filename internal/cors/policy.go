// Package cors evaluates a configured CORS policy against the origin a request declares.
package cors

import (
	"net/http"
	"strconv"
	"strings"
)

// Response header names emitted by the policy.
const (
	HeaderAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAllowMethods     = "Access-Control-Allow-Methods"
	HeaderAllowHeaders     = "Access-Control-Allow-Headers"
	HeaderAllowCredentials = "Access-Control-Allow-Credentials"
	HeaderMaxAge           = "Access-Control-Max-Age"

	// HeaderOrigin is the request header carrying the caller's origin.
	HeaderOrigin = "Origin"
)

// HeaderSet maps response header names to values.
type HeaderSet map[string]string

// Policy is a validated, immutable CORS configuration. It is safe for concurrent use.
type Policy struct {
	cfg     Config
	allowed map[string]struct{}
	methods string
	headers string
	maxAge  string
}

// NewPolicy validates cfg and precomputes the joined header values.
func NewPolicy(cfg Config) (*Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Policy{cfg: cloneConfig(cfg)}
	if cfg.Origin.Mode == OriginList {
		p.allowed = make(map[string]struct{}, len(cfg.Origin.Values))
		for _, o := range cfg.Origin.Values {
			p.allowed[o] = struct{}{}
		}
	}
	if len(cfg.Methods) > 0 {
		p.methods = strings.Join(cfg.Methods, ", ")
	}
	if len(cfg.AllowedHeaders) > 0 {
		p.headers = strings.Join(cfg.AllowedHeaders, ", ")
	}
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(cfg.MaxAge)
	}
	return p, nil
}

// Config returns a copy of the configuration the policy was built from.
func (p *Policy) Config() Config {
	return cloneConfig(p.cfg)
}

// AllowOrigin resolves the Access-Control-Allow-Origin value for requestOrigin.
// An empty result means the header must be omitted.
func (p *Policy) AllowOrigin(requestOrigin string) string {
	switch p.cfg.Origin.Mode {
	case OriginWildcard:
		return "*"
	case OriginSingle:
		return p.cfg.Origin.Values[0]
	case OriginList:
		if requestOrigin == "" {
			return ""
		}
		if _, ok := p.allowed[requestOrigin]; ok {
			return requestOrigin
		}
		return ""
	default:
		return ""
	}
}

// ComputeHeaders returns the CORS response headers for a request declaring requestOrigin.
// Pass "" when the request carried no Origin header.
func (p *Policy) ComputeHeaders(requestOrigin string) HeaderSet {
	headers := make(HeaderSet, 5)

	if origin := p.AllowOrigin(requestOrigin); origin != "" {
		headers[HeaderAllowOrigin] = origin
	}
	if p.methods != "" {
		headers[HeaderAllowMethods] = p.methods
	}
	if p.headers != "" {
		headers[HeaderAllowHeaders] = p.headers
	}
	if p.cfg.Credentials {
		headers[HeaderAllowCredentials] = "true"
	}
	if p.maxAge != "" {
		headers[HeaderMaxAge] = p.maxAge
	}

	return headers
}

// Apply sets the computed headers on h, replacing any existing values, and returns h.
func (p *Policy) Apply(h http.Header, requestOrigin string) http.Header {
	for name, value := range p.ComputeHeaders(requestOrigin) {
		h.Set(name, value)
	}
	return h
}

// Preflight writes a preflight response: 200, empty body, CORS headers only.
func (p *Policy) Preflight(w http.ResponseWriter, requestOrigin string) {
	p.Apply(w.Header(), requestOrigin)
	w.WriteHeader(http.StatusOK)
}

// IsPreflight reports whether r is a preflight request.
func IsPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions
}

// RequestOrigin returns the Origin header of r, or "" when absent.
func RequestOrigin(r *http.Request) string {
	return r.Header.Get(HeaderOrigin)
}

// Middleware answers preflight requests with p and decorates every other response.
func Middleware(p *Policy) func(http.Handler) http.Handler {
	return MiddlewareFunc(func() *Policy { return p })
}

// MiddlewareFunc is Middleware with the policy looked up on every request, for
// policies that are swapped at runtime.
func MiddlewareFunc(current func() *Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := current()
			origin := RequestOrigin(r)
			if IsPreflight(r) {
				p.Preflight(w, origin)
				return
			}
			p.Apply(w.Header(), origin)
			next.ServeHTTP(w, r)
		})
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Origin.Values = append([]string(nil), cfg.Origin.Values...)
	out.Methods = append([]string(nil), cfg.Methods...)
	out.AllowedHeaders = append([]string(nil), cfg.AllowedHeaders...)
	return out
}
