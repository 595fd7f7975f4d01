package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	rscors "github.com/rs/cors"
)

// Cross-checks the origin decision against rs/cors for the modes both implement.
func TestAllowOrigin_AgreesWithRSCors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		options rscors.Options
	}{
		{
			name:    "wildcard",
			cfg:     Config{Origin: Wildcard(), Methods: []string{"GET"}},
			options: rscors.Options{AllowedOrigins: []string{"*"}},
		},
		{
			name:    "list with credentials",
			cfg:     Config{Origin: List("http://a.com", "http://b.com"), Methods: []string{"GET"}, Credentials: true},
			options: rscors.Options{AllowedOrigins: []string{"http://a.com", "http://b.com"}, AllowCredentials: true},
		},
	}

	origins := []string{"http://a.com", "http://b.com", "http://c.com", "https://a.com"}
	noop := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := mustPolicy(t, tt.cfg)
			reference := rscors.New(tt.options).Handler(noop)

			for _, origin := range origins {
				for _, method := range []string{http.MethodGet, http.MethodOptions} {
					req := httptest.NewRequest(method, "/health", nil)
					req.Header.Set(HeaderOrigin, origin)
					if method == http.MethodOptions {
						req.Header.Set("Access-Control-Request-Method", http.MethodGet)
					}
					w := httptest.NewRecorder()
					reference.ServeHTTP(w, req)

					want := w.Header().Get(HeaderAllowOrigin)
					if got := p.AllowOrigin(origin); got != want {
						t.Errorf("%s %s: AllowOrigin() = %q, rs/cors = %q", method, origin, got, want)
					}
				}
			}
		})
	}
}
