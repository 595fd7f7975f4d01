package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for header values
	// These should never fail in normal operation, but panic if they do
	if err := Validate.RegisterValidation("http_token", validateHTTPToken); err != nil {
		panic(fmt.Sprintf("failed to register http_token validator: %v", err))
	}
}

// validateHTTPToken validates that a string is an RFC 9110 token (method or header name)
func validateHTTPToken(fl validator.FieldLevel) bool {
	return IsHTTPToken(fl.Field().String())
}

// IsHTTPToken reports whether s is a non-empty RFC 9110 token
func IsHTTPToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0
}

// SplitList splits a comma-separated list, trimming whitespace and dropping empty and duplicate entries.
// Order of first occurrence is preserved.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	var out []string
	seen := make(map[string]bool)
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
