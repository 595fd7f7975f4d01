package cors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benvon/healthz-api/internal/validation"
)

// OriginMode selects how Access-Control-Allow-Origin is resolved.
type OriginMode int

const (
	// OriginDisabled never emits an origin header.
	OriginDisabled OriginMode = iota
	// OriginWildcard always emits "*".
	OriginWildcard
	// OriginSingle always emits one fixed origin, regardless of the request.
	OriginSingle
	// OriginList echoes the request origin only when it is in the list.
	OriginList
)

// String returns the storage name of the mode.
func (m OriginMode) String() string {
	switch m {
	case OriginWildcard:
		return "wildcard"
	case OriginSingle:
		return "single"
	case OriginList:
		return "list"
	default:
		return "disabled"
	}
}

// ParseOriginMode is the inverse of OriginMode.String.
func ParseOriginMode(s string) (OriginMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wildcard":
		return OriginWildcard, nil
	case "single":
		return OriginSingle, nil
	case "list":
		return OriginList, nil
	case "disabled", "":
		return OriginDisabled, nil
	default:
		return OriginDisabled, fmt.Errorf("unknown origin mode %q", s)
	}
}

// Origin is the configured origin policy.
type Origin struct {
	Mode   OriginMode
	Values []string
}

// Wildcard allows every origin.
func Wildcard() Origin { return Origin{Mode: OriginWildcard} }

// Single emits origin unconditionally.
func Single(origin string) Origin { return Origin{Mode: OriginSingle, Values: []string{origin}} }

// List allows exactly the given origins.
func List(origins ...string) Origin { return Origin{Mode: OriginList, Values: origins} }

// Disabled emits no origin header.
func Disabled() Origin { return Origin{Mode: OriginDisabled} }

// ParseOrigin reads the textual form used by env vars, the CLI and the database:
// "*" is a wildcard, "" or "false" disables, a comma-separated value is a list and
// anything else is a single origin.
func ParseOrigin(raw string) Origin {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "*":
		return Wildcard()
	case raw == "" || strings.EqualFold(raw, "false"):
		return Disabled()
	case strings.Contains(raw, ","):
		return List(validation.SplitList(raw)...)
	default:
		return Single(raw)
	}
}

// String renders the origin in the form accepted by ParseOrigin.
// A one-element list renders with a trailing comma so it parses back as a list.
func (o Origin) String() string {
	switch o.Mode {
	case OriginWildcard:
		return "*"
	case OriginSingle:
		if len(o.Values) == 0 {
			return ""
		}
		return o.Values[0]
	case OriginList:
		s := strings.Join(o.Values, ",")
		if len(o.Values) == 1 {
			s += ","
		}
		return s
	default:
		return "false"
	}
}

// Config describes a CORS policy before validation.
type Config struct {
	Origin         Origin
	Methods        []string `validate:"dive,http_token"`
	AllowedHeaders []string `validate:"dive,http_token"`
	Credentials    bool
	MaxAge         int `validate:"gte=0"`
}

// Defaults applied by DefaultConfig.
var (
	DefaultMethods        = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	DefaultAllowedHeaders = []string{"Content-Type", "Authorization", "X-Requested-With"}
)

// DefaultMaxAge caches preflight results for 24 hours.
const DefaultMaxAge = 86400

// DefaultConfig returns the permissive default policy: any origin, no credentials.
func DefaultConfig() Config {
	return Config{
		Origin:         Wildcard(),
		Methods:        append([]string(nil), DefaultMethods...),
		AllowedHeaders: append([]string(nil), DefaultAllowedHeaders...),
		Credentials:    false,
		MaxAge:         DefaultMaxAge,
	}
}

var (
	// ErrWildcardCredentials is returned when a wildcard origin is combined with credentials.
	// Browsers reject that combination.
	ErrWildcardCredentials = errors.New("wildcard origin cannot be combined with credentials")
	// ErrEmptyOriginList is returned for a list origin with no entries.
	ErrEmptyOriginList = errors.New("origin list is empty")
	// ErrEmptySingleOrigin is returned for a single origin with an empty value.
	ErrEmptySingleOrigin = errors.New("single origin is empty")
)

// Validate checks the config for combinations the policy engine refuses to serve.
func (c Config) Validate() error {
	if err := validation.Validate.Struct(c); err != nil {
		return fmt.Errorf("invalid cors config: %w", err)
	}
	switch c.Origin.Mode {
	case OriginWildcard:
		if c.Credentials {
			return ErrWildcardCredentials
		}
	case OriginSingle:
		if len(c.Origin.Values) == 0 || strings.TrimSpace(c.Origin.Values[0]) == "" {
			return ErrEmptySingleOrigin
		}
	case OriginList:
		if len(c.Origin.Values) == 0 {
			return ErrEmptyOriginList
		}
	}
	return nil
}
