package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one route. Paths ending in "/" match by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	IdleTTL       time.Duration // buckets untouched this long are dropped
	Allow         map[string]bool
	Deny          map[string]bool
	Rules         []Rule
}

// DefaultConfig returns the limits used when no environment overrides are set.
func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  600,
		DefaultWindow: time.Minute,
		IdleTTL:       time.Hour,
		Allow:         map[string]bool{},
		Deny:          map[string]bool{},
		Rules:         DefaultRules(),
	}
}

// DefaultRules returns per-route limits. Judging fans out to several LLM calls
// so it is limited far more tightly than reads.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/judge", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/judge/stream", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/reviews/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables over DefaultConfig.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = envBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	if !cfg.Enabled {
		return cfg
	}
	cfg.DefaultLimit = envInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.IdleTTL = envDuration("RATE_LIMIT_IDLE_TTL", cfg.IdleTTL)
	cfg.Allow = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Deny = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// Match returns the rule for path and method, or nil when the default applies.
// Exact paths win over prefixes; GET /health is never limited.
func (c *Config) Match(path, method string) *Rule {
	if path == "/health" && method == "GET" {
		return &Rule{Path: path, Method: method}
	}
	for i := range c.Rules {
		if r := &c.Rules[i]; r.Method == method && r.Path == path {
			return r
		}
	}
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func parseIPList(list string) map[string]bool {
	out := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			out[ip] = true
		}
	}
	return out
}
