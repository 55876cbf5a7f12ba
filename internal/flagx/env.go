package flagx

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LookupEnv returns the first non-empty value among keys. Listing a public
// (client-visible) name before its server-only twin lets one runtime config
// absorb both.
func LookupEnv(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// EnvString overwrites *dst when any of keys is set.
func EnvString(dst *string, keys ...string) {
	if v, ok := LookupEnv(keys...); ok {
		*dst = v
	}
}

// EnvInt overwrites *dst when any of keys holds a valid integer.
// Malformed values are ignored and the previous value is kept.
func EnvInt(dst *int, keys ...string) {
	if v, ok := LookupEnv(keys...); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// EnvBool overwrites *dst when any of keys holds a value strconv.ParseBool accepts.
func EnvBool(dst *bool, keys ...string) {
	if v, ok := LookupEnv(keys...); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// EnvDuration overwrites *dst when any of keys holds a Go duration ("90s", "1m").
func EnvDuration(dst *time.Duration, keys ...string) {
	if v, ok := LookupEnv(keys...); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

// EnvList splits a comma separated variable, dropping empty items.
func EnvList(dst *[]string, keys ...string) {
	v, ok := LookupEnv(keys...)
	if !ok {
		return
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}
