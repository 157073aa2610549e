// Package envvars filters and parses the KEY=VALUE text printed by
// `shopify app env show`.
package envvars

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shinji-kodama/shopify-heroku/internal/model"
)

// DefaultRequiredKeys are the Shopify variables copied to Heroku.
var DefaultRequiredKeys = []string{"SHOPIFY_API_KEY", "SHOPIFY_API_SECRET"}

// ErrNoRequiredKeys is returned by Select when none of the required keys
// appear in the input.
var ErrNoRequiredKeys = errors.New("no required environment variables found")

// Matcher builds a regexp that matches lines starting with "KEY=" for
// exactly one of keys. Keys are quoted, so "SHOPIFY_API_KEY" never matches
// "SHOPIFY_API_KEY_OLD=".
func Matcher(keys []string) *regexp.Regexp {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`^(` + strings.Join(quoted, "|") + `)=`)
}

// Filter returns the lines whose key is exactly one of keys, trimmed, in
// input order.
func Filter(lines []string, keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	re := Matcher(keys)

	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if re.MatchString(line) {
			out = append(out, line)
		}
	}
	return out
}

// Select is Filter that fails with ErrNoRequiredKeys on an empty result.
func Select(lines []string, keys []string) ([]string, error) {
	filtered := Filter(lines, keys)
	if len(filtered) == 0 {
		return nil, ErrNoRequiredKeys
	}
	return filtered, nil
}

// ParseLine splits a line on its first "=". Both halves are trimmed.
// A line without "=" yields the whole line as key and an empty value.
func ParseLine(line string) model.EnvironmentVariable {
	key, value, _ := strings.Cut(line, "=")
	return model.EnvironmentVariable{
		Key:   strings.TrimSpace(key),
		Value: strings.TrimSpace(value),
	}
}

// Parse converts lines to variables, skipping entries whose key is empty.
func Parse(lines []string) []model.EnvironmentVariable {
	vars := make([]model.EnvironmentVariable, 0, len(lines))
	for _, line := range lines {
		v := ParseLine(line)
		if v.Key == "" {
			continue
		}
		vars = append(vars, v)
	}
	return vars
}
