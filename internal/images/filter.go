package images

import (
	"fmt"
	"regexp"
	"strings"
)

type filterRule struct {
	pattern *regexp.Regexp
	include bool
}

// Filter decides which image urls are processed.
// Rules are wildcard patterns (`*`, `?`) matched against the whole url.
// A rule excludes urls it matches, a rule prefixed with `!` includes them.
// The first matching rule wins and urls matching no rule are kept.
type Filter struct {
	rules []filterRule
}

// ParseFilter parses semicolon-separated filter rules.
func ParseFilter(rules string) (*Filter, error) {
	f := &Filter{}

	for _, raw := range strings.Split(rules, ";") {
		raw = strings.TrimSpace(raw)
		include := strings.HasPrefix(raw, "!")
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "!"))
		if raw == "" {
			continue
		}

		pattern, err := regexp.Compile(wildcardToRegexp(raw))
		if err != nil {
			return nil, fmt.Errorf("can't compile image filter rule %q: %w", raw, err)
		}
		f.rules = append(f.rules, filterRule{pattern: pattern, include: include})
	}

	return f, nil
}

// Allow reports whether url passes the filter.
func (f *Filter) Allow(url string) bool {
	if f == nil {
		return true
	}

	for _, rule := range f.rules {
		if rule.pattern.MatchString(url) {
			return rule.include
		}
	}

	return true
}

func wildcardToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	return b.String()
}
