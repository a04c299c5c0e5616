package parser

import (
	"fmt"
	"strings"

	"github.com/woozymasta/pathrules"

	"github.com/ossyrian/datparse/internal/dat"
)

// Selector picks entries by gitignore-style include/exclude patterns.
// A nil Selector matches everything.
type Selector struct {
	matcher *pathrules.Matcher
}

// NewSelector compiles include and exclude patterns. With no include
// patterns every entry is included by default; exclude patterns are
// applied after includes, so they win on overlap.
func NewSelector(include, exclude []string) (*Selector, error) {
	rules := make([]pathrules.Rule, 0, len(include)+len(exclude))
	for _, p := range include {
		if p = normalizePattern(p); p != "" {
			rules = append(rules, pathrules.Rule{Action: pathrules.ActionInclude, Pattern: p})
		}
	}

	defaultAction := pathrules.ActionInclude
	if len(rules) > 0 {
		defaultAction = pathrules.ActionExclude
	}

	for _, p := range exclude {
		if p = normalizePattern(p); p != "" {
			rules = append(rules, pathrules.Rule{Action: pathrules.ActionExclude, Pattern: p})
		}
	}

	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   defaultAction,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	return &Selector{matcher: matcher}, nil
}

// Match reports whether the entry name is selected.
func (s *Selector) Match(name string) bool {
	if s == nil || s.matcher == nil {
		return true
	}
	return s.matcher.Included(dat.NormalizeName(name), false)
}

func normalizePattern(p string) string {
	return strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
}
