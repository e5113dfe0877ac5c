// Package css rewrites stylesheets so every rule is placed under a single
// scoping selector. It deliberately works on text: rule heads are found by
// flat pattern matching and declaration blocks are never interpreted.
package css

import "strings"

const (
	// DefaultPrefix is the class stylesheets are scoped under unless
	// configured otherwise.
	DefaultPrefix = ".incident-injector-panel"
)

// DefaultExempt lists selector beginnings which are never scoped: at-rules
// and document level custom property declarations.
var DefaultExempt = []string{"@", ":root"}

// Scoper prefixes selectors with a scoping selector.
type Scoper struct {
	prefix string
	exempt []string
}

// NewScoper creates scoper for given prefix. When exempt is nil DefaultExempt
// is used, pass empty non-nil slice to scope everything.
func NewScoper(prefix string, exempt []string) *Scoper {
	if exempt == nil {
		exempt = DefaultExempt
	}
	return &Scoper{prefix: prefix, exempt: exempt}
}

// Prefix returns scoping selector.
func (s *Scoper) Prefix() string {
	return s.prefix
}

// Scope returns selector placed under scoping prefix. Already scoped and
// exempt selectors are returned trimmed but otherwise unchanged, so applying
// Scope repeatedly is safe.
//
// Grouped selectors are split on every comma, including commas inside
// functional pseudo-classes such as :not(.a, .b) - those come out mangled.
func (s *Scoper) Scope(selector string) string {
	selector = strings.TrimSpace(selector)

	if strings.HasPrefix(selector, s.prefix) {
		return selector
	}
	if s.Exempt(selector) {
		return selector
	}

	if strings.Contains(selector, ",") {
		parts := strings.Split(selector, ",")
		for i, p := range parts {
			parts[i] = s.Scope(p)
		}
		return strings.Join(parts, ", ")
	}

	// empty selector gets prefix too, nothing good comes out of it but input
	// like that is broken anyway
	return s.prefix + " " + selector
}

// Exempt reports whether selector must be left alone.
func (s *Scoper) Exempt(selector string) bool {
	for _, e := range s.exempt {
		if strings.HasPrefix(selector, e) {
			return true
		}
	}
	return false
}

var defaultScoper = NewScoper(DefaultPrefix, DefaultExempt)

// ScopeSelector scopes selector with DefaultPrefix.
func ScopeSelector(selector string) string {
	return defaultScoper.Scope(selector)
}
