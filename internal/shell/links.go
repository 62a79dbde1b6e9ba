package shell

import (
	"sort"
	"strings"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

// Links is the link-command registry, built once from the site config.
type Links struct {
	byKey   map[string]domain.LinkSpec
	byAlias map[string]string // alias -> key
	keys    []string          // sorted, for stable listings
}

// NewLinks builds the registry from configured link specs.
func NewLinks(specs map[string]domain.LinkSpec) *Links {
	l := &Links{
		byKey:   make(map[string]domain.LinkSpec, len(specs)),
		byAlias: make(map[string]string),
	}
	for key, spec := range specs {
		key = strings.ToLower(key)
		l.byKey[key] = spec
		l.keys = append(l.keys, key)
		if spec.Alias != "" {
			l.byAlias[strings.ToLower(spec.Alias)] = key
		}
	}
	sort.Strings(l.keys)
	return l
}

// Resolve looks up a link by key or alias. The returned key is the
// canonical one even when resolved through an alias.
func (l *Links) Resolve(name string) (string, domain.LinkSpec, bool) {
	name = strings.ToLower(name)
	if spec, ok := l.byKey[name]; ok {
		return name, spec, true
	}
	if key, ok := l.byAlias[name]; ok {
		return key, l.byKey[key], true
	}
	return "", domain.LinkSpec{}, false
}

// URL returns the address the terminal should open for a link: the
// server-side redirect route for redirecting links, the raw URL
// otherwise.
func (l *Links) URL(key string) string {
	spec, ok := l.byKey[key]
	if !ok {
		return ""
	}
	if spec.Redirect {
		return "/" + key
	}
	return spec.URL
}

// Visible iterates the listable links (not hidden, not sudo-only) in
// stable order.
func (l *Links) Visible() []ListedLink {
	var out []ListedLink
	for _, key := range l.keys {
		spec := l.byKey[key]
		if spec.Hidden || spec.SudoOnly {
			continue
		}
		out = append(out, ListedLink{Key: key, Spec: spec})
	}
	return out
}

// NonSudoKeys returns every key and alias reachable without escalation.
func (l *Links) NonSudoKeys() []string {
	var out []string
	for _, key := range l.keys {
		spec := l.byKey[key]
		if spec.SudoOnly {
			continue
		}
		out = append(out, key)
		if spec.Alias != "" {
			out = append(out, strings.ToLower(spec.Alias))
		}
	}
	return out
}

// ListedLink pairs a link key with its spec for listings.
type ListedLink struct {
	Key  string
	Spec domain.LinkSpec
}
