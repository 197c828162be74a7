package resolve

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/lilydev/bg3mm/internal/instance"
)

// minPrefix is the shortest id prefix accepted as a reference.
const minPrefix = 4

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// nameSource implements fuzzy.Source over instance names.
type nameSource []instance.Info

func (s nameSource) String(i int) string { return s[i].Name }
func (s nameSource) Len() int            { return len(s) }

// ID resolves ref to an instance id.
//
// A full id is returned as-is, even if the index does not contain it, so
// that commands can act on directories the index has lost track of.
// Otherwise every instance whose name equals ref or whose id starts with ref
// (at least minPrefix characters) is a match, and there must be exactly one.
// Failures mention close name matches.
func ID(idx instance.Index, ref string) (uuid.UUID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return uuid.Nil, fmt.Errorf("empty instance reference")
	}

	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}

	// A name can look like an id prefix ("beef", "2024"), so both kinds of
	// match are collected and must agree on a single instance.
	var matches []instance.Info
	seen := make(map[uuid.UUID]bool)
	add := func(info instance.Info) {
		if !seen[info.ID] {
			seen[info.ID] = true
			matches = append(matches, info)
		}
	}

	for _, info := range idx.Instances {
		if info.Name == ref {
			add(info)
		}
	}
	if len(ref) >= minPrefix {
		prefix := strings.ToLower(ref)
		for _, info := range idx.Instances {
			if strings.HasPrefix(info.ID.String(), prefix) {
				add(info)
			}
		}
	}

	switch len(matches) {
	case 0:
		return uuid.Nil, notFound(idx, ref)
	case 1:
		return matches[0].ID, nil
	default:
		return uuid.Nil, ambiguous(ref, matches)
	}
}

// Suggest returns up to maxSuggestions instance names that fuzzy-match ref,
// best match first.
func Suggest(idx instance.Index, ref string) []string {
	matches := fuzzy.FindFrom(ref, nameSource(idx.Instances))

	var names []string
	for _, m := range matches {
		if len(names) == maxSuggestions {
			break
		}
		names = append(names, m.Str)
	}
	return names
}

// Names returns every instance name, for shell completion.
func Names(idx instance.Index) []string {
	names := make([]string, 0, len(idx.Instances))
	for _, info := range idx.Instances {
		names = append(names, info.Name)
	}
	return names
}

func ambiguous(ref string, matches []instance.Info) error {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID.String()
	}
	return fmt.Errorf("%q matches %d instances, use an id: %s", ref, len(matches), strings.Join(ids, ", "))
}

func notFound(idx instance.Index, ref string) error {
	if s := Suggest(idx, ref); len(s) > 0 {
		return fmt.Errorf("no instance named %q (did you mean %s?)", ref, strings.Join(quoteAll(s), ", "))
	}
	return fmt.Errorf("no instance named %q (run 'bg3mm list' to see instances)", ref)
}

func quoteAll(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
