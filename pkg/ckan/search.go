package ckan

import "strings"

// NormalizeSlug converts an organization or dataset identifier to its
// canonical catalogue form: lowercased, trimmed, with spaces and
// underscores replaced by hyphens. Display names such as
// "Department for Transport" normalize to their slug.
func NormalizeSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}

// FilterNames filters names down to those containing query,
// case-insensitively, preserving input order. Directory slugs are unique,
// so every matching name appears exactly once. An empty or blank query
// matches everything.
//
// This is the matcher behind [Client.SearchOrganizations] and
// [Client.SearchPackages], exported so callers can apply the same policy
// to listings they already hold.
func FilterNames(names []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return names
	}
	var out []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, name)
		}
	}
	return out
}
