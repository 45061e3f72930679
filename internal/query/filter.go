// Package query defines the search/tag filter shared by the storage backends
// and mirrored by the client when it builds request query strings.
package query

import (
	"net/url"
	"strings"
)

// Filter narrows a listing to entities matching a free-text search term, a set
// of required tags and optionally only favorites.
//
// The search term is matched literally, with no trimming or normalization
// beyond case folding: a whitespace-only term is a real term and will only
// match entities containing that whitespace.
type Filter struct {
	Search        string
	Tags          []string
	FavoritesOnly bool
}

// Match reports whether an entity with the given searchable text fields, tag
// set and favorite flag passes the filter. Tag selection uses intersection
// semantics: every selected tag must be present on the entity.
func (f Filter) Match(texts []string, tags []string, favorite bool) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		found := false
		for _, t := range texts {
			if strings.Contains(strings.ToLower(t), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for _, want := range f.Tags {
		present := false
		for _, have := range tags {
			if have == want {
				present = true
				break
			}
		}
		if !present {
			return false
		}
	}

	if f.FavoritesOnly && !favorite {
		return false
	}
	return true
}

// ParseValues reads a filter from request query parameters:
// q=<text>&tags=<comma-list>&favorite=true. Empty tag segments are dropped.
func ParseValues(values url.Values) Filter {
	f := Filter{
		Search:        values.Get("q"),
		FavoritesOnly: values.Get("favorite") == "true",
	}
	if raw := values.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	return f
}

// Values encodes the filter back into request query parameters. Parsing the
// result yields an equivalent filter.
func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Search != "" {
		values.Set("q", f.Search)
	}
	if len(f.Tags) > 0 {
		values.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.FavoritesOnly {
		values.Set("favorite", "true")
	}
	return values
}

// Encode renders the filter as a URL query string without the leading "?".
func (f Filter) Encode() string {
	return f.Values().Encode()
}
