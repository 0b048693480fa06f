// Package query builds GraphQL selection-set fragments for article fields.
//
// Callers pick either a named preset that balances payload size against
// completeness, or an explicit ordered field list. Each identifier resolves
// through a static table to a scalar name or a relation fragment with nested
// sub-fields. Identifiers outside the table are silently dropped: the
// builder is a total function with no failure mode, and an unknown field is
// treated as "not requested" rather than an error.
package query

// Preset names a fixed set of response fields.
type Preset string

const (
	// PresetMinimal covers list tiles: identity, title and the lead image.
	PresetMinimal Preset = "minimal"
	// PresetStandard covers card layouts with excerpt and author byline.
	// It is the default when a request names neither preset nor fields.
	PresetStandard Preset = "standard"
	// PresetFull covers the article detail view, relations included.
	PresetFull Preset = "full"
)

// Request selects the fields of a query. Fields, when non-empty, takes
// precedence over Preset entirely (no merge).
type Request struct {
	Preset Preset
	Fields []string
}

// fragments maps a field identifier to its selection fragment. Relation
// fields expand to a nested sub-selection.
var fragments = map[string]string{
	"id":              "id",
	"slug":            "slug",
	"title":           "title",
	"excerpt":         "excerpt",
	"body":            "body",
	"publishedAt":     "publishedAt",
	"updatedAt":       "updatedAt",
	"tags":            "tags",
	"mainImage":       "mainImage",
	"coverImage":      "coverImage",
	"backgroundImage": "backgroundImage",
	"favoritesCount":  "favoritesCount",
	"favorited":       "favorited",
	"images":          "images {\n  id\n  url\n  caption\n}",
	"author":          "author {\n  username\n  bio\n  image\n  following\n}",
	"engine":          "engine {\n  id\n  name\n}",
}

// presets maps each preset to its ordered field list. PresetFull is a
// superset of PresetStandard, which is a superset of PresetMinimal.
var presets = map[Preset][]string{
	PresetMinimal: {"id", "slug", "title", "mainImage"},
	PresetStandard: {
		"id", "slug", "title", "excerpt", "mainImage",
		"publishedAt", "tags", "author",
	},
	PresetFull: {
		"id", "slug", "title", "excerpt", "body", "mainImage", "coverImage",
		"backgroundImage", "images", "publishedAt", "updatedAt", "tags",
		"author", "engine", "favoritesCount", "favorited",
	},
}

// Build resolves a field selection request to a newline-joined GraphQL
// selection fragment. A nil request, or one naming neither preset nor
// fields, resolves to PresetStandard.
func Build(req *Request) string {
	var names []string
	switch {
	case req != nil && len(req.Fields) > 0:
		names = req.Fields
	case req != nil && req.Preset != "":
		names = presets[req.Preset]
	default:
		names = presets[PresetStandard]
	}

	out := ""
	for _, name := range names {
		fragment, ok := fragments[name]
		if !ok {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += fragment
	}
	return out
}

// Known reports whether the identifier exists in the fragment table.
func Known(field string) bool {
	_, ok := fragments[field]
	return ok
}
