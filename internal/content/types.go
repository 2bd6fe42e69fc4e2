package content

import (
	"sort"

	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/db/controller/autofeatured"
)

// Type is a registered content type.
type Type struct {
	Name   string
	Label  string
	Public bool
}

// Types is the registry of content types. post and page are always present.
type Types struct {
	byName map[string]Type
}

// NewTypes registers the built-in types plus the custom types from config.
// Custom type names are sanitized; names that sanitize to nothing are skipped.
func NewTypes(custom []config.ContentType) *Types {
	t := &Types{byName: map[string]Type{
		"post": {Name: "post", Label: "Posts", Public: true},
		"page": {Name: "page", Label: "Pages", Public: true},
	}}

	for _, ct := range custom {
		name := autofeatured.SanitizeKey(ct.Name)
		if name == "" {
			continue
		}

		label := ct.Label
		if label == "" {
			label = name
		}

		t.byName[name] = Type{Name: name, Label: label, Public: ct.Public}
	}

	return t
}

// Get returns the type called name.
func (t *Types) Get(name string) (Type, bool) {
	ct, ok := t.byName[name]

	return ct, ok
}

// All returns every registered type sorted by name.
func (t *Types) All() []Type {
	out := make([]Type, 0, len(t.byName))
	for _, ct := range t.byName {
		out = append(out, ct)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Public returns the public types sorted by name.
func (t *Types) Public() []Type {
	var out []Type

	for _, ct := range t.All() {
		if ct.Public {
			out = append(out, ct)
		}
	}

	return out
}
