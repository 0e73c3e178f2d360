// Package display describes the widget primitives the dashboard's display layer is built from.
package display

import (
	"github.com/dafibh/fortuna/caja-backend/internal/domain"
)

// Category groups primitives by the concern they cover
type Category string

const (
	CategoryFramework   Category = "framework"
	CategoryAlerting    Category = "alerting"
	CategoryTranslation Category = "translation"
	CategoryTabular     Category = "tabular"
	CategoryCharting    Category = "charting"
	CategoryTagging     Category = "tagging"
	CategoryAvatar      Category = "avatar"
	CategoryForm        Category = "form"
)

// Kind is what a primitive contributes to a view
type Kind string

const (
	KindModule    Kind = "module"
	KindComponent Kind = "component"
	KindDirective Kind = "directive"
	KindPipe      Kind = "pipe"
)

// Primitive is one widget building block
type Primitive struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Kind     Kind     `json:"kind"`
}

var primitives = []Primitive{
	{Name: "common", Category: CategoryFramework, Kind: KindModule},
	{Name: "bootstrap", Category: CategoryFramework, Kind: KindModule},
	{Name: "icons", Category: CategoryFramework, Kind: KindModule},

	{Name: "alert", Category: CategoryAlerting, Kind: KindComponent},
	{Name: "alert-error", Category: CategoryAlerting, Kind: KindComponent},

	{Name: "translate", Category: CategoryTranslation, Kind: KindDirective},
	{Name: "find-language-from-key", Category: CategoryTranslation, Kind: KindPipe},
	{Name: "translate-module", Category: CategoryTranslation, Kind: KindModule},

	{Name: "table", Category: CategoryTabular, Kind: KindModule},
	{Name: "chart", Category: CategoryCharting, Kind: KindModule},
	{Name: "tag", Category: CategoryTagging, Kind: KindModule},

	{Name: "avatar", Category: CategoryAvatar, Kind: KindModule},
	{Name: "avatar-group", Category: CategoryAvatar, Kind: KindModule},

	{Name: "button", Category: CategoryForm, Kind: KindModule},
	{Name: "checkbox", Category: CategoryForm, Kind: KindModule},
	{Name: "input-text", Category: CategoryForm, Kind: KindModule},
	{Name: "password", Category: CategoryForm, Kind: KindModule},
	{Name: "forms", Category: CategoryForm, Kind: KindModule},
	{Name: "ripple", Category: CategoryForm, Kind: KindModule},
	{Name: "card", Category: CategoryForm, Kind: KindModule},
	{Name: "toast", Category: CategoryForm, Kind: KindModule},
}

// Registry is the shared manifest of display primitives. Whatever a view
// imports through it is re-exported unchanged, so the two sets are identical.
// It also owns the single message dispatcher every view notifies through.
type Registry struct {
	messages domain.Notifier
}

// NewRegistry creates the registry around the application's message dispatcher
func NewRegistry(messages domain.Notifier) *Registry {
	return &Registry{messages: messages}
}

// Imports returns the primitives made available to views
func (r *Registry) Imports() []Primitive {
	return append([]Primitive(nil), primitives...)
}

// Exports returns the primitives re-exported to consumers
func (r *Registry) Exports() []Primitive {
	return r.Imports()
}

// Messages returns the message dispatcher
func (r *Registry) Messages() domain.Notifier {
	return r.messages
}

// ByCategory returns the primitives of one category in manifest order
func (r *Registry) ByCategory(category Category) []Primitive {
	var out []Primitive
	for _, p := range primitives {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Has reports whether a primitive with the given name is registered
func (r *Registry) Has(name string) bool {
	for _, p := range primitives {
		if p.Name == name {
			return true
		}
	}
	return false
}
