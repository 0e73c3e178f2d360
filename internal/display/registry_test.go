package display

import (
	"testing"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ImportsEqualExports(t *testing.T) {
	r := NewRegistry(nil)

	assert.Equal(t, r.Imports(), r.Exports())
	assert.Len(t, r.Imports(), 21)
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	r := NewRegistry(nil)

	imports := r.Imports()
	imports[0].Name = "changed"
	assert.Equal(t, "common", r.Imports()[0].Name)
}

func TestRegistry_CoversEveryConcern(t *testing.T) {
	r := NewRegistry(nil)

	tests := []struct {
		category Category
		names    []string
	}{
		{CategoryFramework, []string{"common", "bootstrap", "icons"}},
		{CategoryAlerting, []string{"alert", "alert-error"}},
		{CategoryTranslation, []string{"translate", "find-language-from-key", "translate-module"}},
		{CategoryTabular, []string{"table"}},
		{CategoryCharting, []string{"chart"}},
		{CategoryTagging, []string{"tag"}},
		{CategoryAvatar, []string{"avatar", "avatar-group"}},
		{CategoryForm, []string{"button", "checkbox", "input-text", "password", "forms", "ripple", "card", "toast"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			var got []string
			for _, p := range r.ByCategory(tt.category) {
				got = append(got, p.Name)
			}
			assert.Equal(t, tt.names, got)
			for _, name := range tt.names {
				assert.True(t, r.Has(name))
			}
		})
	}

	assert.False(t, r.Has("router"))
}

func TestRegistry_Messages(t *testing.T) {
	notifier := testutil.NewMockNotifier()
	r := NewRegistry(notifier)

	require.Same(t, notifier, r.Messages())

	r.Messages().Notify("auth0|a", domain.Message{Severity: domain.SeverityInfo, Summary: "Hola"})
	assert.Len(t, notifier.Messages(), 1)
}
