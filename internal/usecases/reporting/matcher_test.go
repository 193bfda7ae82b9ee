package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventMatcher(t *testing.T) {
	matcher := NewEventMatcher(nil)

	tests := []struct {
		name       string
		actionType string
		target     string
		want       bool
	}{
		{
			name:       "igualdade exata",
			actionType: "purchase",
			target:     "purchase",
			want:       true,
		},
		{
			name:       "igualdade ignora maiúsculas",
			actionType: "Purchase",
			target:     "purchase",
			want:       true,
		},
		{
			name:       "substring casa variante prefixada",
			actionType: "omni_purchase",
			target:     "purchase",
			want:       true,
		},
		{
			name:       "alias do pixel casa mesmo sem substring literal",
			actionType: "offsite_conversion.fb_pixel_purchase",
			target:     "purchase",
			want:       true,
		},
		{
			name:       "alias de lead",
			actionType: "offsite_conversion.fb_pixel_lead",
			target:     "lead",
			want:       true,
		},
		{
			name:       "evento diferente não casa",
			actionType: "link_click",
			target:     "purchase",
			want:       false,
		},
		{
			name:       "alvo mais longo que o action_type não casa",
			actionType: "lead",
			target:     "complete_registration",
			want:       false,
		},
		{
			name:       "alias só vale para o evento alvo correspondente",
			actionType: "offsite_conversion.fb_pixel_add_to_cart",
			target:     "view_content",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.Matches(tt.actionType, tt.target))
		})
	}
}

func TestEventMatcherCustomAliases(t *testing.T) {
	matcher := NewEventMatcher(map[string][]string{
		"signup": {"custom.signup_event"},
	})

	assert.True(t, matcher.Matches("custom.signup_event", "signup"))

	// Tabela customizada substitui os aliases padrão
	assert.False(t, matcher.Matches("offsite_conversion.fb_pixel_lead", "lead_form"))
}
