package reporting

import "strings"

// A API emite o mesmo evento lógico com nomes diferentes: o nome genérico
// ("purchase") e a variante prefixada do pixel
// ("offsite_conversion.fb_pixel_purchase"). A tabela de aliases mapeia o
// evento alvo para as variantes literais conhecidas, como dado e não como
// código, para que novos aliases não exijam mudança de lógica.
var DefaultPixelAliases = map[string][]string{
	"purchase":              {"offsite_conversion.fb_pixel_purchase"},
	"lead":                  {"offsite_conversion.fb_pixel_lead"},
	"complete_registration": {"offsite_conversion.fb_pixel_complete_registration"},
	"add_to_cart":           {"offsite_conversion.fb_pixel_add_to_cart"},
	"initiate_checkout":     {"offsite_conversion.fb_pixel_initiate_checkout"},
	"view_content":          {"offsite_conversion.fb_pixel_view_content"},
}

// EventMatcher decide se um action_type bruto conta para o evento alvo
// informado pelo usuário
type EventMatcher struct {
	aliases map[string][]string
}

func NewEventMatcher(aliases map[string][]string) *EventMatcher {
	if aliases == nil {
		aliases = DefaultPixelAliases
	}
	return &EventMatcher{aliases: aliases}
}

// Matches compara os dois nomes sem diferenciar maiúsculas, nesta ordem:
// igualdade exata, substring (o action_type contém o evento alvo) e por fim a
// tabela de aliases do pixel. A correspondência por substring pode casar mais
// do que o esperado para nomes de evento muito curtos.
func (m *EventMatcher) Matches(actionType, targetEvent string) bool {
	action := strings.ToLower(actionType)
	target := strings.ToLower(targetEvent)

	if action == target {
		return true
	}

	if strings.Contains(action, target) {
		return true
	}

	for _, alias := range m.aliases[target] {
		if action == alias {
			return true
		}
	}

	return false
}
