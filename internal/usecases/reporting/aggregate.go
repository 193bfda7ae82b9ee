package reporting

import (
	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/capi-impact-api/internal/domain"
	"github.com/vfg2006/capi-impact-api/pkg/utils"
)

// track indica quais campos uma dimensão acumula
type track uint8

const (
	trackSpend track = 1 << iota
	trackImpressions
	trackClicks
	trackConversions
	trackValue

	trackAll = trackSpend | trackImpressions | trackClicks | trackConversions | trackValue
)

// dimension parametriza o agrupamento genérico: de onde sai a chave do grupo,
// quais campos somar e em qual mapa do PeriodStats acumular. As sete dimensões
// compartilham a mesma rotina de acumulação em vez de repetir o bloco de
// mapa por dimensão.
type dimension struct {
	tracks   track
	extract  func(row *metadomain.InsightRow) (string, bool)
	decorate func(row *metadomain.InsightRow, group *domain.GroupStat)
	sink     func(stats *domain.PeriodStats) map[string]*domain.GroupStat
}

var dimensions = []dimension{
	{
		tracks: trackAll,
		extract: func(row *metadomain.InsightRow) (string, bool) {
			return row.CampaignName, row.CampaignName != ""
		},
		sink: func(stats *domain.PeriodStats) map[string]*domain.GroupStat { return stats.Campaigns },
	},
	{
		tracks: trackAll,
		extract: func(row *metadomain.InsightRow) (string, bool) {
			return row.AdsetName, row.AdsetName != ""
		},
		sink: func(stats *domain.PeriodStats) map[string]*domain.GroupStat { return stats.AdSets },
	},
	{
		tracks: trackAll,
		extract: func(row *metadomain.InsightRow) (string, bool) {
			return row.AdName, row.AdName != ""
		},
		sink: func(stats *domain.PeriodStats) map[string]*domain.GroupStat { return stats.Ads },
	},
	{
		tracks: trackSpend | trackImpressions | trackClicks | trackConversions,
		extract: func(row *metadomain.InsightRow) (string, bool) {
			return row.PublisherPlatform, row.PublisherPlatform != ""
		},
		sink: func(stats *domain.PeriodStats) map[string]*domain.GroupStat { return stats.Placements },
	},
	{
		tracks: trackSpend | trackConversions,
		extract: func(row *metadomain.InsightRow) (string, bool) {
			if row.Age == "" || row.Gender == "" {
				return "", false
			}
			return row.Age + "-" + row.Gender, true
		},
		decorate: func(row *metadomain.InsightRow, group *domain.GroupStat) {
			group.Age = row.Age
			group.Gender = row.Gender
		},
		sink: func(stats *domain.PeriodStats) map[string]*domain.GroupStat { return stats.AgeGender },
	},
	{
		tracks: trackSpend | trackConversions,
		extract: func(row *metadomain.InsightRow) (string, bool) {
			return row.Country, row.Country != ""
		},
		decorate: func(row *metadomain.InsightRow, group *domain.GroupStat) {
			group.Region = row.Region
		},
		sink: func(stats *domain.PeriodStats) map[string]*domain.GroupStat { return stats.Countries },
	},
	{
		tracks: trackSpend | trackConversions,
		extract: func(row *metadomain.InsightRow) (string, bool) {
			return row.DevicePlatform, row.DevicePlatform != ""
		},
		sink: func(stats *domain.PeriodStats) map[string]*domain.GroupStat { return stats.Devices },
	},
}

// aggregatePeriod consome os registros brutos de um período e produz os
// totais escalares mais os acumuladores por dimensão. Campos numéricos
// malformados ou ausentes valem 0 e nunca interrompem a agregação. Os arrays
// "actions" e "action_values" são percorridos de forma independente: eles
// podem discordar em quais entradas existem.
func aggregatePeriod(rows []metadomain.InsightRow, targetEvent string, matcher *EventMatcher) *domain.PeriodStats {
	stats := domain.NewPeriodStats()

	for i := range rows {
		row := &rows[i]

		spend := utils.ParseFloatOrZero(row.Spend)
		impressions := utils.ParseIntOrZero(row.Impressions)
		clicks := utils.ParseIntOrZero(row.Clicks)

		conversions := 0
		for _, action := range row.Actions {
			if matcher.Matches(action.ActionType, targetEvent) {
				conversions += utils.ParseIntOrZero(action.Value)
			}
		}

		value := 0.0
		for _, actionValue := range row.ActionValues {
			if matcher.Matches(actionValue.ActionType, targetEvent) {
				value += utils.ParseFloatOrZero(actionValue.Value)
			}
		}

		stats.Spend += spend
		stats.Impressions += impressions
		stats.Clicks += clicks
		stats.Conversions += conversions
		stats.ConversionValue += value

		for _, dim := range dimensions {
			key, ok := dim.extract(row)
			if !ok {
				// Registro sem o campo da dimensão é ignorado só nela
				continue
			}

			sink := dim.sink(stats)
			group, exists := sink[key]
			if !exists {
				group = &domain.GroupStat{Key: key}
				if dim.decorate != nil {
					dim.decorate(row, group)
				}
				sink[key] = group
			}

			if dim.tracks&trackSpend != 0 {
				group.Spend += spend
			}
			if dim.tracks&trackImpressions != 0 {
				group.Impressions += impressions
			}
			if dim.tracks&trackClicks != 0 {
				group.Clicks += clicks
			}
			if dim.tracks&trackConversions != 0 {
				group.Conversions += conversions
			}
			if dim.tracks&trackValue != 0 {
				group.Value += value
			}
		}
	}

	return stats
}
