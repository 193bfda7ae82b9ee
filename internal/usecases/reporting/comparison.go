package reporting

import (
	"sort"

	"github.com/vfg2006/capi-impact-api/internal/domain"
)

// O frontend exibe um top-N limitado para as dimensões de performance; as
// demais dimensões saem completas.
const (
	maxCampaignRows = 20
	maxAdSetRows    = 20
	maxAdRows       = 15
)

// periodAggregates reúne os PeriodStats de um período, um por conjunto de
// dados buscado: o básico no nível de anúncio, os níveis secundários e cada
// breakdown
type periodAggregates struct {
	base       *domain.PeriodStats
	campaigns  *domain.PeriodStats
	adSets     *domain.PeriodStats
	placements *domain.PeriodStats
	ageGender  *domain.PeriodStats
	countries  *domain.PeriodStats
	devices    *domain.PeriodStats
}

// buildComparison junta os agregados dos dois períodos no relatório final.
// Cada dimensão é um full outer join pela chave natural do grupo: chave
// presente em qualquer um dos períodos aparece exatamente uma vez, com o lado
// ausente zerado.
func buildComparison(pre, post *periodAggregates, degraded []string) *domain.ComparisonReport {
	preMetrics := deriveMetrics(pre.base)
	postMetrics := deriveMetrics(post.base)

	metaACR := 0.0
	if post.base.Conversions > 0 && post.base.Clicks > 0 {
		metaACR = float64(post.base.Conversions) / float64(post.base.Clicks) * 100
	}

	return &domain.ComparisonReport{
		SummaryTotals: domain.SummaryTotals{
			PreSpend:            pre.base.Spend,
			PostSpend:           post.base.Spend,
			PreConversions:      pre.base.Conversions,
			PostConversions:     post.base.Conversions,
			PreConversionValue:  pre.base.ConversionValue,
			PostConversionValue: post.base.ConversionValue,
			PreImpressions:      pre.base.Impressions,
			PostImpressions:     post.base.Impressions,
			PreClicks:           pre.base.Clicks,
			PostClicks:          post.base.Clicks,
			MetaACR:             metaACR,
		},
		Overview: domain.Overview{
			PreSpend:              pre.base.Spend,
			PostSpend:             post.base.Spend,
			PreImpressions:        pre.base.Impressions,
			PostImpressions:       post.base.Impressions,
			PreClicks:             pre.base.Clicks,
			PostClicks:            post.base.Clicks,
			PreConversions:        pre.base.Conversions,
			PostConversions:       post.base.Conversions,
			PreCtr:                preMetrics.CTR,
			PostCtr:               postMetrics.CTR,
			PreCpc:                preMetrics.CPC,
			PostCpc:               postMetrics.CPC,
			PreCpm:                preMetrics.CPM,
			PostCpm:               postMetrics.CPM,
			PreRoas:               preMetrics.ROAS,
			PostRoas:              postMetrics.ROAS,
			PreCostPerConversion:  preMetrics.CostPerConversion,
			PostCostPerConversion: postMetrics.CostPerConversion,
			PreConversionRate:     preMetrics.ConversionRate,
			PostConversionRate:    postMetrics.ConversionRate,
		},
		Performance: domain.Performance{
			Campaigns: joinNamed(pre.campaigns.Campaigns, post.campaigns.Campaigns, maxCampaignRows),
			AdSets:    joinNamed(pre.adSets.AdSets, post.adSets.AdSets, maxAdSetRows),
			TopAds:    joinNamed(pre.base.Ads, post.base.Ads, maxAdRows),
		},
		Audience: domain.Audience{
			AgeGender: joinAgeGender(pre.ageGender.AgeGender, post.ageGender.AgeGender),
			Interests: []domain.NamedComparison{},
		},
		Placements: joinPlacements(pre.placements.Placements, post.placements.Placements),
		Geographic: joinCountries(pre.countries.Countries, post.countries.Countries),
		Devices:    joinDevices(pre.devices.Devices, post.devices.Devices),
		TimeAnalysis: domain.TimeAnalysis{
			Hourly: []domain.NamedComparison{},
			Daily:  []domain.NamedComparison{},
		},
		DegradedDimensions: degraded,
	}
}

var zeroGroup = &domain.GroupStat{}

// joinKeys devolve a união ordenada das chaves dos dois lados
func joinKeys(pre, post map[string]*domain.GroupStat) []string {
	seen := make(map[string]bool, len(pre)+len(post))
	keys := make([]string, 0, len(pre)+len(post))

	for key := range pre {
		seen[key] = true
		keys = append(keys, key)
	}
	for key := range post {
		if !seen[key] {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)
	return keys
}

func groupOrZero(m map[string]*domain.GroupStat, key string) *domain.GroupStat {
	if group, ok := m[key]; ok {
		return group
	}
	return zeroGroup
}

// sortBySpend ordena por (preSpend + postSpend) decrescente, a mesma ordem
// que o frontend usa para o top-N
func sortBySpend[T any](rows []T, spend func(T) float64) {
	sort.SliceStable(rows, func(i, j int) bool {
		return spend(rows[i]) > spend(rows[j])
	})
}

func joinNamed(pre, post map[string]*domain.GroupStat, limit int) []domain.NamedComparison {
	rows := make([]domain.NamedComparison, 0, len(pre)+len(post))

	for _, key := range joinKeys(pre, post) {
		preGroup := groupOrZero(pre, key)
		postGroup := groupOrZero(post, key)

		preRoas := 0.0
		if preGroup.Spend > 0 {
			preRoas = preGroup.Value / preGroup.Spend
		}

		postRoas := 0.0
		if postGroup.Spend > 0 {
			postRoas = postGroup.Value / postGroup.Spend
		}

		rows = append(rows, domain.NamedComparison{
			Name:            key,
			PreSpend:        preGroup.Spend,
			PostSpend:       postGroup.Spend,
			PreConversions:  preGroup.Conversions,
			PostConversions: postGroup.Conversions,
			PreRoas:         preRoas,
			PostRoas:        postRoas,
		})
	}

	sortBySpend(rows, func(r domain.NamedComparison) float64 { return r.PreSpend + r.PostSpend })

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	return rows
}

func joinPlacements(pre, post map[string]*domain.GroupStat) []domain.PlacementComparison {
	rows := make([]domain.PlacementComparison, 0, len(pre)+len(post))

	for _, key := range joinKeys(pre, post) {
		preGroup := groupOrZero(pre, key)
		postGroup := groupOrZero(post, key)

		rows = append(rows, domain.PlacementComparison{
			Name:            key,
			PreSpend:        preGroup.Spend,
			PostSpend:       postGroup.Spend,
			PreImpressions:  preGroup.Impressions,
			PostImpressions: postGroup.Impressions,
			PreConversions:  preGroup.Conversions,
			PostConversions: postGroup.Conversions,
		})
	}

	sortBySpend(rows, func(r domain.PlacementComparison) float64 { return r.PreSpend + r.PostSpend })
	return rows
}

func joinAgeGender(pre, post map[string]*domain.GroupStat) []domain.AgeGenderComparison {
	rows := make([]domain.AgeGenderComparison, 0, len(pre)+len(post))

	for _, key := range joinKeys(pre, post) {
		preGroup := groupOrZero(pre, key)
		postGroup := groupOrZero(post, key)

		age, gender := preGroup.Age, preGroup.Gender
		if age == "" && gender == "" {
			age, gender = postGroup.Age, postGroup.Gender
		}

		rows = append(rows, domain.AgeGenderComparison{
			Age:             age,
			Gender:          gender,
			PreSpend:        preGroup.Spend,
			PostSpend:       postGroup.Spend,
			PreConversions:  preGroup.Conversions,
			PostConversions: postGroup.Conversions,
		})
	}

	sortBySpend(rows, func(r domain.AgeGenderComparison) float64 { return r.PreSpend + r.PostSpend })
	return rows
}

func joinCountries(pre, post map[string]*domain.GroupStat) []domain.CountryComparison {
	rows := make([]domain.CountryComparison, 0, len(pre)+len(post))

	for _, key := range joinKeys(pre, post) {
		preGroup := groupOrZero(pre, key)
		postGroup := groupOrZero(post, key)

		region := preGroup.Region
		if region == "" {
			region = postGroup.Region
		}

		rows = append(rows, domain.CountryComparison{
			Country:         key,
			Region:          region,
			PreSpend:        preGroup.Spend,
			PostSpend:       postGroup.Spend,
			PreConversions:  preGroup.Conversions,
			PostConversions: postGroup.Conversions,
		})
	}

	sortBySpend(rows, func(r domain.CountryComparison) float64 { return r.PreSpend + r.PostSpend })
	return rows
}

func joinDevices(pre, post map[string]*domain.GroupStat) []domain.DeviceComparison {
	rows := make([]domain.DeviceComparison, 0, len(pre)+len(post))

	for _, key := range joinKeys(pre, post) {
		preGroup := groupOrZero(pre, key)
		postGroup := groupOrZero(post, key)

		rows = append(rows, domain.DeviceComparison{
			Platform:        key,
			PreSpend:        preGroup.Spend,
			PostSpend:       postGroup.Spend,
			PreConversions:  preGroup.Conversions,
			PostConversions: postGroup.Conversions,
		})
	}

	sortBySpend(rows, func(r domain.DeviceComparison) float64 { return r.PreSpend + r.PostSpend })
	return rows
}
