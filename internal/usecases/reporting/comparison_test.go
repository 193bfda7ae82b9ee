package reporting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/capi-impact-api/internal/domain"
)

func emptyAggregates() *periodAggregates {
	return &periodAggregates{
		base:       domain.NewPeriodStats(),
		campaigns:  domain.NewPeriodStats(),
		adSets:     domain.NewPeriodStats(),
		placements: domain.NewPeriodStats(),
		ageGender:  domain.NewPeriodStats(),
		countries:  domain.NewPeriodStats(),
		devices:    domain.NewPeriodStats(),
	}
}

func TestBuildComparison(t *testing.T) {
	t.Run("totais e métricas dos dois períodos", func(t *testing.T) {
		pre := emptyAggregates()
		pre.base.Spend = 100.0
		pre.base.Impressions = 10000
		pre.base.Clicks = 200
		pre.base.Conversions = 10
		pre.base.ConversionValue = 400.0

		post := emptyAggregates()
		post.base.Spend = 120.0
		post.base.Impressions = 12000
		post.base.Clicks = 300
		post.base.Conversions = 30
		post.base.ConversionValue = 900.0

		report := buildComparison(pre, post, nil)

		assert.InDelta(t, 100.0, report.SummaryTotals.PreSpend, 0.001)
		assert.InDelta(t, 120.0, report.SummaryTotals.PostSpend, 0.001)
		assert.Equal(t, 10, report.SummaryTotals.PreConversions)
		assert.Equal(t, 30, report.SummaryTotals.PostConversions)
		// ACR do período pós: 30 conversões em 300 cliques
		assert.InDelta(t, 10.0, report.SummaryTotals.MetaACR, 0.001)

		assert.InDelta(t, 2.0, report.Overview.PreCtr, 0.001)
		assert.InDelta(t, 2.5, report.Overview.PostCtr, 0.001)
		assert.InDelta(t, 4.0, report.Overview.PreRoas, 0.001)
		assert.InDelta(t, 7.5, report.Overview.PostRoas, 0.001)
	})

	t.Run("ACR zera quando o período pós não tem cliques ou conversões", func(t *testing.T) {
		pre := emptyAggregates()
		post := emptyAggregates()
		post.base.Conversions = 5

		report := buildComparison(pre, post, nil)

		assert.Zero(t, report.SummaryTotals.MetaACR)
	})

	t.Run("full outer join zera o lado ausente", func(t *testing.T) {
		pre := emptyAggregates()
		pre.campaigns.Campaigns["Só no pré"] = &domain.GroupStat{
			Key: "Só no pré", Spend: 50.0, Conversions: 5, Value: 100.0,
		}

		post := emptyAggregates()
		post.campaigns.Campaigns["Só no pós"] = &domain.GroupStat{
			Key: "Só no pós", Spend: 80.0, Conversions: 8, Value: 320.0,
		}

		report := buildComparison(pre, post, nil)

		require.Len(t, report.Performance.Campaigns, 2)

		byName := make(map[string]domain.NamedComparison)
		for _, row := range report.Performance.Campaigns {
			byName[row.Name] = row
		}

		onlyPre := byName["Só no pré"]
		assert.InDelta(t, 50.0, onlyPre.PreSpend, 0.001)
		assert.Zero(t, onlyPre.PostSpend)
		assert.Zero(t, onlyPre.PostConversions)
		assert.InDelta(t, 2.0, onlyPre.PreRoas, 0.001)
		assert.Zero(t, onlyPre.PostRoas)

		onlyPost := byName["Só no pós"]
		assert.Zero(t, onlyPost.PreSpend)
		assert.InDelta(t, 80.0, onlyPost.PostSpend, 0.001)
		assert.InDelta(t, 4.0, onlyPost.PostRoas, 0.001)
	})

	t.Run("ordena por investimento combinado e corta no limite", func(t *testing.T) {
		pre := emptyAggregates()
		post := emptyAggregates()
		for i := 0; i < maxAdRows+10; i++ {
			name := fmt.Sprintf("Anúncio %02d", i)
			pre.base.Ads[name] = &domain.GroupStat{Key: name, Spend: float64(i)}
			post.base.Ads[name] = &domain.GroupStat{Key: name, Spend: float64(i)}
		}

		report := buildComparison(pre, post, nil)

		require.Len(t, report.Performance.TopAds, maxAdRows)
		for i := 1; i < len(report.Performance.TopAds); i++ {
			previous := report.Performance.TopAds[i-1]
			current := report.Performance.TopAds[i]
			assert.GreaterOrEqual(t,
				previous.PreSpend+previous.PostSpend,
				current.PreSpend+current.PostSpend,
			)
		}
	})

	t.Run("idade e gênero vêm do pré com fallback para o pós", func(t *testing.T) {
		pre := emptyAggregates()
		pre.ageGender.AgeGender["18-24-male"] = &domain.GroupStat{
			Key: "18-24-male", Age: "18-24", Gender: "male", Spend: 10.0,
		}

		post := emptyAggregates()
		post.ageGender.AgeGender["25-34-female"] = &domain.GroupStat{
			Key: "25-34-female", Age: "25-34", Gender: "female", Spend: 20.0,
		}

		report := buildComparison(pre, post, nil)

		require.Len(t, report.Audience.AgeGender, 2)

		// Maior investimento combinado primeiro
		assert.Equal(t, "25-34", report.Audience.AgeGender[0].Age)
		assert.Equal(t, "female", report.Audience.AgeGender[0].Gender)
		assert.Equal(t, "18-24", report.Audience.AgeGender[1].Age)
		assert.Equal(t, "male", report.Audience.AgeGender[1].Gender)
	})

	t.Run("região usa o pré com fallback para o pós", func(t *testing.T) {
		pre := emptyAggregates()
		pre.countries.Countries["BR"] = &domain.GroupStat{Key: "BR", Spend: 30.0}

		post := emptyAggregates()
		post.countries.Countries["BR"] = &domain.GroupStat{Key: "BR", Region: "Minas Gerais", Spend: 40.0}

		report := buildComparison(pre, post, nil)

		require.Len(t, report.Geographic, 1)
		assert.Equal(t, "BR", report.Geographic[0].Country)
		assert.Equal(t, "Minas Gerais", report.Geographic[0].Region)
		assert.InDelta(t, 30.0, report.Geographic[0].PreSpend, 0.001)
		assert.InDelta(t, 40.0, report.Geographic[0].PostSpend, 0.001)
	})

	t.Run("dimensões degradadas são repassadas ao relatório", func(t *testing.T) {
		report := buildComparison(emptyAggregates(), emptyAggregates(), []string{"countries", "devices"})

		assert.Equal(t, []string{"countries", "devices"}, report.DegradedDimensions)
	})

	t.Run("seções fixas sempre presentes e vazias", func(t *testing.T) {
		report := buildComparison(emptyAggregates(), emptyAggregates(), nil)

		assert.NotNil(t, report.Audience.Interests)
		assert.Empty(t, report.Audience.Interests)
		assert.NotNil(t, report.TimeAnalysis.Hourly)
		assert.Empty(t, report.TimeAnalysis.Hourly)
		assert.NotNil(t, report.TimeAnalysis.Daily)
		assert.Empty(t, report.TimeAnalysis.Daily)
	})
}
