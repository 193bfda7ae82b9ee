package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
)

func TestAggregatePeriod(t *testing.T) {
	matcher := NewEventMatcher(nil)

	t.Run("totais escalares somam todas as linhas", func(t *testing.T) {
		rows := []metadomain.InsightRow{
			{
				Spend:       "100.50",
				Impressions: "1000",
				Clicks:      "50",
				Actions: []metadomain.Action{
					{ActionType: "purchase", Value: "3"},
					{ActionType: "link_click", Value: "40"},
				},
				ActionValues: []metadomain.Action{
					{ActionType: "purchase", Value: "300.00"},
				},
			},
			{
				Spend:       "49.50",
				Impressions: "500",
				Clicks:      "25",
				Actions: []metadomain.Action{
					{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "2"},
				},
			},
		}

		stats := aggregatePeriod(rows, "purchase", matcher)

		assert.InDelta(t, 150.0, stats.Spend, 0.001)
		assert.Equal(t, 1500, stats.Impressions)
		assert.Equal(t, 75, stats.Clicks)
		assert.Equal(t, 5, stats.Conversions)
		assert.InDelta(t, 300.0, stats.ConversionValue, 0.001)
	})

	t.Run("campos malformados valem zero sem interromper", func(t *testing.T) {
		rows := []metadomain.InsightRow{
			{
				Spend:       "not-a-number",
				Impressions: "",
				Clicks:      "10",
				Actions: []metadomain.Action{
					{ActionType: "purchase", Value: "abc"},
				},
			},
			{
				Spend:       "20.00",
				Impressions: "200",
				Clicks:      "5",
				Actions: []metadomain.Action{
					{ActionType: "purchase", Value: "1"},
				},
			},
		}

		stats := aggregatePeriod(rows, "purchase", matcher)

		assert.InDelta(t, 20.0, stats.Spend, 0.001)
		assert.Equal(t, 200, stats.Impressions)
		assert.Equal(t, 15, stats.Clicks)
		assert.Equal(t, 1, stats.Conversions)
	})

	t.Run("actions e action_values são percorridos de forma independente", func(t *testing.T) {
		rows := []metadomain.InsightRow{
			{
				Spend: "10.00",
				// Conversão só aparece em action_values, sem entrada em actions
				ActionValues: []metadomain.Action{
					{ActionType: "purchase", Value: "99.90"},
				},
			},
		}

		stats := aggregatePeriod(rows, "purchase", matcher)

		assert.Equal(t, 0, stats.Conversions)
		assert.InDelta(t, 99.90, stats.ConversionValue, 0.001)
	})

	t.Run("dimensões acumulam pela chave e repetição soma", func(t *testing.T) {
		rows := []metadomain.InsightRow{
			{
				Spend:        "10.00",
				Impressions:  "100",
				Clicks:       "10",
				CampaignName: "Campanha A",
				AdsetName:    "Conjunto 1",
				AdName:       "Anúncio X",
				Actions:      []metadomain.Action{{ActionType: "purchase", Value: "1"}},
				ActionValues: []metadomain.Action{{ActionType: "purchase", Value: "50.00"}},
			},
			{
				Spend:        "15.00",
				Impressions:  "150",
				Clicks:       "20",
				CampaignName: "Campanha A",
				AdsetName:    "Conjunto 2",
				AdName:       "Anúncio Y",
				Actions:      []metadomain.Action{{ActionType: "purchase", Value: "2"}},
			},
		}

		stats := aggregatePeriod(rows, "purchase", matcher)

		require.Contains(t, stats.Campaigns, "Campanha A")
		campaign := stats.Campaigns["Campanha A"]
		assert.InDelta(t, 25.0, campaign.Spend, 0.001)
		assert.Equal(t, 250, campaign.Impressions)
		assert.Equal(t, 30, campaign.Clicks)
		assert.Equal(t, 3, campaign.Conversions)
		assert.InDelta(t, 50.0, campaign.Value, 0.001)

		assert.Len(t, stats.AdSets, 2)
		assert.Len(t, stats.Ads, 2)
	})

	t.Run("linha sem o campo da dimensão é ignorada só nela", func(t *testing.T) {
		rows := []metadomain.InsightRow{
			{
				Spend:        "30.00",
				CampaignName: "Campanha B",
				// Sem adset_name nem ad_name
			},
		}

		stats := aggregatePeriod(rows, "purchase", matcher)

		assert.InDelta(t, 30.0, stats.Spend, 0.001)
		assert.Len(t, stats.Campaigns, 1)
		assert.Empty(t, stats.AdSets)
		assert.Empty(t, stats.Ads)
	})

	t.Run("breakdown demográfico usa chave composta e guarda idade e gênero", func(t *testing.T) {
		rows := []metadomain.InsightRow{
			{
				Spend:   "12.00",
				Age:     "25-34",
				Gender:  "female",
				Actions: []metadomain.Action{{ActionType: "purchase", Value: "2"}},
			},
			{
				Spend:  "8.00",
				Age:    "25-34",
				Gender: "male",
			},
		}

		stats := aggregatePeriod(rows, "purchase", matcher)

		require.Contains(t, stats.AgeGender, "25-34-female")
		group := stats.AgeGender["25-34-female"]
		assert.Equal(t, "25-34", group.Age)
		assert.Equal(t, "female", group.Gender)
		assert.InDelta(t, 12.0, group.Spend, 0.001)
		assert.Equal(t, 2, group.Conversions)

		require.Contains(t, stats.AgeGender, "25-34-male")
	})

	t.Run("breakdown geográfico guarda a região", func(t *testing.T) {
		rows := []metadomain.InsightRow{
			{
				Spend:   "5.00",
				Country: "BR",
				Region:  "Sao Paulo",
			},
		}

		stats := aggregatePeriod(rows, "purchase", matcher)

		require.Contains(t, stats.Countries, "BR")
		assert.Equal(t, "Sao Paulo", stats.Countries["BR"].Region)
	})

	t.Run("conjunto vazio produz estatísticas zeradas", func(t *testing.T) {
		stats := aggregatePeriod(nil, "purchase", matcher)

		assert.Zero(t, stats.Spend)
		assert.Zero(t, stats.Conversions)
		assert.Empty(t, stats.Campaigns)
	})
}
