package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/capi-impact-api/internal/domain"
)

func TestDeriveMetrics(t *testing.T) {
	t.Run("calcula todas as razões", func(t *testing.T) {
		stats := &domain.PeriodStats{
			Spend:           200.0,
			Impressions:     10000,
			Clicks:          500,
			Conversions:     50,
			ConversionValue: 800.0,
		}

		metrics := deriveMetrics(stats)

		assert.InDelta(t, 5.0, metrics.CTR, 0.001)
		assert.InDelta(t, 0.4, metrics.CPC, 0.001)
		assert.InDelta(t, 20.0, metrics.CPM, 0.001)
		assert.InDelta(t, 4.0, metrics.ROAS, 0.001)
		assert.InDelta(t, 4.0, metrics.CostPerConversion, 0.001)
		assert.InDelta(t, 10.0, metrics.ConversionRate, 0.001)
	})

	t.Run("sem impressões zera CTR e CPM", func(t *testing.T) {
		metrics := deriveMetrics(&domain.PeriodStats{Spend: 100.0, Clicks: 10})

		assert.Zero(t, metrics.CTR)
		assert.Zero(t, metrics.CPM)
	})

	t.Run("sem cliques zera CPC e taxa de conversão", func(t *testing.T) {
		metrics := deriveMetrics(&domain.PeriodStats{Spend: 100.0, Impressions: 1000, Conversions: 5})

		assert.Zero(t, metrics.CPC)
		assert.Zero(t, metrics.ConversionRate)
	})

	t.Run("sem investimento zera ROAS", func(t *testing.T) {
		metrics := deriveMetrics(&domain.PeriodStats{ConversionValue: 500.0})

		assert.Zero(t, metrics.ROAS)
	})

	t.Run("sem conversões zera custo por conversão", func(t *testing.T) {
		metrics := deriveMetrics(&domain.PeriodStats{Spend: 100.0})

		assert.Zero(t, metrics.CostPerConversion)
	})

	t.Run("período totalmente vazio produz métricas zeradas", func(t *testing.T) {
		metrics := deriveMetrics(&domain.PeriodStats{})

		assert.Equal(t, domain.DerivedMetrics{}, metrics)
	})
}
