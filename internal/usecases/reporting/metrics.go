package reporting

import "github.com/vfg2006/capi-impact-api/internal/domain"

// deriveMetrics calcula as métricas de razão de um período. Todo denominador
// zero resulta em 0, nunca em divisão por zero ou valor não finito.
func deriveMetrics(stats *domain.PeriodStats) domain.DerivedMetrics {
	metrics := domain.DerivedMetrics{}

	if stats.Impressions > 0 {
		metrics.CTR = float64(stats.Clicks) / float64(stats.Impressions) * 100
		metrics.CPM = stats.Spend / float64(stats.Impressions) * 1000
	}

	if stats.Clicks > 0 {
		metrics.CPC = stats.Spend / float64(stats.Clicks)
		metrics.ConversionRate = float64(stats.Conversions) / float64(stats.Clicks) * 100
	}

	if stats.Spend > 0 {
		metrics.ROAS = stats.ConversionValue / stats.Spend
	}

	if stats.Conversions > 0 {
		metrics.CostPerConversion = stats.Spend / float64(stats.Conversions)
	}

	return metrics
}
