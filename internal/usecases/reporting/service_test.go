package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
	repomocks "github.com/vfg2006/capi-impact-api/infrastructure/repository/mocks"
	"github.com/vfg2006/capi-impact-api/internal/config"
	"github.com/vfg2006/capi-impact-api/internal/domain"
	"github.com/vfg2006/capi-impact-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Meta: config.Meta{
			PageLimit:        100,
			ChunkDays:        7,
			MaxPagesPerChunk: 5,
			FetchAgeGender:   false,
		},
	}
}

func testRanges(t *testing.T) (domain.DateRange, domain.DateRange) {
	t.Helper()

	preRange, err := domain.NewDateRange(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	postRange, err := domain.NewDateRange(
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	return preRange, postRange
}

func TestGenerateComparisonReport(t *testing.T) {
	preRows := []metadomain.InsightRow{
		{
			Spend:       "100.00",
			Impressions: "1000",
			Clicks:      "50",
			AdName:      "Anúncio A",
			Actions:     []metadomain.Action{{ActionType: "purchase", Value: "5"}},
		},
	}
	postRows := []metadomain.InsightRow{
		{
			Spend:       "150.00",
			Impressions: "2000",
			Clicks:      "100",
			AdName:      "Anúncio A",
			Actions:     []metadomain.Action{{ActionType: "purchase", Value: "20"}},
		},
	}

	t.Run("gera o relatório e persiste o snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		preRange, postRange := testRanges(t)

		fetcher := mocks.NewMockInsightsFetcher(ctrl)
		fetcher.EXPECT().
			FetchInsights("act_123", "token", gomock.Eq(preRange), gomock.Any(), gomock.Any()).
			Return(preRows, nil).
			Times(6)
		fetcher.EXPECT().
			FetchInsights("act_123", "token", gomock.Eq(postRange), gomock.Any(), gomock.Any()).
			Return(postRows, nil).
			Times(6)

		var saved *domain.ReportSnapshot
		snapshots := repomocks.NewMockReportSnapshotRepository(ctrl)
		snapshots.EXPECT().Save(gomock.Any()).DoAndReturn(func(s *domain.ReportSnapshot) error {
			saved = s
			return nil
		})

		service := NewService(testConfig(), fetcher, snapshots)

		snapshot, err := service.GenerateComparisonReport(ComparisonRequest{
			Token:     "token",
			AccountID: "act_123",
			EventName: "purchase",
			PreRange:  preRange,
			PostRange: postRange,
			UserID:    42,
		})
		require.NoError(t, err)
		require.NotNil(t, snapshot)

		assert.NotEmpty(t, snapshot.ID)
		assert.Equal(t, "act_123", snapshot.AccountID)
		assert.Equal(t, "purchase", snapshot.EventName)
		assert.Equal(t, 42, snapshot.CreatedBy)
		assert.False(t, snapshot.CreatedAt.IsZero())

		require.NotNil(t, snapshot.Report)
		assert.Equal(t, 5, snapshot.Report.SummaryTotals.PreConversions)
		assert.Equal(t, 20, snapshot.Report.SummaryTotals.PostConversions)
		assert.InDelta(t, 100.0, snapshot.Report.SummaryTotals.PreSpend, 0.001)
		assert.InDelta(t, 150.0, snapshot.Report.SummaryTotals.PostSpend, 0.001)
		assert.Empty(t, snapshot.Report.DegradedDimensions)

		assert.Same(t, snapshot, saved)
	})

	t.Run("falha na busca obrigatória derruba o relatório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		preRange, postRange := testRanges(t)

		fetcher := mocks.NewMockInsightsFetcher(ctrl)
		// Somente a tarefa básica usa nível "ad" sem breakdowns
		fetcher.EXPECT().
			FetchInsights("act_123", "token", gomock.Any(), "ad", gomock.Nil()).
			Return(nil, errors.New("Meta API error: 500 - internal")).
			Times(2)
		fetcher.EXPECT().
			FetchInsights("act_123", "token", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil).
			AnyTimes()

		service := NewService(testConfig(), fetcher, nil)

		snapshot, err := service.GenerateComparisonReport(ComparisonRequest{
			Token:     "token",
			AccountID: "act_123",
			EventName: "purchase",
			PreRange:  preRange,
			PostRange: postRange,
		})
		require.Error(t, err)
		assert.Nil(t, snapshot)
		assert.Contains(t, err.Error(), "erro ao buscar dados de anúncios")
	})

	t.Run("falha em busca opcional degrada a dimensão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		preRange, postRange := testRanges(t)

		fetcher := mocks.NewMockInsightsFetcher(ctrl)
		fetcher.EXPECT().
			FetchInsights("act_123", "token", gomock.Any(), "campaign", gomock.Any()).
			Return(nil, errors.New("Meta API error: 17 - rate limit")).
			Times(2)
		fetcher.EXPECT().
			FetchInsights("act_123", "token", gomock.Eq(preRange), gomock.Any(), gomock.Any()).
			Return(preRows, nil).
			AnyTimes()
		fetcher.EXPECT().
			FetchInsights("act_123", "token", gomock.Eq(postRange), gomock.Any(), gomock.Any()).
			Return(postRows, nil).
			AnyTimes()

		service := NewService(testConfig(), fetcher, nil)

		snapshot, err := service.GenerateComparisonReport(ComparisonRequest{
			Token:     "token",
			AccountID: "act_123",
			EventName: "purchase",
			PreRange:  preRange,
			PostRange: postRange,
		})
		require.NoError(t, err)
		require.NotNil(t, snapshot)

		assert.Equal(t, []string{"campaigns"}, snapshot.Report.DegradedDimensions)
		assert.Empty(t, snapshot.Report.Performance.Campaigns)
		// Os totais da tarefa básica permanecem intactos
		assert.Equal(t, 5, snapshot.Report.SummaryTotals.PreConversions)
	})

	t.Run("falha ao persistir o snapshot não derruba o relatório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		preRange, postRange := testRanges(t)

		fetcher := mocks.NewMockInsightsFetcher(ctrl)
		fetcher.EXPECT().
			FetchInsights(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(preRows, nil).
			AnyTimes()

		snapshots := repomocks.NewMockReportSnapshotRepository(ctrl)
		snapshots.EXPECT().Save(gomock.Any()).Return(errors.New("conexão recusada"))

		service := NewService(testConfig(), fetcher, snapshots)

		snapshot, err := service.GenerateComparisonReport(ComparisonRequest{
			Token:     "token",
			AccountID: "act_123",
			EventName: "purchase",
			PreRange:  preRange,
			PostRange: postRange,
		})
		require.NoError(t, err)
		assert.NotNil(t, snapshot)
	})

	t.Run("rejeita requisição sem conta ou evento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewService(testConfig(), mocks.NewMockInsightsFetcher(ctrl), nil)

		_, err := service.GenerateComparisonReport(ComparisonRequest{AccountID: "act_123"})
		assert.Error(t, err)

		_, err = service.GenerateComparisonReport(ComparisonRequest{EventName: "purchase"})
		assert.Error(t, err)
	})

	t.Run("breakdown demográfico só entra quando habilitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		preRange, postRange := testRanges(t)

		cfg := testConfig()
		cfg.Meta.FetchAgeGender = true

		fetcher := mocks.NewMockInsightsFetcher(ctrl)
		// Duas buscas extras, uma por período, para o breakdown de idade/gênero
		fetcher.EXPECT().
			FetchInsights(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil).
			Times(14)

		service := NewService(cfg, fetcher, nil)

		_, err := service.GenerateComparisonReport(ComparisonRequest{
			Token:     "token",
			AccountID: "act_123",
			EventName: "purchase",
			PreRange:  preRange,
			PostRange: postRange,
		})
		require.NoError(t, err)
	})
}

func TestGetPeriodSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	preRange, _ := testRanges(t)

	rows := []metadomain.InsightRow{
		{
			Spend:       "50.00",
			Impressions: "500",
			Clicks:      "25",
			Actions:     []metadomain.Action{{ActionType: "lead", Value: "4"}},
		},
	}

	fetcher := mocks.NewMockInsightsFetcher(ctrl)
	fetcher.EXPECT().
		FetchInsights("act_123", "token", gomock.Eq(preRange), "ad", gomock.Nil()).
		Return(rows, nil)

	service := NewService(testConfig(), fetcher, nil)

	summary, err := service.GetPeriodSummary(SummaryRequest{
		Token:     "token",
		AccountID: "act_123",
		EventName: "lead",
		Range:     preRange,
	})
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, preRange, summary.Range)
	assert.InDelta(t, 50.0, summary.Stats.Spend, 0.001)
	assert.Equal(t, 4, summary.Stats.Conversions)
	assert.InDelta(t, 5.0, summary.Metrics.CTR, 0.001)
}

func TestReportHistoryWithoutRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewService(testConfig(), mocks.NewMockInsightsFetcher(ctrl), nil)

	headers, err := service.ListReports(10)
	require.NoError(t, err)
	assert.Empty(t, headers)

	_, err = service.GetReportByID("abc123")
	assert.Error(t, err)
}

func TestReportHistoryWithRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	preRange, postRange := testRanges(t)

	snapshots := repomocks.NewMockReportSnapshotRepository(ctrl)
	snapshots.EXPECT().List(5).Return([]*domain.ReportSnapshotHeader{
		{ID: "abc123", AccountID: "act_123", EventName: "purchase", PreRange: preRange, PostRange: postRange},
	}, nil)
	snapshots.EXPECT().GetByID("abc123").Return(&domain.ReportSnapshot{ID: "abc123"}, nil)

	service := NewService(testConfig(), mocks.NewMockInsightsFetcher(ctrl), snapshots)

	headers, err := service.ListReports(5)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, "abc123", headers[0].ID)

	snapshot, err := service.GetReportByID("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", snapshot.ID)
}
