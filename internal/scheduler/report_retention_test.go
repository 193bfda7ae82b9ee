package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/capi-impact-api/infrastructure/repository/mocks"
	"github.com/vfg2006/capi-impact-api/internal/config"
	"go.uber.org/mock/gomock"
)

func retentionConfig(enabled bool) *config.Config {
	return &config.Config{
		ReportRetention: config.ReportRetention{
			CronSchedule:  "0 4 * * *",
			RetentionDays: 90,
			Enabled:       enabled,
		},
	}
}

func TestRunRetention(t *testing.T) {
	t.Run("remove snapshots antigos e registra a última execução", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)
		snapshotRepo.EXPECT().DeleteOlderThan(90).Return(int64(7), nil)

		service := NewReportRetentionService(snapshotRepo, retentionConfig(true))
		service.RunRetention()

		status := service.Status()
		assert.False(t, status.Running)
		assert.Equal(t, int64(7), status.LastRunDeleted)
		require.NotNil(t, status.LastRunStartedAt)
		require.NotNil(t, status.LastRunCompletedAt)
		assert.False(t, status.LastRunCompletedAt.Before(*status.LastRunStartedAt))
	})

	t.Run("erro do repositório não marca a execução como concluída", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)
		snapshotRepo.EXPECT().DeleteOlderThan(90).Return(int64(0), errors.New("conexão recusada"))

		service := NewReportRetentionService(snapshotRepo, retentionConfig(true))
		service.RunRetention()

		status := service.Status()
		assert.False(t, status.Running)
		assert.Zero(t, status.LastRunDeleted)
		assert.NotNil(t, status.LastRunStartedAt)
		assert.Nil(t, status.LastRunCompletedAt)
	})
}

func TestStartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)

	// Desabilitado: nenhuma chamada ao repositório deve acontecer
	snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)

	service := NewReportRetentionService(snapshotRepo, retentionConfig(false))
	require.NoError(t, service.Start(context.Background()))

	status := service.Status()
	assert.False(t, status.Enabled)
	assert.Nil(t, status.LastRunStartedAt)
}

func TestStatusReflectsConfig(t *testing.T) {
	ctrl := gomock.NewController(t)

	service := NewReportRetentionService(mocks.NewMockReportSnapshotRepository(ctrl), retentionConfig(true))
	status := service.Status()

	assert.True(t, status.Enabled)
	assert.Equal(t, "0 4 * * *", status.CronSchedule)
	assert.Equal(t, 90, status.RetentionDays)
	assert.False(t, status.Running)
	assert.Zero(t, status.LastRunDeleted)
}
