package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/capi-impact-api/infrastructure/repository"
	"github.com/vfg2006/capi-impact-api/internal/config"
)

// ReportRetentionConfig representa a configuração do agendador de retenção de snapshots
type ReportRetentionConfig struct {
	CronSchedule  string
	RetentionDays int
	Enabled       bool
}

// ReportRetentionStatus é o estado atual do agendador exposto pela API
type ReportRetentionStatus struct {
	Enabled            bool       `json:"enabled"`
	CronSchedule       string     `json:"cron_schedule"`
	RetentionDays      int        `json:"retention_days"`
	Running            bool       `json:"running"`
	LastRunStartedAt   *time.Time `json:"last_run_started_at,omitempty"`
	LastRunCompletedAt *time.Time `json:"last_run_completed_at,omitempty"`
	LastRunDeleted     int64      `json:"last_run_deleted"`
}

// ReportRetentionService agenda a limpeza periódica de snapshots antigos de
// relatórios. Snapshots servem apenas de histórico, então a remoção nunca
// afeta relatórios em geração.
type ReportRetentionService struct {
	scheduler          *gocron.Scheduler
	config             ReportRetentionConfig
	snapshotRepo       repository.ReportSnapshotRepository
	running            bool
	runMutex           sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunDeleted     int64
}

// NewReportRetentionService cria uma nova instância do serviço de retenção
func NewReportRetentionService(
	snapshotRepo repository.ReportSnapshotRepository,
	appConfig *config.Config,
) *ReportRetentionService {
	retentionConfig := ReportRetentionConfig{
		CronSchedule:  appConfig.ReportRetention.CronSchedule,
		RetentionDays: appConfig.ReportRetention.RetentionDays,
		Enabled:       appConfig.ReportRetention.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  retentionConfig.CronSchedule,
		"retention_days": retentionConfig.RetentionDays,
		"enabled":        retentionConfig.Enabled,
	}).Info("Configuração do agendador de retenção de relatórios carregada")

	return &ReportRetentionService{
		scheduler:    scheduler,
		config:       retentionConfig,
		snapshotRepo: snapshotRepo,
		running:      false,
	}
}

// Start inicia o agendador
func (s *ReportRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Retenção de relatórios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de retenção de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunRetention()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar retenção de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de retenção de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// RunRetention executa uma passada de limpeza. Também é chamado pelo endpoint
// de execução manual.
func (s *ReportRetentionService) RunRetention() {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Info("Retenção de relatórios já em andamento, ignorando")
		return
	}
	s.running = true
	s.runMutex.Unlock()

	startTime := time.Now()
	s.lastRunStartedAt = startTime

	defer func() {
		s.runMutex.Lock()
		s.running = false
		s.runMutex.Unlock()
	}()

	logrus.WithField("retention_days", s.config.RetentionDays).
		Info("Iniciando limpeza de snapshots de relatórios antigos")

	deleted, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover snapshots antigos")
		return
	}

	s.lastRunDeleted = deleted
	s.lastRunCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"deleted":  deleted,
		"duration": time.Since(startTime).String(),
	}).Info("Limpeza de snapshots de relatórios concluída")
}

// Status retorna o estado atual do agendador
func (s *ReportRetentionService) Status() ReportRetentionStatus {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	status := ReportRetentionStatus{
		Enabled:        s.config.Enabled,
		CronSchedule:   s.config.CronSchedule,
		RetentionDays:  s.config.RetentionDays,
		Running:        s.running,
		LastRunDeleted: s.lastRunDeleted,
	}

	if !s.lastRunStartedAt.IsZero() {
		t := s.lastRunStartedAt
		status.LastRunStartedAt = &t
	}
	if !s.lastRunCompletedAt.IsZero() {
		t := s.lastRunCompletedAt
		status.LastRunCompletedAt = &t
	}

	return status
}
