package reporting

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/capi-impact-api/infrastructure/repository"
	"github.com/vfg2006/capi-impact-api/internal/config"
	"github.com/vfg2006/capi-impact-api/internal/domain"
	"github.com/vfg2006/capi-impact-api/pkg/utils"
)

const (
	levelAd       = "ad"
	levelCampaign = "campaign"
	levelAdSet    = "adset"
)

// fetchTask é uma combinação (nível, breakdowns) buscada para os dois
// períodos. A tarefa básica no nível de anúncio é obrigatória: sem ela não há
// relatório. As demais são opcionais e degradam para um conjunto vazio.
type fetchTask struct {
	dimension  string
	level      string
	breakdowns []string
	required   bool
}

// taskData guarda o resultado das buscas pré e pós de uma tarefa. Cada
// goroutine escreve apenas no seu próprio campo, então não há escritor
// concorrente em estrutura compartilhada.
type taskData struct {
	pre     []metadomain.InsightRow
	post    []metadomain.InsightRow
	preErr  error
	postErr error
}

// Service implementa a interface Reporter
type Service struct {
	cfg       *config.Config
	fetcher   InsightsFetcher
	matcher   *EventMatcher
	snapshots repository.ReportSnapshotRepository
}

// NewService cria o serviço de relatórios. O repositório de snapshots é
// opcional: sem ele os relatórios não ficam no histórico.
func NewService(cfg *config.Config, fetcher InsightsFetcher, snapshots repository.ReportSnapshotRepository) Reporter {
	return &Service{
		cfg:       cfg,
		fetcher:   fetcher,
		matcher:   NewEventMatcher(nil),
		snapshots: snapshots,
	}
}

func (s *Service) buildTasks() []fetchTask {
	tasks := []fetchTask{
		{dimension: "base", level: levelAd, required: true},
		{dimension: "campaigns", level: levelCampaign},
		{dimension: "adSets", level: levelAdSet},
		{dimension: "placements", level: levelAd, breakdowns: []string{"publisher_platform"}},
		{dimension: "countries", level: levelAd, breakdowns: []string{"country"}},
		{dimension: "devices", level: levelAd, breakdowns: []string{"device_platform"}},
	}

	// O breakdown de idade/gênero é o mais sujeito a timeout na API e fica
	// atrás de configuração
	if s.cfg.Meta.FetchAgeGender {
		tasks = append(tasks, fetchTask{
			dimension:  "ageGender",
			level:      levelAd,
			breakdowns: []string{"age", "gender"},
		})
	}

	return tasks
}

// GenerateComparisonReport busca os dois períodos para todas as combinações
// (nível, breakdown), agrega cada conjunto e monta o relatório de comparação.
// As buscas são disparadas em paralelo (fan-out) e só são mescladas depois
// que todas terminam; dentro de cada busca a cadeia de cursores continua
// estritamente sequencial. Falha na tarefa obrigatória derruba o relatório
// inteiro; falha em tarefa opcional zera a dimensão e registra a degradação.
func (s *Service) GenerateComparisonReport(req ComparisonRequest) (*domain.ReportSnapshot, error) {
	if req.AccountID == "" || req.EventName == "" {
		return nil, fmt.Errorf("account_id e event_name são obrigatórios")
	}

	logrus.WithFields(logrus.Fields{
		"account_id": req.AccountID,
		"event_name": req.EventName,
		"pre_range":  req.PreRange.String(),
		"post_range": req.PostRange.String(),
	}).Info("reporting: gerando relatório de comparação")

	tasks := s.buildTasks()
	results := make([]taskData, len(tasks))

	wg := sync.WaitGroup{}
	for i := range tasks {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()
			task := tasks[i]
			results[i].pre, results[i].preErr = s.fetcher.FetchInsights(
				req.AccountID, req.Token, req.PreRange, task.level, task.breakdowns,
			)
		}(i)

		go func(i int) {
			defer wg.Done()
			task := tasks[i]
			results[i].post, results[i].postErr = s.fetcher.FetchInsights(
				req.AccountID, req.Token, req.PostRange, task.level, task.breakdowns,
			)
		}(i)
	}
	wg.Wait()

	var degraded []string
	byDimension := make(map[string]*taskData, len(tasks))

	for i := range tasks {
		task := tasks[i]
		data := &results[i]

		if err := firstError(data.preErr, data.postErr); err != nil {
			if task.required {
				return nil, fmt.Errorf("erro ao buscar dados de anúncios: %w", err)
			}

			logrus.WithFields(logrus.Fields{
				"account_id": req.AccountID,
				"dimension":  task.dimension,
				"error":      err.Error(),
			}).Warn("reporting: busca opcional falhou, dimensão ficará vazia")

			// O lado que falhou degrada para vazio; o que deu certo é mantido
			degraded = append(degraded, task.dimension)
		}

		byDimension[task.dimension] = data
	}

	preAggregates := s.aggregateAll(byDimension, req.EventName, func(d *taskData) []metadomain.InsightRow { return d.pre })
	postAggregates := s.aggregateAll(byDimension, req.EventName, func(d *taskData) []metadomain.InsightRow { return d.post })

	report := buildComparison(preAggregates, postAggregates, degraded)

	snapshot := &domain.ReportSnapshot{
		AccountID: req.AccountID,
		EventName: req.EventName,
		PreRange:  req.PreRange,
		PostRange: req.PostRange,
		Report:    report,
		CreatedBy: req.UserID,
		CreatedAt: time.Now(),
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID do snapshot: %w", err)
	}
	snapshot.ID = id

	if s.snapshots != nil {
		if err := s.snapshots.Save(snapshot); err != nil {
			// Histórico é conveniência: o relatório já gerado vale mais do
			// que a falha de persistência
			logrus.WithError(err).WithField("snapshot_id", snapshot.ID).
				Warn("reporting: falha ao persistir snapshot do relatório")
		}
	}

	logrus.WithFields(logrus.Fields{
		"account_id":       req.AccountID,
		"snapshot_id":      snapshot.ID,
		"pre_conversions":  report.SummaryTotals.PreConversions,
		"post_conversions": report.SummaryTotals.PostConversions,
		"degraded":         degraded,
	}).Info("reporting: relatório de comparação gerado")

	return snapshot, nil
}

// aggregateAll agrega cada conjunto de dados de um período no seu
// PeriodStats, escolhendo o lado (pré ou pós) via seletor
func (s *Service) aggregateAll(
	byDimension map[string]*taskData,
	eventName string,
	side func(*taskData) []metadomain.InsightRow,
) *periodAggregates {
	aggregate := func(dimension string) *domain.PeriodStats {
		data, ok := byDimension[dimension]
		if !ok {
			return domain.NewPeriodStats()
		}
		return aggregatePeriod(side(data), eventName, s.matcher)
	}

	return &periodAggregates{
		base:       aggregate("base"),
		campaigns:  aggregate("campaigns"),
		adSets:     aggregate("adSets"),
		placements: aggregate("placements"),
		ageGender:  aggregate("ageGender"),
		countries:  aggregate("countries"),
		devices:    aggregate("devices"),
	}
}

// GetPeriodSummary busca e agrega um único período no nível de anúncio
func (s *Service) GetPeriodSummary(req SummaryRequest) (*domain.PeriodSummary, error) {
	if req.AccountID == "" || req.EventName == "" {
		return nil, fmt.Errorf("account_id e event_name são obrigatórios")
	}

	rows, err := s.fetcher.FetchInsights(req.AccountID, req.Token, req.Range, levelAd, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar dados de anúncios: %w", err)
	}

	stats := aggregatePeriod(rows, req.EventName, s.matcher)

	return &domain.PeriodSummary{
		Range:   req.Range,
		Stats:   stats,
		Metrics: deriveMetrics(stats),
	}, nil
}

// ListReports lista os cabeçalhos dos snapshots mais recentes
func (s *Service) ListReports(limit int) ([]*domain.ReportSnapshotHeader, error) {
	if s.snapshots == nil {
		return []*domain.ReportSnapshotHeader{}, nil
	}
	return s.snapshots.List(limit)
}

// GetReportByID recupera um snapshot completo do histórico
func (s *Service) GetReportByID(id string) (*domain.ReportSnapshot, error) {
	if s.snapshots == nil {
		return nil, fmt.Errorf("histórico de relatórios não está habilitado")
	}
	return s.snapshots.GetByID(id)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
