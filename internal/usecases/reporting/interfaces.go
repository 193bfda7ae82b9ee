package reporting

import (
	metadomain "github.com/vfg2006/capi-impact-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/capi-impact-api/internal/domain"
)

// InsightsFetcher abstrai o integrador do Meta para o serviço de relatórios.
// Uma chamada cobre um período completo para uma combinação (nível,
// breakdowns); a divisão em chunks, as tentativas e as pausas são
// responsabilidade da implementação.
type InsightsFetcher interface {
	FetchInsights(accountID, token string, period domain.DateRange, level string, breakdowns []string) ([]metadomain.InsightRow, error)
}

// ComparisonRequest são os parâmetros de geração de um relatório de
// comparação pré/pós. O token de acesso vem do chamador a cada requisição.
type ComparisonRequest struct {
	Token     string
	AccountID string
	EventName string
	PreRange  domain.DateRange
	PostRange domain.DateRange
	UserID    int
}

// SummaryRequest são os parâmetros do resumo de um único período
type SummaryRequest struct {
	Token     string
	AccountID string
	EventName string
	Range     domain.DateRange
}

// Reporter é a interface do serviço de relatórios de impacto
type Reporter interface {
	// GenerateComparisonReport busca, agrega e compara os dois períodos,
	// devolvendo o snapshot persistido com o relatório completo
	GenerateComparisonReport(req ComparisonRequest) (*domain.ReportSnapshot, error)

	// GetPeriodSummary agrega um único período e calcula as métricas derivadas
	GetPeriodSummary(req SummaryRequest) (*domain.PeriodSummary, error)

	// ListReports lista os cabeçalhos dos snapshots persistidos
	ListReports(limit int) ([]*domain.ReportSnapshotHeader, error)

	// GetReportByID recupera um snapshot completo pelo ID
	GetReportByID(id string) (*domain.ReportSnapshot, error)
}
