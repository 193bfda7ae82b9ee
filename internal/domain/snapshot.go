package domain

import "time"

// ReportSnapshot é um relatório de comparação persistido. Snapshots servem
// apenas de histórico: a geração de um novo relatório nunca lê snapshots
// anteriores.
type ReportSnapshot struct {
	ID        string            `json:"id"`
	AccountID string            `json:"account_id"`
	EventName string            `json:"event_name"`
	PreRange  DateRange         `json:"pre_range"`
	PostRange DateRange         `json:"post_range"`
	Report    *ComparisonReport `json:"report,omitempty"`
	CreatedBy int               `json:"created_by"`
	CreatedAt time.Time         `json:"created_at"`
}

// ReportSnapshotHeader é a versão resumida usada na listagem de snapshots
type ReportSnapshotHeader struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	EventName string    `json:"event_name"`
	PreRange  DateRange `json:"pre_range"`
	PostRange DateRange `json:"post_range"`
	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
