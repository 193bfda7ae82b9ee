package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/capi-impact-api/infrastructure/database/postgres"
	"github.com/vfg2006/capi-impact-api/internal/domain"
)

const (
	reportSnapshotsTable = "report_snapshots rs"
)

type ReportSnapshotRepository interface {
	Save(snapshot *domain.ReportSnapshot) error
	List(limit int) ([]*domain.ReportSnapshotHeader, error)
	GetByID(id string) (*domain.ReportSnapshot, error)
	DeleteOlderThan(days int) (int64, error)
}

type reportSnapshotRepository struct {
	conn *postgres.Connection
}

func NewReportSnapshotRepository(conn *postgres.Connection) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

func (r *reportSnapshotRepository) Save(snapshot *domain.ReportSnapshot) error {
	var reportJSON []byte
	var err error

	if snapshot.Report != nil {
		reportJSON, err = json.Marshal(snapshot.Report)
		if err != nil {
			return fmt.Errorf("erro ao serializar relatório para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("report_snapshots").
		Columns(
			"id", "account_id", "event_name",
			"pre_start", "pre_end", "post_start", "post_end",
			"report", "created_by", "created_at",
		).
		Values(
			snapshot.ID,
			snapshot.AccountID,
			snapshot.EventName,
			snapshot.PreRange.Start.Format("2006-01-02"),
			snapshot.PreRange.End.Format("2006-01-02"),
			snapshot.PostRange.Start.Format("2006-01-02"),
			snapshot.PostRange.End.Format("2006-01-02"),
			reportJSON,
			snapshot.CreatedBy,
			snapshot.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *reportSnapshotRepository) List(limit int) ([]*domain.ReportSnapshotHeader, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := squirrel.
		Select("rs.id, rs.account_id, rs.event_name, rs.pre_start, rs.pre_end, rs.post_start, rs.post_end, rs.created_by, rs.created_at").
		From(reportSnapshotsTable).
		OrderBy("rs.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	headers := make([]*domain.ReportSnapshotHeader, 0)
	for rows.Next() {
		header, err := r.scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
		}
		headers = append(headers, header)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return headers, nil
}

func (r *reportSnapshotRepository) GetByID(id string) (*domain.ReportSnapshot, error) {
	query, args, err := squirrel.
		Select("rs.id, rs.account_id, rs.event_name, rs.pre_start, rs.pre_end, rs.post_start, rs.post_end, rs.report, rs.created_by, rs.created_at").
		From(reportSnapshotsTable).
		Where(squirrel.Eq{"rs.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	snapshot, err := r.scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *reportSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("report_snapshots").
		Where(squirrel.Lt{"created_at": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *reportSnapshotRepository) scanHeader(rows *sql.Rows) (*domain.ReportSnapshotHeader, error) {
	header := &domain.ReportSnapshotHeader{}
	var preStart, preEnd, postStart, postEnd time.Time

	err := rows.Scan(
		&header.ID,
		&header.AccountID,
		&header.EventName,
		&preStart,
		&preEnd,
		&postStart,
		&postEnd,
		&header.CreatedBy,
		&header.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if header.PreRange, err = domain.NewDateRange(preStart, preEnd); err != nil {
		return nil, fmt.Errorf("erro ao converter período pré: %w", err)
	}
	if header.PostRange, err = domain.NewDateRange(postStart, postEnd); err != nil {
		return nil, fmt.Errorf("erro ao converter período pós: %w", err)
	}

	return header, nil
}

func (r *reportSnapshotRepository) scanSnapshot(row *sql.Row) (*domain.ReportSnapshot, error) {
	snapshot := &domain.ReportSnapshot{}
	var reportJSON []byte
	var preStart, preEnd, postStart, postEnd time.Time

	err := row.Scan(
		&snapshot.ID,
		&snapshot.AccountID,
		&snapshot.EventName,
		&preStart,
		&preEnd,
		&postStart,
		&postEnd,
		&reportJSON,
		&snapshot.CreatedBy,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if snapshot.PreRange, err = domain.NewDateRange(preStart, preEnd); err != nil {
		return nil, fmt.Errorf("erro ao converter período pré: %w", err)
	}
	if snapshot.PostRange, err = domain.NewDateRange(postStart, postEnd); err != nil {
		return nil, fmt.Errorf("erro ao converter período pós: %w", err)
	}

	if reportJSON != nil {
		report := &domain.ComparisonReport{}
		if err := json.Unmarshal(reportJSON, report); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON do relatório: %w", err)
		}
		snapshot.Report = report
	}

	return snapshot, nil
}
