package postgre

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"careersight-srv/internal/model"
	"careersight-srv/internal/report/repository"
)

// GetCurrent returns the highest published version for the key, or nil.
func (r *implRepository) GetCurrent(ctx context.Context, ownerID, reportType string) (*model.Report, error) {
	query, args, err := r.selectReports().
		Where("owner_id = ? AND report_type = ? AND status = ?", ownerID, reportType, model.ReportStatusPublished).
		OrderBy("version DESC").
		Limit(1).
		ToSql()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetCurrent: Failed to build query: %v", err)
		return nil, err
	}

	rpt, err := scanReport(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetCurrent: Failed to scan report: %v", err)
		return nil, err
	}

	return rpt, nil
}

// GetPending returns the live pending row for the key, or nil.
func (r *implRepository) GetPending(ctx context.Context, ownerID, reportType string) (*model.Report, error) {
	query, args, err := r.selectReports().
		Where("owner_id = ? AND report_type = ? AND status = ?", ownerID, reportType, model.ReportStatusPending).
		OrderBy("version DESC").
		Limit(1).
		ToSql()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetPending: Failed to build query: %v", err)
		return nil, err
	}

	rpt, err := scanReport(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetPending: Failed to scan report: %v", err)
		return nil, err
	}

	return rpt, nil
}

// GetByID returns the report or ErrReportNotFound.
func (r *implRepository) GetByID(ctx context.Context, id string) (*model.Report, error) {
	query, args, err := r.selectReports().
		Where("id = ?", id).
		ToSql()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetByID: Failed to build query: %v", err)
		return nil, err
	}

	rpt, err := scanReport(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, repository.ErrReportNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.GetByID: Failed to scan report: %v", err)
		return nil, err
	}

	return rpt, nil
}

// ListByOwner returns a page of reports plus the total count for pagination.
func (r *implRepository) ListByOwner(ctx context.Context, opts repository.ListByOwnerOptions) ([]*model.Report, int64, error) {
	where := sq.And{sq.Eq{"owner_id": opts.OwnerID}}
	if opts.ReportType != "" {
		where = append(where, sq.Eq{"report_type": opts.ReportType})
	}
	if opts.Status != "" {
		where = append(where, sq.Eq{"status": opts.Status})
	}

	countQuery, countArgs, err := r.builder.
		Select("COUNT(*)").
		From("reports").
		Where(where).
		ToSql()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListByOwner: Failed to build count query: %v", err)
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListByOwner: Failed to count reports: %v", err)
		return nil, 0, err
	}

	builder := r.selectReports().
		Where(where).
		OrderBy("created_at DESC")
	if opts.Limit > 0 {
		builder = builder.Limit(uint64(opts.Limit))
	}
	if opts.Offset > 0 {
		builder = builder.Offset(uint64(opts.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListByOwner: Failed to build query: %v", err)
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListByOwner: Failed to query reports: %v", err)
		return nil, 0, err
	}
	defer rows.Close()

	reports := make([]*model.Report, 0)
	for rows.Next() {
		rpt, err := scanReport(rows)
		if err != nil {
			r.l.Errorf(ctx, "report.repository.postgre.ListByOwner: Failed to scan report: %v", err)
			return nil, 0, err
		}
		reports = append(reports, rpt)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.ListByOwner: Failed to iterate rows: %v", err)
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *implRepository) selectReports() sq.SelectBuilder {
	return r.builder.
		Select(reportColumns...).
		From("reports")
}
