package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/printfleet/supply-service/internal/model"
	"github.com/printfleet/supply-service/internal/printjob"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, job *model.PrintJob) error {
	query := `
        INSERT INTO print_jobs (
            id, company_id, printer_id, paper_type_id, document_name,
            page_count, color_mode, printed_at, created_at
        )
        VALUES (
            :id, :company_id, :printer_id, :paper_type_id, :document_name,
            :page_count, :color_mode, :printed_at, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, job)
	return err
}

func (r *PGRepository) ListRecentJobs(ctx context.Context, companyID string, since time.Time) ([]model.PrintJob, error) {
	var jobs []model.PrintJob
	query := `
        SELECT * FROM print_jobs
        WHERE company_id = $1 AND printed_at >= $2
        ORDER BY printed_at ASC
    `
	err := r.DB.SelectContext(ctx, &jobs, query, companyID, since)
	return jobs, err
}

func (r *PGRepository) FindAll(ctx context.Context, f *printjob.Filters) ([]model.PrintJob, int, error) {
	var jobs []model.PrintJob
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CompanyID != "" {
		conditions = append(conditions, "company_id = :company_id")
		args["company_id"] = f.CompanyID
	}
	if f.PrinterID != "" {
		conditions = append(conditions, "printer_id = :printer_id")
		args["printer_id"] = f.PrinterID
	}
	if f.ColorMode != "" {
		conditions = append(conditions, "color_mode = :color_mode")
		args["color_mode"] = f.ColorMode
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM print_jobs" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM print_jobs" + whereClause + " ORDER BY printed_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &jobs, args)
	return jobs, count, err
}
