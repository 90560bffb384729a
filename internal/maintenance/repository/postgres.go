package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/printfleet/supply-service/internal/maintenance"
	"github.com/printfleet/supply-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, rec *model.MaintenanceRecord) error {
	query := `
        INSERT INTO maintenance_records (
            id, company_id, printer_id, description, performed_by, performed_at, created_at
        )
        VALUES (
            :id, :company_id, :printer_id, :description, :performed_by, :performed_at, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, rec)
	return err
}

func (r *PGRepository) FindAll(ctx context.Context, f *maintenance.Filters) ([]model.MaintenanceRecord, int, error) {
	var items []model.MaintenanceRecord
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

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM maintenance_records" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM maintenance_records" + whereClause + " ORDER BY performed_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
