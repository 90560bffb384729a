package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/printfleet/supply-service/internal/alert"
	"github.com/printfleet/supply-service/internal/model"
)

// PGRepository persists alerts. The schema is expected to carry a partial
// unique index on (company_id, type, resource_id, resource_type) WHERE NOT
// read, so even if two sweeps ever race past the tenant lock the second
// insert fails instead of duplicating the alert.
type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, a *model.Alert) error {
	query := `
        INSERT INTO alerts (
            id, company_id, type, title, message, severity, read,
            resource_id, resource_type, days_remaining, created_at
        )
        VALUES (
            :id, :company_id, :type, :title, :message, :severity, :read,
            :resource_id, :resource_type, :days_remaining, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) ListUnread(ctx context.Context, companyID string) ([]model.Alert, error) {
	var items []model.Alert
	query := `SELECT * FROM alerts WHERE company_id = $1 AND read = false ORDER BY created_at DESC`
	err := r.DB.SelectContext(ctx, &items, query, companyID)
	return items, err
}

func (r *PGRepository) FindAll(ctx context.Context, f *alert.Filters) ([]model.Alert, int, error) {
	var items []model.Alert
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CompanyID != "" {
		conditions = append(conditions, "company_id = :company_id")
		args["company_id"] = f.CompanyID
	}
	if f.UnreadOnly {
		conditions = append(conditions, "read = false")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM alerts" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM alerts" + whereClause + " ORDER BY created_at DESC"
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

func (r *PGRepository) MarkRead(ctx context.Context, alertID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE alerts SET read = true WHERE id = $1`, alertID)
	return err
}
