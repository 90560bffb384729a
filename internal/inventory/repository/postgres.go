package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/printfleet/supply-service/internal/inventory/dto"
	"github.com/printfleet/supply-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListPaperTypes(ctx context.Context, companyID string) ([]model.PaperType, error) {
	var items []model.PaperType
	query := `SELECT * FROM paper_types WHERE company_id = $1 ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &items, query, companyID)
	return items, err
}

func (r *PGRepository) GetPaperType(ctx context.Context, companyID, id string) (*model.PaperType, error) {
	var p model.PaperType
	query := `SELECT * FROM paper_types WHERE company_id = $1 AND id = $2`
	err := r.DB.GetContext(ctx, &p, query, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) CreatePaperType(ctx context.Context, p *model.PaperType) error {
	query := `
        INSERT INTO paper_types (
            id, company_id, name, size, grams_per_sqm, stock, reorder_point,
            created_at, updated_at
        )
        VALUES (
            :id, :company_id, :name, :size, :grams_per_sqm, :stock, :reorder_point,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) ListTonerCartridges(ctx context.Context, companyID string) ([]model.TonerCartridge, error) {
	var items []model.TonerCartridge
	query := `SELECT * FROM toner_cartridges WHERE company_id = $1 ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &items, query, companyID)
	return items, err
}

func (r *PGRepository) GetTonerCartridge(ctx context.Context, companyID, id string) (*model.TonerCartridge, error) {
	var t model.TonerCartridge
	query := `SELECT * FROM toner_cartridges WHERE company_id = $1 AND id = $2`
	err := r.DB.GetContext(ctx, &t, query, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) CreateTonerCartridge(ctx context.Context, t *model.TonerCartridge) error {
	query := `
        INSERT INTO toner_cartridges (
            id, company_id, name, color, stock, reorder_point, created_at, updated_at
        )
        VALUES (
            :id, :company_id, :name, :color, :stock, :reorder_point, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return err
}

func (r *PGRepository) SetStockWithMovement(ctx context.Context, resourceType, resourceID, companyID string, newStock int, movement *model.StockMovement) error {
	table := "paper_types"
	if resourceType == "toner" {
		table = "toner_cartridges"
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Write the new stock level
	updateQuery := fmt.Sprintf(`UPDATE %s SET stock = $1, updated_at = $2 WHERE company_id = $3 AND id = $4`, table)
	res, err := tx.ExecContext(ctx, updateQuery, newStock, time.Now(), companyID, resourceID)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}

	// 2. Log the movement
	insertQuery := `
        INSERT INTO stock_movements (
            id, company_id, resource_type, resource_id,
            quantity_change, quantity_before, quantity_after,
            reference_type, reference_id, notes, created_by, created_at
        )
        VALUES (
            :id, :company_id, :resource_type, :resource_id,
            :quantity_change, :quantity_before, :quantity_after,
            :reference_type, :reference_id, :notes, :created_by, :created_at
        )
    `
	_, err = tx.NamedExecContext(ctx, insertQuery, movement)
	if err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CompanyID != "" {
		conditions = append(conditions, "company_id = :company_id")
		args["company_id"] = f.CompanyID
	}
	if f.ResourceType != "" {
		conditions = append(conditions, "resource_type = :resource_type")
		args["resource_type"] = f.ResourceType
	}
	if f.ResourceID != "" {
		conditions = append(conditions, "resource_id = :resource_id")
		args["resource_id"] = f.ResourceID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
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
