package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/printfleet/supply-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Printer) error {
	query := `
        INSERT INTO printers (
            id, company_id, name, model, serial_number, location,
            is_color, is_active, created_at, updated_at
        )
        VALUES (
            :id, :company_id, :name, :model, :serial_number, :location,
            :is_color, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, companyID, id string) (*model.Printer, error) {
	var p model.Printer
	query := `SELECT * FROM printers WHERE company_id = $1 AND id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, companyID string) ([]model.Printer, error) {
	var printers []model.Printer
	query := `SELECT * FROM printers WHERE company_id = $1 ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &printers, query, companyID)
	return printers, err
}

func (r *PGRepository) Update(ctx context.Context, p *model.Printer) error {
	query := `
        UPDATE printers SET
            name = :name,
            model = :model,
            serial_number = :serial_number,
            location = :location,
            is_color = :is_color,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE company_id = :company_id AND id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM printers WHERE company_id = $1 AND id = $2`, companyID, id)
	return err
}
