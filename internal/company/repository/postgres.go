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

func (r *PGRepository) ListActive(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	query := `SELECT * FROM companies WHERE is_active = true ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &companies, query)
	return companies, err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Company, error) {
	var c model.Company
	query := `SELECT * FROM companies WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
