package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
)

type demandRepository struct {
	db *sql.DB
}

// NewDemandRepository creates a new DemandRepository backed by Postgres.
func NewDemandRepository(db *sql.DB) repository.DemandRepository {
	return &demandRepository{db: db}
}

func (r *demandRepository) Create(ctx context.Context, d *entity.Demand) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO demands (id, retailer_id, title, category, quantity, unit, price_min, price_max, required_by, location, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		d.ID, d.RetailerID, d.Title, d.Category, d.Quantity, d.Unit, d.PriceRange.Min, d.PriceRange.Max, d.RequiredBy, d.Location, d.Status, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert demand: %w", err)
	}
	return nil
}

func (r *demandRepository) FindByID(ctx context.Context, id string) (*entity.Demand, error) {
	var d entity.Demand
	err := r.db.QueryRowContext(ctx,
		`SELECT id, retailer_id, title, category, quantity, unit, price_min, price_max, required_by, location, status, created_at
		 FROM demands WHERE id = $1`, id).
		Scan(&d.ID, &d.RetailerID, &d.Title, &d.Category, &d.Quantity, &d.Unit, &d.PriceRange.Min, &d.PriceRange.Max, &d.RequiredBy, &d.Location, &d.Status, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query demand: %w", err)
	}
	return &d, nil
}

func (r *demandRepository) Find(ctx context.Context, f repository.DemandFilter) ([]entity.Demand, error) {
	query := `SELECT d.id, d.retailer_id, d.title, d.category, d.quantity, d.unit, d.price_min, d.price_max, d.required_by, d.location, d.status, d.created_at,
		u.id, u.name, u.email, u.location
		FROM demands d JOIN users u ON u.id = d.retailer_id WHERE 1=1`
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		query += " AND d.category = $" + strconv.Itoa(len(args))
	}
	if f.RetailerID != "" {
		args = append(args, f.RetailerID)
		query += " AND d.retailer_id = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY d.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query demands: %w", err)
	}
	defer rows.Close()

	var demands []entity.Demand
	for rows.Next() {
		var d entity.Demand
		var ref entity.UserRef
		if err := rows.Scan(&d.ID, &d.RetailerID, &d.Title, &d.Category, &d.Quantity, &d.Unit, &d.PriceRange.Min, &d.PriceRange.Max, &d.RequiredBy, &d.Location, &d.Status, &d.CreatedAt,
			&ref.ID, &ref.Name, &ref.Email, &ref.Location); err != nil {
			return nil, fmt.Errorf("failed to scan demand: %w", err)
		}
		d.Retailer = &ref
		demands = append(demands, d)
	}
	return demands, rows.Err()
}

func (r *demandRepository) Update(ctx context.Context, d *entity.Demand, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE demands SET title = $1, category = $2, quantity = $3, unit = $4, price_min = $5, price_max = $6, required_by = $7, location = $8
		 WHERE id = $9 AND retailer_id = $10`,
		d.Title, d.Category, d.Quantity, d.Unit, d.PriceRange.Min, d.PriceRange.Max, d.RequiredBy, d.Location, d.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update demand: %w", err)
	}
	return requireRow(res)
}

func (r *demandRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM demands WHERE id = $1 AND retailer_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete demand: %w", err)
	}
	return requireRow(res)
}
