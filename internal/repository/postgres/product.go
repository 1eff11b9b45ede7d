package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository backed by Postgres.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, farmer_id, name, description, category, quality, price, unit, quantity, is_available, location, image_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.FarmerID, p.Name, p.Description, p.Category, p.Quality, p.Price, p.Unit, p.Quantity, p.IsAvailable, p.Location, p.ImageURL, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, farmer_id, name, description, category, quality, price, unit, quantity, is_available, location, image_url, created_at
		 FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.FarmerID, &p.Name, &p.Description, &p.Category, &p.Quality, &p.Price, &p.Unit, &p.Quantity, &p.IsAvailable, &p.Location, &p.ImageURL, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &p, nil
}

func (r *productRepository) Find(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	query := `SELECT p.id, p.farmer_id, p.name, p.description, p.category, p.quality, p.price, p.unit, p.quantity, p.is_available, p.location, p.image_url, p.created_at,
		u.id, u.name, u.email, u.location
		FROM products p JOIN users u ON u.id = p.farmer_id WHERE 1=1`
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		query += " AND p.category = $" + strconv.Itoa(len(args))
	}
	if f.FarmerID != "" {
		args = append(args, f.FarmerID)
		query += " AND p.farmer_id = $" + strconv.Itoa(len(args))
	}
	if f.Quality != "" {
		args = append(args, f.Quality)
		query += " AND p.quality = $" + strconv.Itoa(len(args))
	}
	if f.Available != nil {
		args = append(args, *f.Available)
		query += " AND p.is_available = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		var ref entity.UserRef
		if err := rows.Scan(&p.ID, &p.FarmerID, &p.Name, &p.Description, &p.Category, &p.Quality, &p.Price, &p.Unit, &p.Quantity, &p.IsAvailable, &p.Location, &p.ImageURL, &p.CreatedAt,
			&ref.ID, &ref.Name, &ref.Email, &ref.Location); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Farmer = &ref
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) Update(ctx context.Context, p *entity.Product, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = $1, description = $2, category = $3, quality = $4, price = $5, unit = $6, quantity = $7, is_available = $8, location = $9, image_url = $10
		 WHERE id = $11 AND farmer_id = $12`,
		p.Name, p.Description, p.Category, p.Quality, p.Price, p.Unit, p.Quantity, p.Quantity > 0, p.Location, p.ImageURL, p.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireRow(res)
}

func (r *productRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1 AND farmer_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireRow(res)
}

func (r *productRepository) Seed(ctx context.Context, products []entity.Product) error {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil // already seeded
	}

	for i := range products {
		if err := r.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].ID, err)
		}
	}
	return nil
}

// requireRow maps a zero-row write to ErrNotFound; ownership filters in the
// WHERE clause make a foreign document indistinguishable from a missing one.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
