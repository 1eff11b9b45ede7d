package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
)

type analyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository backed by Postgres.
func NewAnalyticsRepository(db *sql.DB) repository.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Summarize(ctx context.Context, u *entity.User) (*entity.Analytics, error) {
	var a entity.Analytics
	var err error

	switch u.Role {
	case entity.RoleFarmer:
		err = r.db.QueryRowContext(ctx, `
			SELECT
				(SELECT COUNT(*) FROM products WHERE farmer_id = $1),
				(SELECT COUNT(*) FROM orders WHERE seller_id = $1),
				(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE seller_id = $1)`,
			u.ID,
		).Scan(&a.Products, &a.Orders, &a.Revenue)
	case entity.RoleRetailer:
		err = r.db.QueryRowContext(ctx, `
			SELECT
				(SELECT COUNT(*) FROM demands WHERE retailer_id = $1),
				(SELECT COUNT(*) FROM orders WHERE buyer_id = $1),
				(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE buyer_id = $1)`,
			u.ID,
		).Scan(&a.Demands, &a.Orders, &a.Spend)
	case entity.RoleTransporter:
		err = r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM transports WHERE transporter_id = $1",
			u.ID,
		).Scan(&a.Transports)
	case entity.RoleAdmin:
		err = r.db.QueryRowContext(ctx, `
			SELECT
				(SELECT COUNT(*) FROM users),
				(SELECT COUNT(*) FROM products),
				(SELECT COUNT(*) FROM demands),
				(SELECT COUNT(*) FROM transports),
				(SELECT COUNT(*) FROM orders),
				(SELECT COUNT(*) FROM notifications)`,
		).Scan(&a.Users, &a.Products, &a.Demands, &a.Transports, &a.Orders, &a.Notifications)
	default:
		return nil, fmt.Errorf("unknown role %q", u.Role)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to summarize for role %s: %w", u.Role, err)
	}
	return &a, nil
}
