package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository backed by Postgres.
func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Place runs the whole placement inside one transaction: every line item's
// product row is locked, checked, and decremented before the order and its
// items are inserted. A failure on any item rolls the whole thing back, so
// no stock is ever lost to a partially processed order. Item names and
// prices are frozen from the product rows, never taken from the caller.
func (r *orderRepository) Place(ctx context.Context, o *entity.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var total float64
	for i := range o.Items {
		item := &o.Items[i]

		var price float64
		var name string
		var available int
		err := tx.QueryRowContext(ctx,
			"SELECT name, price, quantity FROM products WHERE id = $1 FOR UPDATE",
			item.ProductID,
		).Scan(&name, &price, &available)
		if err == sql.ErrNoRows {
			return fmt.Errorf("product %s: %w", item.ProductID, repository.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock product %s: %w", item.ProductID, err)
		}

		if available < item.Quantity {
			return fmt.Errorf("product %s (available: %d, requested: %d): %w",
				item.ProductID, available, item.Quantity, repository.ErrInsufficientStock)
		}

		item.Name = name
		item.Price = price
		total += price * float64(item.Quantity)

		// The availability flag tracks quantity > 0.
		_, err = tx.ExecContext(ctx,
			"UPDATE products SET quantity = quantity - $1, is_available = (quantity - $1 > 0) WHERE id = $2",
			item.Quantity, item.ProductID,
		)
		if err != nil {
			return fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err)
		}
	}
	o.TotalAmount = total

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, buyer_id, seller_id, transport_id, total_amount, pickup_address, delivery_address, status, payment_status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.BuyerID, o.SellerID, o.TransportID, o.TotalAmount, o.PickupAddress, o.DeliveryAddress, o.Status, o.PaymentStatus, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, product_id, name, price, quantity) VALUES ($1, $2, $3, $4, $5)",
			o.ID, item.ProductID, item.Name, item.Price, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const orderColumns = "id, buyer_id, seller_id, transport_id, total_amount, pickup_address, delivery_address, status, payment_status, created_at"

func (r *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id).
		Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.TransportID, &o.TotalAmount, &o.PickupAddress, &o.DeliveryAddress, &o.Status, &o.PaymentStatus, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) FindForUser(ctx context.Context, userID string, limit int) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE buyer_id = $1 OR seller_id = $1 ORDER BY created_at DESC LIMIT $2",
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.TransportID, &o.TotalAmount, &o.PickupAddress, &o.DeliveryAddress, &o.Status, &o.PaymentStatus, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, o *entity.Order) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT product_id, name, price, quantity FROM order_items WHERE order_id = $1",
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}
