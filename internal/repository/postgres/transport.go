package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
)

type transportRepository struct {
	db *sql.DB
}

// NewTransportRepository creates a new TransportRepository backed by Postgres.
func NewTransportRepository(db *sql.DB) repository.TransportRepository {
	return &transportRepository{db: db}
}

func (r *transportRepository) Create(ctx context.Context, t *entity.Transport) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transports (id, transporter_id, vehicle_type, capacity_weight_kg, capacity_volume_m3, departure, destination, departure_at, price_per_km, price_per_kg, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.TransporterID, t.VehicleType, t.Capacity.WeightKg, t.Capacity.VolumeM3, t.Departure, t.Destination, t.DepartureAt, t.PricePerKm, t.PricePerKg, t.Status, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transport: %w", err)
	}
	return nil
}

func (r *transportRepository) FindByID(ctx context.Context, id string) (*entity.Transport, error) {
	var t entity.Transport
	err := r.db.QueryRowContext(ctx,
		`SELECT id, transporter_id, vehicle_type, capacity_weight_kg, capacity_volume_m3, departure, destination, departure_at, price_per_km, price_per_kg, status, created_at
		 FROM transports WHERE id = $1`, id).
		Scan(&t.ID, &t.TransporterID, &t.VehicleType, &t.Capacity.WeightKg, &t.Capacity.VolumeM3, &t.Departure, &t.Destination, &t.DepartureAt, &t.PricePerKm, &t.PricePerKg, &t.Status, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transport: %w", err)
	}
	return &t, nil
}

func (r *transportRepository) Find(ctx context.Context, f repository.TransportFilter) ([]entity.Transport, error) {
	query := `SELECT t.id, t.transporter_id, t.vehicle_type, t.capacity_weight_kg, t.capacity_volume_m3, t.departure, t.destination, t.departure_at, t.price_per_km, t.price_per_kg, t.status, t.created_at,
		u.id, u.name, u.email, u.location
		FROM transports t JOIN users u ON u.id = t.transporter_id WHERE 1=1`
	var args []any

	if f.Departure != "" {
		args = append(args, "%"+f.Departure+"%")
		query += " AND t.departure ILIKE $" + strconv.Itoa(len(args))
	}
	if f.Destination != "" {
		args = append(args, "%"+f.Destination+"%")
		query += " AND t.destination ILIKE $" + strconv.Itoa(len(args))
	}
	if f.TransporterID != "" {
		args = append(args, f.TransporterID)
		query += " AND t.transporter_id = $" + strconv.Itoa(len(args))
	}
	// Soonest departure first, unlike the created_at ordering elsewhere.
	query += " ORDER BY t.departure_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transports: %w", err)
	}
	defer rows.Close()

	var transports []entity.Transport
	for rows.Next() {
		var t entity.Transport
		var ref entity.UserRef
		if err := rows.Scan(&t.ID, &t.TransporterID, &t.VehicleType, &t.Capacity.WeightKg, &t.Capacity.VolumeM3, &t.Departure, &t.Destination, &t.DepartureAt, &t.PricePerKm, &t.PricePerKg, &t.Status, &t.CreatedAt,
			&ref.ID, &ref.Name, &ref.Email, &ref.Location); err != nil {
			return nil, fmt.Errorf("failed to scan transport: %w", err)
		}
		t.Transporter = &ref
		transports = append(transports, t)
	}
	return transports, rows.Err()
}

func (r *transportRepository) Update(ctx context.Context, t *entity.Transport, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transports SET vehicle_type = $1, capacity_weight_kg = $2, capacity_volume_m3 = $3, departure = $4, destination = $5, departure_at = $6, price_per_km = $7, price_per_kg = $8, status = $9
		 WHERE id = $10 AND transporter_id = $11`,
		t.VehicleType, t.Capacity.WeightKg, t.Capacity.VolumeM3, t.Departure, t.Destination, t.DepartureAt, t.PricePerKm, t.PricePerKg, t.Status, t.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transport: %w", err)
	}
	return requireRow(res)
}

func (r *transportRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transports WHERE id = $1 AND transporter_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete transport: %w", err)
	}
	return requireRow(res)
}
