package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
)

// seedDemo loads a demo farmer and a handful of produce listings so a fresh
// install has something to browse. Idempotent: reruns are no-ops.
func seedDemo(ctx context.Context, db *sql.DB, products repository.ProductRepository) error {
	const farmerID = "demo-farmer-001"

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, phone, location, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (id) DO NOTHING`,
		farmerID, "Demo Farmer", "farmer@example.com", string(hash), entity.RoleFarmer, "", "Nashik", time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to seed demo farmer: %w", err)
	}

	demo := []entity.Product{
		{ID: "prod-001", FarmerID: farmerID, Name: "Alphonso Mangoes", Description: "Tree-ripened, hand picked.", Category: "fruits", Quality: entity.QualityPremium, Price: 120, Unit: "kg", Quantity: 200, IsAvailable: true, Location: "Ratnagiri", CreatedAt: time.Now()},
		{ID: "prod-002", FarmerID: farmerID, Name: "Red Onions", Description: "Fresh harvest, graded.", Category: "vegetables", Quality: entity.QualityStandard, Price: 18, Unit: "kg", Quantity: 5000, IsAvailable: true, Location: "Nashik", CreatedAt: time.Now()},
		{ID: "prod-003", FarmerID: farmerID, Name: "Basmati Rice", Description: "Aged 12 months.", Category: "grains", Quality: entity.QualityPremium, Price: 85, Unit: "kg", Quantity: 1200, IsAvailable: true, Location: "Karnal", CreatedAt: time.Now()},
	}
	if err := products.Seed(ctx, demo); err != nil {
		return err
	}

	slog.Info("Seeded demo data", "products", len(demo))
	return nil
}
