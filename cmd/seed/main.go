package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/breezehub/backend/internal/domain/catalog"
	"github.com/breezehub/backend/internal/domain/identity"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/breezehub/backend/internal/domain/shared/valueobject"
	"github.com/breezehub/backend/internal/infrastructure/config"
	"github.com/breezehub/backend/internal/infrastructure/logger"
	"github.com/breezehub/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

type seedVariant struct {
	size  string
	color string
	price string
	stock int64
}

type seedProduct struct {
	name        string
	description string
	brand       string
	category    catalog.Category
	variants    []seedVariant
}

var seedProducts = []seedProduct{
	{
		name:        "Tower Fan T300",
		description: "Oscillating tower fan with three speed settings and a sleep timer",
		brand:       "Breeze",
		category:    catalog.CategoryFan,
		variants: []seedVariant{
			{size: "small", color: "white", price: "59.99", stock: 40},
			{size: "large", color: "white", price: "89.99", stock: 25},
			{size: "large", color: "black", price: "89.99", stock: 25},
		},
	},
	{
		name:        "Desk Fan D100",
		description: "Compact desk fan with a tilting head",
		brand:       "Breeze",
		category:    catalog.CategoryFan,
		variants: []seedVariant{
			{size: "small", color: "white", price: "24.99", stock: 80},
			{size: "small", color: "blue", price: "24.99", stock: 60},
		},
	},
	{
		name:        "Window AC W5000",
		description: "5000 BTU window air conditioner for rooms up to 150 sq ft",
		brand:       "CoolWave",
		category:    catalog.CategoryAC,
		variants: []seedVariant{
			{size: "medium", color: "white", price: "229.00", stock: 15},
		},
	},
	{
		name:        "Portable AC P8000",
		description: "8000 BTU portable air conditioner with dehumidifier mode",
		brand:       "CoolWave",
		category:    catalog.CategoryAC,
		variants: []seedVariant{
			{size: "large", color: "white", price: "349.00", stock: 10},
			{size: "large", color: "gray", price: "349.00", stock: 8},
		},
	},
}

func main() {
	var adminEmail, adminPassword string
	flag.StringVar(&adminEmail, "admin-email", "admin@example.com", "Email for the seeded admin account")
	flag.StringVar(&adminPassword, "admin-password", "", "Password for the seeded admin account (required)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if adminPassword == "" {
		log.Fatal("Admin password required. Usage: seed -admin-password <password>")
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx := context.Background()
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	if err := seedAdmin(ctx, userRepo, adminEmail, adminPassword, log); err != nil {
		log.Fatal("Failed to seed admin user", zap.Error(err))
	}

	if err := seedCatalog(ctx, productRepo, log); err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}

	log.Info("Seed completed")
}

func seedAdmin(ctx context.Context, repo identity.UserRepository, email, password string, log *zap.Logger) error {
	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.Info("Admin user already exists, skipping", zap.String("email", email))
		return nil
	}

	admin, err := identity.NewApprovedUser("Admin", email, password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := repo.Save(ctx, admin); err != nil {
		return err
	}
	log.Info("Admin user created", zap.String("email", email))
	return nil
}

func seedCatalog(ctx context.Context, repo catalog.ProductRepository, log *zap.Logger) error {
	existing, err := repo.Count(ctx, shared.DefaultFilter())
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing > 0 {
		log.Info("Catalog already populated, skipping", zap.Int64("products", existing))
		return nil
	}

	for _, sp := range seedProducts {
		product, err := catalog.NewProduct(sp.name, sp.description, sp.brand, sp.category)
		if err != nil {
			return err
		}
		for _, sv := range sp.variants {
			price, err := valueobject.NewMoneyUSDFromString(sv.price)
			if err != nil {
				return err
			}
			if _, err := product.AddVariant(sv.size, sv.color, price, sv.stock); err != nil {
				return err
			}
		}
		product.ClearDomainEvents()
		if err := repo.Save(ctx, product); err != nil {
			return err
		}
		log.Info("Product seeded",
			zap.String("name", sp.name),
			zap.Int("variants", len(sp.variants)),
		)
	}
	return nil
}
