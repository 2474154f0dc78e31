package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/infrastructure/config"
	"github.com/smartbill/backend/internal/infrastructure/logger"
	"github.com/smartbill/backend/internal/infrastructure/persistence"
)

func main() {
	var (
		seed     bool
		logLevel string
	)
	flag.BoolVar(&seed, "seed", false, "Insert demo catalog data after migrating")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	log.Info("Running schema migration",
		zap.String("database", cfg.Database.DBName),
		zap.String("host", cfg.Database.Host),
	)
	if err := db.Migrate(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Schema migration completed")

	if seed {
		if err := seedCatalog(db, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
	}
}

type seedProduct struct {
	name      string
	sku       string
	category  string
	unit      catalog.Unit
	purchase  int64
	selling   int64
	wholesale int64
	stock     int
	threshold int
}

// seedCatalog inserts a small demo catalog. Existing SKUs are skipped so
// reruns are safe.
func seedCatalog(db *persistence.Database, log *zap.Logger) error {
	ctx := context.Background()
	repo := persistence.NewGormProductRepository(db.DB)

	seeds := []seedProduct{
		{"Gel Pen Blue", "PEN-GEL-BL", "Pens", catalog.UnitPiece, 5, 10, 8, 200, 20},
		{"Ball Pen Black", "PEN-BALL-BK", "Pens", catalog.UnitPiece, 3, 7, 5, 300, 30},
		{"A4 Notebook 200pg", "NB-A4-200", "Notebooks", catalog.UnitPiece, 40, 80, 65, 120, 15},
		{"Spiral Notepad", "NB-SPIRAL", "Notebooks", catalog.UnitPiece, 25, 50, 40, 80, 10},
		{"Stapler No.10", "ST-10", "Office Supplies", catalog.UnitPiece, 60, 120, 100, 40, 5},
		{"Staple Pins Box", "ST-PINS", "Office Supplies", catalog.UnitBox, 15, 30, 25, 150, 20},
		{"Pencil HB Pack", "PCL-HB-PK", "Pencils", catalog.UnitPack, 20, 40, 32, 90, 10},
		{"Eraser Dust-Free", "ER-DF", "Pencils", catalog.UnitPiece, 4, 8, 6, 250, 25},
		{"Highlighter Set", "HL-SET", "Markers", catalog.UnitPack, 55, 110, 90, 60, 8},
		{"Whiteboard Marker", "WB-MARK", "Markers", catalog.UnitPiece, 18, 35, 28, 100, 12},
	}

	inserted := 0
	for _, s := range seeds {
		if _, err := repo.FindBySKU(ctx, s.sku); err == nil {
			continue
		}

		product, err := catalog.NewProduct(s.name, s.sku, s.category, s.unit)
		if err != nil {
			return err
		}
		if err := product.SetPrices(
			decimal.NewFromInt(s.purchase),
			decimal.NewFromInt(s.selling),
			decimal.NewFromInt(s.wholesale),
		); err != nil {
			return err
		}
		if err := product.SetStock(s.stock); err != nil {
			return err
		}
		if err := product.SetLowStockThreshold(s.threshold); err != nil {
			return err
		}
		product.ClearDomainEvents()

		if err := repo.Save(ctx, product); err != nil {
			return err
		}
		inserted++
	}

	log.Info("Demo catalog seeded",
		zap.Int("inserted", inserted),
		zap.Int("skipped", len(seeds)-inserted),
	)
	return nil
}
