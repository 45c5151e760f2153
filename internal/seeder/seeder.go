package seeder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/Additional-Code/meridian/internal/database"
	"github.com/Additional-Code/meridian/internal/entity"
)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Products seeds sample catalog rows if they are missing. Orders are
// never seeded; they must go through the pricing engine.
func (s *Seeder) Products(ctx context.Context) error {
	now := time.Now().UTC()
	samples := []entity.Product{
		{Name: "Aurora Headphones", Price: decimal.NewFromFloat(129.90), StockQuantity: 40, InStock: true, CreatedAt: now, UpdatedAt: now},
		{Name: "Basalt Keyboard", Price: decimal.NewFromFloat(89.00), StockQuantity: 25, InStock: true, CreatedAt: now, UpdatedAt: now},
		{Name: "Cirrus Monitor 27", Price: decimal.NewFromFloat(349.50), StockQuantity: 10, InStock: true, CreatedAt: now, UpdatedAt: now},
	}

	for _, sample := range samples {
		product := sample
		_, err := s.db.NewInsert().Model(&product).
			On("CONFLICT (name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded products", zap.Int("count", len(samples)))
	}
	return nil
}
