package main

import (
	"context"
	"flag"

	"github.com/buildmart-next/internal/config"
	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/numeric"
	"github.com/buildmart-next/internal/provider"
)

// demoItems 演示用建材购物车
var demoItems = []struct {
	item     models.CartItem
	quantity int
}{
	{
		item: models.CartItem{
			ID:         "cement-opc53-d1",
			Name:       "OPC 53 Grade Cement",
			Price:      numeric.String("₹420"),
			Quantity:   numeric.Int(1),
			Unit:       "bag",
			DealerName: "Sharma Traders",
			DealerID:   "d1",
		},
		quantity: 20,
	},
	{
		item: models.CartItem{
			ID:         "tmt-fe500-12mm-d2",
			Name:       "TMT Bar Fe500 12mm",
			Price:      numeric.Float(68.5),
			Quantity:   numeric.Int(1),
			Unit:       "kg",
			Image:      "/images/tmt-bar.png",
			DealerName: "Steel Point",
			DealerID:   "d2",
		},
		quantity: 150,
	},
	{
		item: models.CartItem{
			ID:         "sand-river-d3",
			Name:       "River Sand",
			Price:      numeric.String("1,800"),
			Quantity:   numeric.Int(1),
			Unit:       "ton",
			DealerName: "Ganga Aggregates",
			DealerID:   "d3",
		},
		quantity: 4,
	},
}

func main() {
	var session string
	flag.StringVar(&session, "session", "demo", "写入的购物车会话")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	container := provider.NewContainer(cfg)
	cart, err := container.CartRegistry.Cart(context.Background(), session)
	if err != nil {
		stdLog.Fatalf("Failed to open cart %q: %v", session, err)
	}
	cart.ClearCart()
	for _, demo := range demoItems {
		cart.AddToCart(demo.item, demo.quantity)
		stdLog.Printf("Added %s x%d", demo.item.ID, demo.quantity)
	}
	stdLog.Printf("Seeded cart %q: %d units, total %s", session, cart.ItemCount(), cart.CartTotal().String())
}
