package provider

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/buildmart-next/internal/config"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/storage"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Decode(v)
	if err != nil {
		t.Fatalf("decode config failed: %v", err)
	}
	return cfg
}

func TestNewContainerWithDatabaseStorage(t *testing.T) {
	dsn := fmt.Sprintf("file:provider_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StorageEntry{}, &models.Notification{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	c := NewContainerWithDB(testConfig(t), db)
	if _, ok := c.CartStorage.(*storage.Database); !ok {
		t.Fatalf("expected database cart storage, got %T", c.CartStorage)
	}
	if c.OrderStore == nil || c.PaymentService == nil || c.CheckoutService == nil || c.NotificationService == nil {
		t.Fatalf("container not fully wired: %+v", c)
	}
	if c.QueueClient.Enabled() {
		t.Fatalf("queue should be disabled by default")
	}

	cart, err := c.CartRegistry.Cart(context.Background(), "")
	if err != nil {
		t.Fatalf("cart failed: %v", err)
	}
	if cart.ItemCount() != 0 {
		t.Fatalf("new cart should be empty")
	}
}

func TestNewContainerFallsBackToMemoryWithoutDB(t *testing.T) {
	c := NewContainerWithDB(testConfig(t), nil)
	if _, ok := c.CartStorage.(*storage.Memory); !ok {
		t.Fatalf("expected memory fallback, got %T", c.CartStorage)
	}
	if c.NotificationService != nil {
		t.Fatalf("notification service requires a database")
	}
}
