//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/buildmart-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.StorageEntry{},
		&models.Notification{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)
	if err := db.AutoMigrate(cleanupModels...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresStorageEntryUpsert(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewStorageEntryRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "buyer-a:cart", `[{"id":"a"}]`); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.Upsert(ctx, "buyer-a:cart", `[]`); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	entry, err := repo.GetByKey(ctx, "buyer-a:cart")
	if err != nil || entry == nil {
		t.Fatalf("get entry failed: %v", err)
	}
	if entry.Value != `[]` {
		t.Fatalf("expected last write to win, got %s", entry.Value)
	}
}

func TestPostgresNotificationPrefixSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for _, number := range []string{"BM20260101000000123456", "BM20260101000000654321", "XX1"} {
		if err := repo.Create(ctx, &models.Notification{
			OrderID:     "1",
			OrderNumber: number,
			Event:       "order_created",
			Status:      "pending",
		}); err != nil {
			t.Fatalf("create notification failed: %v", err)
		}
	}

	items, total, err := repo.List(ctx, NotificationListFilter{OrderNumber: "bm2026", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 case-insensitive prefix matches, got total=%d len=%d", total, len(items))
	}
}
