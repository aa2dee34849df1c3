package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMemoryGetReturnsCopy(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	value := []byte(`[1]`)
	if err := mem.Set(ctx, "cart", value); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value[1] = '2'

	got, found, err := mem.Get(ctx, "cart")
	if err != nil || !found {
		t.Fatalf("get failed: found=%v err=%v", found, err)
	}
	if string(got) != `[1]` {
		t.Fatalf("stored value should not alias caller buffer, got %s", got)
	}
}

func TestNamespacedIsolatesSessions(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	a := WithNamespace(mem, "a")
	b := WithNamespace(mem, "b")

	if err := a.Set(ctx, "cart", []byte(`["a"]`)); err != nil {
		t.Fatalf("set a failed: %v", err)
	}
	if _, found, _ := b.Get(ctx, "cart"); found {
		t.Fatalf("session b should not see session a's cart")
	}
	raw, found, _ := mem.Get(ctx, "a:cart")
	if !found || string(raw) != `["a"]` {
		t.Fatalf("expected physical key a:cart, got found=%v raw=%s", found, raw)
	}
	if WithNamespace(mem, " ") != Storage(mem) {
		t.Fatalf("empty namespace should return inner storage")
	}
}

func TestDatabaseStorageRoundTrip(t *testing.T) {
	dsn := fmt.Sprintf("file:storage_db_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	store, err := New("database", repository.NewStorageEntryRepository(db))
	if err != nil {
		t.Fatalf("new storage failed: %v", err)
	}
	ctx := context.Background()
	if _, found, err := store.Get(ctx, "cart"); err != nil || found {
		t.Fatalf("empty table should miss, found=%v err=%v", found, err)
	}
	if err := store.Set(ctx, "cart", []byte(`[{"id":"cement"}]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	raw, found, err := store.Get(ctx, "cart")
	if err != nil || !found || string(raw) != `[{"id":"cement"}]` {
		t.Fatalf("unexpected read back: raw=%s found=%v err=%v", raw, found, err)
	}
}

func TestRedisStorageRequiresClient(t *testing.T) {
	store := NewRedis()
	if _, _, err := store.Get(context.Background(), "cart"); !errors.Is(err, ErrRedisDisabled) {
		t.Fatalf("expected ErrRedisDisabled, got %v", err)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := New("s3", nil); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if _, err := New("database", nil); err == nil {
		t.Fatalf("expected error for database backend without repository")
	}
}
