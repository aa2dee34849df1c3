package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/numeric"
	"github.com/buildmart-next/internal/storage"
)

func newTestCart(t *testing.T) (*CartStore, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return NewCartStore(context.Background(), mem, constants.CartStorageKey), mem
}

func cementItem() models.CartItem {
	return models.CartItem{
		ID:         "cement-opc53-d1",
		Name:       "OPC 53 Cement",
		Price:      numeric.String("420"),
		Quantity:   numeric.Int(1),
		Unit:       "bag",
		DealerName: "Sharma Traders",
		DealerID:   "d1",
	}
}

func TestAddToCartMergesDuplicateID(t *testing.T) {
	cart, _ := newTestCart(t)
	item := cementItem()

	cart.AddToCart(item, 1)
	cart.AddToCart(item, 1)

	items := cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected one entry, got %d", len(items))
	}
	if qty, _ := numeric.ParseQuantity(items[0].Quantity); qty != 2 {
		t.Fatalf("expected quantity 2, got %d", qty)
	}
}

func TestAddToCartKeepsInsertionOrder(t *testing.T) {
	cart, _ := newTestCart(t)
	first := cementItem()
	second := cementItem()
	second.ID = "tmt-bar-12mm-d2"
	third := cementItem()
	third.ID = "sand-river-d3"

	cart.AddToCart(first, 1)
	cart.AddToCart(second, 3)
	cart.AddToCart(third, 0)
	cart.AddToCart(first, 5)

	items := cart.Items()
	got := []string{items[0].ID, items[1].ID, items[2].ID}
	want := []string{first.ID, second.ID, third.ID}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order want %v got %v", want, got)
	}
	if cart.ItemCount() != 6+3+1 {
		t.Fatalf("unexpected item count %d", cart.ItemCount())
	}
}

func TestCartTotalSanitizesStringInputs(t *testing.T) {
	cart, _ := newTestCart(t)
	cart.AddToCart(models.CartItem{ID: "a", Price: numeric.String("100")}, 2)
	cart.AddToCart(models.CartItem{ID: "b", Price: numeric.String("₹50.5")}, 1)
	if !cart.UpdateQuantity("b", numeric.String("3")) {
		t.Fatalf("string quantity should be accepted")
	}

	total := cart.CartTotal()
	if total.String() != "351.50" {
		t.Fatalf("expected 351.50, got %s", total.String())
	}
}

func TestCartTotalSkipsUnparsableItems(t *testing.T) {
	cart, mem := newTestCart(t)
	raw := `[{"id":"ok","name":"Bricks","price":"8","quantity":100,"unit":"pc","dealerName":"X","dealerId":"1"},` +
		`{"id":"bad-price","name":"?","price":"call us","quantity":2,"unit":"","dealerName":"","dealerId":""},` +
		`{"id":"bad-qty","name":"?","price":10,"quantity":"lots","unit":"","dealerName":"","dealerId":""},` +
		`{"id":"neg","name":"?","price":10,"quantity":-4,"unit":"","dealerName":"","dealerId":""}]`
	if err := mem.Set(context.Background(), constants.CartStorageKey, []byte(raw)); err != nil {
		t.Fatalf("seed storage failed: %v", err)
	}
	cart = NewCartStore(context.Background(), mem, constants.CartStorageKey)

	if got := cart.CartTotal().String(); got != "800.00" {
		t.Fatalf("expected 800.00, got %s", got)
	}
	if got := cart.ItemCount(); got != 102 {
		t.Fatalf("expected item count 102, got %d", got)
	}
}

func TestUpdateQuantityIgnoresInvalidInput(t *testing.T) {
	cart, _ := newTestCart(t)
	item := cementItem()
	cart.AddToCart(item, 4)

	for _, input := range []numeric.Value{numeric.Int(0), numeric.Int(-5), numeric.String("abc"), {}} {
		if cart.UpdateQuantity(item.ID, input) {
			t.Fatalf("update with %q should be ignored", input.Raw())
		}
	}
	if qty, _ := numeric.ParseQuantity(cart.Items()[0].Quantity); qty != 4 {
		t.Fatalf("quantity should stay 4, got %d", qty)
	}

	if !cart.UpdateQuantity(item.ID, numeric.Float(7.9)) {
		t.Fatalf("valid update rejected")
	}
	if qty, _ := numeric.ParseQuantity(cart.Items()[0].Quantity); qty != 7 {
		t.Fatalf("quantity should floor to 7, got %d", qty)
	}
	if cart.UpdateQuantity("missing", numeric.Int(2)) {
		t.Fatalf("update on missing id should be a no-op")
	}
}

func TestRemoveAndClearCart(t *testing.T) {
	cart, _ := newTestCart(t)
	item := cementItem()
	cart.AddToCart(item, 1)

	if cart.RemoveFromCart("missing") {
		t.Fatalf("removing a missing id should report false")
	}
	if !cart.IsItemInCart(item.ID) {
		t.Fatalf("item should be in cart")
	}
	if !cart.RemoveFromCart(item.ID) || cart.IsItemInCart(item.ID) {
		t.Fatalf("item should be removed")
	}

	cart.AddToCart(item, 2)
	cart.ClearCart()
	if len(cart.Items()) != 0 || cart.ItemCount() != 0 {
		t.Fatalf("cart should be empty after clear")
	}
}

func TestCartRoundTripsThroughStorage(t *testing.T) {
	cart, mem := newTestCart(t)
	a := cementItem()
	b := models.CartItem{
		ID:         "tile-vitrified-d9",
		Name:       "Vitrified Tile 2x2",
		Price:      numeric.String("₹55.75"),
		Unit:       "sqft",
		Image:      "/img/tile.png",
		DealerName: "Tile Hub",
		DealerID:   "d9",
	}
	cart.AddToCart(a, 2)
	cart.AddToCart(b, 40)
	cart.UpdateQuantity(a.ID, numeric.String("3"))
	before := cart.Items()

	reloaded := NewCartStore(context.Background(), mem, constants.CartStorageKey)
	after := reloaded.Items()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("reloaded cart differs\nbefore=%+v\nafter=%+v", before, after)
	}

	raw, _, _ := mem.Get(context.Background(), constants.CartStorageKey)
	var shape []map[string]interface{}
	if err := json.Unmarshal(raw, &shape); err != nil {
		t.Fatalf("persisted value is not a JSON array: %v", err)
	}
	for _, key := range []string{"id", "name", "price", "quantity", "unit", "dealerName", "dealerId"} {
		if _, ok := shape[0][key]; !ok {
			t.Fatalf("persisted item missing key %s: %s", key, raw)
		}
	}
	if _, ok := shape[0]["image"]; ok {
		t.Fatalf("empty image should be omitted: %s", raw)
	}
	if shape[1]["price"] != "₹55.75" {
		t.Fatalf("price should keep its original string form, got %v", shape[1]["price"])
	}
}

func TestCartEmptyPersistsAsArray(t *testing.T) {
	cart, mem := newTestCart(t)
	cart.AddToCart(cementItem(), 1)
	cart.ClearCart()
	raw, found, _ := mem.Get(context.Background(), constants.CartStorageKey)
	if !found || string(raw) != "[]" {
		t.Fatalf("expected [] in storage, got found=%v raw=%s", found, raw)
	}
}

func TestCartLoadIgnoresCorruptPayload(t *testing.T) {
	mem := storage.NewMemory()
	_ = mem.Set(context.Background(), constants.CartStorageKey, []byte(`{"not":"an array"}`))
	cart := NewCartStore(context.Background(), mem, constants.CartStorageKey)
	if len(cart.Items()) != 0 {
		t.Fatalf("corrupt payload should load as empty cart")
	}
}

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}

func (failingStorage) Set(context.Context, string, []byte) error {
	return errors.New("backend down")
}

func TestCartStorageFailuresAreAbsorbed(t *testing.T) {
	cart := NewCartStore(context.Background(), failingStorage{}, "")
	cart.AddToCart(cementItem(), 2)
	if cart.ItemCount() != 2 {
		t.Fatalf("in-memory state should survive storage failures")
	}
}

func TestUninitializedCartPanics(t *testing.T) {
	expectStoreNotInitialized(t, func() {
		var cart *CartStore
		cart.ItemCount()
	})
	expectStoreNotInitialized(t, func() {
		var cart CartStore
		cart.AddToCart(cementItem(), 1)
	})
}

func expectStoreNotInitialized(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrStoreNotInitialized) {
			t.Fatalf("expected ErrStoreNotInitialized panic, got %v", r)
		}
	}()
	fn()
}

func TestCartRegistryIsolatesSessions(t *testing.T) {
	mem := storage.NewMemory()
	registry := NewCartRegistry(mem, constants.CartStorageKey)
	ctx := context.Background()

	a, err := registry.Cart(ctx, "buyer-a")
	if err != nil {
		t.Fatalf("cart a failed: %v", err)
	}
	b, err := registry.Cart(ctx, "")
	if err != nil {
		t.Fatalf("default cart failed: %v", err)
	}
	a.AddToCart(cementItem(), 1)
	if b.ItemCount() != 0 {
		t.Fatalf("default session should not see buyer-a's items")
	}
	again, _ := registry.Cart(ctx, " buyer-a ")
	if again != a {
		t.Fatalf("registry should reuse the same cart for a session")
	}
	if _, found, _ := mem.Get(ctx, "buyer-a:cart"); !found {
		t.Fatalf("expected namespaced storage key buyer-a:cart")
	}
	if _, err := registry.Cart(ctx, "bad session!"); !errors.Is(err, ErrCartSessionInvalid) {
		t.Fatalf("expected ErrCartSessionInvalid, got %v", err)
	}
}

func TestTakeItemsReturnsSnapshotAndClears(t *testing.T) {
	cart, mem := newTestCart(t)
	cart.AddToCart(cementItem(), 2)

	items, total := cart.TakeItems()
	if len(items) != 1 || total.String() != "840.00" {
		t.Fatalf("unexpected snapshot: %d items, total %s", len(items), total)
	}
	if cart.ItemCount() != 0 {
		t.Fatalf("cart should be empty after take")
	}
	raw, _, _ := mem.Get(context.Background(), constants.CartStorageKey)
	if string(raw) != "[]" {
		t.Fatalf("expected cleared cart persisted, got %s", raw)
	}
	if again, _ := cart.TakeItems(); len(again) != 0 {
		t.Fatalf("second take should be empty, got %d", len(again))
	}
}

func TestAddToCartSaturatesLargeQuantities(t *testing.T) {
	cart, _ := newTestCart(t)
	item := cementItem()
	item.Price = numeric.Int(1)

	cart.AddToCart(item, math.MaxInt32)
	cart.AddToCart(item, 1)
	if got := cart.CartTotal().String(); got != "2147483648.00" {
		t.Fatalf("expected merged quantity past int32, got total %s", got)
	}

	cart.AddToCart(item, numeric.MaxQuantity)
	qty, ok := numeric.ParseQuantity(cart.Items()[0].Quantity)
	if !ok || qty != numeric.MaxQuantity {
		t.Fatalf("expected saturated quantity %d, got %d (ok=%v)", numeric.MaxQuantity, qty, ok)
	}
	if cart.ItemCount() != numeric.MaxQuantity {
		t.Fatalf("saturated quantity should still count, got %d", cart.ItemCount())
	}
}
