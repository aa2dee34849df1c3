package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/numeric"
	"github.com/buildmart-next/internal/storage"
)

func TestCheckoutCopiesCartIntoOrder(t *testing.T) {
	registry := NewCartRegistry(storage.NewMemory(), constants.CartStorageKey)
	orders := newTestOrderStore(nil)
	checkout := NewCheckoutService(registry, orders, 50, 0.18)
	ctx := context.Background()

	cart, err := registry.Cart(ctx, "buyer-1")
	if err != nil {
		t.Fatalf("cart failed: %v", err)
	}
	cart.AddToCart(models.CartItem{ID: "a", Name: "Cement", Price: numeric.String("100")}, 2)
	cart.AddToCart(models.CartItem{ID: "b", Name: "Sand", Price: numeric.String("₹50.5")}, 3)

	order, err := checkout.Checkout(ctx, "buyer-1", CheckoutInput{Address: "12 MG Road", Phone: "9876543210"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Subtotal.String() != "351.50" || order.Tax.String() != "63.27" {
		t.Fatalf("unexpected subtotal/tax: %s %s", order.Subtotal, order.Tax)
	}
	if order.DeliveryCharge.String() != "50.00" || order.Total.String() != "464.77" {
		t.Fatalf("unexpected delivery/total: %s %s", order.DeliveryCharge, order.Total)
	}
	if !order.DueAmount.Equal(order.Total.Decimal) {
		t.Fatalf("due amount should start at total")
	}
	if order.ShippingAddress != "12 MG Road" {
		t.Fatalf("shipping address should default to address, got %q", order.ShippingAddress)
	}
	if len(order.Items) != 2 || order.Items[1].Name != "Sand" {
		t.Fatalf("items not copied: %+v", order.Items)
	}
	if cart.ItemCount() != 0 {
		t.Fatalf("cart should be cleared after checkout")
	}

	cart.AddToCart(models.CartItem{ID: "c", Name: "Bricks", Price: numeric.Int(8)}, 500)
	stored, _ := orders.GetOrder(order.ID)
	if len(stored.Items) != 2 {
		t.Fatalf("later cart changes must not affect the order")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	registry := NewCartRegistry(storage.NewMemory(), constants.CartStorageKey)
	checkout := NewCheckoutService(registry, newTestOrderStore(nil), 0, 0.18)

	if _, err := checkout.Checkout(context.Background(), "", CheckoutInput{}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

type slowNotifier struct {
	recordingNotifier
}

func (n *slowNotifier) OrderCreated(order models.Order) {
	time.Sleep(2 * time.Millisecond)
	n.recordingNotifier.OrderCreated(order)
}

func TestCheckoutConcurrentRequestsCreateOneOrder(t *testing.T) {
	for round := 0; round < 20; round++ {
		registry := NewCartRegistry(storage.NewMemory(), constants.CartStorageKey)
		orders := newTestOrderStore(&slowNotifier{})
		checkout := NewCheckoutService(registry, orders, 0, 0.18)
		ctx := context.Background()

		cart, err := registry.Cart(ctx, "buyer-1")
		if err != nil {
			t.Fatalf("cart failed: %v", err)
		}
		cart.AddToCart(models.CartItem{ID: "a", Name: "Cement", Price: numeric.Int(420)}, 1)

		var wg sync.WaitGroup
		var mu sync.Mutex
		succeeded, empty := 0, 0
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := checkout.Checkout(ctx, "buyer-1", CheckoutInput{Address: "12 MG Road"})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, ErrCartEmpty):
					empty++
				default:
					t.Errorf("unexpected checkout error: %v", err)
				}
			}()
		}
		wg.Wait()

		if succeeded != 1 || empty != 7 {
			t.Fatalf("round %d: expected 1 order and 7 empty carts, got %d and %d", round, succeeded, empty)
		}
		if len(orders.Orders()) != 1 {
			t.Fatalf("round %d: expected one stored order, got %d", round, len(orders.Orders()))
		}
	}
}
