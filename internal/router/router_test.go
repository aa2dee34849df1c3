package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buildmart-next/internal/config"
	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Decode(v)
	if err != nil {
		t.Fatalf("decode config failed: %v", err)
	}
	cfg.Cart.Storage = "memory"
	cfg.Payment.DelayMillis = 0
	logger.Init("debug", cfg.Log.ToLoggerOptions())
	return SetupRouter(cfg, provider.NewContainerWithDB(cfg, nil))
}

func TestSetupRouterCartSessionsAreIsolated(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"item":{"id":"sand-d3","name":"River Sand","price":"1800","quantity":1,"unit":"ton","dealerName":"D3","dealerId":"d3"},"quantity":3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(cartSessionHeader, "site-a")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("unexpected response %d headers=%v", w.Code, w.Header())
	}

	for _, tc := range []struct {
		session string
		count   int
	}{
		{session: "site-a", count: 3},
		{session: "site-b", count: 0},
	} {
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set(cartSessionHeader, tc.session)
		r.ServeHTTP(w, req)

		var resp struct {
			StatusCode int `json:"status_code"`
			Data       struct {
				Session   string `json:"session"`
				ItemCount int    `json:"item_count"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response failed: %v", err)
		}
		if resp.Data.Session != tc.session || resp.Data.ItemCount != tc.count {
			t.Fatalf("session %s: want count %d got %+v", tc.session, tc.count, resp.Data)
		}
	}
}

func TestSetupRouterUnknownOrder(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/404", nil)
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/warehouses", nil))

	var resp struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v body=%s", err, w.Body.String())
	}
	if w.Code != http.StatusOK || resp.StatusCode != 404 || resp.Msg == "" {
		t.Fatalf("unexpected unknown route response %d %+v", w.Code, resp)
	}
}
