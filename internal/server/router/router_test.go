package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appleprotools/resale/internal/catalog"
	"github.com/appleprotools/resale/internal/config"
	"github.com/appleprotools/resale/internal/domain/models"
	"github.com/appleprotools/resale/internal/server/handlers"
	"github.com/appleprotools/resale/internal/service/advisor"
	"github.com/appleprotools/resale/internal/service/pricing"
	"github.com/appleprotools/resale/internal/service/sales"
	"github.com/appleprotools/resale/internal/service/tradein"
	"github.com/appleprotools/resale/internal/store"
)

type stubMessaging struct {
	outbound []models.OutboundMessageRequest
}

func (s *stubMessaging) VerifyWebhookToken(mode, token, challenge string) (string, error) {
	if token != "verify" {
		return "", assert.AnError
	}
	return challenge, nil
}

func (s *stubMessaging) HandleWebhook(context.Context, models.WebhookPayload) error { return nil }

func (s *stubMessaging) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	s.outbound = append(s.outbound, req)
	return nil
}

func newTestServer(t *testing.T, auth config.AuthConfig) (http.Handler, *stubMessaging) {
	t.Helper()

	prices := catalog.PriceTable{
		"X":       {"a": 100, "b": 200},
		"Used":    {"a": 1000},
		"Desired": {"a": 2000},
	}
	repairs := catalog.RepairTable{"bateria ruim": 350, "tela trincada": 450}
	inv := store.NewInventory([]models.InventoryLot{
		{Model: "X", Quantity: 1, UnitCost: 90},
		{Model: "Desired", Quantity: 4, UnitCost: 1500},
	})

	pricingSvc := pricing.NewService(prices)
	dashboard := handlers.NewDashboardHandler(
		pricingSvc,
		tradein.NewService(pricingSvc, repairs),
		advisor.NewService(inv, pricingSvc, nil),
		sales.NewService(inv, store.NewLedger(), nil, nil),
		inv,
		repairs,
		nil,
	)

	msg := &stubMessaging{}
	return New(dashboard, handlers.NewMessagingHandler(msg, nil), auth, nil), msg
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t, config.AuthConfig{})
	rec := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBasicAuth(t *testing.T) {
	h, _ := newTestServer(t, config.AuthConfig{User: "admin", Password: "secret"})

	rec := do(t, h, http.MethodGet, "/api/v1/models", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
	req.SetBasicAuth("admin", "secret")
	ok := httptest.NewRecorder()
	h.ServeHTTP(ok, req)
	assert.Equal(t, http.StatusOK, ok.Code)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", nil).Code)
}

func TestQuoteAndForecast(t *testing.T) {
	h, _ := newTestServer(t, config.AuthConfig{})

	rec := do(t, h, http.MethodGet, "/api/v1/models/X/price", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var quote models.Quote
	decode(t, rec, &quote)
	assert.Equal(t, 150.0, quote.Average)
	assert.Len(t, quote.Sources, 2)

	rec = do(t, h, http.MethodGet, "/api/v1/models/X/forecast", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Forecast map[string]float64 `json:"forecast"`
	}
	decode(t, rec, &body)
	assert.InDelta(t, 147.0, body.Forecast["7d"], 1e-9)
	assert.InDelta(t, 142.5, body.Forecast["30d"], 1e-9)
	assert.InDelta(t, 138.0, body.Forecast["60d"], 1e-9)
}

func TestMargin(t *testing.T) {
	h, _ := newTestServer(t, config.AuthConfig{})

	rec := do(t, h, http.MethodGet, "/api/v1/margin?model=X&cost=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var margin models.MarginResponse
	decode(t, rec, &margin)
	assert.Equal(t, 50.0, margin.Margin)

	rec = do(t, h, http.MethodGet, "/api/v1/margin?model=X&cost=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &margin)
	assert.Zero(t, margin.Margin)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/margin?model=X&cost=abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/margin?cost=10", nil).Code)
}

func TestMargin_NonFiniteCostRejected(t *testing.T) {
	h, _ := newTestServer(t, config.AuthConfig{})

	for _, cost := range []string{"NaN", "Inf", "-Inf", "1e400"} {
		t.Run(cost, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/v1/margin?model=X&cost="+url.QueryEscape(cost), nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "finite")
		})
	}
}

func TestTradeIn(t *testing.T) {
	h, _ := newTestServer(t, config.AuthConfig{})

	rec := do(t, h, http.MethodPost, "/api/v1/trade-in", models.TradeInRequest{
		DesiredModel: "Desired",
		UsedModel:    "Used",
		Damages:      []string{"bateria ruim"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var sim models.TradeInSimulation
	decode(t, rec, &sim)
	assert.Equal(t, 650.0, sim.TradeInValue)
	assert.Equal(t, 1350.0, sim.AmountDue)
	assert.Equal(t, 350.0, sim.RepairDeduction)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/trade-in", map[string]string{"used_model": "Used"}).Code)
}

func TestSaleLifecycle(t *testing.T) {
	h, _ := newTestServer(t, config.AuthConfig{})

	var insight struct {
		Insights []models.Insight `json:"insights"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/v1/inventory/X/insight", nil), &insight)
	require.Len(t, insight.Insights, 1)
	assert.Equal(t, models.InsightLastUnit, insight.Insights[0].Code)

	sale := models.SaleRequest{Model: "X", Customer: "Ana", Vendor: "Carlos", WarrantyStart: "2026-10-18"}
	rec := do(t, h, http.MethodPost, "/api/v1/sales", sale)
	require.Equal(t, http.StatusCreated, rec.Code)
	var record models.SaleRecord
	decode(t, rec, &record)
	assert.Equal(t, "Ana", record.Customer)
	assert.Equal(t, 2026, record.WarrantyStart.Year())

	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/api/v1/sales", sale).Code)

	decode(t, do(t, h, http.MethodGet, "/api/v1/inventory/X/insight", nil), &insight)
	assert.Equal(t, models.InsightModerateStock, insight.Insights[0].Code)

	var list struct {
		Sales []models.SaleRecord `json:"sales"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/v1/sales?customer=Ana", nil), &list)
	assert.Len(t, list.Sales, 1)
	decode(t, do(t, h, http.MethodGet, "/api/v1/sales?customer=ana", nil), &list)
	assert.Empty(t, list.Sales)

	var customers struct {
		Customers []models.CustomerRecord `json:"customers"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/v1/customers", nil), &customers)
	assert.Len(t, customers.Customers, 1)

	var stale struct {
		Sales []models.SaleRecord `json:"sales"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/v1/crm/stale?as_of=2099-01-01", nil), &stale)
	assert.Len(t, stale.Sales, 1)
	decode(t, do(t, h, http.MethodGet, "/api/v1/crm/stale", nil), &stale)
	assert.Empty(t, stale.Sales)
}

func TestSaleValidation(t *testing.T) {
	h, _ := newTestServer(t, config.AuthConfig{})

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/sales", map[string]string{"model": "X"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/sales", models.SaleRequest{
		Model: "X", Customer: "Ana", Vendor: "Carlos", WarrantyStart: "18/10/2026",
	}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/crm/stale?as_of=yesterday", nil).Code)
}

func TestInventoryViews(t *testing.T) {
	h, _ := newTestServer(t, config.AuthConfig{})

	var lots struct {
		Lots []models.InventoryLot `json:"lots"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/v1/inventory", nil), &lots)
	assert.Len(t, lots.Lots, 2)

	var bundles struct {
		Bundles []models.Bundle `json:"bundles"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/v1/bundles", nil), &bundles)
	require.Len(t, bundles.Bundles, 1)
	assert.Equal(t, "Desired + screen protector + case", bundles.Bundles[0].Label)
	assert.Equal(t, 2050.0, bundles.Bundles[0].SuggestedPrice)

	var similar struct {
		Similar []string `json:"similar"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/v1/inventory/"+url.PathEscape("Phone X")+"/similar", nil), &similar)
	assert.Equal(t, []string{"X"}, similar.Similar)

	var repairs struct {
		Repairs map[string]float64 `json:"repairs"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/v1/repairs", nil), &repairs)
	assert.Equal(t, 350.0, repairs.Repairs["bateria ruim"])
}

func TestWebhookRoutes(t *testing.T) {
	h, msg := newTestServer(t, config.AuthConfig{})

	rec := do(t, h, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=verify&hub.challenge=42", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=nope&hub.challenge=42", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/webhook", models.WebhookPayload{}).Code)

	rec = do(t, h, http.MethodPost, "/api/v1/send-message", models.OutboundMessageRequest{To: "5511", Message: "oi"})
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Len(t, msg.outbound, 1)
}
