package alpaca

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/reinvestor/broker"
	"github.com/rustyeddy/reinvestor/market"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New("key-id", "secret", srv.URL)
}

func TestGetAccount(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/account", r.URL.Path)
		assert.Equal(t, "key-id", r.Header.Get("APCA-API-KEY-ID"))
		assert.Equal(t, "secret", r.Header.Get("APCA-API-SECRET-KEY"))

		w.Write([]byte(`{
			"id": "acct-1",
			"currency": "USD",
			"cash": "250.50",
			"buying_power": "1000.00",
			"equity": "1200.75"
		}`))
	})

	acct, err := c.GetAccount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "acct-1", acct.ID)
	assert.Equal(t, "USD", acct.Currency)
	assert.Equal(t, 250.50, acct.Cash)
	assert.Equal(t, 1000.00, acct.BuyingPower)
	assert.Equal(t, 1200.75, acct.Equity)
}

func TestListPositions(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/positions", r.URL.Path)
		w.Write([]byte(`[
			{"symbol": "XYZ", "qty": "2", "avg_entry_price": "100.00", "current_price": "106.00"},
			{"symbol": "VIG", "qty": "10.5", "avg_entry_price": "80.00", "current_price": "82.00"}
		]`))
	})

	positions, err := c.ListPositions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 2)

	assert.Equal(t, market.Position{Symbol: "XYZ", Qty: 2, AvgEntryPrice: 100, CurrentPrice: 106}, positions[0])
	assert.Equal(t, 10.5, positions[1].Qty)
}

func TestGetPositionNotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code": 40410000, "message": "position does not exist"}`))
	})

	_, err := c.GetPosition(context.Background(), "XYZ")
	assert.ErrorIs(t, err, broker.ErrNoPosition)
}

func TestListOpenOrdersFiltersSide(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/orders", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("status"))
		assert.Equal(t, "ABC", r.URL.Query().Get("symbols"))

		w.Write([]byte(`[
			{"id": "o1", "symbol": "ABC", "side": "buy", "status": "open", "submitted_at": "2025-06-02T14:30:00Z"},
			{"id": "o2", "symbol": "ABC", "side": "sell", "status": "open", "submitted_at": "2025-06-02T14:31:00Z"}
		]`))
	})

	orders, err := c.ListOpenOrders(context.Background(), "ABC", market.Buy)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, market.Buy, orders[0].Side)
}

func TestSubmitMarketBuyUsesNotional(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/orders", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ABC", body["symbol"])
		assert.Equal(t, "buy", body["side"])
		assert.Equal(t, "market", body["type"])
		assert.Equal(t, "day", body["time_in_force"])
		assert.Equal(t, "50.00", body["notional"])
		assert.NotContains(t, body, "qty")

		w.Write([]byte(`{"id": "ord-1", "symbol": "ABC", "side": "buy", "status": "accepted"}`))
	})

	order, err := c.SubmitMarketOrder(context.Background(), broker.MarketOrderRequest{
		Symbol:   "ABC",
		Side:     market.Buy,
		Notional: 50.00,
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)
}

func TestSubmitMarketSellUsesQty(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sell", body["side"])
		assert.Equal(t, "2.5", body["qty"])
		assert.NotContains(t, body, "notional")

		w.Write([]byte(`{"id": "ord-2", "symbol": "XYZ", "side": "sell", "status": "accepted"}`))
	})

	order, err := c.SubmitMarketOrder(context.Background(), broker.MarketOrderRequest{
		Symbol: "XYZ",
		Side:   market.Sell,
		Qty:    2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-2", order.ID)
}

func TestSubmitOrderSurfacesAPIError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code": 40310000, "message": "insufficient buying power"}`))
	})

	_, err := c.SubmitMarketOrder(context.Background(), broker.MarketOrderRequest{
		Symbol:   "ABC",
		Side:     market.Buy,
		Notional: 50.00,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient buying power")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("APCA_API_KEY_ID", "k")
	t.Setenv("APCA_API_SECRET_KEY", "s")
	t.Setenv("APCA_API_BASE_URL", PaperURL)

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, PaperURL, c.baseURL)
}

func TestFromEnvMissingCredentials(t *testing.T) {
	t.Setenv("APCA_API_KEY_ID", "")
	t.Setenv("APCA_API_SECRET_KEY", "")

	_, err := FromEnv()
	assert.Error(t, err)
}
