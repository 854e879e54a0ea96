// Package alpaca implements broker.Broker against the Alpaca v2
// trading API.
package alpaca

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/reinvestor/broker"
	"github.com/rustyeddy/reinvestor/market"
)

const (
	// LiveURL is Alpaca's live trading environment.
	LiveURL = "https://api.alpaca.markets"
	// PaperURL is Alpaca's paper trading environment.
	PaperURL = "https://paper-api.alpaca.markets"
)

// Client is an Alpaca v2 API client. It satisfies broker.Broker.
type Client struct {
	baseURL    string
	key        string
	secret     string
	httpClient *http.Client
}

// New creates a client for the given environment. An empty baseURL
// selects the live environment.
func New(key, secret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = LiveURL
	}
	return &Client{
		baseURL: baseURL,
		key:     key,
		secret:  secret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FromEnv builds a client from APCA_API_KEY_ID, APCA_API_SECRET_KEY and
// APCA_API_BASE_URL.
func FromEnv() (*Client, error) {
	key := os.Getenv("APCA_API_KEY_ID")
	secret := os.Getenv("APCA_API_SECRET_KEY")
	if key == "" || secret == "" {
		return nil, fmt.Errorf("alpaca: APCA_API_KEY_ID and APCA_API_SECRET_KEY must be set")
	}
	return New(key, secret, os.Getenv("APCA_API_BASE_URL")), nil
}

// apiAccount is the account payload. Alpaca encodes money as strings.
type apiAccount struct {
	ID          string `json:"id"`
	Currency    string `json:"currency"`
	Cash        string `json:"cash"`
	BuyingPower string `json:"buying_power"`
	Equity      string `json:"equity"`
}

type apiPosition struct {
	Symbol        string `json:"symbol"`
	Qty           string `json:"qty"`
	AvgEntryPrice string `json:"avg_entry_price"`
	CurrentPrice  string `json:"current_price"`
}

type apiOrder struct {
	ID          string `json:"id"`
	Symbol      string `json:"symbol"`
	Side        string `json:"side"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submitted_at"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) GetAccount(ctx context.Context) (broker.Account, error) {
	var resp apiAccount
	if err := c.get(ctx, "/v2/account", nil, &resp); err != nil {
		return broker.Account{}, fmt.Errorf("get account: %w", err)
	}

	acct := broker.Account{ID: resp.ID, Currency: resp.Currency}
	var err error
	if acct.Cash, err = parseMoney(resp.Cash); err != nil {
		return broker.Account{}, fmt.Errorf("get account: cash: %w", err)
	}
	if acct.BuyingPower, err = parseMoney(resp.BuyingPower); err != nil {
		return broker.Account{}, fmt.Errorf("get account: buying_power: %w", err)
	}
	if acct.Equity, err = parseMoney(resp.Equity); err != nil {
		return broker.Account{}, fmt.Errorf("get account: equity: %w", err)
	}
	return acct, nil
}

func (c *Client) ListPositions(ctx context.Context) ([]market.Position, error) {
	var resp []apiPosition
	if err := c.get(ctx, "/v2/positions", nil, &resp); err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	positions := make([]market.Position, 0, len(resp))
	for _, p := range resp {
		pos, err := p.toPosition()
		if err != nil {
			return nil, fmt.Errorf("list positions: %s: %w", p.Symbol, err)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func (c *Client) GetPosition(ctx context.Context, symbol string) (market.Position, error) {
	var resp apiPosition
	err := c.get(ctx, "/v2/positions/"+url.PathEscape(symbol), nil, &resp)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return market.Position{}, broker.ErrNoPosition
		}
		return market.Position{}, fmt.Errorf("get position %s: %w", symbol, err)
	}
	pos, err := resp.toPosition()
	if err != nil {
		return market.Position{}, fmt.Errorf("get position %s: %w", symbol, err)
	}
	return pos, nil
}

func (c *Client) ListOpenOrders(ctx context.Context, symbol string, side market.OrderSide) ([]market.Order, error) {
	params := url.Values{}
	params.Set("status", "open")
	if symbol != "" {
		params.Set("symbols", symbol)
	}

	var resp []apiOrder
	if err := c.get(ctx, "/v2/orders", params, &resp); err != nil {
		return nil, fmt.Errorf("list open orders: %w", err)
	}

	var orders []market.Order
	for _, o := range resp {
		if side != "" && market.OrderSide(o.Side) != side {
			continue
		}
		orders = append(orders, o.toOrder())
	}
	return orders, nil
}

func (c *Client) SubmitMarketOrder(ctx context.Context, req broker.MarketOrderRequest) (market.Order, error) {
	body := map[string]string{
		"symbol":        req.Symbol,
		"side":          string(req.Side),
		"type":          "market",
		"time_in_force": "day",
	}
	switch req.Side {
	case market.Buy:
		body["notional"] = strconv.FormatFloat(req.Notional, 'f', 2, 64)
	case market.Sell:
		body["qty"] = strconv.FormatFloat(req.Qty, 'f', -1, 64)
	default:
		return market.Order{}, fmt.Errorf("submit order: invalid side %q", req.Side)
	}

	var resp apiOrder
	if err := c.post(ctx, "/v2/orders", body, &resp); err != nil {
		return market.Order{}, fmt.Errorf("submit order %s: %w", req.Symbol, err)
	}
	return resp.toOrder(), nil
}

// HTTPError is a non-2xx response from the API, with Alpaca's error
// message when the body carried one.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("alpaca: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("alpaca: unexpected status %d", e.StatusCode)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("APCA-API-KEY-ID", c.key)
	req.Header.Set("APCA-API-SECRET-KEY", c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode}
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil {
			httpErr.Message = apiErr.Message
		}
		return httpErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (p apiPosition) toPosition() (market.Position, error) {
	var (
		pos = market.Position{Symbol: p.Symbol}
		err error
	)
	if pos.Qty, err = parseMoney(p.Qty); err != nil {
		return market.Position{}, fmt.Errorf("qty: %w", err)
	}
	if pos.AvgEntryPrice, err = parseMoney(p.AvgEntryPrice); err != nil {
		return market.Position{}, fmt.Errorf("avg_entry_price: %w", err)
	}
	if pos.CurrentPrice, err = parseMoney(p.CurrentPrice); err != nil {
		return market.Position{}, fmt.Errorf("current_price: %w", err)
	}
	return pos, nil
}

func (o apiOrder) toOrder() market.Order {
	order := market.Order{
		ID:     o.ID,
		Symbol: o.Symbol,
		Side:   market.OrderSide(o.Side),
		Status: market.OrderStatus(o.Status),
	}
	if t, err := time.Parse(time.RFC3339, o.SubmittedAt); err == nil {
		order.Submitted = t
	}
	return order
}

func parseMoney(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
