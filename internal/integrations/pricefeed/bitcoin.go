package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BitcoinClient reads a simple-price style payload:
// {"bitcoin": {"thb": 2345678.9}}.
type BitcoinClient struct {
	url      string
	currency string
	client   *http.Client
}

func NewBitcoinClient(url, currency string, timeout time.Duration) *BitcoinClient {
	return &BitcoinClient{
		url:      url,
		currency: strings.ToLower(currency),
		client:   newHTTPClient(timeout),
	}
}

func (c *BitcoinClient) BTCPrice(ctx context.Context) (decimal.Decimal, error) {
	body, err := fetch(ctx, c.client, c.url, "application/json")
	if err != nil {
		return decimal.Zero, err
	}

	var payload map[string]map[string]decimal.Decimal
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("decode btc price: %w", err)
	}

	price, ok := payload["bitcoin"][c.currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("btc price in %s not found", c.currency)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("btc price is not positive: %s", price)
	}
	return price, nil
}
