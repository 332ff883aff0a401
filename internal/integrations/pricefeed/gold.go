package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// GoldClient reads the XAU spot price in USD per troy ounce from a payload
// shaped like {"name": "Gold", "price": 2345.6, "symbol": "XAU"}.
type GoldClient struct {
	url    string
	client *http.Client
}

func NewGoldClient(url string, timeout time.Duration) *GoldClient {
	return &GoldClient{url: url, client: newHTTPClient(timeout)}
}

func (c *GoldClient) GoldUSDPerOunce(ctx context.Context) (decimal.Decimal, error) {
	body, err := fetch(ctx, c.client, c.url, "application/json")
	if err != nil {
		return decimal.Zero, err
	}

	var payload struct {
		Price *decimal.Decimal `json:"price"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("decode gold price: %w", err)
	}
	if payload.Price == nil {
		return decimal.Zero, fmt.Errorf("gold price not found")
	}
	if !payload.Price.IsPositive() {
		return decimal.Zero, fmt.Errorf("gold price is not positive: %s", payload.Price)
	}
	return *payload.Price, nil
}
