package pricefeed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// FXClient derives the USD to local currency rate from the euro reference
// rates XML, where every rate is quoted against EUR.
type FXClient struct {
	url      string
	currency string
	client   *http.Client
}

func NewFXClient(url, currency string, timeout time.Duration) *FXClient {
	return &FXClient{
		url:      url,
		currency: strings.ToUpper(currency),
		client:   newHTTPClient(timeout),
	}
}

func (c *FXClient) USDRate(ctx context.Context) (decimal.Decimal, error) {
	if c.currency == "USD" {
		return decimal.NewFromInt(1), nil
	}

	body, err := fetch(ctx, c.client, c.url, "application/xml")
	if err != nil {
		return decimal.Zero, err
	}

	rates, err := parseReferenceRates(body)
	if err != nil {
		return decimal.Zero, err
	}

	usd, ok := rates["USD"]
	if !ok {
		return decimal.Zero, fmt.Errorf("USD rate not found in XML")
	}
	local, ok := rates[c.currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s rate not found in XML", c.currency)
	}
	return local.Div(usd), nil
}

func parseReferenceRates(raw []byte) (map[string]decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	cubes := doc.FindElements("//Cube[@currency]")
	if len(cubes) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	rates := map[string]decimal.Decimal{"EUR": decimal.NewFromInt(1)}
	for _, cube := range cubes {
		code := strings.ToUpper(cube.SelectAttrValue("currency", ""))
		rate, err := decimal.NewFromString(cube.SelectAttrValue("rate", ""))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s rate: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("%s rate is not positive", code)
		}
		rates[code] = rate
	}
	return rates, nil
}
