package krakenfeeder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/mutinywallet/mutinyd/pkg/circuitbreaker"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
)

const (
	// KrakenURL is the base url of the Kraken REST API.
	// This can be tweaked if in the future it might change, even if unlikely.
	KrakenURL = "https://api.kraken.com"
	// MaxRequestsPerSecond keeps the feeder below the public API call limit.
	MaxRequestsPerSecond = 1

	requestTimeout = 10 * time.Second
)

type tickerResponse struct {
	Error  []string                          `json:"error"`
	Result map[string]map[string]interface{} `json:"result"`
}

type service struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewKrakenPriceSource returns a PriceSource reading the last trade price
// of the XBT pairs from Kraken. baseURL defaults to KrakenURL.
func NewKrakenPriceSource(baseURL string) ports.PriceSource {
	if baseURL == "" {
		baseURL = KrakenURL
	}
	return &service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		cb:      circuitbreaker.NewCircuitBreaker("kraken"),
		limiter: ratelimit.New(MaxRequestsPerSecond),
	}
}

func (s *service) GetPrice(
	ctx context.Context, fiat string,
) (decimal.Decimal, error) {
	s.limiter.Take()

	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.fetchTicker(ctx, "XBT"+strings.ToUpper(fiat))
	})
	if err != nil {
		return decimal.Zero, err
	}
	return res.(decimal.Decimal), nil
}

func (s *service) fetchTicker(
	ctx context.Context, pair string,
) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/0/public/Ticker?pair=%s", s.baseURL, pair)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	msg := tickerResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return decimal.Zero, fmt.Errorf(
			"cannot read kraken response (status %d): %s", resp.StatusCode, err,
		)
	}
	if len(msg.Error) > 0 {
		return decimal.Zero, fmt.Errorf("kraken: %s", msg.Error[0])
	}

	price := parseLastTrade(msg.Result)
	if price == nil {
		return decimal.Zero, fmt.Errorf("kraken: no price for pair %s", pair)
	}
	log.Debugf("kraken: %s %s", pair, price)
	return *price, nil
}

// parseLastTrade returns the price of the last trade, the first element of
// the "c" array, of the only pair in the result.
func parseLastTrade(result map[string]map[string]interface{}) *decimal.Decimal {
	for _, info := range result {
		c, ok := info["c"].([]interface{})
		if !ok || len(c) < 1 {
			return nil
		}
		priceStr, ok := c[0].(string)
		if !ok {
			return nil
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil
		}
		return &price
	}
	return nil
}
