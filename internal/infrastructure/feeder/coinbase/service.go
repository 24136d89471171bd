package coinbasefeeder

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
	// CoinbaseURL is the base url of the Coinbase REST API.
	CoinbaseURL = "https://api.coinbase.com"
	// MaxRequestsPerSecond is the rate limit of the public price endpoint.
	MaxRequestsPerSecond = 3

	requestTimeout = 10 * time.Second
)

type spotPrice struct {
	Data struct {
		Amount   string `json:"amount"`
		Base     string `json:"base"`
		Currency string `json:"currency"`
	} `json:"data"`
	Errors []struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"errors"`
}

type service struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewCoinbasePriceSource returns a PriceSource fetching the BTC spot price
// from Coinbase. baseURL defaults to CoinbaseURL.
func NewCoinbasePriceSource(baseURL string) ports.PriceSource {
	if baseURL == "" {
		baseURL = CoinbaseURL
	}
	return &service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		cb:      circuitbreaker.NewCircuitBreaker("coinbase"),
		limiter: ratelimit.New(MaxRequestsPerSecond),
	}
}

func (s *service) GetPrice(
	ctx context.Context, fiat string,
) (decimal.Decimal, error) {
	s.limiter.Take()

	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.fetchSpotPrice(ctx, strings.ToUpper(fiat))
	})
	if err != nil {
		return decimal.Zero, err
	}
	return res.(decimal.Decimal), nil
}

func (s *service) fetchSpotPrice(
	ctx context.Context, fiat string,
) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/v2/prices/BTC-%s/spot", s.baseURL, fiat)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	msg := spotPrice{}
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return decimal.Zero, fmt.Errorf(
			"cannot read coinbase response (status %d): %s", resp.StatusCode, err,
		)
	}
	if len(msg.Errors) > 0 {
		return decimal.Zero, fmt.Errorf("coinbase: %s", msg.Errors[0].Message)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("coinbase: status %d", resp.StatusCode)
	}

	price, err := decimal.NewFromString(msg.Data.Amount)
	if err != nil {
		return decimal.Zero, err
	}
	log.Debugf("coinbase: BTC-%s %s", fiat, price)
	return price, nil
}
