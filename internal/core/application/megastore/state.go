package megastore

import (
	"net/url"
	"strconv"
	"time"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// State is a snapshot of the wallet store.
type State struct {
	Network   domain.Network   `json:"network"`
	LoadStage domain.LoadStage `json:"load_stage"`
	// WalletLoading is true until setup either completes or fails for good.
	// No wallet operation is allowed meanwhile.
	WalletLoading bool `json:"wallet_loading"`
	SafeMode      bool `json:"safe_mode"`

	Balance   *domain.Balance `json:"balance,omitempty"`
	IsSyncing bool            `json:"is_syncing"`
	LastSync  *time.Time      `json:"last_sync,omitempty"`

	Fiat         domain.Currency `json:"fiat"`
	Price        decimal.Decimal `json:"price"`
	PriceBackoff int             `json:"price_backoff"`

	SubscriptionTimestamp *uint64                     `json:"subscription_timestamp,omitempty"`
	Federations           []domain.FederationIdentity `json:"federations"`
	ExpirationWarning     *domain.ExpirationWarning   `json:"expiration_warning,omitempty"`
	ScanResult            *domain.ParsedParams        `json:"scan_result,omitempty"`

	SetupError          *domain.SetupError `json:"-"`
	NeedsPassword       bool               `json:"needs_password"`
	ExistingTabDetected bool               `json:"existing_tab_detected"`
	Deleting            bool               `json:"deleting"`

	HasBackedUp           bool               `json:"has_backed_up"`
	BetaWarned            bool               `json:"beta_warned"`
	ExpirationWarningSeen bool               `json:"expiration_warning_seen"`
	BalanceView           domain.BalanceView `json:"balance_view"`
	Lang                  string             `json:"lang,omitempty"`
}

// IsPlusSubscriber returns whether the subscription expires after now.
func (s State) IsPlusSubscriber(now time.Time) bool {
	return s.SubscriptionTimestamp != nil &&
		int64(*s.SubscriptionTimestamp) > now.Unix()
}

func (s State) copy() State {
	c := s
	if s.Balance != nil {
		b := *s.Balance
		c.Balance = &b
	}
	if s.LastSync != nil {
		t := *s.LastSync
		c.LastSync = &t
	}
	if s.SubscriptionTimestamp != nil {
		ts := *s.SubscriptionTimestamp
		c.SubscriptionTimestamp = &ts
	}
	if s.Federations != nil {
		c.Federations = append(
			make([]domain.FederationIdentity, 0, len(s.Federations)),
			s.Federations...,
		)
	}
	if s.ExpirationWarning != nil {
		w := *s.ExpirationWarning
		c.ExpirationWarning = &w
	}
	if s.ScanResult != nil {
		r := *s.ScanResult
		c.ScanResult = &r
	}
	return c
}

// DeepLink holds the query parameters the instance was opened with.
type DeepLink struct {
	SafeMode  bool
	SkipSetup bool
	// Lsps and Token override the liquidity provider settings.
	Lsps  string
	Token string
	// Nwa is a pending nostr wallet auth request.
	Nwa string
	// GiftAmount and NwcUri describe a gift to claim.
	GiftAmount string
	NwcUri     string
}

// ParseDeepLink reads the recognized keys of a query string.
func ParseDeepLink(rawQuery string) (DeepLink, error) {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return DeepLink{}, err
	}
	return DeepLink{
		SafeMode:   isTrue(q.Get("safe_mode")),
		SkipSetup:  isTrue(q.Get("skip_setup")),
		Lsps:       q.Get("lsps"),
		Token:      q.Get("token"),
		Nwa:        q.Get("nwa"),
		GiftAmount: q.Get("amount"),
		NwcUri:     q.Get("nwc_uri"),
	}, nil
}

// routes returns where to navigate once the wallet is ready.
func (l DeepLink) routes() []string {
	routes := make([]string, 0, 2)
	if l.Nwa != "" {
		routes = append(routes, "/settings/connections?"+url.Values{
			"nwa": {l.Nwa},
		}.Encode())
	}
	if l.GiftAmount != "" && l.NwcUri != "" {
		routes = append(routes, "/gift?"+url.Values{
			"amount":  {l.GiftAmount},
			"nwc_uri": {l.NwcUri},
		}.Encode())
	}
	return routes
}

func isTrue(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
