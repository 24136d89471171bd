package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Network is the bitcoin network the wallet operates on.
type Network string

const (
	NetworkBitcoin Network = "bitcoin"
	NetworkTestnet Network = "testnet"
	NetworkSignet  Network = "signet"
	NetworkRegtest Network = "regtest"
)

func ParseNetwork(s string) (Network, error) {
	switch n := Network(s); n {
	case NetworkBitcoin, NetworkTestnet, NetworkSignet, NetworkRegtest:
		return n, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownNetwork, s)
}

// LoadStage is the progress of the wallet setup.
type LoadStage string

const (
	LoadStageFresh                     LoadStage = "fresh"
	LoadStageCheckingDoubleInit        LoadStage = "checking_double_init"
	LoadStageDownloading               LoadStage = "downloading"
	LoadStageCheckingForExistingWallet LoadStage = "checking_for_existing_wallet"
	LoadStageSetup                     LoadStage = "setup"
	LoadStageDone                      LoadStage = "done"
)

// LoadStages lists the load stages in the order they are gone through.
var LoadStages = []LoadStage{
	LoadStageFresh, LoadStageCheckingDoubleInit, LoadStageDownloading,
	LoadStageCheckingForExistingWallet, LoadStageSetup, LoadStageDone,
}

// Balance is a snapshot of the wallet funds, in satoshis.
type Balance struct {
	Federation  uint64 `json:"federation"`
	Lightning   uint64 `json:"lightning"`
	Confirmed   uint64 `json:"confirmed"`
	Unconfirmed uint64 `json:"unconfirmed"`
	ForceClose  uint64 `json:"force_close"`
}

// Total returns the sum of all spendable and pending sub-balances.
func (b Balance) Total() uint64 {
	return b.Federation + b.Lightning + b.Confirmed + b.Unconfirmed + b.ForceClose
}

// Currency is a fiat (or BTC) denomination the price is displayed in.
type Currency struct {
	Value               string `json:"value"`
	Label               string `json:"label"`
	HasSymbol           string `json:"hasSymbol,omitempty"`
	MaxFractionalDigits int    `json:"maxFractionalDigits"`
}

// BtcCurrency is the BTC/BTC pair the price falls back to.
var BtcCurrency = Currency{
	Value:               "BTC",
	Label:               "bitcoin BTC",
	HasSymbol:           "₿",
	MaxFractionalDigits: 8,
}

// UsdCurrency is the default fiat denomination.
var UsdCurrency = Currency{
	Value:               "USD",
	Label:               "United States Dollar USD",
	HasSymbol:           "$",
	MaxFractionalDigits: 2,
}

func (c Currency) IsBtc() bool {
	return c.Value == BtcCurrency.Value
}

// BalanceView selects how balances are rendered.
type BalanceView string

const (
	BalanceViewSats   BalanceView = "sats"
	BalanceViewFiat   BalanceView = "fiat"
	BalanceViewHidden BalanceView = "hidden"
)

func ParseBalanceView(s string) (BalanceView, error) {
	switch v := BalanceView(s); v {
	case BalanceViewSats, BalanceViewFiat, BalanceViewHidden:
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownBalanceView, s)
}

// Price of one bitcoin in a given currency.
type Price struct {
	Currency Currency
	Value    decimal.Decimal
}

// SatsToFiat converts an amount of satoshis with the given price.
func SatsToFiat(sats uint64, price decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(sats)).Div(decimal.NewFromInt(1e8)).Mul(price)
}

// SubscriptionPlan is a paid plan offered by the subscription service.
type SubscriptionPlan struct {
	ID         uint8  `json:"id"`
	AmountSats uint64 `json:"amount_sat"`
}

// LspConfig describes the liquidity service provider the node is using.
type LspConfig struct {
	Url              string `json:"url,omitempty"`
	ConnectionString string `json:"connection_string,omitempty"`
	Token            string `json:"token,omitempty"`
}
