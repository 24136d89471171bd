package parser

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnd/zpay32"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/shopspring/decimal"
)

const (
	bitcoinScheme     = "bitcoin:"
	lightningScheme   = "lightning:"
	walletAuthScheme  = "nostr+walletauth"
	lnurlHrp          = "lnurl"
	fedimintHrp       = "fed1"
	offerPrefix       = "lno1"
	lnurlAuthTag      = "login"
	pubkeyHexLen      = 66
	satsPerBtc        = 100_000_000
	maxBtcSupply      = 21_000_000
	lightningAddrPath = "/.well-known/lnurlp/"
)

var (
	// ErrEmptyInput ...
	ErrEmptyInput = domain.NewEngineError(
		domain.ErrKindInvalidArgs, "nothing to parse",
	)
	// ErrUnrecognized is returned for strings that are none of the supported
	// payment or action formats.
	ErrUnrecognized = domain.NewEngineError(
		domain.ErrKindInvalidArgs,
		"not a valid address, invoice, lnurl, lightning address or invite",
	)
	// ErrNetworkMismatch is returned for addresses and invoices valid for a
	// different network than the configured one.
	ErrNetworkMismatch = domain.NewEngineError(
		domain.ErrKindNetworkMismatch, "network does not match",
	)
)

var (
	chainParams = map[domain.Network]*chaincfg.Params{
		domain.NetworkBitcoin: &chaincfg.MainNetParams,
		domain.NetworkTestnet: &chaincfg.TestNet3Params,
		domain.NetworkSignet:  &chaincfg.SigNetParams,
		domain.NetworkRegtest: &chaincfg.RegressionNetParams,
	}
	// Signet invoices carry an extra "s" to tell them apart from testnet3.
	invoicePrefixes = map[string]domain.Network{
		"lnbc":   domain.NetworkBitcoin,
		"lntb":   domain.NetworkTestnet,
		"lntbs":  domain.NetworkSignet,
		"lnbcrt": domain.NetworkRegtest,
	}
)

type parser struct{}

// NewParser returns a ParamsParser that classifies strings locally,
// without going through the wallet engine.
func NewParser() ports.ParamsParser {
	return parser{}
}

func (p parser) ParseParams(
	_ context.Context, str string, network domain.Network,
) (domain.ParsedParams, error) {
	params, ok := chainParams[network]
	if !ok {
		return domain.ParsedParams{}, fmt.Errorf(
			"%w: %s", domain.ErrUnknownNetwork, network,
		)
	}

	str = strings.TrimSpace(str)
	if str == "" {
		return domain.ParsedParams{}, ErrEmptyInput
	}

	res, err := parse(str, network, params)
	if err != nil {
		return domain.ParsedParams{}, err
	}
	res.Network = network
	return res, nil
}

func parse(
	str string, network domain.Network, params *chaincfg.Params,
) (domain.ParsedParams, error) {
	lower := strings.ToLower(str)

	switch {
	case strings.HasPrefix(lower, bitcoinScheme):
		return parseBip21(str[len(bitcoinScheme):], network, params)
	case strings.HasPrefix(lower, lightningScheme):
		return parseLightning(str[len(lightningScheme):], network, params)
	case strings.HasPrefix(lower, walletAuthScheme):
		return domain.ParsedParams{NostrWalletAuth: str}, nil
	}

	if res, ok, err := parseLnurlScheme(str); ok || err != nil {
		return res, err
	}

	// Compressed pubkeys would also decode as pay-to-pubkey addresses.
	if res, ok := parseNodePubkey(str); ok {
		return res, nil
	}

	if res, ok, err := parseAddress(str, params); ok || err != nil {
		return res, err
	}

	return parseLightning(str, network, params)
}

// parseLightning handles everything that can follow a lightning: scheme.
func parseLightning(
	str string, network domain.Network, params *chaincfg.Params,
) (domain.ParsedParams, error) {
	lower := strings.ToLower(str)

	if _, ok := invoiceNetwork(lower); ok {
		return parseInvoice(lower, network, params)
	}

	switch {
	case strings.HasPrefix(lower, lnurlHrp+"1"):
		return parseLnurl(lower)
	case strings.HasPrefix(lower, fedimintHrp+"1"):
		return parseFedimintInvite(lower)
	case strings.HasPrefix(lower, offerPrefix):
		return domain.ParsedParams{Offer: lower}, nil
	}

	if res, ok := parseNodePubkey(str); ok {
		return res, nil
	}
	if res, ok := parseLightningAddress(str); ok {
		return res, nil
	}
	return domain.ParsedParams{}, ErrUnrecognized
}

func parseBip21(
	str string, network domain.Network, params *chaincfg.Params,
) (domain.ParsedParams, error) {
	address, rawQuery, _ := strings.Cut(str, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return domain.ParsedParams{}, fmt.Errorf("invalid bip21 uri: %w", err)
	}

	var res domain.ParsedParams
	if address != "" {
		addr, ok, err := parseAddress(address, params)
		if err != nil {
			return domain.ParsedParams{}, err
		}
		if !ok {
			return domain.ParsedParams{}, ErrUnrecognized
		}
		res = addr
	}

	if invoice := query.Get("lightning"); invoice != "" {
		ln, err := parseInvoice(strings.ToLower(invoice), network, params)
		if err != nil {
			return domain.ParsedParams{}, err
		}
		res.Invoice = ln.Invoice
		res.AmountSats = ln.AmountSats
		res.Memo = ln.Memo
	}
	if res.Address == "" && res.Invoice == "" {
		return domain.ParsedParams{}, ErrUnrecognized
	}

	if amount := query.Get("amount"); amount != "" {
		sats, err := btcToSats(amount)
		if err != nil {
			return domain.ParsedParams{}, err
		}
		res.AmountSats = &sats
	}
	if pj := query.Get("pj"); pj != "" {
		res.PayjoinEnabled = true
		res.PayjoinUrl = pj
	}
	if memo := query.Get("message"); memo != "" {
		res.Memo = memo
	} else if label := query.Get("label"); label != "" && res.Memo == "" {
		res.Memo = label
	}
	return res, nil
}

func parseAddress(
	str string, params *chaincfg.Params,
) (domain.ParsedParams, bool, error) {
	addr, err := btcutil.DecodeAddress(str, params)
	if err == nil && addr.IsForNet(params) {
		return domain.ParsedParams{Address: addr.EncodeAddress()}, true, nil
	}

	for _, other := range chainParams {
		if other == params {
			continue
		}
		if addr, err := btcutil.DecodeAddress(str, other); err == nil &&
			addr.IsForNet(other) {
			return domain.ParsedParams{}, false, fmt.Errorf(
				"%w: address is for %s", ErrNetworkMismatch, other.Name,
			)
		}
	}
	return domain.ParsedParams{}, false, nil
}

func parseInvoice(
	str string, network domain.Network, params *chaincfg.Params,
) (domain.ParsedParams, error) {
	invoiceNet, ok := invoiceNetwork(str)
	if !ok {
		return domain.ParsedParams{}, ErrUnrecognized
	}
	if invoiceNet != network {
		return domain.ParsedParams{}, fmt.Errorf(
			"%w: invoice is for %s", ErrNetworkMismatch, invoiceNet,
		)
	}

	invoice, err := zpay32.Decode(str, params)
	if err != nil {
		return domain.ParsedParams{}, domain.NewEngineError(
			domain.ErrKindInvalidArgs, fmt.Sprintf("invalid invoice: %s", err),
		)
	}

	res := domain.ParsedParams{Invoice: str}
	if invoice.MilliSat != nil {
		sats := uint64(invoice.MilliSat.ToSatoshis())
		res.AmountSats = &sats
	}
	if invoice.Description != nil {
		res.Memo = *invoice.Description
	}
	return res, nil
}

// invoiceNetwork returns the network of the human readable part of a bolt11
// invoice, that is made of the ln prefix, the network and an optional
// amount.
func invoiceNetwork(str string) (domain.Network, bool) {
	sep := strings.LastIndexByte(str, '1')
	if !strings.HasPrefix(str, "ln") || sep < 0 {
		return "", false
	}
	hrp := str[:sep]
	if i := strings.IndexAny(hrp, "0123456789"); i >= 0 {
		hrp = hrp[:i]
	}
	network, ok := invoicePrefixes[hrp]
	return network, ok
}

func parseLnurl(str string) (domain.ParsedParams, error) {
	hrp, data, err := bech32.DecodeNoLimit(str)
	if err != nil || hrp != lnurlHrp {
		return domain.ParsedParams{}, ErrUnrecognized
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return domain.ParsedParams{}, ErrUnrecognized
	}

	u, err := url.Parse(string(decoded))
	if err != nil {
		return domain.ParsedParams{}, ErrUnrecognized
	}
	return domain.ParsedParams{
		Lnurl:       str,
		IsLnurlAuth: u.Query().Get("tag") == lnurlAuthTag,
	}, nil
}

// parseLnurlScheme handles the LUD-17 schemes.
func parseLnurlScheme(str string) (domain.ParsedParams, bool, error) {
	u, err := url.Parse(str)
	if err != nil {
		return domain.ParsedParams{}, false, nil
	}

	switch strings.ToLower(u.Scheme) {
	case "lnurlp", "lnurlw":
		return domain.ParsedParams{Lnurl: str}, true, nil
	case "keyauth":
		return domain.ParsedParams{Lnurl: str, IsLnurlAuth: true}, true, nil
	}
	return domain.ParsedParams{}, false, nil
}

func parseFedimintInvite(str string) (domain.ParsedParams, error) {
	hrp, _, err := bech32.DecodeNoLimit(str)
	if err != nil || hrp != fedimintHrp {
		return domain.ParsedParams{}, ErrUnrecognized
	}
	return domain.ParsedParams{FedimintInvite: str}, nil
}

// parseLightningAddress resolves a LUD-16 address to its lnurl-pay
// endpoint.
func parseLightningAddress(str string) (domain.ParsedParams, bool) {
	user, host, ok := strings.Cut(strings.ToLower(str), "@")
	if !ok || user == "" || !strings.Contains(host, ".") ||
		strings.ContainsAny(user, " /?#") || strings.ContainsAny(host, " /?#@") {
		return domain.ParsedParams{}, false
	}
	return domain.ParsedParams{
		LightningAddress: user + "@" + host,
		Lnurl:            "https://" + host + lightningAddrPath + user,
	}, true
}

// parseNodePubkey accepts both a bare pubkey and a pubkey@host:port
// connection string.
func parseNodePubkey(str string) (domain.ParsedParams, bool) {
	pubkey, _, _ := strings.Cut(str, "@")
	if len(pubkey) != pubkeyHexLen {
		return domain.ParsedParams{}, false
	}
	buf, err := hex.DecodeString(pubkey)
	if err != nil {
		return domain.ParsedParams{}, false
	}
	if _, err := btcec.ParsePubKey(buf); err != nil {
		return domain.ParsedParams{}, false
	}
	return domain.ParsedParams{NodePubkey: strings.ToLower(pubkey)}, true
}

func btcToSats(amount string) (uint64, error) {
	btc, err := decimal.NewFromString(amount)
	if err != nil || btc.IsNegative() ||
		btc.GreaterThan(decimal.NewFromInt(maxBtcSupply)) {
		return 0, domain.NewEngineError(
			domain.ErrKindInvalidArgs, fmt.Sprintf("invalid amount %s", amount),
		)
	}
	return uint64(btc.Mul(decimal.NewFromInt(satsPerBtc)).IntPart()), nil
}
