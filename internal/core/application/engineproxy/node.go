package engineproxy

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

func (s *Service) GetBalance(ctx context.Context) (domain.Balance, error) {
	b, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Balance, error) {
		return w.Node().GetBalance(ctx)
	})
	if err != nil {
		return domain.Balance{}, err
	}
	return balanceFromEngine(b), nil
}

func (s *Service) GetNetwork(ctx context.Context) (domain.Network, error) {
	network, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (string, error) {
		return w.Node().GetNetwork(ctx)
	})
	if err != nil {
		return "", err
	}
	return domain.ParseNetwork(network)
}

func (s *Service) GetNewAddress(
	ctx context.Context, labels []string,
) (domain.Bip21Materials, error) {
	b, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Bip21Materials, error) {
		return w.Node().GetNewAddress(ctx, labels)
	})
	if err != nil {
		return domain.Bip21Materials{}, err
	}
	return bip21FromEngine(b), nil
}

func (s *Service) CreateBip21(
	ctx context.Context, amount *uint64, labels []string,
) (domain.Bip21Materials, error) {
	b, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Bip21Materials, error) {
		return w.Node().CreateBip21(ctx, amount, labels)
	})
	if err != nil {
		return domain.Bip21Materials{}, err
	}
	return bip21FromEngine(b), nil
}

func (s *Service) CreateInvoice(
	ctx context.Context, amount uint64, labels []string,
) (domain.Invoice, error) {
	return s.invoiceCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Invoice, error) {
		return w.Node().CreateInvoice(ctx, amount, labels)
	})
}

func (s *Service) PayInvoice(
	ctx context.Context, invoice string, amount *uint64, labels []string,
) (domain.Invoice, error) {
	return s.invoiceCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Invoice, error) {
		return w.Node().PayInvoice(ctx, invoice, amount, labels)
	})
}

func (s *Service) DecodeInvoice(
	ctx context.Context, invoice string,
) (domain.Invoice, error) {
	return s.invoiceCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Invoice, error) {
		return w.Node().DecodeInvoice(ctx, invoice)
	})
}

func (s *Service) GetInvoice(
	ctx context.Context, hash string,
) (domain.Invoice, error) {
	return s.invoiceCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Invoice, error) {
		return w.Node().GetInvoice(ctx, hash)
	})
}

func (s *Service) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.Invoice, error) {
		return w.Node().ListInvoices(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(invoices, invoiceFromEngine), nil
}

func (s *Service) KeysendPayment(
	ctx context.Context, pubkey string, amount uint64, message string,
	labels []string,
) (domain.Invoice, error) {
	return s.invoiceCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Invoice, error) {
		return w.Node().KeysendPayment(ctx, pubkey, amount, message, labels)
	})
}

func (s *Service) SendToAddress(
	ctx context.Context, address string, amount uint64, labels []string,
	feeRate *float64,
) (string, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (string, error) {
		return w.Node().SendToAddress(ctx, address, amount, labels, feeRate)
	})
}

func (s *Service) SweepWallet(
	ctx context.Context, address string, labels []string, feeRate *float64,
) (string, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (string, error) {
		return w.Node().SweepWallet(ctx, address, labels, feeRate)
	})
}

func (s *Service) EstimateTxFee(
	ctx context.Context, address string, amount uint64, feeRate *float64,
) (uint64, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (uint64, error) {
		return w.Node().EstimateTxFee(ctx, address, amount, feeRate)
	})
}

func (s *Service) EstimateSweepChannelOpenFee(
	ctx context.Context, feeRate *float64,
) (uint64, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (uint64, error) {
		return w.Node().EstimateSweepChannelOpenFee(ctx, feeRate)
	})
}

// GetFeeRates returns the low, normal and high on-chain fee estimates.
func (s *Service) GetFeeRates(ctx context.Context) (domain.FeeRates, error) {
	return call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (domain.FeeRates, error) {
		low, err := w.Node().EstimateFeeLow(ctx)
		if err != nil {
			return domain.FeeRates{}, err
		}
		normal, err := w.Node().EstimateFeeNormal(ctx)
		if err != nil {
			return domain.FeeRates{}, err
		}
		high, err := w.Node().EstimateFeeHigh(ctx)
		if err != nil {
			return domain.FeeRates{}, err
		}
		return domain.FeeRates{Low: low, Normal: normal, High: high}, nil
	})
}

func (s *Service) GetTransaction(
	ctx context.Context, txid string,
) (*domain.TransactionDetails, error) {
	tx, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.TransactionDetails, error) {
		return w.Node().GetTransaction(ctx, txid)
	})
	if err != nil {
		return nil, err
	}
	return transactionFromEngine(tx), nil
}

// CheckAddress returns the transaction paying to address, if any.
func (s *Service) CheckAddress(
	ctx context.Context, address string,
) (*domain.TransactionDetails, error) {
	tx, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.TransactionDetails, error) {
		return w.Node().CheckAddress(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return transactionFromEngine(tx), nil
}

func (s *Service) LnurlPay(
	ctx context.Context, lnurl string, amount uint64, zapNpub string,
	labels []string, comment string,
) (domain.Invoice, error) {
	return s.invoiceCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Invoice, error) {
		return w.Node().LnurlPay(ctx, lnurl, amount, zapNpub, labels, comment)
	})
}

func (s *Service) LnurlWithdraw(
	ctx context.Context, lnurl string, amount uint64,
) (bool, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (bool, error) {
		return w.Node().LnurlWithdraw(ctx, lnurl, amount)
	})
}

func (s *Service) LnurlAuth(ctx context.Context, lnurl string) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Node().LnurlAuth(ctx, lnurl)
	})
}

func (s *Service) DecodeLnurl(
	ctx context.Context, lnurl string,
) (domain.LnUrlParams, error) {
	p, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (ports.LnUrlParams, error) {
		return w.Node().DecodeLnurl(ctx, lnurl)
	})
	if err != nil {
		return domain.LnUrlParams{}, err
	}
	return lnurlParamsFromEngine(p), nil
}

func (s *Service) GetActivity(
	ctx context.Context, limit, offset *uint32,
) ([]domain.ActivityItem, error) {
	items, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.ActivityItem, error) {
		return w.Node().GetActivity(ctx, limit, offset)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(items, activityItemFromEngine), nil
}

func (s *Service) GetLabelActivity(
	ctx context.Context, label string,
) ([]domain.ActivityItem, error) {
	items, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.ActivityItem, error) {
		return w.Node().GetLabelActivity(ctx, label)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(items, activityItemFromEngine), nil
}

func (s *Service) ChangeLsp(ctx context.Context, lsp domain.LspConfig) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Node().ChangeLsp(ctx, lsp)
	})
}

func (s *Service) GetLogs(ctx context.Context) ([]string, error) {
	logs, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]string, error) {
		return w.Node().GetLogs(ctx)
	})
	if err != nil {
		return nil, err
	}
	return copyStrings(logs), nil
}

func (s *Service) ExportJSON(
	ctx context.Context, password string,
) (string, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (string, error) {
		return w.Node().ExportJSON(ctx, password)
	})
}

func (s *Service) ShowSeed(ctx context.Context) (string, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (string, error) {
		return w.Node().ShowSeed(ctx)
	})
}

func (s *Service) ChangePassword(
	ctx context.Context, oldPwd, newPwd string,
) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Node().ChangePassword(ctx, oldPwd, newPwd)
	})
}

func (s *Service) ResetRouter(ctx context.Context) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Node().ResetRouter(ctx)
	})
}

func (s *Service) ResetOnchainTracker(ctx context.Context) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Node().ResetOnchainTracker(ctx)
	})
}

func (s *Service) GetBitcoinPrice(
	ctx context.Context, fiat string,
) (float64, error) {
	return call(ctx, s, func(ctx context.Context, w ports.Wallet) (float64, error) {
		return w.Node().GetBitcoinPrice(ctx, fiat)
	})
}

// CheckSubscribed returns the expiry of the subscription, if any.
func (s *Service) CheckSubscribed(ctx context.Context) (*uint64, error) {
	ts, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) (*uint64, error) {
		return w.Node().CheckSubscribed(ctx)
	})
	if err != nil {
		return nil, err
	}
	return copyUint64(ts), nil
}

func (s *Service) GetSubscriptionPlans(
	ctx context.Context,
) ([]domain.SubscriptionPlan, error) {
	plans, err := call(ctx, s, func(
		ctx context.Context, w ports.Wallet,
	) ([]ports.SubscriptionPlan, error) {
		return w.Node().GetSubscriptionPlans(ctx)
	})
	if err != nil {
		return nil, err
	}
	return reshapeAll(plans, subscriptionPlanFromEngine), nil
}

func (s *Service) SubscribeToPlan(
	ctx context.Context, id uint8,
) (domain.Invoice, error) {
	return s.invoiceCall(ctx, func(
		ctx context.Context, w ports.Wallet,
	) (ports.Invoice, error) {
		return w.Node().SubscribeToPlan(ctx, id)
	})
}

func (s *Service) PaySubscriptionInvoice(
	ctx context.Context, invoice string, autopay bool,
) error {
	return exec(ctx, s, func(ctx context.Context, w ports.Wallet) error {
		return w.Node().PaySubscriptionInvoice(ctx, invoice, autopay)
	})
}

func (s *Service) invoiceCall(
	ctx context.Context,
	fn func(context.Context, ports.Wallet) (ports.Invoice, error),
) (domain.Invoice, error) {
	invoice, err := call(ctx, s, fn)
	if err != nil {
		return domain.Invoice{}, err
	}
	return invoiceFromEngine(invoice), nil
}
