package dispatch

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

const (
	HomeRoute        = "/"
	FederationsRoute = "/settings/federations"
	ConnectionsRoute = "/settings/connections"
)

// InternalRoutes are the path prefixes that are navigated to directly when
// an incoming string is a link to one of them.
var InternalRoutes = []string{
	"/activity", "/chat", "/feedback", "/gift", "/profile", "/receive",
	"/redshift", "/request", "/scanner", "/search", "/send", "/settings",
	"/setup", "/swap",
}

var (
	ErrMissingParser    = errors.New("missing params parser")
	ErrMissingNavigator = errors.New("missing navigator")
	ErrMissingWallet    = errors.New("missing wallet state")
	// ErrNothingToDo is passed to onError when the string is valid but does
	// not carry anything that can be acted upon.
	ErrNothingToDo = errors.New("nothing to do with the given string")
)

// WalletState is the part of the wallet store the handler reads and
// resets.
type WalletState interface {
	Network() domain.Network
	ClearScanResult()
}

type (
	ErrorHandler   func(err error)
	SuccessHandler func(params domain.ParsedParams)
)

// Handler classifies pasted, scanned and deep-linked strings and drives
// navigation accordingly.
type Handler struct {
	parser    ports.ParamsParser
	navigator ports.Navigator
	wallet    WalletState
}

func NewHandler(
	parser ports.ParamsParser, navigator ports.Navigator, wallet WalletState,
) (*Handler, error) {
	if parser == nil {
		return nil, ErrMissingParser
	}
	if navigator == nil {
		return nil, ErrMissingNavigator
	}
	if wallet == nil {
		return nil, ErrMissingWallet
	}
	return &Handler{parser, navigator, wallet}, nil
}

// Handle classifies str. Links to internal routes are navigated to
// directly. Otherwise str is parsed for the current network and every
// intent found in it is acted upon: payable params are passed to
// onSuccess, while LNURL-auth, federation invites and NWA requests
// navigate to the page handling them.
func (h *Handler) Handle(
	ctx context.Context, str string,
	onError ErrorHandler, onSuccess SuccessHandler,
) {
	str = strings.TrimSpace(str)

	if route, ok := internalRoute(str); ok {
		log.Debugf("dispatch: navigating to internal route %s", route)
		h.navigator.Navigate(route)
		return
	}

	params, err := h.parser.ParseParams(ctx, str, h.wallet.Network())
	if err != nil {
		log.WithError(err).Debug("dispatch: failed to parse incoming string")
		if onError != nil {
			onError(err)
		}
		return
	}

	handled := false

	if params.IsPayable() {
		handled = true
		if onSuccess != nil {
			onSuccess(params)
		}
	}

	if params.Lnurl != "" && params.IsLnurlAuth {
		handled = true
		h.wallet.ClearScanResult()
		h.navigator.Navigate(withQuery(HomeRoute, "lnurlauth", params.Lnurl))
	}

	if params.FedimintInvite != "" {
		handled = true
		h.navigator.Navigate(
			withQuery(FederationsRoute, "fedimint_invite", params.FedimintInvite),
		)
	}

	if params.NostrWalletAuth != "" {
		handled = true
		h.navigator.Navigate(
			withQuery(ConnectionsRoute, "nwa", params.NostrWalletAuth),
		)
	}

	if !handled && onError != nil {
		onError(ErrNothingToDo)
	}
}

func internalRoute(str string) (string, bool) {
	u, err := url.Parse(str)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}

	for _, prefix := range InternalRoutes {
		if u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/") {
			route := u.Path
			if u.RawQuery != "" {
				route += "?" + u.RawQuery
			}
			return route, true
		}
	}
	return "", false
}

func withQuery(route, key, value string) string {
	return route + "?" + key + "=" + url.QueryEscape(value)
}
