package httpinterface

import (
	"errors"
	"net/http"

	"github.com/mutinywallet/mutinyd/internal/core/application/dispatch"
	"github.com/mutinywallet/mutinyd/internal/core/application/pubsub"
	"github.com/mutinywallet/mutinyd/internal/core/application/settings"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
)

// statusByKind maps the engine error kinds to the status returned.
var statusByKind = map[domain.ErrorKind]int{
	domain.ErrKindUnknown:             http.StatusInternalServerError,
	domain.ErrKindIncorrectPassword:   http.StatusUnauthorized,
	domain.ErrKindPaymentTimeout:      http.StatusGatewayTimeout,
	domain.ErrKindInsufficientBalance: http.StatusPaymentRequired,
	domain.ErrKindRoutingFailed:       http.StatusBadGateway,
	domain.ErrKindInvoiceExpired:      http.StatusGone,
	domain.ErrKindInvoiceAlreadyPaid:  http.StatusConflict,
	domain.ErrKindNetworkMismatch:     http.StatusBadRequest,
	domain.ErrKindInvalidArgs:         http.StatusBadRequest,
	domain.ErrKindNotFound:            http.StatusNotFound,
	domain.ErrKindAlreadyRunning:      http.StatusConflict,
	domain.ErrKindDatabaseLocked:      http.StatusLocked,
	domain.ErrKindNotRunning:          http.StatusServiceUnavailable,
	domain.ErrKindReserveAmount:       http.StatusUnprocessableEntity,
	domain.ErrKindLnurlFailure:        http.StatusBadGateway,
	domain.ErrKindFederationRequired:  http.StatusPreconditionFailed,
}

// statusBySentinel is checked, in order, before looking at engine errors.
var statusBySentinel = []struct {
	err    error
	status int
}{
	{domain.ErrWalletNotInitialized, http.StatusServiceUnavailable},
	{domain.ErrEngineNotLoaded, http.StatusServiceUnavailable},
	{errWebhooksOff, http.StatusServiceUnavailable},
	{domain.ErrSetupInProgress, http.StatusConflict},
	{domain.ErrInvalidNpub, http.StatusBadRequest},
	{domain.ErrInvalidNsec, http.StatusBadRequest},
	{domain.ErrMissingContactName, http.StatusBadRequest},
	{domain.ErrUnknownNetwork, http.StatusBadRequest},
	{domain.ErrUnknownBalanceView, http.StatusBadRequest},
	{settings.ErrUnknownSetting, http.StatusBadRequest},
	{pubsub.ErrInvalidEvent, http.StatusBadRequest},
	{dispatch.ErrNothingToDo, http.StatusUnprocessableEntity},
	{ports.ErrSubscriptionNotFound, http.StatusNotFound},
}

type requestError struct {
	err error
}

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return requestError{err}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func statusOf(err error) int {
	var reqErr requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest
	}
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	var setupErr *domain.SetupError
	if errors.As(err, &setupErr) {
		if setupErr.Kind == domain.SetupErrEngine {
			if status, ok := engineStatus(err); ok {
				return status
			}
		}
		return http.StatusServiceUnavailable
	}
	if status, ok := engineStatus(err); ok {
		return status
	}
	return http.StatusInternalServerError
}

func engineStatus(err error) (int, bool) {
	var engineErr *domain.EngineError
	if !errors.As(err, &engineErr) {
		return 0, false
	}
	status, ok := statusByKind[engineErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return status, true
}

func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var engineErr *domain.EngineError
	if errors.As(err, &engineErr) {
		resp.Kind = engineErr.Kind.String()
	}
	var setupErr *domain.SetupError
	if errors.As(err, &setupErr) {
		resp.Kind = string(setupErr.Kind)
	}
	writeJSON(w, statusOf(err), resp)
}
