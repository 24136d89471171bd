package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNpub is returned when a contact carries a malformed nostr public key.
	ErrInvalidNpub = errors.New("npub is not valid")
	// ErrInvalidNsec is returned when trying to store a malformed nostr secret key.
	ErrInvalidNsec = errors.New("nsec is not valid")
	// ErrMissingContactName ...
	ErrMissingContactName = errors.New("contact name must not be empty")
	// ErrUnknownNetwork ...
	ErrUnknownNetwork = errors.New("unknown network")
	// ErrUnknownBalanceView ...
	ErrUnknownBalanceView = errors.New("unknown balance view")

	// ErrWalletNotInitialized is returned by any wallet call made before the
	// wallet has been set up, or after it has been stopped.
	ErrWalletNotInitialized = errors.New("wallet is not initialized")
	// ErrEngineNotLoaded is returned by engine calls made before loading it.
	ErrEngineNotLoaded = errors.New("wallet engine is not loaded")
	// ErrDoubleInit is returned when the session init guard is set but this
	// instance does not own a wallet, meaning a stale instance left it behind.
	ErrDoubleInit = errors.New("wallet already initialized in this session")
	// ErrSetupInProgress ...
	ErrSetupInProgress = errors.New("wallet setup already in progress")
)

// ErrorKind classifies failures reported by the wallet engine.
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	ErrKindIncorrectPassword
	ErrKindPaymentTimeout
	ErrKindInsufficientBalance
	ErrKindRoutingFailed
	ErrKindInvoiceExpired
	ErrKindInvoiceAlreadyPaid
	ErrKindNetworkMismatch
	ErrKindInvalidArgs
	ErrKindNotFound
	ErrKindAlreadyRunning
	ErrKindDatabaseLocked
	ErrKindNotRunning
	ErrKindReserveAmount
	ErrKindLnurlFailure
	ErrKindFederationRequired
)

var errorKindNames = map[ErrorKind]string{
	ErrKindUnknown:             "unknown",
	ErrKindIncorrectPassword:   "incorrect_password",
	ErrKindPaymentTimeout:      "payment_timeout",
	ErrKindInsufficientBalance: "insufficient_balance",
	ErrKindRoutingFailed:       "routing_failed",
	ErrKindInvoiceExpired:      "invoice_expired",
	ErrKindInvoiceAlreadyPaid:  "invoice_already_paid",
	ErrKindNetworkMismatch:     "network_mismatch",
	ErrKindInvalidArgs:         "invalid_args",
	ErrKindNotFound:            "not_found",
	ErrKindAlreadyRunning:      "already_running",
	ErrKindDatabaseLocked:      "database_locked",
	ErrKindNotRunning:          "not_running",
	ErrKindReserveAmount:       "reserve_amount",
	ErrKindLnurlFailure:        "lnurl_failure",
	ErrKindFederationRequired:  "federation_required",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return errorKindNames[ErrKindUnknown]
}

// ErrorKindFromString maps the tag sent over the engine boundary to a kind.
// Unrecognized tags map to ErrKindUnknown.
func ErrorKindFromString(tag string) ErrorKind {
	for k, s := range errorKindNames {
		if s == tag {
			return k
		}
	}
	return ErrKindUnknown
}

// EngineError is the error returned by any failed call to the wallet engine.
type EngineError struct {
	Kind    ErrorKind
	Message string
}

func (e *EngineError) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewEngineError(kind ErrorKind, msg string) *EngineError {
	return &EngineError{kind, msg}
}

// KindOf returns the kind of the engine error wrapped by err, if any.
func KindOf(err error) ErrorKind {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Kind
	}
	return ErrKindUnknown
}

// IsKind returns whether err wraps an engine error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		return false
	}
	return engineErr.Kind == kind
}

// SetupErrorKind enumerates the unrecoverable setup failures.
type SetupErrorKind string

const (
	SetupErrExistingTab  SetupErrorKind = "existing_tab"
	SetupErrIncompatible SetupErrorKind = "incompatible"
	SetupErrTimeout      SetupErrorKind = "timeout"
	SetupErrEngine       SetupErrorKind = "engine"
)

// SetupError is the terminal error recorded in the wallet state when setup
// cannot complete. Recovering from it requires a restart of the store.
type SetupError struct {
	Kind  SetupErrorKind
	Cause error
}

func NewSetupError(kind SetupErrorKind, cause error) *SetupError {
	return &SetupError{kind, cause}
}

func (e *SetupError) Error() string {
	if e.Cause == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

func (e *SetupError) Unwrap() error {
	return e.Cause
}
