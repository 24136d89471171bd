package jsonrpc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

var ErrMissingAddr = errors.New("missing engine address")

// methods not bounded by the request timeout.
var unboundedMethods = map[string]bool{
	// wallet creation is bounded by the setup watchdog.
	"new_mutiny_wallet": true,
}

type engine struct {
	addr    string
	timeout time.Duration

	lock   *sync.Mutex
	client *client
}

// NewEngine returns an Engine talking JSON-RPC over websocket to the wallet
// engine listening at addr. The connection is opened by Load.
// Calls made with a context without deadline are bounded by timeout, if
// positive.
func NewEngine(addr string, timeout time.Duration) (ports.Engine, error) {
	if addr == "" {
		return nil, ErrMissingAddr
	}
	return &engine{addr: addr, timeout: timeout, lock: &sync.Mutex{}}, nil
}

func (e *engine) Load(ctx context.Context) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.client != nil {
		select {
		case <-e.client.done:
		default:
			return nil
		}
		log.Info("engine connection lost, reconnecting")
		//nolint
		e.client.conn.Close()
	}

	c, err := dial(ctx, e.addr)
	if err != nil {
		return err
	}
	e.client = c
	return nil
}

func (e *engine) Version(ctx context.Context) (string, error) {
	var version string
	err := e.call(ctx, "version", nil, &version)
	return version, err
}

func (e *engine) HasNodeManager(ctx context.Context) (bool, error) {
	var exists bool
	err := e.call(ctx, "has_node_manager", nil, &exists)
	return exists, err
}

func (e *engine) NewWallet(
	ctx context.Context, args ports.WalletArgs,
) (ports.Wallet, error) {
	params := newWalletParams(args)
	if err := e.call(ctx, "new_mutiny_wallet", params, nil); err != nil {
		return nil, err
	}
	return newWallet(e), nil
}

func (e *engine) ParseParams(
	ctx context.Context, str, network string,
) (ports.ParsedParams, error) {
	res := &parsedParams{}
	params := map[string]interface{}{"string": str, "network": network}
	if err := e.call(ctx, "parse_params", params, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (e *engine) ImportJSON(ctx context.Context, json string) error {
	return e.call(ctx, "import_json", map[string]interface{}{"json": json}, nil)
}

func (e *engine) RestoreMnemonic(
	ctx context.Context, mnemonic, password string,
) error {
	params := map[string]interface{}{
		"mnemonic": mnemonic,
		"password": password,
	}
	return e.call(ctx, "restore_mnemonic", params, nil)
}

func (e *engine) DeleteAll(ctx context.Context) error {
	return e.call(ctx, "delete_all", nil, nil)
}

func (e *engine) Close() {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.client == nil {
		return
	}
	if err := e.client.close(); err != nil {
		log.WithError(err).Debug("engine: error while closing connection")
	}
	e.client = nil
}

func (e *engine) call(
	ctx context.Context, method string, params, res interface{},
) error {
	e.lock.Lock()
	c := e.client
	e.lock.Unlock()

	if c == nil {
		return domain.NewEngineError(
			domain.ErrKindNotRunning, ErrNotConnected.Error(),
		)
	}

	if _, ok := ctx.Deadline(); !ok && e.timeout > 0 && !unboundedMethods[method] {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return c.call(ctx, method, params, res)
}

// newWalletParams omits the unset settings, the engine falls back to its
// own defaults for them.
func newWalletParams(args ports.WalletArgs) map[string]interface{} {
	params := map[string]interface{}{
		"safe_mode":        args.SafeMode,
		"skip_device_lock": args.SkipDeviceLock,
	}
	for _, key := range domain.SettingsKeys {
		if key == "selfhosted" {
			continue
		}
		if v := args.Settings.Get(key); v != "" {
			params[key] = v
		}
	}
	if args.Password != "" {
		params["password"] = args.Password
	}
	if args.Nsec != "" {
		params["nsec"] = args.Nsec
	}
	return params
}
