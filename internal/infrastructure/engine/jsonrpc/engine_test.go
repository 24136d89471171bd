package jsonrpc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/mutinywallet/mutinyd/internal/infrastructure/engine/jsonrpc"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

type fakeEngine struct {
	*httptest.Server
	addr string

	lock  sync.Mutex
	calls map[string]json.RawMessage
}

func newFakeEngine(t *testing.T) *fakeEngine {
	f := &fakeEngine{calls: make(map[string]json.RawMessage)}
	upgrader := websocket.Upgrader{}

	f.Server = httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			defer conn.Close()

			for {
				req := struct {
					ID     string          `json:"id"`
					Method string          `json:"method"`
					Params json.RawMessage `json:"params"`
				}{}
				if err := conn.ReadJSON(&req); err != nil {
					return
				}
				f.record(req.Method, req.Params)

				resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
				switch req.Method {
				case "version":
					resp["result"] = "1.0.0"
				case "new_mutiny_wallet", "check_address":
					resp["result"] = nil
				case "get_balance":
					resp["result"] = map[string]interface{}{
						"lightning": 1000, "confirmed": 2000, "force_close": 4,
					}
				case "list_channels":
					resp["result"] = []map[string]interface{}{
						{"user_chan_id": "a", "balance": 10, "size": 100, "usable": true},
						{"user_chan_id": "b", "confirmations_required": 3},
					}
				case "pay_invoice":
					resp["error"] = map[string]interface{}{
						"code":    -32000,
						"message": "not enough funds",
						"data":    map[string]string{"kind": "insufficient_balance"},
					}
				case "get_logs":
					// Never answered.
					continue
				case "delete_all":
					return
				default:
					resp["error"] = map[string]interface{}{
						"code": -32601, "message": "method not found",
					}
				}
				if err := conn.WriteJSON(resp); err != nil {
					return
				}
			}
		},
	))
	f.addr = "ws" + strings.TrimPrefix(f.URL, "http")
	t.Cleanup(f.Close)
	return f
}

func (f *fakeEngine) record(method string, params json.RawMessage) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls[method] = params
}

func (f *fakeEngine) params(t *testing.T, method string) map[string]interface{} {
	f.lock.Lock()
	defer f.lock.Unlock()

	raw, ok := f.calls[method]
	require.True(t, ok, "%s was not called", method)
	params := map[string]interface{}{}
	if len(raw) > 0 && string(raw) != "null" {
		require.NoError(t, json.Unmarshal(raw, &params))
	}
	return params
}

func newLoadedEngine(t *testing.T, f *fakeEngine) ports.Engine {
	engine, err := jsonrpc.NewEngine(f.addr, 0)
	require.NoError(t, err)
	require.NoError(t, engine.Load(ctx))
	t.Cleanup(engine.Close)
	return engine
}

func TestNewEngine(t *testing.T) {
	_, err := jsonrpc.NewEngine("", 0)
	require.ErrorIs(t, err, jsonrpc.ErrMissingAddr)

	engine, err := jsonrpc.NewEngine("ws://127.0.0.1:1", 0)
	require.NoError(t, err)

	_, err = engine.Version(ctx)
	require.True(t, domain.IsKind(err, domain.ErrKindNotRunning))

	require.Error(t, engine.Load(ctx))
}

func TestEngine(t *testing.T) {
	f := newFakeEngine(t)
	engine := newLoadedEngine(t, f)

	// Loading twice keeps the open connection.
	require.NoError(t, engine.Load(ctx))

	version, err := engine.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", version)

	wallet, err := engine.NewWallet(ctx, ports.WalletArgs{
		Settings: domain.Settings{
			Network: "signet",
			Proxy:   "wss://p.example.com",
		},
		Password: "password",
		Nsec:     "nsec1abc",
	})
	require.NoError(t, err)

	params := f.params(t, "new_mutiny_wallet")
	require.Equal(t, "signet", params["network"])
	require.Equal(t, "wss://p.example.com", params["proxy"])
	require.Equal(t, "password", params["password"])
	require.Equal(t, "nsec1abc", params["nsec"])
	require.Equal(t, false, params["safe_mode"])
	require.NotContains(t, params, "lsp")
	require.NotContains(t, params, "selfhosted")

	t.Run("handles", func(t *testing.T) {
		balance, err := wallet.Node().GetBalance(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(1000), balance.GetLightning())
		require.Equal(t, uint64(2000), balance.GetConfirmed())
		require.Equal(t, uint64(4), balance.GetForceClose())
		require.Zero(t, balance.GetFederation())

		channels, err := wallet.Node().ListChannels(ctx)
		require.NoError(t, err)
		require.Len(t, channels, 2)
		require.Equal(t, "a", channels[0].GetUserChanID())
		require.True(t, channels[0].IsUsable())
		require.Nil(t, channels[0].GetConfirmationsRequired())
		require.Equal(t, uint32(3), *channels[1].GetConfirmationsRequired())

		details, err := wallet.Node().CheckAddress(ctx, "bc1q")
		require.NoError(t, err)
		require.Nil(t, details)
		require.Equal(t, "bc1q", f.params(t, "check_address")["address"])
	})

	t.Run("errors", func(t *testing.T) {
		_, err := wallet.Node().PayInvoice(ctx, "lnbc1", nil, []string{"a"})
		require.True(t, domain.IsKind(err, domain.ErrKindInsufficientBalance))
		require.EqualError(t, err, "insufficient_balance: not enough funds")

		_, err = wallet.Nwc().GetNwcProfiles(ctx)
		require.Equal(t, domain.ErrKindUnknown, domain.KindOf(err))

		timeoutCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()
		_, err = wallet.Node().GetLogs(timeoutCtx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestRequestTimeout(t *testing.T) {
	f := newFakeEngine(t)
	engine, err := jsonrpc.NewEngine(f.addr, 100*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, engine.Load(ctx))
	t.Cleanup(engine.Close)

	wallet, err := engine.NewWallet(ctx, ports.WalletArgs{})
	require.NoError(t, err)

	_, err = wallet.Node().GetLogs(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	version, err := engine.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", version)
}

func TestReconnect(t *testing.T) {
	f := newFakeEngine(t)
	engine := newLoadedEngine(t, f)

	// The fake engine drops the connection while deleting.
	err := engine.DeleteAll(ctx)
	require.ErrorIs(t, err, jsonrpc.ErrConnClosed)

	_, err = engine.Version(ctx)
	require.ErrorIs(t, err, jsonrpc.ErrConnClosed)

	require.NoError(t, engine.Load(ctx))
	version, err := engine.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", version)
}
