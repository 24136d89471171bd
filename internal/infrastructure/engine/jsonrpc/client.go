package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mutinywallet/mutinyd/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

const jsonrpcVersion = "2.0"

var (
	ErrNotConnected = errors.New("engine connection is not open")
	ErrConnClosed   = errors.New("engine connection closed")
)

type request struct {
	Version string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type response struct {
	Version string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *struct {
		Kind string `json:"kind"`
	} `json:"data,omitempty"`
}

// toEngineError maps the error to the engine error kind it is tagged with.
func (e *rpcError) toEngineError() error {
	kind := domain.ErrKindUnknown
	if e.Data != nil {
		kind = domain.ErrorKindFromString(e.Data.Kind)
	}
	return domain.NewEngineError(kind, e.Message)
}

// client is a JSON-RPC 2.0 client over a websocket connection. Requests are
// matched to responses by id, so calls can be made concurrently.
type client struct {
	conn      *websocket.Conn
	writeLock *sync.Mutex

	lock    *sync.Mutex
	pending map[string]chan response
	err     error
	done    chan struct{}
}

func dial(ctx context.Context, addr string) (*client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to engine at %s: %w", addr, err)
	}

	c := &client{
		conn:      conn,
		writeLock: &sync.Mutex{},
		lock:      &sync.Mutex{},
		pending:   make(map[string]chan response),
		done:      make(chan struct{}),
	}
	go c.listen()
	return c, nil
}

// call sends the request and decodes the result into res, if not nil.
func (c *client) call(
	ctx context.Context, method string, params, res interface{},
) error {
	id := uuid.New().String()
	ch := make(chan response, 1)

	c.lock.Lock()
	if c.err != nil {
		err := c.err
		c.lock.Unlock()
		return err
	}
	c.pending[id] = ch
	c.lock.Unlock()

	defer func() {
		c.lock.Lock()
		delete(c.pending, id)
		c.lock.Unlock()
	}()

	log.Debugf("engine: %s", method)

	c.writeLock.Lock()
	err := c.conn.WriteJSON(request{jsonrpcVersion, id, method, params})
	c.writeLock.Unlock()
	if err != nil {
		return err
	}

	select {
	case resp := <-ch:
		if resp.Error != nil {
			return resp.Error.toEngineError()
		}
		if res == nil || len(resp.Result) <= 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Result, res); err != nil {
			return fmt.Errorf("cannot decode result of %s: %w", method, err)
		}
		return nil
	case <-c.done:
		return c.closeErr()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *client) listen() {
	defer close(c.done)

	for {
		resp := response{}
		if err := c.conn.ReadJSON(&resp); err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseNormalClosure,
			) {
				log.WithError(err).Warn("engine connection dropped unexpectedly")
			}
			c.fail(ErrConnClosed)
			return
		}

		c.lock.Lock()
		ch, ok := c.pending[resp.ID]
		c.lock.Unlock()
		if !ok {
			log.Debugf("engine: dropping response for unknown request %s", resp.ID)
			continue
		}
		select {
		case ch <- resp:
		default:
		}
	}
}

func (c *client) fail(err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.err == nil {
		c.err = err
	}
}

func (c *client) closeErr() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.err == nil {
		return ErrConnClosed
	}
	return c.err
}

func (c *client) close() error {
	c.fail(ErrConnClosed)

	c.writeLock.Lock()
	//nolint
	c.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	c.writeLock.Unlock()
	err := c.conn.Close()
	<-c.done
	return err
}
