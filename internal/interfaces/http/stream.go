package httpinterface

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/mutinywallet/mutinyd/internal/core/application/megastore"
	log "github.com/sirupsen/logrus"
)

const (
	stateEvent = "state"
	writeWait  = 10 * time.Second
)

type setupErrorView struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type stateView struct {
	megastore.State
	SetupError *setupErrorView `json:"setup_error,omitempty"`
	IsPlus     bool            `json:"is_plus"`
}

func stateResponse(st megastore.State) stateView {
	view := stateView{
		State:  st,
		IsPlus: st.IsPlusSubscriber(time.Now()),
	}
	if st.SetupError != nil {
		view.SetupError = &setupErrorView{
			Kind:  string(st.SetupError.Kind),
			Error: st.SetupError.Error(),
		}
	}
	return view
}

type streamMessage struct {
	Type  string     `json:"type"`
	State *stateView `json:"state,omitempty"`
	Route string     `json:"route,omitempty"`
}

// streamState upgrades to a websocket and pushes the current state, then
// every state change and navigation event until the client goes away.
func (h *handler) streamState(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("failed to upgrade state stream")
		return
	}
	h.streams.Add(1)
	defer h.streams.Done()
	defer conn.Close()

	states, unsubscribeStates := h.store.Subscribe()
	defer unsubscribeStates()
	routes, unsubscribeRoutes := h.navigator.Subscribe()
	defer unsubscribeRoutes()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		var msg streamMessage
		select {
		case <-closed:
			return
		case <-h.done:
			conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait),
			)
			return
		case st, ok := <-states:
			if !ok {
				return
			}
			view := stateResponse(st)
			msg = streamMessage{Type: stateEvent, State: &view}
		case event, ok := <-routes:
			if !ok {
				return
			}
			msg = streamMessage{Type: event.Type, Route: event.Route}
		}
		if err := writeMessage(conn, msg); err != nil {
			log.WithError(err).Debug("state stream closed")
			return
		}
	}
}

func (h *handler) closeStreams() {
	h.once.Do(func() { close(h.done) })
	h.streams.Wait()
}

func writeMessage(conn *websocket.Conn, msg streamMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
