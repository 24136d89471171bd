package broadcast

import (
	"errors"
	"sync"

	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/thanhpk/randstr"
)

const channelBufferSize = 16

var ErrChannelClosed = errors.New("broadcast channel is closed")

// Hub is an in-process Broadcaster. Every channel opened with the same name
// receives the messages posted by the others, never its own.
type Hub struct {
	lock     *sync.RWMutex
	channels map[string]map[string]*channel
}

func NewHub() *Hub {
	return &Hub{
		lock:     &sync.RWMutex{},
		channels: make(map[string]map[string]*channel),
	}
}

func (h *Hub) Open(name string) (ports.BroadcastChannel, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	ch := &channel{
		id:   randstr.Hex(8),
		name: name,
		hub:  h,
		msgs: make(chan ports.TabMessage, channelBufferSize),
	}
	if _, ok := h.channels[name]; !ok {
		h.channels[name] = make(map[string]*channel)
	}
	h.channels[name][ch.id] = ch
	return ch, nil
}

func (h *Hub) post(from *channel, msg ports.TabMessage) error {
	h.lock.RLock()
	defer h.lock.RUnlock()

	if _, ok := h.channels[from.name][from.id]; !ok {
		return ErrChannelClosed
	}
	for id, ch := range h.channels[from.name] {
		if id == from.id {
			continue
		}
		// Slow readers lose messages rather than blocking the sender.
		select {
		case ch.msgs <- msg:
		default:
		}
	}
	return nil
}

func (h *Hub) remove(ch *channel) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if _, ok := h.channels[ch.name][ch.id]; !ok {
		return ErrChannelClosed
	}
	delete(h.channels[ch.name], ch.id)
	if len(h.channels[ch.name]) == 0 {
		delete(h.channels, ch.name)
	}
	close(ch.msgs)
	return nil
}

type channel struct {
	id   string
	name string
	hub  *Hub
	msgs chan ports.TabMessage
}

func (c *channel) Post(msg ports.TabMessage) error {
	return c.hub.post(c, msg)
}

func (c *channel) Messages() <-chan ports.TabMessage {
	return c.msgs
}

func (c *channel) Close() error {
	return c.hub.remove(c)
}
