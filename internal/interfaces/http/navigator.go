package httpinterface

import (
	"sync"
)

const (
	navigateEvent = "navigate"
	reloadEvent   = "reload"
)

// NavigationEvent is forwarded to the connected UIs.
type NavigationEvent struct {
	Type  string `json:"type"`
	Route string `json:"route,omitempty"`
}

// Navigator records the routes requested by the store and forwards them to
// the state streams. Reload requests are also handed to onReload.
type Navigator struct {
	onReload func()

	lock    *sync.Mutex
	current string
	subs    map[int]chan NavigationEvent
	nextID  int
}

func NewNavigator(onReload func()) *Navigator {
	return &Navigator{
		onReload: onReload,
		lock:     &sync.Mutex{},
		current:  "/",
		subs:     make(map[int]chan NavigationEvent),
	}
}

func (n *Navigator) Navigate(route string) {
	n.lock.Lock()
	n.current = route
	n.lock.Unlock()

	n.broadcast(NavigationEvent{Type: navigateEvent, Route: route})
}

func (n *Navigator) Reload() {
	n.broadcast(NavigationEvent{Type: reloadEvent})
	if n.onReload != nil {
		n.onReload()
	}
}

// Current returns the last route navigated to.
func (n *Navigator) Current() string {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.current
}

func (n *Navigator) Subscribe() (<-chan NavigationEvent, func()) {
	n.lock.Lock()
	defer n.lock.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan NavigationEvent, 8)
	n.subs[id] = ch

	return ch, func() {
		n.lock.Lock()
		defer n.lock.Unlock()
		if ch, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(ch)
		}
	}
}

// broadcast drops the event for subscribers that are not keeping up.
func (n *Navigator) broadcast(event NavigationEvent) {
	n.lock.Lock()
	defer n.lock.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
