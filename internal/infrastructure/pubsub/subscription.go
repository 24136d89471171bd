package pubsub

import (
	"fmt"
	"net/url"

	"github.com/mutinywallet/mutinyd/internal/core/ports"
	"github.com/thanhpk/randstr"
)

type Subscription struct {
	ID       string `badgerhold:"key" json:"id"`
	Event    string `badgerholdIndex:"Event" json:"event"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

type subscriptions []Subscription

func (s subscriptions) toPortable() []ports.Subscription {
	subs := make([]ports.Subscription, 0, len(s))
	for i := range s {
		sub := s[i]
		subs = append(subs, &sub)
	}
	return subs
}

func NewSubscription(event, endpoint, secret string) (*Subscription, error) {
	if !ports.IsValidTopic(event) {
		return nil, ErrInvalidTopic
	}
	u, err := url.ParseRequestURI(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid webhook endpoint, must be a valid URI")
	}
	id := randstr.Hex(16)
	return &Subscription{id, event, endpoint, secret}, nil
}

func (h *Subscription) Topic() string {
	return h.Event
}

func (h *Subscription) Id() string {
	return h.ID
}

func (h *Subscription) NotifyAt() string {
	return h.Endpoint
}

func (h *Subscription) IsSecured() bool {
	return len(h.Secret) > 0
}
