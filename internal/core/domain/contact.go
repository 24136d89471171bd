package domain

import (
	"strings"

	"github.com/nbd-wtf/go-nostr/nip19"
)

// TagKind tells whether a tag item is a contact or a plain label.
type TagKind string

const (
	TagKindLabel   TagKind = "Label"
	TagKindContact TagKind = "Contact"
)

// TagItem is a contact or label attached to wallet activity.
type TagItem struct {
	ID             string  `json:"id"`
	Kind           TagKind `json:"kind"`
	Name           string  `json:"name"`
	Npub           string  `json:"npub,omitempty"`
	LnAddress      string  `json:"ln_address,omitempty"`
	Lnurl          string  `json:"lnurl,omitempty"`
	ImageUrl       string  `json:"image_url,omitempty"`
	PrimalImageUrl string  `json:"primal_image_url,omitempty"`
	IsFollowing    bool    `json:"is_following"`
	LastUsedTime   uint64  `json:"last_used_time"`
}

// Contact is the editable part of a contact tag item.
type Contact struct {
	Name      string `json:"name"`
	Npub      string `json:"npub,omitempty"`
	LnAddress string `json:"ln_address,omitempty"`
	Lnurl     string `json:"lnurl,omitempty"`
	ImageUrl  string `json:"image_url,omitempty"`
}

// Validate checks the contact can be handed over to the engine.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingContactName
	}
	if c.Npub != "" && !IsValidNpub(c.Npub) {
		return ErrInvalidNpub
	}
	return nil
}

// IsValidNpub returns whether s is a bech32 encoded nostr public key.
func IsValidNpub(s string) bool {
	prefix, _, err := nip19.Decode(s)
	return err == nil && prefix == "npub"
}

// IsValidNsec returns whether s is a bech32 encoded nostr secret key.
func IsValidNsec(s string) bool {
	prefix, _, err := nip19.Decode(s)
	return err == nil && prefix == "nsec"
}
