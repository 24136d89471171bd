package domain

// DirectMessage is a nostr DM exchanged with a contact.
type DirectMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
	Date    uint64 `json:"date"`
	EventID string `json:"event_id"`
}

// NostrProfile is the kind-0 metadata published for the wallet's npub.
type NostrProfile struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Picture     string `json:"picture,omitempty"`
	Lud16       string `json:"lud16,omitempty"`
	Nip05       string `json:"nip05,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
}
