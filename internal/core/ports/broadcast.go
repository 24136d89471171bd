package ports

// TabMessageType ...
type TabMessageType string

const (
	TabMessageNewTab      TabMessageType = "NEW_TAB"
	TabMessageExistingTab TabMessageType = "EXISTING_TAB"
)

// TabMessage is exchanged over the tab-detector channel.
type TabMessage struct {
	Type TabMessageType `json:"type"`
	From string         `json:"from"`
	To   string         `json:"to,omitempty"`
}

// BroadcastChannel delivers every posted message to all the other
// subscribers of the same named channel.
type BroadcastChannel interface {
	Post(msg TabMessage) error
	Messages() <-chan TabMessage
	Close() error
}

// Broadcaster opens named broadcast channels.
type Broadcaster interface {
	Open(name string) (BroadcastChannel, error)
}
