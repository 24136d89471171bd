package domain

// Channel is a lightning channel of the node.
type Channel struct {
	UserChanID            string  `json:"user_chan_id"`
	Balance               uint64  `json:"balance"`
	Size                  uint64  `json:"size"`
	Reserve               uint64  `json:"reserve"`
	InboundLiquidity      uint64  `json:"inbound"`
	Outpoint              string  `json:"outpoint,omitempty"`
	Peer                  string  `json:"peer"`
	ConfirmationsRequired *uint32 `json:"confirmations_required,omitempty"`
	Confirmations         uint32  `json:"confirmations"`
	IsOutbound            bool    `json:"is_outbound"`
	IsUsable              bool    `json:"is_usable"`
	IsAnchor              bool    `json:"is_anchor"`
}

// ChannelClosure records a channel that has been closed.
type ChannelClosure struct {
	ChannelID     string `json:"channel_id,omitempty"`
	UserChannelID string `json:"user_channel_id,omitempty"`
	NodeID        string `json:"node_id,omitempty"`
	Reason        string `json:"reason"`
	Timestamp     uint64 `json:"timestamp"`
}

// Peer is a lightning node the wallet knows about.
type Peer struct {
	Pubkey           string `json:"pubkey"`
	ConnectionString string `json:"connection_string,omitempty"`
	Alias            string `json:"alias,omitempty"`
	Color            string `json:"color,omitempty"`
	Label            string `json:"label,omitempty"`
	IsConnected      bool   `json:"is_connected"`
}
