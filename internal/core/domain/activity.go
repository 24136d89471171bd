package domain

// ActivityKind discriminates the records of the activity feed.
type ActivityKind string

const (
	ActivityLightning    ActivityKind = "Lightning"
	ActivityOnChain      ActivityKind = "OnChain"
	ActivityChannelOpen  ActivityKind = "ChannelOpen"
	ActivityChannelClose ActivityKind = "ChannelClose"
)

// PrivacyLevel of a payment as shared with contacts.
type PrivacyLevel string

const (
	PrivacyPublic       PrivacyLevel = "Public"
	PrivacyPrivate      PrivacyLevel = "Private"
	PrivacyAnonymous    PrivacyLevel = "Anonymous"
	PrivacyNotAvailable PrivacyLevel = "NotAvailable"
)

// ActivityItem is one entry of the wallet activity feed.
type ActivityItem struct {
	Kind        ActivityKind `json:"kind"`
	ID          string       `json:"id"`
	AmountSats  *uint64      `json:"amount_sats,omitempty"`
	Inbound     bool         `json:"inbound"`
	Labels      []string     `json:"labels"`
	Contacts    []TagItem    `json:"contacts"`
	LastUpdated *uint64      `json:"last_updated,omitempty"`
	Privacy     PrivacyLevel `json:"privacy_level"`
}

// IsPending returns whether the item has not been confirmed/settled yet.
func (a ActivityItem) IsPending() bool {
	return a.LastUpdated == nil
}
