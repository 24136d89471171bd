package domain

// BudgetPeriod is the renewal period of a NWC spending budget.
type BudgetPeriod string

const (
	BudgetPeriodDay   BudgetPeriod = "Day"
	BudgetPeriodWeek  BudgetPeriod = "Week"
	BudgetPeriodMonth BudgetPeriod = "Month"
	BudgetPeriodYear  BudgetPeriod = "Year"
	BudgetPeriodNone  BudgetPeriod = ""
)

// NwcProfile is a nostr wallet connect credential managed by the engine.
type NwcProfile struct {
	Name            string       `json:"name"`
	Index           uint32       `json:"index"`
	RelayUrl        string       `json:"relay"`
	Enabled         bool         `json:"enabled"`
	Archived        bool         `json:"archived"`
	NwcUri          string       `json:"nwc_uri,omitempty"`
	SpendingType    string       `json:"spending_conditions_type"`
	RequireApproval bool         `json:"require_approval"`
	BudgetAmount    *uint64      `json:"budget_amount,omitempty"`
	BudgetPeriod    BudgetPeriod `json:"budget_period,omitempty"`
	BudgetRemaining *uint64      `json:"budget_remaining,omitempty"`
	SingleMax       *uint64      `json:"single_max,omitempty"`
	ActivePayments  []uint32     `json:"active_payments,omitempty"`
	Tag             string       `json:"tag"`
	Label           string       `json:"label,omitempty"`
}

// PendingNwcInvoice is a payment request from a NWC client awaiting approval.
type PendingNwcInvoice struct {
	Index       *uint32 `json:"index,omitempty"`
	ID          string  `json:"id"`
	ProfileName string  `json:"profile_name,omitempty"`
	Invoice     string  `json:"invoice"`
	AmountSats  uint64  `json:"amount_sats"`
	Description string  `json:"invoice_description,omitempty"`
	Expiry      uint64  `json:"expiry"`
}
