package models

import (
	"encoding/json"
	"time"
)

// Payment is an append-only snapshot of the gateway's transaction record,
// tagged with local timestamps. Amount is in minor units as reported by
// the gateway; Raw keeps the full transaction body verbatim.
type Payment struct {
	ID            string          `json:"id,omitempty"`
	Reference     string          `json:"reference"`
	Status        string          `json:"status"`
	Amount        int64           `json:"amount"`
	Currency      string          `json:"currency"`
	Channel       string          `json:"channel,omitempty"`
	CustomerEmail string          `json:"email,omitempty"`
	PaidAt        string          `json:"paidAt,omitempty"`
	Raw           json.RawMessage `json:"raw,omitempty"`
	Created       time.Time       `json:"createdAt"`
}
