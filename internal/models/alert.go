package models

import "time"

const (
	AlertDirectionBelow = "below"
	AlertDirectionAbove = "above"
)

// Alert is a user-managed price alert. Target prices are always in the
// canonical unit (INR per gram). ResetBuffer is the distance the price
// must recede past the target before the alert re-arms.
type Alert struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	TargetPrice float64    `json:"targetPrice"`
	Direction   string     `json:"direction"`
	ResetBuffer float64    `json:"resetBuffer"`
	Active      bool       `json:"active"`
	Triggered   bool       `json:"triggered"`
	TriggeredAt *time.Time `json:"triggeredAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
