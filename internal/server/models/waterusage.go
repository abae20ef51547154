package models

import "time"

type WaterUsageStatus string

const (
	WaterUsageOptimal WaterUsageStatus = "Optimal"
	WaterUsageHigh    WaterUsageStatus = "High"
	WaterUsageLow     WaterUsageStatus = "Low"
)

func (s WaterUsageStatus) Valid() bool {
	switch s {
	case WaterUsageOptimal, WaterUsageHigh, WaterUsageLow:
		return true
	}
	return false
}

// WaterUsage is one irrigation reading for a field.
type WaterUsage struct {
	ID         string           `json:"id"`
	Field      string           `json:"field"`
	LitersUsed float64          `json:"litersUsed"`
	Status     WaterUsageStatus `json:"status"`
	UserID     string           `json:"userId,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}
