package models

import "time"

// InventoryLot tracks the units on hand for one model. A lot that reaches zero
// stays in the store as out of stock.
type InventoryLot struct {
	Model    string    `json:"model" bson:"model"`
	Quantity int       `json:"quantity" bson:"quantity"`
	IntakeAt time.Time `json:"intake_at" bson:"intake_at"`
	UnitCost float64   `json:"unit_cost" bson:"unit_cost"`
}

// InStock reports whether at least one unit can still be sold.
func (l InventoryLot) InStock() bool {
	return l.Quantity > 0
}

// InsightCode classifies the stock level of a model.
type InsightCode string

const (
	InsightNotInStock    InsightCode = "not-in-stock"
	InsightHighStock     InsightCode = "high-stock"
	InsightLastUnit      InsightCode = "last-unit"
	InsightModerateStock InsightCode = "moderate-stock"
)

// Insight is one stock advice line shown next to a model.
type Insight struct {
	Code    InsightCode `json:"code"`
	Message string      `json:"message"`
}

// Bundle is an accessory combo suggested for models with spare units.
type Bundle struct {
	Label          string  `json:"label"`
	Model          string  `json:"model"`
	SuggestedPrice float64 `json:"suggested_price"`
}
