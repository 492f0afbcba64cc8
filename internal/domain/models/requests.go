package models

// TradeInRequest asks for a trade-in simulation.
type TradeInRequest struct {
	DesiredModel string   `json:"desired_model" binding:"required"`
	UsedModel    string   `json:"used_model" binding:"required"`
	Damages      []string `json:"damages"`
}

// SaleRequest registers the sale of one unit. WarrantyStart is a
// YYYY-MM-DD date and defaults to the sale day.
type SaleRequest struct {
	Model         string `json:"model" binding:"required"`
	Customer      string `json:"customer" binding:"required"`
	Vendor        string `json:"vendor" binding:"required"`
	WarrantyStart string `json:"warranty_start"`
}

// MarginResponse is the margin view for one cost figure.
type MarginResponse struct {
	Model   string  `json:"model"`
	Cost    float64 `json:"cost"`
	Average float64 `json:"average"`
	Margin  float64 `json:"margin"`
}
