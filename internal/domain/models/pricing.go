package models

// SourcePrice is the listed price of a model on one marketplace.
type SourcePrice struct {
	Source string  `json:"source"`
	Price  float64 `json:"price"`
}

// Quote is the price lookup view of a model.
type Quote struct {
	Model   string        `json:"model"`
	Sources []SourcePrice `json:"sources"`
	Average float64       `json:"average"`
}

// Forecast holds the expected resale price after 7, 30 and 60 days.
type Forecast struct {
	Days7  float64 `json:"7d"`
	Days30 float64 `json:"30d"`
	Days60 float64 `json:"60d"`
}

// TradeInSimulation groups every figure of a trade-in deal.
type TradeInSimulation struct {
	DesiredModel    string   `json:"desired_model"`
	UsedModel       string   `json:"used_model"`
	Damages         []string `json:"damages"`
	RepairDeduction float64  `json:"repair_deduction"`
	TradeInValue    float64  `json:"trade_in_value"`
	AmountDue       float64  `json:"amount_due"`
	DealMargin      float64  `json:"deal_margin"`
}
