package models

import "time"

// DailyReport is the end-of-day digest archived in MongoDB.
type DailyReport struct {
	Date           time.Time      `bson:"date" json:"date"`
	UnitsSold      int            `bson:"units_sold" json:"units_sold"`
	SoldByModel    map[string]int `bson:"sold_by_model" json:"sold_by_model"`
	UnitsInStock   int            `bson:"units_in_stock" json:"units_in_stock"`
	StockValue     float64        `bson:"stock_value" json:"stock_value"`
	LastUnitModels []string       `bson:"last_unit_models" json:"last_unit_models"`
	StaleSales     int            `bson:"stale_sales" json:"stale_sales"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
}
