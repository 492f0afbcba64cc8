package models

import "time"

// SaleRecord captures one unit sold. Records are never modified after creation.
type SaleRecord struct {
	ID            string    `json:"id" bson:"_id"`
	Model         string    `json:"model" bson:"model"`
	Customer      string    `json:"customer" bson:"customer"`
	Vendor        string    `json:"vendor" bson:"vendor"`
	WarrantyStart time.Time `json:"warranty_start" bson:"warranty_start"`
	SoldAt        time.Time `json:"sold_at" bson:"sold_at"`
}

// CustomerRecord is appended for every successful sale; names are not merged.
type CustomerRecord struct {
	Name         string    `json:"name" bson:"name"`
	RegisteredAt time.Time `json:"registered_at" bson:"registered_at"`
}
