package sheets

import (
	"context"

	"github.com/appleprotools/resale/internal/catalog"
	"github.com/appleprotools/resale/internal/domain/models"
)

const salesWriteRange = "Sales!A:F"

// SalesJournal appends every registered sale as a flat row on the Sales tab.
type SalesJournal struct {
	repo Repository
}

// NewSalesJournal wires a journal over the sheet repository.
func NewSalesJournal(repo Repository) *SalesJournal {
	return &SalesJournal{repo: repo}
}

// RecordSale writes sold date, model, customer, vendor, warranty start and id.
func (j *SalesJournal) RecordSale(ctx context.Context, sale models.SaleRecord) error {
	values := []interface{}{
		sale.SoldAt.Format(catalog.DateLayout),
		sale.Model,
		sale.Customer,
		sale.Vendor,
		sale.WarrantyStart.Format(catalog.DateLayout),
		sale.ID,
	}
	return j.repo.WriteRow(ctx, salesWriteRange, values)
}
