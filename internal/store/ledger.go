package store

import (
	"sync"

	"github.com/appleprotools/resale/internal/domain/models"
)

// Ledger is the append-only record of sales and the customers they created.
type Ledger struct {
	mu        sync.RWMutex
	sales     []models.SaleRecord
	customers []models.CustomerRecord
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records a sale together with its customer entry.
func (l *Ledger) Append(sale models.SaleRecord, customer models.CustomerRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sales = append(l.sales, sale)
	l.customers = append(l.customers, customer)
}

// Sales returns a snapshot of all sale records in ledger order.
func (l *Ledger) Sales() []models.SaleRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.SaleRecord, len(l.sales))
	copy(out, l.sales)
	return out
}

// Customers returns a snapshot of all customer records in ledger order.
func (l *Ledger) Customers() []models.CustomerRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.CustomerRecord, len(l.customers))
	copy(out, l.customers)
	return out
}

// Filter returns the sale records accepted by keep, in ledger order.
func (l *Ledger) Filter(keep func(models.SaleRecord) bool) []models.SaleRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.SaleRecord, 0)
	for _, sale := range l.sales {
		if keep(sale) {
			out = append(out, sale)
		}
	}
	return out
}
