package sales

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/appleprotools/resale/internal/domain/models"
	"github.com/appleprotools/resale/internal/store"
)

// staleAfter is how old a sale must be before its customer needs re-engagement.
const staleAfter = 365 * 24 * time.Hour

// Journal mirrors registered sales to an external sink.
type Journal interface {
	RecordSale(ctx context.Context, sale models.SaleRecord) error
}

// Service registers sales against the inventory and answers CRM queries.
type Service struct {
	mu        sync.Mutex
	inventory *store.Inventory
	ledger    *store.Ledger
	journal   Journal
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a sales ledger. journal may be nil.
func NewService(inventory *store.Inventory, ledger *store.Ledger, journal Journal, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inventory: inventory,
		ledger:    ledger,
		journal:   journal,
		logger:    logger,
		now:       time.Now,
	}
}

// RegisterSale sells one unit of model from the first lot with stock left.
// It returns false and changes nothing when no such lot exists.
func (s *Service) RegisterSale(ctx context.Context, model, customer, vendor string, warrantyStart time.Time) (models.SaleRecord, bool) {
	s.mu.Lock()
	lot, ok := s.inventory.TakeUnit(model)
	if !ok {
		s.mu.Unlock()
		s.logger.Info("sale rejected, out of stock", zap.String("model", model))
		return models.SaleRecord{}, false
	}

	now := s.now()
	sale := models.SaleRecord{
		ID:            uuid.NewString(),
		Model:         model,
		Customer:      customer,
		Vendor:        vendor,
		WarrantyStart: warrantyStart,
		SoldAt:        now,
	}
	s.ledger.Append(sale, models.CustomerRecord{Name: customer, RegisteredAt: now})
	s.mu.Unlock()

	s.logger.Info("sale registered",
		zap.String("sale_id", sale.ID),
		zap.String("model", model),
		zap.String("vendor", vendor),
		zap.Int("units_left", lot.Quantity))

	if s.journal != nil {
		if err := s.journal.RecordSale(ctx, sale); err != nil {
			s.logger.Warn("failed to mirror sale to journal", zap.String("sale_id", sale.ID), zap.Error(err))
		}
	}

	return sale, true
}

// SalesByCustomer returns every sale whose customer name matches exactly.
func (s *Service) SalesByCustomer(name string) []models.SaleRecord {
	return s.ledger.Filter(func(sale models.SaleRecord) bool {
		return sale.Customer == name
	})
}

// StaleCustomers returns the sale records older than a year at asOf. Each old
// record is reported even if the same customer bought again recently.
func (s *Service) StaleCustomers(asOf time.Time) []models.SaleRecord {
	return s.ledger.Filter(func(sale models.SaleRecord) bool {
		return asOf.Sub(sale.SoldAt) > staleAfter
	})
}

// Sales dumps the whole ledger.
func (s *Service) Sales() []models.SaleRecord {
	return s.ledger.Sales()
}

// Customers dumps every customer entry.
func (s *Service) Customers() []models.CustomerRecord {
	return s.ledger.Customers()
}
