package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/appleprotools/resale/internal/catalog"
	"github.com/appleprotools/resale/internal/domain/models"
)

// InventoryReader lists the current lots.
type InventoryReader interface {
	Lots() []models.InventoryLot
}

// SalesReader exposes the ledger queries the digest needs.
type SalesReader interface {
	Sales() []models.SaleRecord
	StaleCustomers(asOf time.Time) []models.SaleRecord
}

// InsightProvider classifies the stock level of a model.
type InsightProvider interface {
	StockInsight(model string) []models.Insight
}

// Service aggregates the store into daily digests.
type Service struct {
	inventory InventoryReader
	sales     SalesReader
	insights  InsightProvider
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(inventory InventoryReader, sales SalesReader, insights InsightProvider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inventory: inventory,
		sales:     sales,
		insights:  insights,
		logger:    logger,
		now:       time.Now,
	}
}

// BuildDailyReport summarizes the calendar day containing day, in day's location.
func (s *Service) BuildDailyReport(day time.Time) models.DailyReport {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	report := models.DailyReport{
		Date:           start,
		SoldByModel:    map[string]int{},
		LastUnitModels: []string{},
		CreatedAt:      s.now(),
	}

	for _, sale := range s.sales.Sales() {
		if sale.SoldAt.Before(start) || !sale.SoldAt.Before(end) {
			continue
		}
		report.UnitsSold++
		report.SoldByModel[sale.Model]++
	}

	for _, lot := range s.inventory.Lots() {
		report.UnitsInStock += lot.Quantity
		report.StockValue += float64(lot.Quantity) * lot.UnitCost
	}
	report.LastUnitModels = s.lastUnitModels()

	report.StaleSales = len(s.sales.StaleCustomers(end))

	s.logger.Debug("daily report built",
		zap.String("date", start.Format(catalog.DateLayout)),
		zap.Int("units_sold", report.UnitsSold),
		zap.Int("units_in_stock", report.UnitsInStock))

	return report
}

// StockAlerts lists every model down to its last unit, one line each.
// Empty when nothing needs attention.
func (s *Service) StockAlerts() string {
	lastUnits := s.lastUnitModels()
	if len(lastUnits) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Stock alerts:")
	for _, model := range lastUnits {
		b.WriteString("\n- ")
		b.WriteString(s.insights.StockInsight(model)[0].Message)
	}
	return b.String()
}

// FormatDailyReport renders a digest as WhatsApp text.
func FormatDailyReport(report models.DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Daily report %s\n", report.Date.Format(catalog.DateLayout))
	if report.UnitsSold == 0 {
		b.WriteString("Sales: none today.\n")
	} else {
		fmt.Fprintf(&b, "Sales: %d units", report.UnitsSold)
		keys := make([]string, 0, len(report.SoldByModel))
		for model := range report.SoldByModel {
			keys = append(keys, model)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, model := range keys {
			parts = append(parts, fmt.Sprintf("%s x%d", model, report.SoldByModel[model]))
		}
		fmt.Fprintf(&b, " (%s).\n", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, "Stock: %d units worth R$ %.2f at cost.\n", report.UnitsInStock, report.StockValue)
	if len(report.LastUnitModels) > 0 {
		fmt.Fprintf(&b, "Last units: %s.\n", strings.Join(report.LastUnitModels, ", "))
	}
	fmt.Fprintf(&b, "Customers to re-engage: %d sales older than a year.", report.StaleSales)

	return b.String()
}

// lastUnitModels keeps store order and reports each model once.
func (s *Service) lastUnitModels() []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, lot := range s.inventory.Lots() {
		if seen[lot.Model] {
			continue
		}
		seen[lot.Model] = true
		if s.insights.StockInsight(lot.Model)[0].Code == models.InsightLastUnit {
			out = append(out, lot.Model)
		}
	}
	return out
}
