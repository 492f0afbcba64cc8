package pricing

import (
	"sort"

	"github.com/appleprotools/resale/internal/catalog"
	"github.com/appleprotools/resale/internal/domain/models"
)

// Fixed decay applied to the average price; heuristics, not fitted to history.
const (
	decay7Days  = 0.98
	decay30Days = 0.95
	decay60Days = 0.92
)

// Service answers price questions against a PriceCatalog.
type Service struct {
	catalog catalog.PriceCatalog
}

// NewService wires a pricing service over the given catalog.
func NewService(c catalog.PriceCatalog) *Service {
	return &Service{catalog: c}
}

// AveragePrice is the arithmetic mean of every listed source price for model.
// Unknown models and models without sources average 0.
func (s *Service) AveragePrice(model string) float64 {
	prices := s.sortedPrices(model)
	if len(prices) == 0 {
		return 0
	}

	var total float64
	for _, p := range prices {
		total += p.Price
	}
	return total / float64(len(prices))
}

// Margin is the markup of averagePrice over cost, in percent. A non-positive
// cost yields 0 instead of an error.
func Margin(cost, averagePrice float64) float64 {
	if cost <= 0 {
		return 0
	}
	return (averagePrice - cost) / cost * 100
}

// DepreciationForecast projects the average price of model 7, 30 and 60 days out.
func (s *Service) DepreciationForecast(model string) models.Forecast {
	avg := s.AveragePrice(model)
	return models.Forecast{
		Days7:  avg * decay7Days,
		Days30: avg * decay30Days,
		Days60: avg * decay60Days,
	}
}

// Quote lists source prices by source name along with their average.
func (s *Service) Quote(model string) models.Quote {
	return models.Quote{
		Model:   model,
		Sources: s.sortedPrices(model),
		Average: s.AveragePrice(model),
	}
}

// Models exposes the catalog keys for model pickers.
func (s *Service) Models() []string {
	return s.catalog.Models()
}

// sortedPrices fixes the summation order so averages are reproducible.
func (s *Service) sortedPrices(model string) []models.SourcePrice {
	listed := s.catalog.Prices(model)
	out := make([]models.SourcePrice, 0, len(listed))
	for source, price := range listed {
		out = append(out, models.SourcePrice{Source: source, Price: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}
