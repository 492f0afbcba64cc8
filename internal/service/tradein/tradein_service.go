package tradein

import (
	"github.com/appleprotools/resale/internal/catalog"
	"github.com/appleprotools/resale/internal/domain/models"
	"github.com/appleprotools/resale/internal/service/pricing"
)

// AveragePricer provides the market average of a model.
type AveragePricer interface {
	AveragePrice(model string) float64
}

// Service values used devices offered as part payment.
type Service struct {
	prices  AveragePricer
	repairs catalog.RepairCostTable
}

// NewService wires a trade-in service.
func NewService(prices AveragePricer, repairs catalog.RepairCostTable) *Service {
	return &Service{prices: prices, repairs: repairs}
}

// RepairDeduction sums the repair cost of every label. Unknown labels cost 0
// and a label listed twice is charged twice.
func (s *Service) RepairDeduction(damages []string) float64 {
	var total float64
	for _, label := range damages {
		total += s.repairs.Deduction(label)
	}
	return total
}

// TradeInValue is the credit for usedModel after repairs. It is not clamped
// and goes negative when repairs exceed the market average.
func (s *Service) TradeInValue(usedModel string, damages []string) float64 {
	return s.prices.AveragePrice(usedModel) - s.RepairDeduction(damages)
}

// AmountDue is what the customer still pays for desiredModel after the credit.
func (s *Service) AmountDue(desiredModel, usedModel string, damages []string) float64 {
	return s.prices.AveragePrice(desiredModel) - s.TradeInValue(usedModel, damages)
}

// DealMargin measures the desired model's average against the used device's
// pre-repair value (trade-in credit plus the deduction added back).
func (s *Service) DealMargin(desiredModel, usedModel string, damages []string) float64 {
	cost := s.TradeInValue(usedModel, damages) + s.RepairDeduction(damages)
	return pricing.Margin(cost, s.prices.AveragePrice(desiredModel))
}

// Simulate computes every figure of the deal at once.
func (s *Service) Simulate(desiredModel, usedModel string, damages []string) models.TradeInSimulation {
	if damages == nil {
		damages = []string{}
	}
	return models.TradeInSimulation{
		DesiredModel:    desiredModel,
		UsedModel:       usedModel,
		Damages:         damages,
		RepairDeduction: s.RepairDeduction(damages),
		TradeInValue:    s.TradeInValue(usedModel, damages),
		AmountDue:       s.AmountDue(desiredModel, usedModel, damages),
		DealMargin:      s.DealMargin(desiredModel, usedModel, damages),
	}
}
