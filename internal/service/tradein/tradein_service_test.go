package tradein

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/appleprotools/resale/internal/catalog"
	"github.com/appleprotools/resale/internal/service/pricing"
)

func newTestService() *Service {
	prices := pricing.NewService(catalog.PriceTable{
		"Used":    {"a": 900, "b": 1100},
		"Desired": {"a": 2000},
		"Cheap":   {"a": 200},
	})
	repairs := catalog.RepairTable{
		"bateria ruim":  350,
		"tela trincada": 450,
	}
	return NewService(prices, repairs)
}

func TestRepairDeduction(t *testing.T) {
	svc := newTestService()

	assert.Zero(t, svc.RepairDeduction(nil))
	assert.Equal(t, 800.0, svc.RepairDeduction([]string{"bateria ruim", "tela trincada"}))
	assert.Equal(t, 350.0, svc.RepairDeduction([]string{"bateria ruim", "nao existe"}))
}

func TestRepairDeduction_DuplicatesDoubleCount(t *testing.T) {
	svc := newTestService()

	single := svc.RepairDeduction([]string{"tela trincada"})
	double := svc.RepairDeduction([]string{"tela trincada", "tela trincada"})
	assert.Equal(t, 2*single, double)
}

func TestTradeInValueAndAmountDue(t *testing.T) {
	svc := newTestService()

	assert.Equal(t, 650.0, svc.TradeInValue("Used", []string{"bateria ruim"}))
	assert.Equal(t, 1350.0, svc.AmountDue("Desired", "Used", []string{"bateria ruim"}))
}

func TestTradeInValue_NegativeIsKept(t *testing.T) {
	svc := newTestService()

	value := svc.TradeInValue("Cheap", []string{"tela trincada"})
	assert.Equal(t, -250.0, value)
	assert.Equal(t, 2250.0, svc.AmountDue("Desired", "Cheap", []string{"tela trincada"}))

	assert.Equal(t, -350.0, svc.TradeInValue("missing", []string{"bateria ruim"}))
}

func TestDealMargin_UsesPreRepairValue(t *testing.T) {
	svc := newTestService()

	damaged := svc.DealMargin("Desired", "Used", []string{"bateria ruim", "tela trincada"})
	clean := svc.DealMargin("Desired", "Used", nil)

	assert.Equal(t, 100.0, damaged)
	assert.Equal(t, clean, damaged)
	assert.Zero(t, svc.DealMargin("Desired", "missing", nil))
}

func TestSimulate(t *testing.T) {
	svc := newTestService()

	sim := svc.Simulate("Desired", "Used", []string{"bateria ruim"})
	assert.Equal(t, "Desired", sim.DesiredModel)
	assert.Equal(t, "Used", sim.UsedModel)
	assert.Equal(t, 350.0, sim.RepairDeduction)
	assert.Equal(t, 650.0, sim.TradeInValue)
	assert.Equal(t, 1350.0, sim.AmountDue)
	assert.Equal(t, 100.0, sim.DealMargin)

	assert.NotNil(t, svc.Simulate("Desired", "Used", nil).Damages)
}
