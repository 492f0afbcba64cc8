package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/appleprotools/resale/internal/catalog"
	"github.com/appleprotools/resale/internal/domain/models"
	"github.com/appleprotools/resale/internal/service/advisor"
	"github.com/appleprotools/resale/internal/service/pricing"
	"github.com/appleprotools/resale/internal/service/sales"
	"github.com/appleprotools/resale/internal/service/tradein"
	"github.com/appleprotools/resale/internal/store"
)

// DashboardHandler exposes the reseller dashboard operations over HTTP.
type DashboardHandler struct {
	pricing   *pricing.Service
	tradeIn   *tradein.Service
	advisor   *advisor.Service
	sales     *sales.Service
	inventory *store.Inventory
	repairs   catalog.RepairCostTable
	logger    *zap.Logger
	now       func() time.Time
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(
	pricingSvc *pricing.Service,
	tradeInSvc *tradein.Service,
	advisorSvc *advisor.Service,
	salesSvc *sales.Service,
	inventory *store.Inventory,
	repairs catalog.RepairCostTable,
	logger *zap.Logger,
) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{
		pricing:   pricingSvc,
		tradeIn:   tradeInSvc,
		advisor:   advisorSvc,
		sales:     salesSvc,
		inventory: inventory,
		repairs:   repairs,
		logger:    logger,
		now:       time.Now,
	}
}

// ListModels returns the catalog keys.
func (h *DashboardHandler) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.pricing.Models()})
}

// Quote returns source prices and their average. Unknown models quote 0.
func (h *DashboardHandler) Quote(c *gin.Context) {
	c.JSON(http.StatusOK, h.pricing.Quote(c.Param("model")))
}

// Forecast returns the 7/30/60 day depreciation forecast.
func (h *DashboardHandler) Forecast(c *gin.Context) {
	model := c.Param("model")
	c.JSON(http.StatusOK, gin.H{"model": model, "forecast": h.pricing.DepreciationForecast(model)})
}

// Margin computes the margin of the cost query parameter over the model average.
func (h *DashboardHandler) Margin(c *gin.Context) {
	model := c.Query("model")
	if model == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model is required"})
		return
	}

	cost, err := strconv.ParseFloat(c.Query("cost"), 64)
	if err != nil || math.IsNaN(cost) || math.IsInf(cost, 0) {
		h.logger.Debug("invalid cost", zap.String("cost", c.Query("cost")), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cost must be a finite number"})
		return
	}

	avg := h.pricing.AveragePrice(model)
	c.JSON(http.StatusOK, models.MarginResponse{
		Model:   model,
		Cost:    cost,
		Average: avg,
		Margin:  pricing.Margin(cost, avg),
	})
}

// TradeIn simulates a trade-in deal.
func (h *DashboardHandler) TradeIn(c *gin.Context) {
	var req models.TradeInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid trade-in payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.tradeIn.Simulate(req.DesiredModel, req.UsedModel, req.Damages))
}

// Repairs lists the repair cost table.
func (h *DashboardHandler) Repairs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"repairs": h.repairs.Table()})
}

// Inventory dumps every lot in store order.
func (h *DashboardHandler) Inventory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"lots": h.inventory.Lots()})
}

// StockInsight returns the stock advice for a model.
func (h *DashboardHandler) StockInsight(c *gin.Context) {
	model := c.Param("model")
	c.JSON(http.StatusOK, gin.H{"model": model, "insights": h.advisor.StockInsight(model)})
}

// SimilarModels returns stocked models similar to the requested one.
func (h *DashboardHandler) SimilarModels(c *gin.Context) {
	model := c.Param("model")
	c.JSON(http.StatusOK, gin.H{"model": model, "similar": h.advisor.SimilarModels(model)})
}

// Bundles returns combo suggestions for the current inventory.
func (h *DashboardHandler) Bundles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bundles": h.advisor.CurrentBundles()})
}
