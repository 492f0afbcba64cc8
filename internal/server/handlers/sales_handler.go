package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/appleprotools/resale/internal/catalog"
	"github.com/appleprotools/resale/internal/domain/models"
)

// RegisterSale sells one unit. Out of stock answers 409 Conflict.
func (h *DashboardHandler) RegisterSale(c *gin.Context) {
	var req models.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	now := h.now()
	warranty := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if ws := strings.TrimSpace(req.WarrantyStart); ws != "" {
		parsed, err := time.Parse(catalog.DateLayout, ws)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "warranty_start must be YYYY-MM-DD"})
			return
		}
		warranty = parsed
	}

	sale, ok := h.sales.RegisterSale(c.Request.Context(), req.Model, req.Customer, req.Vendor, warranty)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "model out of stock", "model": req.Model})
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// ListSales dumps the ledger, or one customer's sales when customer is given.
func (h *DashboardHandler) ListSales(c *gin.Context) {
	if name, ok := c.GetQuery("customer"); ok {
		c.JSON(http.StatusOK, gin.H{"sales": h.sales.SalesByCustomer(name)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": h.sales.Sales()})
}

// ListCustomers dumps every customer entry.
func (h *DashboardHandler) ListCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customers": h.sales.Customers()})
}

// StaleCustomers lists sales older than a year at as_of (default now).
func (h *DashboardHandler) StaleCustomers(c *gin.Context) {
	asOf := h.now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(catalog.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	c.JSON(http.StatusOK, gin.H{"as_of": asOf.Format(catalog.DateLayout), "sales": h.sales.StaleCustomers(asOf)})
}
