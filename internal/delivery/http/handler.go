package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pricecart/backend/internal/domain"
	"github.com/pricecart/backend/internal/infrastructure/export"
)

// ComparisonService is what the handlers need from the usecase layer
type ComparisonService interface {
	Compare(ctx context.Context, request *domain.ComparisonRequest) (*domain.Comparison, error)
	History(ctx context.Context, clientID string) ([]domain.HistoryEntry, error)
	ClearHistory(ctx context.Context, clientID string) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	comparisonService ComparisonService
	catalog           *domain.Catalog
}

// NewHandler creates a new HTTP handler. With a nil service the comparison
// endpoints answer 501; with a nil catalog the catalog endpoint answers 503.
func NewHandler(comparisonService ComparisonService, catalog *domain.Catalog) *Handler {
	return &Handler{
		comparisonService: comparisonService,
		catalog:           catalog,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	catalogSize := 0
	if h.catalog != nil {
		catalogSize = h.catalog.Len()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     "pricecart-backend",
		"version":     "1.0.0",
		"catalogSize": catalogSize,
	})
}

// Compare handles shopping-list comparison requests
func (h *Handler) Compare(c *gin.Context) {
	comparison, ok := h.runComparison(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, domain.NewComparisonResponse(comparison))
}

// ExportComparison runs a comparison and returns it as an XLSX workbook
func (h *Handler) ExportComparison(c *gin.Context) {
	comparison, ok := h.runComparison(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteComparison(&buf, comparison); err != nil {
		log.Printf("[COMPARE] Export failed for %s: %v", comparison.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export comparison"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pricecart-%s.xlsx"`, comparison.ID))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// Catalog lists the products prices are compared for
func (h *Handler) Catalog(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrCatalogUnavailable.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": h.catalog.Products(),
		"count":    h.catalog.Len(),
	})
}

// Stores lists the compared stores in tie-break order
func (h *Handler) Stores(c *gin.Context) {
	stores := make([]gin.H, 0, domain.StoreCount)
	for _, s := range domain.AllStores() {
		stores = append(stores, gin.H{"id": s, "name": s.DisplayName()})
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// History returns the caller's recent comparisons, newest first
func (h *Handler) History(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	entries, err := h.comparisonService.History(c.Request.Context(), clientID(c))
	if errors.Is(err, domain.ErrHistoryNotFound) {
		entries = []domain.HistoryEntry{}
	} else if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// ClearHistory drops the caller's recorded comparisons
func (h *Handler) ClearHistory(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	if err := h.comparisonService.ClearHistory(c.Request.Context(), clientID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) runComparison(c *gin.Context) (*domain.Comparison, bool) {
	if !h.requireService(c) {
		return nil, false
	}

	request := bindCompareRequest(c)
	comparison, err := h.comparisonService.Compare(c.Request.Context(), request)
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return comparison, true
}

func (h *Handler) requireService(c *gin.Context) bool {
	if h.comparisonService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "comparison service not configured"})
		return false
	}
	return true
}

// writeError maps usecase errors to HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request cancelled"})
	default:
		log.Printf("[COMPARE] Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
