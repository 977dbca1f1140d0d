package handler

import (
	"net/http"

	"eduadmin/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CounterHandler interface {
	ListCounters(c *gin.Context)
	HitCounter(c *gin.Context)
	ResetCounters(c *gin.Context)
}

type counterHandler struct {
	counterRepo repository.CounterRepository
	logger      *zap.Logger
}

func NewCounterHandler(counterRepo repository.CounterRepository, logger *zap.Logger) CounterHandler {
	return &counterHandler{counterRepo: counterRepo, logger: logger}
}

func (h *counterHandler) ListCounters(c *gin.Context) {
	counters, err := h.counterRepo.GetAllCounters()
	if err != nil {
		h.logger.Error("Failed to fetch counters", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch counters"})
		return
	}
	c.JSON(http.StatusOK, counters)
}

// HitCounter records one visit against the named counter. Unauthenticated
// by design: it is called from public pages.
func (h *counterHandler) HitCounter(c *gin.Context) {
	counter, err := h.counterRepo.IncrementCounter(c.Param("name"))
	if err != nil {
		h.logger.Error("Failed to increment counter", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to increment counter"})
		return
	}
	c.JSON(http.StatusOK, counter)
}

func (h *counterHandler) ResetCounters(c *gin.Context) {
	reset, err := h.counterRepo.ResetCounters()
	if err != nil {
		h.logger.Error("Failed to reset counters", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset counters"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": reset})
}
