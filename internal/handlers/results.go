// results.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"neuroscreen/internal/models"
	"neuroscreen/internal/store"
)

// Insighter is the optional narrative service used for the cross-result
// summary endpoint. Failures degrade to an empty narrative.
type Insighter interface {
	Insights(ctx context.Context, results []models.AssessmentResult) (string, error)
}

type ResultsHandler struct {
	log       *zap.Logger
	results   store.ResultStore
	insighter Insighter
}

func NewResultsHandler(log *zap.Logger, results store.ResultStore, insighter Insighter) *ResultsHandler {
	return &ResultsHandler{log: log, results: results, insighter: insighter}
}

// List returns results for a domain in insertion order.
func (h *ResultsHandler) List(c *gin.Context) {
	domain, ok := h.domain(c)
	if !ok {
		return
	}

	results, err := h.results.ByDomain(domain)
	if err != nil {
		h.log.Error("Failed to load results", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load results"})
		return
	}
	if results == nil {
		results = []models.AssessmentResult{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Latest returns the most recent result for a domain.
func (h *ResultsHandler) Latest(c *gin.Context) {
	domain, ok := h.domain(c)
	if !ok {
		return
	}

	result, err := h.results.Latest(domain)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No results for this domain yet"})
		return
	}
	if err != nil {
		h.log.Error("Failed to load latest result", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load result"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Insights submits the domain's result list to the narrative service. The
// call is best-effort; on failure the response simply carries no narrative.
func (h *ResultsHandler) Insights(c *gin.Context) {
	domain, ok := h.domain(c)
	if !ok {
		return
	}

	results, err := h.results.ByDomain(domain)
	if err != nil {
		h.log.Error("Failed to load results", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load results"})
		return
	}

	narrative := ""
	if h.insighter != nil && len(results) > 0 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		narrative, err = h.insighter.Insights(ctx, results)
		if err != nil {
			h.log.Warn("Insight service unavailable", zap.Error(err))
			narrative = ""
		}
	}

	c.JSON(http.StatusOK, gin.H{"narrative": narrative, "resultCount": len(results)})
}

// ScoreChart renders the domain's score history as a line chart.
func (h *ResultsHandler) ScoreChart(c *gin.Context) {
	domain, ok := h.domain(c)
	if !ok {
		return
	}

	results, err := h.results.ByDomain(domain)
	if err != nil {
		h.log.Error("Failed to load results", zap.Error(err))
		c.String(http.StatusInternalServerError, "Could not load results")
		return
	}

	dates := make([]string, 0, len(results))
	scores := make([]opts.LineData, 0, len(results))
	for _, r := range results {
		dates = append(dates, r.CreatedAt.Format("2006-01-02 15:04"))
		scores = append(scores, opts.LineData{Value: r.Score})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s score history", domain),
			Subtitle: "Domain score per completed assessment (0-100)",
		}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
	)
	line.SetXAxis(dates).AddSeries("Score", scores)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render chart", zap.Error(err))
	}
}

func (h *ResultsHandler) domain(c *gin.Context) (models.Domain, bool) {
	domain := models.Domain(c.Query("domain"))
	if !domain.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown or missing domain"})
		return "", false
	}
	return domain, true
}
