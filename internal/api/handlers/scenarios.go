package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmw24/IndiaElecGen/internal/api/models"
	"github.com/dmw24/IndiaElecGen/internal/planner"
	"github.com/dmw24/IndiaElecGen/internal/sweep"
)

// baseScenarioID names the single-run output directory when it holds a
// complete artifact set.
const baseScenarioID = "base"

// ScenarioHandler serves precomputed optimization outputs to the dashboard.
// It never recomputes anything; it only reads the artifact tree.
type ScenarioHandler struct {
	// OutputDir is the single-run output directory (the "base" scenario).
	OutputDir string
	// ScenarioRoot holds per-scenario directories plus scenario_index.json.
	ScenarioRoot string
}

func NewScenarioHandler(outputDir string) *ScenarioHandler {
	return &ScenarioHandler{
		OutputDir:    outputDir,
		ScenarioRoot: filepath.Join(outputDir, "scenarios"),
	}
}

// ListScenarios handles GET /api/v1/scenarios. Discovery prefers the sweep
// index, falls back to scanning scenario directories, and always lists the
// base run first when present. Duplicate ids keep their first appearance.
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	var scenarios []models.ScenarioInfo

	if scenarioExists(h.OutputDir) {
		scenarios = append(scenarios, models.ScenarioInfo{
			ID:     baseScenarioID,
			Label:  "Base case",
			Source: "outputs",
			Path:   h.OutputDir,
		})
	}

	if idx, err := sweep.ReadIndex(filepath.Join(h.ScenarioRoot, sweep.IndexFile)); err == nil {
		for _, row := range idx.Scenarios {
			id := strings.TrimSpace(row.ID)
			if id == "" {
				continue
			}
			dir := filepath.Join(h.ScenarioRoot, id)
			if !scenarioExists(dir) {
				continue
			}
			row := row
			scenarios = append(scenarios, models.ScenarioInfo{
				ID:                                  id,
				Label:                               row.Label,
				Source:                              "scenario_index",
				Path:                                dir,
				MinNonFossilShare:                   &row.MinNonFossilShare,
				ThresholdNonFossilShare:             &row.ThresholdNonFossilShare,
				EnforcedMinNonFossilShare:           &row.EnforcedMinNonFossilShare,
				AchievedNonFossilShare:              &row.AchievedNonFossilShare,
				AchievedNonFossilShareServedPrimary: &row.AchievedNonFossilShareServedPrimary,
				AchievedFossilShareServedPrimary:    &row.AchievedFossilShareServedPrimary,
				AchievedSolarShareServed:            &row.AchievedSolarShareServed,
				Status:                              row.Status,
				LCOEUSDPerMWhServed:                 &row.LCOEUSDPerMWhServed,
			})
		}
	} else if entries, err := os.ReadDir(h.ScenarioRoot); err == nil {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			dir := filepath.Join(h.ScenarioRoot, name)
			if !scenarioExists(dir) {
				continue
			}
			scenarios = append(scenarios, models.ScenarioInfo{
				ID:     name,
				Label:  name,
				Source: "scenario_scan",
				Path:   dir,
			})
		}
	}

	// Deduplicate by id, keeping the first appearance.
	seen := make(map[string]bool, len(scenarios))
	deduped := scenarios[:0]
	for _, s := range scenarios {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		deduped = append(deduped, s)
	}

	c.JSON(http.StatusOK, models.ScenarioListResponse{Scenarios: deduped})
}

// GetSummary handles GET /api/v1/scenarios/:id/summary.
func (h *ScenarioHandler) GetSummary(c *gin.Context) {
	dir, ok := h.scenarioDir(c)
	if !ok {
		return
	}
	raw, err := os.ReadFile(filepath.Join(dir, planner.SummaryFile))
	if err != nil {
		notFound(c, "summary not found for scenario")
		return
	}
	var summary json.RawMessage = raw
	c.JSON(http.StatusOK, summary)
}

// GetHourly handles GET /api/v1/scenarios/:id/hourly, serving the dispatch
// table as CSV.
func (h *ScenarioHandler) GetHourly(c *gin.Context) {
	h.serveCSV(c, planner.HourlyDispatchFile)
}

// GetCosts handles GET /api/v1/scenarios/:id/costs.
func (h *ScenarioHandler) GetCosts(c *gin.Context) {
	h.serveCSV(c, planner.CostBreakdownFile)
}

// GetAssumptions handles GET /api/v1/scenarios/:id/assumptions.
func (h *ScenarioHandler) GetAssumptions(c *gin.Context) {
	h.serveCSV(c, planner.AssumptionsUsedFile)
}

func (h *ScenarioHandler) serveCSV(c *gin.Context, name string) {
	dir, ok := h.scenarioDir(c)
	if !ok {
		return
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		notFound(c, name+" not found for scenario")
		return
	}
	c.Header("Content-Type", "text/csv")
	c.File(path)
}

// scenarioDir resolves the :id path parameter to an artifact directory,
// rejecting ids that would escape the output tree.
func (h *ScenarioHandler) scenarioDir(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_SCENARIO_ID", Message: "invalid scenario id"},
		})
		return "", false
	}

	dir := filepath.Join(h.ScenarioRoot, id)
	if id == baseScenarioID {
		dir = h.OutputDir
	}
	if !scenarioExists(dir) {
		notFound(c, "scenario not found: "+id)
		return "", false
	}
	return dir, true
}

// scenarioExists requires the three files the dashboard depends on.
func scenarioExists(dir string) bool {
	for _, name := range []string{planner.SummaryFile, planner.HourlyDispatchFile, planner.CostBreakdownFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error: models.ErrorDetail{Code: "NOT_FOUND", Message: msg},
	})
}
