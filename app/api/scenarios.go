package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListScenarios(c *gin.Context) {
	scenarios := h.scenarios.GetScenarios()

	list := make([]gin.H, 0, len(scenarios))
	for _, scenario := range scenarios {
		list = append(list, gin.H{
			"name":    scenario.Name,
			"title":   scenario.Title,
			"summary": scenario.Summary,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"scenarios": list,
		"total":     len(list),
	})
}

// GetScenario returns the scenario inputs together with their full analysis.
func (h *Handler) GetScenario(c *gin.Context) {
	scenario, err := h.scenarios.GetScenario(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scenario not found"})
		return
	}

	response := h.analysisResponse(scenario.Financials)
	response["scenario"] = scenario

	c.JSON(http.StatusOK, response)
}
