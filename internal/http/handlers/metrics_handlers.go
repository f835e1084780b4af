package handlers

import (
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Inventory-wide dashboard metrics
// @Description Admin only
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repo.Metrics
// @Failure 403 {string} string "Admin required"
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}
	if !caller.IsAdmin {
		http.Error(w, "admin privileges required", http.StatusForbidden)
		return
	}

	metrics, err := metricsRepo.GetDashboardMetrics()
	if err != nil {
		http.Error(w, "could not compute metrics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}
