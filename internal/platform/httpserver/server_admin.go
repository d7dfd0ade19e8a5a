package httpserver

import (
	"errors"
	"net/http"

	dashboarderrors "drafthub/contexts/internal-ops/admin-dashboard-service/domain/errors"
	dashboardhttp "drafthub/contexts/internal-ops/admin-dashboard-service/transport/http"
)

func (s *Server) handleAdminMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := s.dashboard.Handler.MetricsHandler(r.Context(), s.principal(r))
	if err != nil {
		writeDashboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeDashboardDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboarderrors.ErrUnauthenticated):
		writeDashboardError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, dashboarderrors.ErrForbidden):
		writeDashboardError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeDashboardError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDashboardError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, dashboardhttp.ErrorResponse{Code: code, Message: message})
}
