package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	companyerrors "drafthub/contexts/tenant-management/company-service/domain/errors"
	companyhttp "drafthub/contexts/tenant-management/company-service/transport/http"
)

func (s *Server) handleOnboardCompany(w http.ResponseWriter, r *http.Request) {
	var req companyhttp.OnboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompanyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.company.Handler.OnboardHandler(r.Context(), s.principal(r), req)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	resp, err := s.company.Handler.ListCompaniesHandler(r.Context(), s.principal(r))
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	resp, err := s.company.Handler.GetCompanyHandler(r.Context(), s.principal(r), r.PathValue("company_id"))
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCompanyUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.company.Handler.ListUsersHandler(r.Context(), s.principal(r), r.PathValue("company_id"))
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddCompanyUser(w http.ResponseWriter, r *http.Request) {
	var req companyhttp.AddUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompanyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.company.Handler.AddUserHandler(r.Context(), s.principal(r), r.PathValue("company_id"), req)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func writeCompanyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, companyerrors.ErrUnauthenticated):
		writeCompanyError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, companyerrors.ErrForbidden):
		writeCompanyError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, companyerrors.ErrUserLimitReached):
		writeCompanyError(w, http.StatusForbidden, "user_limit_reached", err.Error())
	case errors.Is(err, companyerrors.ErrCompanyNotFound):
		writeCompanyError(w, http.StatusNotFound, "company_not_found", err.Error())
	case errors.Is(err, companyerrors.ErrPlanNotFound):
		writeCompanyError(w, http.StatusNotFound, "plan_not_found", err.Error())
	case errors.Is(err, companyerrors.ErrEmailTaken):
		writeCompanyError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, companyerrors.ErrInvalidRequest):
		writeCompanyError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeCompanyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCompanyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, companyhttp.ErrorResponse{Code: code, Message: message})
}
