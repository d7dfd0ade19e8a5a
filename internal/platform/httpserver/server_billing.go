package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	planerrors "drafthub/contexts/billing/plan-service/domain/errors"
	planhttp "drafthub/contexts/billing/plan-service/transport/http"
	subscriptionerrors "drafthub/contexts/billing/subscription-service/domain/errors"
	subscriptionhttp "drafthub/contexts/billing/subscription-service/transport/http"
)

func (s *Server) handleListActivePlans(w http.ResponseWriter, r *http.Request) {
	resp, err := s.plans.Handler.ListActivePlansHandler(r.Context())
	if err != nil {
		writePlanDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAllPlans(w http.ResponseWriter, r *http.Request) {
	resp, err := s.plans.Handler.ListPlansHandler(r.Context(), s.principal(r))
	if err != nil {
		writePlanDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planhttp.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePlanError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.plans.Handler.CreatePlanHandler(r.Context(), s.principal(r), req)
	if err != nil {
		writePlanDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req planhttp.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePlanError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.plans.Handler.UpdatePlanHandler(r.Context(), s.principal(r), r.PathValue("plan_id"), req)
	if err != nil {
		writePlanDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req subscriptionhttp.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.subscription.Handler.CreateOrderHandler(r.Context(), s.principal(r), req)
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req subscriptionhttp.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.subscription.Handler.VerifyPaymentHandler(r.Context(), s.principal(r), req)
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.subscription.Handler.ListTransactionsHandler(r.Context(), s.principal(r))
	if err != nil {
		writeSubscriptionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writePlanDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, planerrors.ErrUnauthenticated):
		writePlanError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, planerrors.ErrForbidden):
		writePlanError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, planerrors.ErrPlanNotFound):
		writePlanError(w, http.StatusNotFound, "plan_not_found", err.Error())
	case errors.Is(err, planerrors.ErrInvalidRequest):
		writePlanError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writePlanError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSubscriptionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, subscriptionerrors.ErrUnauthenticated):
		writeSubscriptionError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, subscriptionerrors.ErrForbidden):
		writeSubscriptionError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, subscriptionerrors.ErrSubscriptionExpired):
		writeSubscriptionError(w, http.StatusForbidden, "subscription_expired", err.Error())
	case errors.Is(err, subscriptionerrors.ErrPlanNotFound):
		writeSubscriptionError(w, http.StatusNotFound, "plan_not_found", err.Error())
	case errors.Is(err, subscriptionerrors.ErrCompanyNotFound):
		writeSubscriptionError(w, http.StatusNotFound, "company_not_found", err.Error())
	case errors.Is(err, subscriptionerrors.ErrTransactionNotFound):
		writeSubscriptionError(w, http.StatusNotFound, "transaction_not_found", err.Error())
	case errors.Is(err, subscriptionerrors.ErrPaymentVerificationFailed):
		writeSubscriptionError(w, http.StatusBadRequest, "payment_verification_failed", err.Error())
	case errors.Is(err, subscriptionerrors.ErrInvalidRequest):
		writeSubscriptionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeSubscriptionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePlanError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, planhttp.ErrorResponse{Code: code, Message: message})
}

func writeSubscriptionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, subscriptionhttp.ErrorResponse{Code: code, Message: message})
}
