package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	jwtadapter "drafthub/contexts/identity-access/auth-service/adapters/jwt"
	autherrors "drafthub/contexts/identity-access/auth-service/domain/errors"
	authhttp "drafthub/contexts/identity-access/auth-service/transport/http"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, token, err := s.auth.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	s.setSessionCookie(w, token, jwtadapter.SessionTTL)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, authhttp.MessageResponse{Message: "Logged out successfully"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	resp, err := s.auth.Handler.MeHandler(r.Context(), s.principal(r))
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req authhttp.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.auth.Handler.ForgotPasswordHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req authhttp.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.auth.Handler.ResetPasswordHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateStaffUser(w http.ResponseWriter, r *http.Request) {
	var req authhttp.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.auth.Handler.CreateUserHandler(r.Context(), s.principal(r), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListStaffUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.auth.Handler.ListUsersHandler(r.Context(), s.principal(r))
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteStaffUser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.auth.Handler.DeleteUserHandler(r.Context(), s.principal(r), r.PathValue("user_id"))
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAuthDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, autherrors.ErrInvalidCredentials):
		writeAuthError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, autherrors.ErrUnauthenticated):
		writeAuthError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, autherrors.ErrForbidden):
		writeAuthError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, autherrors.ErrUserNotFound):
		writeAuthError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, autherrors.ErrEmailTaken):
		writeAuthError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, autherrors.ErrResetTokenInvalid):
		writeAuthError(w, http.StatusBadRequest, "reset_token_invalid", err.Error())
	case errors.Is(err, autherrors.ErrInvalidRequest):
		writeAuthError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAuthError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAuthError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authhttp.ErrorResponse{Code: code, Message: message})
}
