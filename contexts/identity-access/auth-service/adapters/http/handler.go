package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"drafthub/contexts/identity-access/auth-service/application"
	"drafthub/contexts/identity-access/auth-service/ports"
	httptransport "drafthub/contexts/identity-access/auth-service/transport/http"
	"drafthub/internal/shared/accesspolicy"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// LoginHandler returns the profile payload plus the raw session token; the
// transport layer decides how to carry the token (cookie).
func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, string, error) {
	user, token, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httptransport.LoginResponse{}, "", err
	}
	return httptransport.LoginResponse{User: userPayload(user)}, token, nil
}

func (h Handler) MeHandler(ctx context.Context, principal accesspolicy.Principal) (httptransport.UserPayload, error) {
	user, err := h.Service.Me(ctx, principal)
	if err != nil {
		return httptransport.UserPayload{}, err
	}
	return userPayload(user), nil
}

func (h Handler) ForgotPasswordHandler(ctx context.Context, req httptransport.ForgotPasswordRequest) (httptransport.ForgotPasswordResponse, error) {
	token, err := h.Service.ForgotPassword(ctx, req.Email)
	if err != nil {
		return httptransport.ForgotPasswordResponse{}, err
	}
	return httptransport.ForgotPasswordResponse{
		Message: "If email exists, reset link has been sent",
		Token:   token,
	}, nil
}

func (h Handler) ResetPasswordHandler(ctx context.Context, req httptransport.ResetPasswordRequest) (httptransport.MessageResponse, error) {
	if err := h.Service.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "Password reset successfully"}, nil
}

func (h Handler) CreateUserHandler(
	ctx context.Context,
	principal accesspolicy.Principal,
	req httptransport.CreateUserRequest,
) (httptransport.CreateUserResponse, error) {
	user, err := h.Service.CreateStaffUser(ctx, principal, ports.NewUser{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     accesspolicy.Role(strings.TrimSpace(req.Role)),
	})
	if err != nil {
		return httptransport.CreateUserResponse{}, err
	}
	return httptransport.CreateUserResponse{
		ID:      user.ID,
		Message: "User created successfully",
	}, nil
}

func (h Handler) ListUsersHandler(ctx context.Context, principal accesspolicy.Principal) ([]httptransport.UserPayload, error) {
	users, err := h.Service.ListUsers(ctx, principal)
	if err != nil {
		return nil, err
	}
	payloads := make([]httptransport.UserPayload, 0, len(users))
	for _, user := range users {
		payloads = append(payloads, userPayload(user))
	}
	return payloads, nil
}

func (h Handler) DeleteUserHandler(ctx context.Context, principal accesspolicy.Principal, userID string) (httptransport.MessageResponse, error) {
	if err := h.Service.DeleteUser(ctx, principal, userID); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "User deleted successfully"}, nil
}

func userPayload(user ports.User) httptransport.UserPayload {
	payload := httptransport.UserPayload{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CompanyID: user.CompanyID,
	}
	if !user.CreatedAt.IsZero() {
		payload.CreatedAt = user.CreatedAt.UTC().Format(time.RFC3339)
	}
	return payload
}
