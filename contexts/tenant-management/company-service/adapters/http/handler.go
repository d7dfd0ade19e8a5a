package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"drafthub/contexts/tenant-management/company-service/application"
	"drafthub/contexts/tenant-management/company-service/ports"
	httptransport "drafthub/contexts/tenant-management/company-service/transport/http"
	"drafthub/internal/shared/accesspolicy"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) OnboardHandler(
	ctx context.Context,
	principal accesspolicy.Principal,
	req httptransport.OnboardRequest,
) (httptransport.OnboardResponse, error) {
	company, admin, err := h.Service.Onboard(ctx, principal, ports.OnboardInput{
		Name:          req.Name,
		AdminName:     req.AdminName,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
		PlanID:        req.PlanID,
	})
	if err != nil {
		return httptransport.OnboardResponse{}, err
	}
	return httptransport.OnboardResponse{
		CompanyID: company.ID,
		AdminID:   admin.ID,
		Message:   "Company onboarded successfully",
	}, nil
}

func (h Handler) ListCompaniesHandler(ctx context.Context, principal accesspolicy.Principal) ([]httptransport.CompanyPayload, error) {
	companies, err := h.Service.ListCompanies(ctx, principal)
	if err != nil {
		return nil, err
	}
	payloads := make([]httptransport.CompanyPayload, 0, len(companies))
	for _, company := range companies {
		payloads = append(payloads, companyPayload(company))
	}
	return payloads, nil
}

func (h Handler) GetCompanyHandler(ctx context.Context, principal accesspolicy.Principal, companyID string) (httptransport.CompanyPayload, error) {
	company, err := h.Service.GetCompany(ctx, principal, companyID)
	if err != nil {
		return httptransport.CompanyPayload{}, err
	}
	return companyPayload(company), nil
}

func (h Handler) AddUserHandler(
	ctx context.Context,
	principal accesspolicy.Principal,
	companyID string,
	req httptransport.AddUserRequest,
) (httptransport.AddUserResponse, error) {
	member, err := h.Service.AddMember(ctx, principal, companyID, ports.NewMemberInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.AddUserResponse{}, err
	}
	return httptransport.AddUserResponse{
		ID:      member.ID,
		Message: "User added successfully",
	}, nil
}

func (h Handler) ListUsersHandler(ctx context.Context, principal accesspolicy.Principal, companyID string) ([]httptransport.MemberPayload, error) {
	members, err := h.Service.ListMembers(ctx, principal, companyID)
	if err != nil {
		return nil, err
	}
	payloads := make([]httptransport.MemberPayload, 0, len(members))
	for _, member := range members {
		payloads = append(payloads, memberPayload(member))
	}
	return payloads, nil
}

func companyPayload(company ports.Company) httptransport.CompanyPayload {
	payload := httptransport.CompanyPayload{
		ID:                 company.ID,
		Name:               company.Name,
		SubscriptionTier:   company.SubscriptionTier,
		SubscriptionStatus: company.SubscriptionStatus,
		MaxUsers:           company.MaxUsers,
		StorageLimit:       company.StorageLimitGB,
	}
	if company.SubscriptionExpiresAt != nil {
		payload.SubscriptionExpiryDate = company.SubscriptionExpiresAt.UTC().Format(time.RFC3339)
	}
	if !company.CreatedAt.IsZero() {
		payload.CreatedAt = company.CreatedAt.UTC().Format(time.RFC3339)
	}
	return payload
}

func memberPayload(member ports.Member) httptransport.MemberPayload {
	payload := httptransport.MemberPayload{
		ID:        member.ID,
		Name:      member.Name,
		Email:     member.Email,
		Role:      string(member.Role),
		CompanyID: member.CompanyID,
	}
	if !member.CreatedAt.IsZero() {
		payload.CreatedAt = member.CreatedAt.UTC().Format(time.RFC3339)
	}
	return payload
}
