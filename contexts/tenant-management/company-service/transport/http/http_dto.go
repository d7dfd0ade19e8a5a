package http

// ErrorResponse is the error envelope shared by every tenant endpoint.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type OnboardRequest struct {
	Name          string `json:"name"`
	AdminName     string `json:"adminName"`
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
	PlanID        string `json:"planId,omitempty"`
}

type OnboardResponse struct {
	CompanyID string `json:"companyId"`
	AdminID   string `json:"adminId"`
	Message   string `json:"message"`
}

type CompanyPayload struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	SubscriptionTier       string `json:"subscriptionTier"`
	SubscriptionStatus     string `json:"subscriptionStatus"`
	MaxUsers               int    `json:"maxUsers"`
	StorageLimit           int    `json:"storageLimit"`
	SubscriptionExpiryDate string `json:"subscriptionExpiryDate,omitempty"`
	CreatedAt              string `json:"createdAt,omitempty"`
}

type AddUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddUserResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type MemberPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId"`
	CreatedAt string `json:"createdAt,omitempty"`
}
