package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PlanPayload struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	MaxUsers       int     `json:"maxUsers"`
	StorageLimitGB int     `json:"storageLimitGB"`
	IsActive       bool    `json:"isActive"`
}

type CreatePlanRequest struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency,omitempty"`
	MaxUsers       int     `json:"maxUsers"`
	StorageLimitGB int     `json:"storageLimitGB"`
}

// UpdatePlanRequest uses pointers so absent fields stay untouched.
type UpdatePlanRequest struct {
	Name           *string  `json:"name,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	MaxUsers       *int     `json:"maxUsers,omitempty"`
	StorageLimitGB *int     `json:"storageLimitGB,omitempty"`
	IsActive       *bool    `json:"isActive,omitempty"`
}

type CreatePlanResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
