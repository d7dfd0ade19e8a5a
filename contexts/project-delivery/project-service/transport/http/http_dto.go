package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ProjectPayload struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	Title       string `json:"title"`
	Location    string `json:"location,omitempty"`
	DrawingType string `json:"drawingType"`
	FileName    string `json:"fileName"`
	Status      string `json:"status"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type CreateProjectResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
