package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MetricsResponse struct {
	Companies           int64 `json:"companies"`
	Users               int64 `json:"users"`
	Projects            int64 `json:"projects"`
	ActiveSubscriptions int64 `json:"activeSubscriptions"`
	PaidTransactions    int64 `json:"paidTransactions"`
	TotalRevenueMinor   int64 `json:"totalRevenueMinor"`
}
