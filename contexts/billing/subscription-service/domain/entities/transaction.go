package entities

import "time"

const (
	StatusCreated = "Created"
	StatusPaid    = "Paid"
	StatusFailed  = "Failed"
)

// PlanSnapshot freezes the purchased terms at order time. Price is in major
// currency units, mirroring the catalog row it was copied from.
type PlanSnapshot struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	MaxUsers       int     `json:"maxUsers"`
	StorageLimitGB int     `json:"storageLimitGB"`
}

// Transaction is one payment attempt for one plan by one company. Amount is
// in minor currency units, as the gateway expects.
type Transaction struct {
	ID           string
	CompanyID    string
	PlanID       string
	OrderID      string
	PaymentID    string
	Signature    string
	Amount       int64
	Currency     string
	Status       string
	PlanSnapshot PlanSnapshot
	CreatedAt    time.Time
	PaidAt       *time.Time
}

func (t Transaction) IsPaid() bool { return t.Status == StatusPaid }
