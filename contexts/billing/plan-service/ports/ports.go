package ports

import (
	"context"
	"time"
)

const DefaultCurrency = "INR"

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Plan is a priced subscription tier. Price is the display amount in major
// currency units; payment orders convert it to minor units at order time.
type Plan struct {
	ID             string
	Name           string
	Price          float64
	Currency       string
	MaxUsers       int
	StorageLimitGB int
	IsActive       bool
	CreatedAt      time.Time
}

type NewPlan struct {
	Name           string
	Price          float64
	Currency       string
	MaxUsers       int
	StorageLimitGB int
}

// PlanPatch carries partial updates; nil fields are left untouched.
type PlanPatch struct {
	Name           *string
	Price          *float64
	MaxUsers       *int
	StorageLimitGB *int
	IsActive       *bool
}

func (p PlanPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.MaxUsers == nil && p.StorageLimitGB == nil && p.IsActive == nil
}

type Repository interface {
	CreatePlan(ctx context.Context, plan Plan) error
	GetPlan(ctx context.Context, id string) (Plan, error)
	UpdatePlan(ctx context.Context, plan Plan) error
	ListPlans(ctx context.Context) ([]Plan, error)
	ListActivePlans(ctx context.Context) ([]Plan, error)
}
