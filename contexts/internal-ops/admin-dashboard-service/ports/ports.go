package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

// Metrics is one consistent snapshot of the platform counters. Revenue is in
// minor currency units, summed over Paid transactions.
type Metrics struct {
	CompanyCount            int64
	UserCount               int64
	ProjectCount            int64
	ActiveSubscriptionCount int64
	PaidTransactionCount    int64
	PaidRevenueMinor        int64
}

// Repository reads aggregate counters. ActiveSubscriptionCount is judged
// against now so a stale Active row past its window is not counted.
type Repository interface {
	Snapshot(ctx context.Context, now time.Time) (Metrics, error)
}
