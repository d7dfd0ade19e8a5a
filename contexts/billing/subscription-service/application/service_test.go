package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	subscription "drafthub/contexts/billing/subscription-service"
	"drafthub/contexts/billing/subscription-service/domain/entities"
	domainerrors "drafthub/contexts/billing/subscription-service/domain/errors"
	"drafthub/contexts/billing/subscription-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

var testNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

func clientAdmin(companyID string) accesspolicy.Principal {
	return accesspolicy.Principal{UserID: "admin_1", Role: accesspolicy.RoleClientAdmin, CompanyID: companyID}
}

func newBillingModule(t *testing.T) subscription.Module {
	t.Helper()
	module := subscription.NewInMemoryModule(nil, nil)
	module.Store.SetNow(func() time.Time { return testNow })
	module.Store.PutCompany(ports.CompanyView{
		ID:                 "company_1",
		SubscriptionStatus: "Expired",
		MaxUsers:           1,
		StorageLimitGB:     10,
	})
	return module
}

func TestCreateOrderSnapshotsPlan(t *testing.T) {
	module := newBillingModule(t)
	ctx := context.Background()

	transaction, err := module.Service.CreateOrder(ctx, clientAdmin("company_1"), "plan_pro_002")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if transaction.Status != entities.StatusCreated {
		t.Fatalf("expected Created, got %s", transaction.Status)
	}
	if transaction.Amount != 6500000 {
		t.Fatalf("expected amount in minor units, got %d", transaction.Amount)
	}
	if transaction.Currency != "INR" || transaction.OrderID == "" {
		t.Fatalf("unexpected order: %+v", transaction)
	}
	snapshot := transaction.PlanSnapshot
	if snapshot.Name != "Pro" || snapshot.Price != 65000 || snapshot.MaxUsers != 15 || snapshot.StorageLimitGB != 200 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
}

func TestCreateOrderRejectsInactivePlan(t *testing.T) {
	module := newBillingModule(t)
	module.Store.PutPlan(ports.PlanView{
		ID: "plan_retired", Name: "Retired", Price: 1000, Currency: "INR", MaxUsers: 1, StorageLimitGB: 1, IsActive: false,
	})

	_, err := module.Service.CreateOrder(context.Background(), clientAdmin("company_1"), "plan_retired")
	if !errors.Is(err, domainerrors.ErrPlanNotFound) {
		t.Fatalf("expected plan not found, got %v", err)
	}
}

func TestCreateOrderRequiresClientAdmin(t *testing.T) {
	module := newBillingModule(t)
	ctx := context.Background()

	engineer := accesspolicy.Principal{UserID: "eng_1", Role: accesspolicy.RoleClientEngineer, CompanyID: "company_1"}
	if _, err := module.Service.CreateOrder(ctx, engineer, "plan_pro_002"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for engineer, got %v", err)
	}

	root := accesspolicy.Principal{UserID: "root", Role: accesspolicy.RoleSuperAdmin}
	if _, err := module.Service.CreateOrder(ctx, root, "plan_pro_002"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for staff, got %v", err)
	}

	if _, err := module.Service.CreateOrder(ctx, accesspolicy.Principal{}, "plan_pro_002"); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestVerifyPaymentActivatesCompany(t *testing.T) {
	module := newBillingModule(t)
	ctx := context.Background()
	principal := clientAdmin("company_1")

	order, err := module.Service.CreateOrder(ctx, principal, "plan_pro_002")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	signature := module.Gateway.Sign(order.OrderID, "pay_001")
	paid, err := module.Service.VerifyPayment(ctx, principal, order.OrderID, "pay_001", signature)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if paid.Status != entities.StatusPaid || paid.PaymentID != "pay_001" {
		t.Fatalf("unexpected transaction: %+v", paid)
	}
	if paid.PaidAt == nil || !paid.PaidAt.Equal(testNow) {
		t.Fatalf("unexpected paidAt: %v", paid.PaidAt)
	}

	company, err := module.Store.GetCompany(ctx, "company_1")
	if err != nil {
		t.Fatalf("get company failed: %v", err)
	}
	if company.SubscriptionStatus != "Active" || company.SubscriptionTier != "Pro" {
		t.Fatalf("unexpected company: %+v", company)
	}
	if company.MaxUsers != 15 || company.StorageLimitGB != 200 {
		t.Fatalf("entitlements not applied: %+v", company)
	}
	wantExpiry := testNow.Add(30 * 24 * time.Hour)
	if company.SubscriptionExpiresAt == nil || !company.SubscriptionExpiresAt.Equal(wantExpiry) {
		t.Fatalf("unexpected expiry: %v", company.SubscriptionExpiresAt)
	}

	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "billing.payment.verified" {
		t.Fatalf("expected one pending billing event, got %+v", pending)
	}
}

func TestVerifyPaymentBadSignatureLeavesStateAlone(t *testing.T) {
	module := newBillingModule(t)
	ctx := context.Background()
	principal := clientAdmin("company_1")

	order, err := module.Service.CreateOrder(ctx, principal, "plan_pro_002")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	_, err = module.Service.VerifyPayment(ctx, principal, order.OrderID, "pay_001", "forged")
	if !errors.Is(err, domainerrors.ErrPaymentVerificationFailed) {
		t.Fatalf("expected verification failure, got %v", err)
	}

	stored, err := module.Store.GetTransactionByOrderID(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("get transaction failed: %v", err)
	}
	if stored.Status != entities.StatusCreated || stored.PaymentID != "" {
		t.Fatalf("transaction mutated on failed verify: %+v", stored)
	}
	company, err := module.Store.GetCompany(ctx, "company_1")
	if err != nil {
		t.Fatalf("get company failed: %v", err)
	}
	if company.SubscriptionStatus != "Expired" || company.MaxUsers != 1 {
		t.Fatalf("company mutated on failed verify: %+v", company)
	}
}

func TestVerifyPaymentIdempotent(t *testing.T) {
	module := newBillingModule(t)
	ctx := context.Background()
	principal := clientAdmin("company_1")

	order, err := module.Service.CreateOrder(ctx, principal, "plan_basic_001")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	signature := module.Gateway.Sign(order.OrderID, "pay_001")
	if _, err := module.Service.VerifyPayment(ctx, principal, order.OrderID, "pay_001", signature); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}

	again, err := module.Service.VerifyPayment(ctx, principal, order.OrderID, "pay_001", signature)
	if err != nil {
		t.Fatalf("re-verify failed: %v", err)
	}
	if again.Status != entities.StatusPaid {
		t.Fatalf("expected Paid, got %s", again.Status)
	}

	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("re-verify appended another event: %d rows", len(pending))
	}
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	module := newBillingModule(t)

	_, err := module.Service.VerifyPayment(context.Background(), clientAdmin("company_1"), "order_missing", "pay_001", "sig")
	if !errors.Is(err, domainerrors.ErrTransactionNotFound) {
		t.Fatalf("expected transaction not found, got %v", err)
	}
}

func TestVerifyPaymentCrossTenantForbidden(t *testing.T) {
	module := newBillingModule(t)
	ctx := context.Background()

	order, err := module.Service.CreateOrder(ctx, clientAdmin("company_1"), "plan_basic_001")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	signature := module.Gateway.Sign(order.OrderID, "pay_001")

	outsider := accesspolicy.Principal{UserID: "other", Role: accesspolicy.RoleClientAdmin, CompanyID: "company_other"}
	if _, err := module.Service.VerifyPayment(ctx, outsider, order.OrderID, "pay_001", signature); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestSnapshotSurvivesCatalogEdit(t *testing.T) {
	module := newBillingModule(t)
	ctx := context.Background()
	principal := clientAdmin("company_1")

	order, err := module.Service.CreateOrder(ctx, principal, "plan_pro_002")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// Reprice and shrink the plan between order and verify.
	module.Store.PutPlan(ports.PlanView{
		ID: "plan_pro_002", Name: "Pro", Price: 90000, Currency: "INR", MaxUsers: 5, StorageLimitGB: 100, IsActive: true,
	})

	signature := module.Gateway.Sign(order.OrderID, "pay_001")
	paid, err := module.Service.VerifyPayment(ctx, principal, order.OrderID, "pay_001", signature)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if paid.PlanSnapshot.Price != 65000 || paid.Amount != 6500000 {
		t.Fatalf("snapshot changed after catalog edit: %+v", paid.PlanSnapshot)
	}

	company, err := module.Store.GetCompany(ctx, "company_1")
	if err != nil {
		t.Fatalf("get company failed: %v", err)
	}
	if company.MaxUsers != 15 || company.StorageLimitGB != 200 {
		t.Fatalf("entitlement taken from live catalog, not snapshot: %+v", company)
	}
}

func TestListTransactionsScopedToCompany(t *testing.T) {
	module := newBillingModule(t)
	ctx := context.Background()
	module.Store.PutCompany(ports.CompanyView{ID: "company_2", SubscriptionStatus: "Expired", MaxUsers: 1, StorageLimitGB: 10})

	if _, err := module.Service.CreateOrder(ctx, clientAdmin("company_1"), "plan_basic_001"); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	other := accesspolicy.Principal{UserID: "admin_2", Role: accesspolicy.RoleClientAdmin, CompanyID: "company_2"}
	if _, err := module.Service.CreateOrder(ctx, other, "plan_basic_001"); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	transactions, err := module.Service.ListTransactions(ctx, clientAdmin("company_1"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(transactions) != 1 || transactions[0].CompanyID != "company_1" {
		t.Fatalf("unexpected transactions: %+v", transactions)
	}
}

func TestCheckAccess(t *testing.T) {
	module := newBillingModule(t)
	ctx := context.Background()

	root := accesspolicy.Principal{UserID: "root", Role: accesspolicy.RoleSuperAdmin}
	if err := module.Service.CheckAccess(ctx, root); err != nil {
		t.Fatalf("staff bypass failed: %v", err)
	}

	tenant := clientAdmin("company_1")
	if err := module.Service.CheckAccess(ctx, tenant); !errors.Is(err, domainerrors.ErrSubscriptionExpired) {
		t.Fatalf("expected expired for inactive company, got %v", err)
	}

	future := testNow.Add(24 * time.Hour)
	module.Store.PutCompany(ports.CompanyView{
		ID: "company_1", SubscriptionStatus: "Active", MaxUsers: 15, StorageLimitGB: 200, SubscriptionExpiresAt: &future,
	})
	if err := module.Service.CheckAccess(ctx, tenant); err != nil {
		t.Fatalf("active company denied: %v", err)
	}

	// GracePeriod keeps the gate open; only Expired is denied.
	module.Store.PutCompany(ports.CompanyView{
		ID: "company_1", SubscriptionStatus: "GracePeriod", MaxUsers: 15, StorageLimitGB: 200, SubscriptionExpiresAt: &future,
	})
	if err := module.Service.CheckAccess(ctx, tenant); err != nil {
		t.Fatalf("grace-period company denied: %v", err)
	}

	// A stale Active row past its window still reads expired.
	past := testNow.Add(-time.Hour)
	module.Store.PutCompany(ports.CompanyView{
		ID: "company_1", SubscriptionStatus: "Active", MaxUsers: 15, StorageLimitGB: 200, SubscriptionExpiresAt: &past,
	})
	if err := module.Service.CheckAccess(ctx, tenant); !errors.Is(err, domainerrors.ErrSubscriptionExpired) {
		t.Fatalf("expected lazy expiry, got %v", err)
	}

	if err := module.Service.CheckAccess(ctx, accesspolicy.Principal{}); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
