package httpserver

import (
	"bytes"
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	plan "drafthub/contexts/billing/plan-service"
	subscription "drafthub/contexts/billing/subscription-service"
	auth "drafthub/contexts/identity-access/auth-service"
	jwtadapter "drafthub/contexts/identity-access/auth-service/adapters/jwt"
	authports "drafthub/contexts/identity-access/auth-service/ports"
	dashboard "drafthub/contexts/internal-ops/admin-dashboard-service"
	project "drafthub/contexts/project-delivery/project-service"
	company "drafthub/contexts/tenant-management/company-service"
	"drafthub/internal/shared/accesspolicy"
)

func newTestServer() *Server {
	return New(
		auth.NewInMemoryModule(slog.Default()),
		company.NewInMemoryModule(slog.Default()),
		plan.NewInMemoryModule(slog.Default()),
		subscription.NewInMemoryModule(nil, slog.Default()),
		project.NewInMemoryModule(slog.Default()),
		dashboard.NewInMemoryModule(slog.Default()),
		slog.Default(),
		":0",
	)
}

// sessionFor seeds a user row and issues a token the server will accept.
func sessionFor(t *testing.T, server *Server, role accesspolicy.Role, companyID string) string {
	t.Helper()
	user := authports.User{
		ID:        "user_" + string(role),
		Name:      "Test " + string(role),
		Email:     string(role) + "@test.local",
		Role:      role,
		CompanyID: companyID,
		CreatedAt: time.Now().UTC(),
	}
	if err := server.auth.Store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	token, err := jwtadapter.NewCodec("drafthub-dev-secret").Issue(authports.SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(role),
	}, time.Now())
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	return token
}

func TestMeRequiresSession(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMeAcceptsCookieAndBearer(t *testing.T) {
	server := newTestServer()
	token := sessionFor(t, server, accesspolicy.RoleSuperAdmin, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("cookie session: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("bearer session: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestOnboardRequiresStaffSession(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"name":"Acme","adminName":"Ravi","adminEmail":"ravi@acme.com","adminPassword":"secret123"}`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/marketing/companies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}

	token := sessionFor(t, server, accesspolicy.RoleMarketing, "")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/marketing/companies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 for marketing staff, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdminMetricsForbiddenForMarketing(t *testing.T) {
	server := newTestServer()
	token := sessionFor(t, server, accesspolicy.RoleMarketing, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestActivePlansArePublic(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreatePlanRequiresSuperAdmin(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"name":"Starter","price":15000,"maxUsers":3,"storageLimitGB":25}`)

	token := sessionFor(t, server, accesspolicy.RoleMarketing, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/plans", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestProjectUploadRejectsUnsupportedSuffix(t *testing.T) {
	server := newTestServer()
	token := sessionFor(t, server, accesspolicy.RoleClientEngineer, "company_1")

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("title", "Tower A")
	part, err := form.CreateFormFile("file", "plan.docx")
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write([]byte("not a drawing")); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestProjectUploadAcceptsPDF(t *testing.T) {
	server := newTestServer()
	token := sessionFor(t, server, accesspolicy.RoleClientEngineer, "company_1")

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("title", "Tower A")
	_ = form.WriteField("location", "Pune")
	part, err := form.CreateFormFile("file", "plan.pdf")
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4")); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestTransactionsRequireTenantSession(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}

	token := sessionFor(t, server, accesspolicy.RoleSuperAdmin, "")
	req = httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for staff without company, got %d body=%s", rr.Code, rr.Body.String())
	}
}
