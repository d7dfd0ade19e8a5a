package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	auth "drafthub/contexts/identity-access/auth-service"
	plan "drafthub/contexts/billing/plan-service"
	subscription "drafthub/contexts/billing/subscription-service"
	dashboard "drafthub/contexts/internal-ops/admin-dashboard-service"
	project "drafthub/contexts/project-delivery/project-service"
	company "drafthub/contexts/tenant-management/company-service"
	"drafthub/internal/shared/accesspolicy"

	_ "drafthub/internal/platform/httpserver/docs"
)

const sessionCookieName = "token"

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	auth         auth.Module
	company      company.Module
	plans        plan.Module
	subscription subscription.Module
	projects     project.Module
	dashboard    dashboard.Module
}

func New(
	authModule auth.Module,
	companyModule company.Module,
	planModule plan.Module,
	subscriptionModule subscription.Module,
	projectModule project.Module,
	dashboardModule dashboard.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		auth:         authModule,
		company:      companyModule,
		plans:        planModule,
		subscription: subscriptionModule,
		projects:     projectModule,
		dashboard:    dashboardModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/v1/auth/logout", s.handleLogout)
	s.mux.HandleFunc("GET /api/v1/auth/me", s.handleMe)
	s.mux.HandleFunc("POST /api/v1/auth/forgot-password", s.handleForgotPassword)
	s.mux.HandleFunc("POST /api/v1/auth/reset-password", s.handleResetPassword)

	s.mux.HandleFunc("POST /api/v1/admin/users", s.handleCreateStaffUser)
	s.mux.HandleFunc("GET /api/v1/admin/users", s.handleListStaffUsers)
	s.mux.HandleFunc("DELETE /api/v1/admin/users/{user_id}", s.handleDeleteStaffUser)
	s.mux.HandleFunc("GET /api/v1/admin/dashboard", s.handleAdminMetrics)
	s.mux.HandleFunc("GET /api/v1/admin/plans", s.handleListAllPlans)
	s.mux.HandleFunc("POST /api/v1/admin/plans", s.handleCreatePlan)
	s.mux.HandleFunc("PATCH /api/v1/admin/plans/{plan_id}", s.handleUpdatePlan)

	s.mux.HandleFunc("POST /api/v1/marketing/companies", s.handleOnboardCompany)
	s.mux.HandleFunc("GET /api/v1/marketing/companies", s.handleListCompanies)
	s.mux.HandleFunc("GET /api/v1/companies/{company_id}", s.handleGetCompany)
	s.mux.HandleFunc("GET /api/v1/companies/{company_id}/users", s.handleListCompanyUsers)
	s.mux.HandleFunc("POST /api/v1/companies/{company_id}/users", s.handleAddCompanyUser)

	s.mux.HandleFunc("GET /api/v1/plans", s.handleListActivePlans)
	s.mux.HandleFunc("POST /api/v1/subscriptions/create-order", s.handleCreateOrder)
	s.mux.HandleFunc("POST /api/v1/subscriptions/verify-payment", s.handleVerifyPayment)
	s.mux.HandleFunc("GET /api/v1/transactions", s.handleListTransactions)

	s.mux.HandleFunc("POST /api/v1/projects", s.handleCreateProject)
	s.mux.HandleFunc("GET /api/v1/projects", s.handleListProjects)
	s.mux.HandleFunc("GET /api/v1/projects/{project_id}", s.handleGetProject)
}

// principal resolves the session from the cookie or a bearer token. A missing
// or bad session yields the zero principal; services map that to 401.
func (s *Server) principal(r *http.Request) accesspolicy.Principal {
	token := ""
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		return accesspolicy.Principal{}
	}
	principal, err := s.auth.Service.VerifySession(r.Context(), token)
	if err != nil {
		return accesspolicy.Principal{}
	}
	return principal
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
