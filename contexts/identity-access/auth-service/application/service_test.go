package application_test

import (
	"context"
	"errors"
	"testing"

	auth "drafthub/contexts/identity-access/auth-service"
	domainerrors "drafthub/contexts/identity-access/auth-service/domain/errors"
	"drafthub/contexts/identity-access/auth-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

func superAdmin() accesspolicy.Principal {
	return accesspolicy.Principal{UserID: "root", Role: accesspolicy.RoleSuperAdmin}
}

func TestCreateStaffUserAndLogin(t *testing.T) {
	module := auth.NewInMemoryModule(nil)
	ctx := context.Background()

	created, err := module.Service.CreateStaffUser(ctx, superAdmin(), ports.NewUser{
		Name:     "Marketing Team",
		Email:    "Marketing@Example.com",
		Password: "marketing123",
		Role:     accesspolicy.RoleMarketing,
	})
	if err != nil {
		t.Fatalf("create staff user failed: %v", err)
	}
	if created.Email != "marketing@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.PasswordHash == "marketing123" || created.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}

	user, token, err := module.Service.Login(ctx, "marketing@example.com", "marketing123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID || token == "" {
		t.Fatalf("unexpected login result: user=%s token=%q", user.ID, token)
	}

	principal, err := module.Service.VerifySession(ctx, token)
	if err != nil {
		t.Fatalf("verify session failed: %v", err)
	}
	if principal.Role != accesspolicy.RoleMarketing || principal.UserID != created.ID {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	module := auth.NewInMemoryModule(nil)
	ctx := context.Background()

	if _, err := module.Service.CreateStaffUser(ctx, superAdmin(), ports.NewUser{
		Name: "Admin", Email: "admin@example.com", Password: "admin123", Role: accesspolicy.RoleSuperAdmin,
	}); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	if _, _, err := module.Service.Login(ctx, "admin@example.com", "wrong"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := module.Service.Login(ctx, "missing@example.com", "admin123"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestCreateStaffUserDuplicateEmail(t *testing.T) {
	module := auth.NewInMemoryModule(nil)
	ctx := context.Background()

	input := ports.NewUser{Name: "A", Email: "dup@example.com", Password: "pw", Role: accesspolicy.RoleMarketing}
	if _, err := module.Service.CreateStaffUser(ctx, superAdmin(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := module.Service.CreateStaffUser(ctx, superAdmin(), input); !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestCreateStaffUserRejectsTenantRolesAndNonAdmins(t *testing.T) {
	module := auth.NewInMemoryModule(nil)
	ctx := context.Background()

	_, err := module.Service.CreateStaffUser(ctx, superAdmin(), ports.NewUser{
		Name: "Eng", Email: "eng@example.com", Password: "pw", Role: accesspolicy.RoleClientEngineer,
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for tenant role, got %v", err)
	}

	marketing := accesspolicy.Principal{UserID: "mk", Role: accesspolicy.RoleMarketing}
	_, err = module.Service.CreateStaffUser(ctx, marketing, ports.NewUser{
		Name: "X", Email: "x@example.com", Password: "pw", Role: accesspolicy.RoleMarketing,
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for marketing caller, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	module := auth.NewInMemoryModule(nil)
	ctx := context.Background()

	created, err := module.Service.CreateStaffUser(ctx, superAdmin(), ports.NewUser{
		Name: "Admin", Email: "reset@example.com", Password: "old-pass", Role: accesspolicy.RoleSuperAdmin,
	})
	if err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	token, err := module.Service.ForgotPassword(ctx, "reset@example.com")
	if err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected reset token for existing email")
	}

	// Unknown email yields no token but no error either.
	if unknown, err := module.Service.ForgotPassword(ctx, "ghost@example.com"); err != nil || unknown != "" {
		t.Fatalf("expected silent success for unknown email, got token=%q err=%v", unknown, err)
	}

	if err := module.Service.ResetPassword(ctx, token, "new-pass"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}
	if _, _, err := module.Service.Login(ctx, "reset@example.com", "old-pass"); err == nil {
		t.Fatalf("expected old password to stop working")
	}
	if _, _, err := module.Service.Login(ctx, "reset@example.com", "new-pass"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	// The token is single-use.
	if err := module.Service.ResetPassword(ctx, token, "another"); !errors.Is(err, domainerrors.ErrResetTokenInvalid) {
		t.Fatalf("expected reset token invalid on reuse, got %v", err)
	}
	_ = created
}

func TestVerifySessionRejectsGarbage(t *testing.T) {
	module := auth.NewInMemoryModule(nil)
	if _, err := module.Service.VerifySession(context.Background(), "garbage"); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, err := module.Service.VerifySession(context.Background(), ""); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for empty token, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	module := auth.NewInMemoryModule(nil)
	ctx := context.Background()

	created, err := module.Service.CreateStaffUser(ctx, superAdmin(), ports.NewUser{
		Name: "Temp", Email: "temp@example.com", Password: "pw", Role: accesspolicy.RoleMarketing,
	})
	if err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	if err := module.Service.DeleteUser(ctx, superAdmin(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := module.Service.DeleteUser(ctx, superAdmin(), created.ID); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
