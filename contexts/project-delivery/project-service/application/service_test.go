package application_test

import (
	"context"
	"errors"
	"testing"

	project "drafthub/contexts/project-delivery/project-service"
	"drafthub/contexts/project-delivery/project-service/adapters/memory"
	domainerrors "drafthub/contexts/project-delivery/project-service/domain/errors"
	"drafthub/contexts/project-delivery/project-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

type closedGate struct{}

func (closedGate) Allowed(context.Context, accesspolicy.Principal) (bool, error) {
	return false, nil
}

func engineer(companyID string) accesspolicy.Principal {
	return accesspolicy.Principal{UserID: "eng_1", Role: accesspolicy.RoleClientEngineer, CompanyID: companyID}
}

func drawing(name string) ports.CreateInput {
	return ports.CreateInput{
		Title:    "Tower A",
		Location: "Pune",
		FileName: name,
		Content:  []byte("%PDF-1.4 fake"),
	}
}

func TestCreateProjectStoresDrawing(t *testing.T) {
	module := project.NewInMemoryModule(nil)
	ctx := context.Background()

	created, err := module.Service.CreateProject(ctx, engineer("company_1"), drawing("floor-plan.PDF"))
	if err != nil {
		t.Fatalf("create project failed: %v", err)
	}
	if created.CompanyID != "company_1" || created.CreatedBy != "eng_1" {
		t.Fatalf("unexpected project: %+v", created)
	}
	if created.FileName != "floor-plan.PDF" || created.FilePath == "" {
		t.Fatalf("drawing metadata missing: %+v", created)
	}
	if created.DrawingType != ports.DrawingTypePDF || created.Status != ports.StatusUploaded {
		t.Fatalf("expected Uploaded PDF project, got %+v", created)
	}
	content, ok := module.Store.Blob(created.FilePath)
	if !ok || len(content) == 0 {
		t.Fatalf("drawing payload not stored at %q", created.FilePath)
	}
}

func TestCreateProjectRejectsUnsupportedFile(t *testing.T) {
	module := project.NewInMemoryModule(nil)

	// Bare extensions with no basename count as unsupported too.
	for _, name := range []string{"plan.docx", "plan.exe", "plan", "plan.pdf.zip", ".pdf", ".DWG"} {
		_, err := module.Service.CreateProject(context.Background(), engineer("company_1"), drawing(name))
		if !errors.Is(err, domainerrors.ErrUnsupportedFileType) {
			t.Fatalf("expected unsupported type for %q, got %v", name, err)
		}
	}
	if _, err := module.Service.CreateProject(context.Background(), engineer("company_1"), drawing("site.dwg")); err != nil {
		t.Fatalf("dwg rejected: %v", err)
	}
}

func TestCreateProjectRequiresCompany(t *testing.T) {
	module := project.NewInMemoryModule(nil)

	root := accesspolicy.Principal{UserID: "root", Role: accesspolicy.RoleSuperAdmin}
	_, err := module.Service.CreateProject(context.Background(), root, drawing("plan.pdf"))
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for staff without company, got %v", err)
	}
}

func TestCreateProjectBlockedByGate(t *testing.T) {
	store := memory.NewStore()
	module := project.NewModule(project.Dependencies{
		Repository: store,
		Blobs:      store,
		Gate:       closedGate{},
		Clock:      store,
		IDGen:      store,
	})

	_, err := module.Service.CreateProject(context.Background(), engineer("company_1"), drawing("plan.pdf"))
	if !errors.Is(err, domainerrors.ErrSubscriptionExpired) {
		t.Fatalf("expected subscription expired, got %v", err)
	}
}

func TestListProjectsScopedToCompany(t *testing.T) {
	module := project.NewInMemoryModule(nil)
	ctx := context.Background()

	if _, err := module.Service.CreateProject(ctx, engineer("company_1"), drawing("a.pdf")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := accesspolicy.Principal{UserID: "eng_2", Role: accesspolicy.RoleClientEngineer, CompanyID: "company_2"}
	if _, err := module.Service.CreateProject(ctx, other, drawing("b.pdf")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	projects, err := module.Service.ListProjects(ctx, engineer("company_1"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(projects) != 1 || projects[0].CompanyID != "company_1" {
		t.Fatalf("unexpected projects: %+v", projects)
	}
}

func TestGetProjectNotFoundBeforeForbidden(t *testing.T) {
	module := project.NewInMemoryModule(nil)
	ctx := context.Background()

	created, err := module.Service.CreateProject(ctx, engineer("company_1"), drawing("a.pdf"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	outsider := accesspolicy.Principal{UserID: "eng_2", Role: accesspolicy.RoleClientEngineer, CompanyID: "company_2"}
	if _, err := module.Service.GetProject(ctx, outsider, "proj_missing"); !errors.Is(err, domainerrors.ErrProjectNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := module.Service.GetProject(ctx, outsider, created.ID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// Staff read across tenants.
	root := accesspolicy.Principal{UserID: "root", Role: accesspolicy.RoleSuperAdmin}
	if _, err := module.Service.GetProject(ctx, root, created.ID); err != nil {
		t.Fatalf("staff read failed: %v", err)
	}
}
