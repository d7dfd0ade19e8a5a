package unit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	project "drafthub/contexts/project-delivery/project-service"
	domainerrors "drafthub/contexts/project-delivery/project-service/domain/errors"
	"drafthub/contexts/project-delivery/project-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

func engineerPrincipal(companyID string) accesspolicy.Principal {
	return accesspolicy.Principal{UserID: "u1", Role: accesspolicy.RoleClientEngineer, CompanyID: companyID}
}

func TestCreateProjectStoresDrawing(t *testing.T) {
	module := project.NewInMemoryModule(slog.Default())
	content := []byte("%PDF-1.4 drawing")

	created, err := module.Service.CreateProject(context.Background(), engineerPrincipal("company-1"), ports.CreateInput{
		Title:    "Tower A",
		FileName: "Foundation.PDF",
		Content:  content,
	})
	if err != nil {
		t.Fatalf("create project failed: %v", err)
	}
	if !strings.HasSuffix(created.FilePath, ".pdf") {
		t.Fatalf("expected lowercased pdf suffix, got %s", created.FilePath)
	}
	stored, ok := module.Store.Blob(created.FilePath)
	if !ok {
		t.Fatalf("expected blob at %s", created.FilePath)
	}
	if !bytes.Equal(stored, content) {
		t.Fatal("stored blob differs from upload")
	}
}

func TestCreateProjectRejectsNonDrawingFiles(t *testing.T) {
	module := project.NewInMemoryModule(slog.Default())

	_, err := module.Service.CreateProject(context.Background(), engineerPrincipal("company-1"), ports.CreateInput{
		Title:    "Tower A",
		FileName: "notes.docx",
		Content:  []byte("text"),
	})
	if !errors.Is(err, domainerrors.ErrUnsupportedFileType) {
		t.Fatalf("expected unsupported file type, got %v", err)
	}
}

func TestProjectListIsTenantScoped(t *testing.T) {
	module := project.NewInMemoryModule(slog.Default())
	ctx := context.Background()

	if _, err := module.Service.CreateProject(ctx, engineerPrincipal("company-1"), ports.CreateInput{
		Title: "Tower A", FileName: "a.pdf", Content: []byte("x"),
	}); err != nil {
		t.Fatalf("create project failed: %v", err)
	}
	other := accesspolicy.Principal{UserID: "u2", Role: accesspolicy.RoleClientEngineer, CompanyID: "company-2"}
	if _, err := module.Service.CreateProject(ctx, other, ports.CreateInput{
		Title: "Bridge B", FileName: "b.dwg", Content: []byte("y"),
	}); err != nil {
		t.Fatalf("create project failed: %v", err)
	}

	projects, err := module.Service.ListProjects(ctx, engineerPrincipal("company-1"))
	if err != nil {
		t.Fatalf("list projects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].CompanyID != "company-1" {
		t.Fatalf("expected only company-1 projects, got %+v", projects)
	}
}

func TestGetProjectHidesOtherTenantsBehindNotFound(t *testing.T) {
	module := project.NewInMemoryModule(slog.Default())
	ctx := context.Background()

	created, err := module.Service.CreateProject(ctx, engineerPrincipal("company-1"), ports.CreateInput{
		Title: "Tower A", FileName: "a.pdf", Content: []byte("x"),
	})
	if err != nil {
		t.Fatalf("create project failed: %v", err)
	}

	outsider := accesspolicy.Principal{UserID: "u2", Role: accesspolicy.RoleClientEngineer, CompanyID: "company-2"}
	if _, err := module.Service.GetProject(ctx, outsider, created.ID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for cross-tenant read, got %v", err)
	}
	if _, err := module.Service.GetProject(ctx, outsider, "proj_missing"); !errors.Is(err, domainerrors.ErrProjectNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}
