package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	domainerrors "drafthub/contexts/project-delivery/project-service/domain/errors"
	"drafthub/contexts/project-delivery/project-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

type Service struct {
	Repo   ports.Repository
	Blobs  ports.BlobStore
	Gate   ports.SubscriptionGate
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CreateProject stores the drawing and its metadata row for the caller's
// company. Only PDF and DWG drawings are accepted, judged by file suffix.
func (s Service) CreateProject(ctx context.Context, principal accesspolicy.Principal, input ports.CreateInput) (ports.Project, error) {
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionCreateProject, accesspolicy.Target{})); err != nil {
		return ports.Project{}, err
	}

	allowed, err := s.Gate.Allowed(ctx, principal)
	if err != nil {
		return ports.Project{}, err
	}
	if !allowed {
		return ports.Project{}, domainerrors.ErrSubscriptionExpired
	}

	input.Title = strings.TrimSpace(input.Title)
	input.FileName = strings.TrimSpace(input.FileName)
	if input.Title == "" || input.FileName == "" || len(input.Content) == 0 {
		return ports.Project{}, domainerrors.ErrInvalidRequest
	}
	drawingType, ok := drawingTypeFor(input.FileName)
	if !ok {
		return ports.Project{}, domainerrors.ErrUnsupportedFileType
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Project{}, err
	}
	storedName := fmt.Sprintf("%s%s", id, strings.ToLower(filepath.Ext(input.FileName)))
	path, err := s.Blobs.Save(ctx, storedName, input.Content)
	if err != nil {
		return ports.Project{}, fmt.Errorf("store drawing: %w", err)
	}

	project := ports.Project{
		ID:          id,
		CompanyID:   principal.CompanyID,
		Title:       input.Title,
		Location:    strings.TrimSpace(input.Location),
		DrawingType: drawingType,
		FileName:    input.FileName,
		FilePath:    path,
		Status:      ports.StatusUploaded,
		CreatedBy:   principal.UserID,
		CreatedAt:   s.now(),
	}
	if err := s.Repo.CreateProject(ctx, project); err != nil {
		return ports.Project{}, err
	}

	resolveLogger(s.Logger).Info("project created",
		"event", "project_created",
		"module", "project-delivery/project-service",
		"layer", "application",
		"project_id", project.ID,
		"company_id", project.CompanyID,
		"drawing", project.FileName,
	)
	return project, nil
}

func (s Service) ListProjects(ctx context.Context, principal accesspolicy.Principal) ([]ports.Project, error) {
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionListProjects, accesspolicy.Target{})); err != nil {
		return nil, err
	}
	return s.Repo.ListProjects(ctx, principal.CompanyID)
}

// GetProject resolves the row before authorizing so an unknown ID reads as
// not found rather than leaking whether it exists in another tenant.
func (s Service) GetProject(ctx context.Context, principal accesspolicy.Principal, projectID string) (ports.Project, error) {
	if !principal.Authenticated() {
		return ports.Project{}, domainerrors.ErrUnauthenticated
	}
	project, err := s.Repo.GetProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return ports.Project{}, err
	}
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionViewProject, accesspolicy.Target{CompanyID: project.CompanyID})); err != nil {
		return ports.Project{}, err
	}
	return project, nil
}

func drawingTypeFor(fileName string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if len(ext) == len(fileName) {
		// A bare extension such as ".pdf" has no basename.
		return "", false
	}
	switch ext {
	case ".pdf":
		return ports.DrawingTypePDF, true
	case ".dwg":
		return ports.DrawingTypeDWG, true
	default:
		return "", false
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func denyError(decision accesspolicy.Decision) error {
	if decision.Allowed {
		return nil
	}
	switch decision.Reason {
	case accesspolicy.DenyNotAuthenticated:
		return domainerrors.ErrUnauthenticated
	case accesspolicy.DenyNoCompany:
		return domainerrors.ErrInvalidRequest
	default:
		return domainerrors.ErrForbidden
	}
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
