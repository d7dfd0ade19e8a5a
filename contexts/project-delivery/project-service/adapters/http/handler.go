package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"drafthub/contexts/project-delivery/project-service/application"
	"drafthub/contexts/project-delivery/project-service/ports"
	httptransport "drafthub/contexts/project-delivery/project-service/transport/http"
	"drafthub/internal/shared/accesspolicy"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateProjectHandler(
	ctx context.Context,
	principal accesspolicy.Principal,
	input ports.CreateInput,
) (httptransport.CreateProjectResponse, error) {
	project, err := h.Service.CreateProject(ctx, principal, input)
	if err != nil {
		return httptransport.CreateProjectResponse{}, err
	}
	return httptransport.CreateProjectResponse{
		ID:      project.ID,
		Message: "Project created successfully",
	}, nil
}

func (h Handler) ListProjectsHandler(ctx context.Context, principal accesspolicy.Principal) ([]httptransport.ProjectPayload, error) {
	projects, err := h.Service.ListProjects(ctx, principal)
	if err != nil {
		return nil, err
	}
	payloads := make([]httptransport.ProjectPayload, 0, len(projects))
	for _, project := range projects {
		payloads = append(payloads, projectPayload(project))
	}
	return payloads, nil
}

func (h Handler) GetProjectHandler(ctx context.Context, principal accesspolicy.Principal, projectID string) (httptransport.ProjectPayload, error) {
	project, err := h.Service.GetProject(ctx, principal, projectID)
	if err != nil {
		return httptransport.ProjectPayload{}, err
	}
	return projectPayload(project), nil
}

func projectPayload(project ports.Project) httptransport.ProjectPayload {
	payload := httptransport.ProjectPayload{
		ID:          project.ID,
		CompanyID:   project.CompanyID,
		Title:       project.Title,
		Location:    project.Location,
		DrawingType: project.DrawingType,
		FileName:    project.FileName,
		Status:      project.Status,
		CreatedBy:   project.CreatedBy,
	}
	if !project.CreatedAt.IsZero() {
		payload.CreatedAt = project.CreatedAt.UTC().Format(time.RFC3339)
	}
	return payload
}
