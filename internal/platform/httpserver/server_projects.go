package httpserver

import (
	"errors"
	"io"
	"net/http"

	projecterrors "drafthub/contexts/project-delivery/project-service/domain/errors"
	projectports "drafthub/contexts/project-delivery/project-service/ports"
	projecthttp "drafthub/contexts/project-delivery/project-service/transport/http"
)

// Drawings arrive as multipart uploads; cap what we buffer.
const maxDrawingUploadBytes = 50 << 20

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDrawingUploadBytes); err != nil {
		writeProjectError(w, http.StatusBadRequest, "invalid_multipart", "request must be multipart/form-data")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeProjectError(w, http.StatusBadRequest, "missing_file", "drawing file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxDrawingUploadBytes))
	if err != nil {
		writeProjectError(w, http.StatusBadRequest, "unreadable_file", "could not read drawing file")
		return
	}

	resp, err := s.projects.Handler.CreateProjectHandler(r.Context(), s.principal(r), projectports.CreateInput{
		Title:    r.FormValue("title"),
		Location: r.FormValue("location"),
		FileName: header.Filename,
		Content:  content,
	})
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	resp, err := s.projects.Handler.ListProjectsHandler(r.Context(), s.principal(r))
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	resp, err := s.projects.Handler.GetProjectHandler(r.Context(), s.principal(r), r.PathValue("project_id"))
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeProjectDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, projecterrors.ErrUnauthenticated):
		writeProjectError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, projecterrors.ErrForbidden):
		writeProjectError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, projecterrors.ErrSubscriptionExpired):
		writeProjectError(w, http.StatusForbidden, "subscription_expired", err.Error())
	case errors.Is(err, projecterrors.ErrProjectNotFound):
		writeProjectError(w, http.StatusNotFound, "project_not_found", err.Error())
	case errors.Is(err, projecterrors.ErrUnsupportedFileType):
		writeProjectError(w, http.StatusBadRequest, "unsupported_file_type", err.Error())
	case errors.Is(err, projecterrors.ErrInvalidRequest):
		writeProjectError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeProjectError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeProjectError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, projecthttp.ErrorResponse{Code: code, Message: message})
}
