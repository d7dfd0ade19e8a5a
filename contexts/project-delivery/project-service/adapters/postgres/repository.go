package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	domainerrors "drafthub/contexts/project-delivery/project-service/domain/errors"
	"drafthub/contexts/project-delivery/project-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&projectModel{})
}

func (r *Repository) CreateProject(ctx context.Context, project ports.Project) error {
	return r.db.WithContext(ctx).Create(fromEntity(project)).Error
}

func (r *Repository) GetProject(ctx context.Context, id string) (ports.Project, error) {
	var model projectModel
	err := r.db.WithContext(ctx).First(&model, "project_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Project{}, domainerrors.ErrProjectNotFound
		}
		return ports.Project{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListProjects(ctx context.Context, companyID string) ([]ports.Project, error) {
	var models []projectModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	projects := make([]ports.Project, 0, len(models))
	for _, model := range models {
		projects = append(projects, model.toEntity())
	}
	return projects, nil
}

type projectModel struct {
	ProjectID   string    `gorm:"column:project_id;primaryKey"`
	CompanyID   string    `gorm:"column:company_id;index"`
	Title       string    `gorm:"column:title"`
	Location    string    `gorm:"column:location"`
	DrawingType string    `gorm:"column:drawing_type"`
	FileName    string    `gorm:"column:file_name"`
	FilePath    string    `gorm:"column:file_path"`
	Status      string    `gorm:"column:status"`
	CreatedBy   string    `gorm:"column:created_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (projectModel) TableName() string { return "projects" }

func (m projectModel) toEntity() ports.Project {
	return ports.Project{
		ID:          m.ProjectID,
		CompanyID:   m.CompanyID,
		Title:       m.Title,
		Location:    m.Location,
		DrawingType: m.DrawingType,
		FileName:    m.FileName,
		FilePath:    m.FilePath,
		Status:      m.Status,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

func fromEntity(project ports.Project) *projectModel {
	return &projectModel{
		ProjectID:   project.ID,
		CompanyID:   project.CompanyID,
		Title:       project.Title,
		Location:    project.Location,
		DrawingType: project.DrawingType,
		FileName:    project.FileName,
		FilePath:    project.FilePath,
		Status:      project.Status,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
	}
}

var _ ports.Repository = (*Repository)(nil)
