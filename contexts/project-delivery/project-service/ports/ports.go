package ports

import (
	"context"
	"time"

	"drafthub/internal/shared/accesspolicy"
)

const (
	StatusUploaded   = "Uploaded"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
)

const (
	DrawingTypePDF = "PDF"
	DrawingTypeDWG = "DWG"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Project struct {
	ID          string
	CompanyID   string
	Title       string
	Location    string
	DrawingType string
	FileName    string
	FilePath    string
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
}

type CreateInput struct {
	Title    string
	Location string
	FileName string
	Content  []byte
}

type Repository interface {
	CreateProject(ctx context.Context, project Project) error
	GetProject(ctx context.Context, id string) (Project, error)
	ListProjects(ctx context.Context, companyID string) ([]Project, error)
}

// BlobStore persists drawing payloads and returns the stored location.
type BlobStore interface {
	Save(ctx context.Context, fileName string, content []byte) (string, error)
}

// SubscriptionGate asks the billing context whether the caller's company may
// use tenant features right now.
type SubscriptionGate interface {
	Allowed(ctx context.Context, principal accesspolicy.Principal) (bool, error)
}
