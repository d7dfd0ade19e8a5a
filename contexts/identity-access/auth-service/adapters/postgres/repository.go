package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerrors "drafthub/contexts/identity-access/auth-service/domain/errors"
	"drafthub/contexts/identity-access/auth-service/ports"
	"drafthub/internal/shared/accesspolicy"
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
	return r.db.AutoMigrate(&userModel{})
}

func (r *Repository) CreateUser(ctx context.Context, user ports.User) error {
	row := userModelFromPort(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (ports.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(id)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, domainerrors.ErrUserNotFound
		}
		return ports.User{}, err
	}
	return row.toPort(), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (ports.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, domainerrors.ErrUserNotFound
		}
		return ports.User{}, err
	}
	return row.toPort(), nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]ports.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]ports.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toPort())
	}
	return users, nil
}

func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(id)).
		Delete(&userModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) SetResetToken(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Updates(map[string]any{
			"reset_token":      token,
			"reset_expires_at": expiresAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) GetUserByResetToken(ctx context.Context, token string, now time.Time) (ports.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("reset_token = ? AND reset_expires_at > ?", token, now.UTC()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, domainerrors.ErrResetTokenInvalid
		}
		return ports.User{}, err
	}
	return row.toPort(), nil
}

func (r *Repository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Updates(map[string]any{
			"password_hash":    passwordHash,
			"reset_token":      "",
			"reset_expires_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

type userModel struct {
	UserID         string     `gorm:"column:user_id;primaryKey"`
	Name           string     `gorm:"column:name"`
	Email          string     `gorm:"column:email;uniqueIndex"`
	PasswordHash   string     `gorm:"column:password_hash"`
	Role           string     `gorm:"column:role"`
	CompanyID      string     `gorm:"column:company_id;index"`
	ResetToken     string     `gorm:"column:reset_token;index"`
	ResetExpiresAt *time.Time `gorm:"column:reset_expires_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (userModel) TableName() string {
	return "users"
}

func (m userModel) toPort() ports.User {
	return ports.User{
		ID:             m.UserID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Role:           accesspolicy.Role(m.Role),
		CompanyID:      m.CompanyID,
		ResetToken:     m.ResetToken,
		ResetExpiresAt: m.ResetExpiresAt,
		CreatedAt:      m.CreatedAt,
	}
}

func userModelFromPort(user ports.User) userModel {
	return userModel{
		UserID:         user.ID,
		Name:           user.Name,
		Email:          strings.ToLower(strings.TrimSpace(user.Email)),
		PasswordHash:   user.PasswordHash,
		Role:           string(user.Role),
		CompanyID:      user.CompanyID,
		ResetToken:     user.ResetToken,
		ResetExpiresAt: user.ResetExpiresAt,
		CreatedAt:      user.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
