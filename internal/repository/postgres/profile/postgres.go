package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	domain "money-tracker-go/internal/domain/profile"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresRepository) GetByUserIDText(ctx context.Context, userIDText string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).Where("user_id_text = ?", userIDText).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) UpdateLanguage(ctx context.Context, id string, language *string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"language":   language,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
