package profile

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUserIDText(ctx context.Context, userIDText string) (*Profile, error)
	// Create returns ErrProfileExists when user_id_text is already taken.
	Create(ctx context.Context, profile *Profile) error
	UpdateLanguage(ctx context.Context, id string, language *string) error
}
