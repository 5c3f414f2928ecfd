package auth

import (
	"context"

	"travelnest/internal/domain"
)

// UserRepository defines the persistence operations auth needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}
