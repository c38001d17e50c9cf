package ports

import (
	"context"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// UserRepository defines persistence operations for principals.
type UserRepository interface {
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	FindByIDNumber(ctx context.Context, idNumber string) (*domain.Principal, error)
	Update(ctx context.Context, p *domain.Principal) error
}
