package ports

import (
	"context"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

// CreateLetterInput carries the optional fields of a new letter. Nil title
// falls back to the default title; nil content falls back to empty.
type CreateLetterInput struct {
	Title   *string
	Content *string
}

type LetterService interface {
	List(ctx context.Context, ownerID string) ([]domain.Letter, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Letter, error)
	Create(ctx context.Context, ownerID string, input CreateLetterInput) (*domain.Letter, error)
	Update(ctx context.Context, ownerID, id string, update LetterUpdate) (*domain.Letter, error)
	Delete(ctx context.Context, ownerID, id string) error
}
