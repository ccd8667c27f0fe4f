package ports

import (
	"context"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

// LetterUpdate carries a partial letter mutation. Nil fields are left
// untouched; a non-nil pointer to an empty string is a real overwrite.
type LetterUpdate struct {
	Title   *string
	Content *string
}

// LetterRepository defines the interface for letter persistence. Every
// method is scoped to an owner: a letter belonging to a different user is
// indistinguishable from one that does not exist.
type LetterRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Letter, error)
	FindByID(ctx context.Context, ownerID, id string) (*domain.Letter, error)
	Insert(ctx context.Context, letter *domain.Letter) (*domain.Letter, error)
	Update(ctx context.Context, ownerID, id string, update LetterUpdate) (*domain.Letter, error)
	Delete(ctx context.Context, ownerID, id string) error

	// MarkSynced records the remote binding after a successful Drive save.
	MarkSynced(ctx context.Context, ownerID, id, driveFileID string) (*domain.Letter, error)

	// ClearSyncMetadata unsets the remote binding on whichever letter
	// currently references driveFileID. A miss is not an error.
	ClearSyncMetadata(ctx context.Context, ownerID, driveFileID string) error
}
