package ports

import (
	"context"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

type DriveService interface {
	// SaveLetter pushes the letter to the user's Drive folder, creating the
	// folder and the remote file as needed, and records the binding locally.
	// Returns the remote file id.
	SaveLetter(ctx context.Context, user *domain.User, letterID string) (string, error)

	// ListRemote lists the documents in the user's Drive folder. Returns an
	// empty slice when the folder does not exist yet.
	ListRemote(ctx context.Context, user *domain.User) ([]domain.RemoteFile, error)

	// DeleteRemote removes the remote file, then best-effort clears the sync
	// metadata on any local letter referencing it.
	DeleteRemote(ctx context.Context, user *domain.User, fileID string) error
}
