package ports

import (
	"context"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

// DriveGateway is the primitive surface of the remote storage API. Calls
// authenticate with the tokens cached on the user record; an expired token
// fails the call rather than triggering a refresh flow.
type DriveGateway interface {
	// FindFolder returns the id of the first non-trashed folder with the
	// given name, or "" when none exists.
	FindFolder(ctx context.Context, user *domain.User, name string) (string, error)

	CreateFolder(ctx context.Context, user *domain.User, name string) (string, error)

	// CreateFile uploads a new document inside folderID and returns its id.
	CreateFile(ctx context.Context, user *domain.User, folderID, name, content string) (string, error)

	// UpdateFile replaces the metadata and content of an existing document.
	UpdateFile(ctx context.Context, user *domain.User, fileID, name, content string) error

	ListFolderFiles(ctx context.Context, user *domain.User, folderID string) ([]domain.RemoteFile, error)

	DeleteFile(ctx context.Context, user *domain.User, fileID string) error
}
