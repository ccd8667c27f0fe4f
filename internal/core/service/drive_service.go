package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devUbaid/LetterDrive-Backend/internal/api/metrics"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/ports"
)

// LettersFolderName is the single Drive folder this backend manages per user.
const LettersFolderName = "Letters"

// DriveService implements the cloud sync engine. State is recomputed on
// every call: the folder is looked up (or created), then the letter's
// stored remote id decides between create and update, and finally the local
// record is reconciled with the resulting id.
type DriveService struct {
	letters ports.LetterRepository
	gateway ports.DriveGateway
	locks   ports.SyncLocker
	logger  zerolog.Logger
}

func NewDriveService(letters ports.LetterRepository, gateway ports.DriveGateway, locks ports.SyncLocker, logger zerolog.Logger) *DriveService {
	return &DriveService{letters: letters, gateway: gateway, locks: locks, logger: logger}
}

// SaveLetter pushes a letter to the user's Drive folder and records the
// binding locally. A per-letter advisory lock keeps two concurrent syncs of
// the same letter from each creating a remote file.
func (s *DriveService) SaveLetter(ctx context.Context, user *domain.User, letterID string) (string, error) {
	acquired, err := s.locks.TryLock(ctx, letterID)
	if err != nil {
		// Lock store trouble should not block a user-triggered sync; the
		// worst case is the original duplicate-file race.
		s.logger.Warn().Err(err).Str("letter_id", letterID).Msg("sync lock unavailable, proceeding unlocked")
	} else if !acquired {
		return "", domain.ErrSyncInProgress
	} else {
		defer func() {
			if err := s.locks.Unlock(ctx, letterID); err != nil {
				s.logger.Warn().Err(err).Str("letter_id", letterID).Msg("failed to release sync lock")
			}
		}()
	}

	letter, err := s.letters.FindByID(ctx, user.ID, letterID)
	if err != nil {
		return "", err
	}

	started := time.Now()
	fileID, outcome, err := s.syncLetter(ctx, user, letter)
	metrics.DriveRequestDuration.WithLabelValues("save").Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.DriveSyncsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.DriveSyncsTotal.WithLabelValues(outcome).Inc()

	if _, err := s.letters.MarkSynced(ctx, user.ID, letter.ID, fileID); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("letter_id", letter.ID).
		Str("file_id", fileID).
		Str("outcome", outcome).
		Msg("letter saved to drive")
	return fileID, nil
}

// syncLetter resolves the folder and performs the create-vs-update step,
// returning the remote file id and whether it was "created" or "updated".
func (s *DriveService) syncLetter(ctx context.Context, user *domain.User, letter *domain.Letter) (string, string, error) {
	// Folder resolution runs on every sync, not only before a create: the
	// user can delete the folder in Drive between saves.
	folderID, err := s.resolveFolder(ctx, user)
	if err != nil {
		return "", "", err
	}

	if letter.DriveFileID != "" {
		if err := s.gateway.UpdateFile(ctx, user, letter.DriveFileID, letter.Title, letter.Content); err != nil {
			return "", "", err
		}
		return letter.DriveFileID, "updated", nil
	}

	fileID, err := s.gateway.CreateFile(ctx, user, folderID, letter.Title, letter.Content)
	if err != nil {
		return "", "", err
	}
	return fileID, "created", nil
}

// resolveFolder finds the user's letters folder, creating it on first sync.
func (s *DriveService) resolveFolder(ctx context.Context, user *domain.User) (string, error) {
	folderID, err := s.gateway.FindFolder(ctx, user, LettersFolderName)
	if err != nil {
		return "", err
	}
	if folderID != "" {
		return folderID, nil
	}

	folderID, err = s.gateway.CreateFolder(ctx, user, LettersFolderName)
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("user_id", user.ID).Str("folder_id", folderID).Msg("letters folder created")
	return folderID, nil
}

// ListRemote lists the documents in the user's letters folder. A missing
// folder means the user has never synced: an empty listing, not an error.
func (s *DriveService) ListRemote(ctx context.Context, user *domain.User) ([]domain.RemoteFile, error) {
	started := time.Now()
	defer func() {
		metrics.DriveRequestDuration.WithLabelValues("list").Observe(time.Since(started).Seconds())
	}()

	folderID, err := s.gateway.FindFolder(ctx, user, LettersFolderName)
	if err != nil {
		return nil, err
	}
	if folderID == "" {
		return []domain.RemoteFile{}, nil
	}
	return s.gateway.ListFolderFiles(ctx, user, folderID)
}

// DeleteRemote removes a remote file, then clears the sync metadata on any
// local letter referencing it. The remote delete is authoritative: a failed
// metadata clear is logged and swallowed, never rolled back.
func (s *DriveService) DeleteRemote(ctx context.Context, user *domain.User, fileID string) error {
	started := time.Now()
	defer func() {
		metrics.DriveRequestDuration.WithLabelValues("delete").Observe(time.Since(started).Seconds())
	}()

	if err := s.gateway.DeleteFile(ctx, user, fileID); err != nil {
		return err
	}

	if err := s.letters.ClearSyncMetadata(ctx, user.ID, fileID); err != nil {
		s.logger.Error().Err(err).
			Str("user_id", user.ID).
			Str("file_id", fileID).
			Msg("remote file deleted but local sync metadata not cleared")
	}

	s.logger.Info().Str("user_id", user.ID).Str("file_id", fileID).Msg("remote file deleted")
	return nil
}
