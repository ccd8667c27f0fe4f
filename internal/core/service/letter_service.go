package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/ports"
)

// LetterService implements owner-scoped letter CRUD. Ownership is enforced
// at the repository filter level; a letter belonging to someone else is
// simply not found.
type LetterService struct {
	repo   ports.LetterRepository
	logger zerolog.Logger
}

func NewLetterService(repo ports.LetterRepository, logger zerolog.Logger) *LetterService {
	return &LetterService{repo: repo, logger: logger}
}

func (s *LetterService) List(ctx context.Context, ownerID string) ([]domain.Letter, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *LetterService) Get(ctx context.Context, ownerID, id string) (*domain.Letter, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

// Create inserts a new letter, applying defaults for absent fields: a nil
// or empty title becomes the default title, a nil content becomes "".
func (s *LetterService) Create(ctx context.Context, ownerID string, input ports.CreateLetterInput) (*domain.Letter, error) {
	title := domain.DefaultLetterTitle
	if input.Title != nil && *input.Title != "" {
		title = *input.Title
	}
	content := ""
	if input.Content != nil {
		content = *input.Content
	}

	now := time.Now().UTC()
	letter, err := s.repo.Insert(ctx, &domain.Letter{
		UserID:    ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to create letter")
		return nil, err
	}

	s.logger.Info().Str("letter_id", letter.ID).Str("user_id", ownerID).Msg("letter created")
	return letter, nil
}

// Update applies a partial mutation. A nil field keeps the prior value, and
// so does an empty title; an explicitly empty content is a real overwrite.
// The updated_at timestamp is always refreshed.
func (s *LetterService) Update(ctx context.Context, ownerID, id string, update ports.LetterUpdate) (*domain.Letter, error) {
	if update.Title != nil && *update.Title == "" {
		update.Title = nil
	}
	return s.repo.Update(ctx, ownerID, id, update)
}

// Delete removes a letter regardless of its sync state. A synced letter's
// remote copy is left in place; Drive cleanup is a separate, explicit call.
func (s *LetterService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.logger.Info().Str("letter_id", id).Str("user_id", ownerID).Msg("letter deleted")
	return nil
}
