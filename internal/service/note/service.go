package note

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type Service struct {
	repo ports.NoteRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo ports.NoteRepository, log *zap.Logger) ports.NoteService {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (s *Service) CreateNote(ctx context.Context, userID string, input domain.CreateNoteInput) (*domain.Note, error) {
	if strings.TrimSpace(input.Content.Text) == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "Untitled note"
	}
	category := input.Category
	if category == "" {
		category = "general"
	}
	noteType := input.Type
	if noteType == "" {
		noteType = "personal"
	}
	source := input.Source
	if source == "" {
		source = "manual"
	}

	now := s.now()
	note := &domain.Note{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Content:     input.Content,
		Category:    category,
		Type:        noteType,
		Tags:        orEmpty(input.Tags),
		LinkedGoals: orEmpty(input.LinkedGoals),
		LinkedTasks: orEmpty(input.LinkedTasks),
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Save(ctx, note); err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}
	return note, nil
}

func (s *Service) GetNotes(ctx context.Context, userID string, filter domain.NoteFilter) ([]domain.Note, error) {
	return s.repo.FindByUser(ctx, userID, filter)
}

func (s *Service) GetNote(ctx context.Context, noteID, userID string) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	if note.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	return note, nil
}

func (s *Service) UpdateNote(ctx context.Context, noteID, userID string, patch domain.NotePatch) (*domain.Note, error) {
	note, err := s.GetNote(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		if strings.TrimSpace(patch.Content.Text) == "" {
			return nil, fmt.Errorf("%w: content cannot be empty", domain.ErrInvalidInput)
		}
		note.Content = *patch.Content
	}
	if patch.Category != nil {
		note.Category = *patch.Category
	}
	if patch.Type != nil {
		note.Type = *patch.Type
	}
	if patch.Tags != nil {
		note.Tags = patch.Tags
	}
	note.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, noteID, userID string) error {
	if _, err := s.GetNote(ctx, noteID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, noteID)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
