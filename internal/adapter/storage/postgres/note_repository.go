package postgres

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type NoteRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewNoteRepository(db *gorm.DB, log *zap.Logger) ports.NoteRepository {
	return &NoteRepository{db: db, log: log}
}

func (r *NoteRepository) Save(ctx context.Context, note *domain.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	var note domain.Note
	err := r.db.WithContext(ctx).First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) FindByUser(ctx context.Context, userID string, filter domain.NoteFilter) ([]domain.Note, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		// tags is a JSON array stored as text
		q = q.Where("tags LIKE ?", "%"+strconv.Quote(filter.Tag)+"%")
	}

	notes := []domain.Note{}
	err := q.Order("created_at desc").Find(&notes).Error
	return notes, err
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Note{}, "id = ?", id).Error
}
