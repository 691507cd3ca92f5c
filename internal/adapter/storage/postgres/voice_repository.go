package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type VoiceRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewVoiceRepository(db *gorm.DB, log *zap.Logger) ports.VoiceRepository {
	return &VoiceRepository{db: db, log: log}
}

func (r *VoiceRepository) SaveSession(ctx context.Context, session *domain.VoiceSession) error {
	return r.db.WithContext(ctx).Omit("Transcriptions").Create(session).Error
}

func (r *VoiceRepository) FindSession(ctx context.Context, id string) (*domain.VoiceSession, error) {
	var session domain.VoiceSession
	err := r.db.WithContext(ctx).
		Preload("Transcriptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// FindSessionsByUser returns sessions newest first without transcriptions.
func (r *VoiceRepository) FindSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.VoiceSession, error) {
	sessions := []domain.VoiceSession{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time desc").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

func (r *VoiceRepository) UpdateSession(ctx context.Context, session *domain.VoiceSession) error {
	return r.db.WithContext(ctx).Omit("Transcriptions").Save(session).Error
}

func (r *VoiceRepository) SaveTranscription(ctx context.Context, t *domain.Transcription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return fmt.Errorf("insert transcription: %w", err)
		}
		if t.SessionID == nil {
			return nil
		}
		err := tx.Model(&domain.VoiceSession{}).
			Where("id = ?", *t.SessionID).
			UpdateColumn("total_duration", gorm.Expr("total_duration + ?", t.Duration)).Error
		if err != nil {
			return fmt.Errorf("update session duration: %w", err)
		}
		return nil
	})
}
