package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type GoalRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGoalRepository(db *gorm.DB, log *zap.Logger) ports.GoalRepository {
	return &GoalRepository{db: db, log: log}
}

func (r *GoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *GoalRepository) FindByID(ctx context.Context, id string) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.db.WithContext(ctx).First(&goal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepository) FindByUser(ctx context.Context, userID string, filter domain.GoalFilter) ([]domain.Goal, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}

	goals := []domain.Goal{}
	err := q.Order("created_at desc").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Goal{}, "id = ?", id).Error
}
