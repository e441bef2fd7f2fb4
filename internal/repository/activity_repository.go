package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/microblog/internal/model"
)

// ActivitySink 活动落地端
type ActivitySink interface {
	Name() string
	Append(ctx context.Context, a *model.Activity) error
	Close() error
}

// ActivityRepository 可回查的 outbox
type ActivityRepository interface {
	ActivitySink
	ListByActor(ctx context.Context, actorID string, limit int) ([]*model.Activity, error)
}

type activityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepository{db: db} }

// AutoMigrate 建表
func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(&model.Activity{}) }

func (r *activityRepository) Name() string { return "outbox" }

// Append 按 ID 幂等写入，重复投递不报错
func (r *activityRepository) Append(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(a).Error
}

func (r *activityRepository) ListByActor(ctx context.Context, actorID string, limit int) ([]*model.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	var res []*model.Activity
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&res).Error
	return res, err
}

// Close 连接由调用方持有，这里不关闭
func (r *activityRepository) Close() error { return nil }
