package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/internal/model"
)

// ErrActivityDisabled 未配置 outbox 时无法查询活动
var ErrActivityDisabled = errors.New("activity outbox is disabled")

// ActivityReader 活动回查（由 outbox 仓储实现）
type ActivityReader interface {
	ListByActor(ctx context.Context, actorID string, limit int) ([]*model.Activity, error)
}

// FeedService 派生视图：时间线、提及、话题与热门
type FeedService interface {
	Timeline(ctx context.Context, userID string) ([]model.PostView, error)
	Mentions(ctx context.Context, userID string) ([]model.PostView, error)
	PostsByAuthor(ctx context.Context, userID string) ([]model.PostView, error)
	PostsByHashtag(ctx context.Context, tag string) []model.PostView
	Trending(ctx context.Context, limit int) []model.TrendingItem
	Activity(ctx context.Context, userID string, limit int) ([]*model.Activity, error)
}

type feedService struct {
	base
	activities    ActivityReader
	trendingLimit int
}

func NewFeedService(engine *graph.Engine, m *metrics.Metrics, activities ActivityReader, trendingLimit int) FeedService {
	if trendingLimit <= 0 {
		trendingLimit = graph.DefaultTrendingLimit
	}
	return &feedService{base: base{engine: engine, metrics: m}, activities: activities, trendingLimit: trendingLimit}
}

func (s *feedService) Timeline(ctx context.Context, userID string) ([]model.PostView, error) {
	_, done := s.track(ctx, "timeline", attribute.String("user_id", userID))
	list, err := s.engine.Timeline(userID)
	done(err)
	return list, err
}

func (s *feedService) Mentions(ctx context.Context, userID string) ([]model.PostView, error) {
	_, done := s.track(ctx, "mentions", attribute.String("user_id", userID))
	list, err := s.engine.MentionsOf(userID)
	done(err)
	return list, err
}

func (s *feedService) PostsByAuthor(ctx context.Context, userID string) ([]model.PostView, error) {
	_, done := s.track(ctx, "posts_by_author", attribute.String("user_id", userID))
	list, err := s.engine.PostsByAuthor(userID)
	done(err)
	return list, err
}

func (s *feedService) PostsByHashtag(ctx context.Context, tag string) []model.PostView {
	_, done := s.track(ctx, "posts_by_hashtag", attribute.String("hashtag", tag))
	defer done(nil)
	return s.engine.PostsByHashtag(tag)
}

func (s *feedService) Trending(ctx context.Context, limit int) []model.TrendingItem {
	if limit <= 0 {
		limit = s.trendingLimit
	}
	_, done := s.track(ctx, "trending", attribute.Int("limit", limit))
	defer done(nil)
	return s.engine.Trending(limit)
}

// Activity 某用户最近的外发活动，按时间倒序
func (s *feedService) Activity(ctx context.Context, userID string, limit int) ([]*model.Activity, error) {
	ctx, done := s.track(ctx, "activity", attribute.String("user_id", userID))
	list, err := s.activity(ctx, userID, limit)
	done(err)
	return list, err
}

func (s *feedService) activity(ctx context.Context, userID string, limit int) ([]*model.Activity, error) {
	if s.activities == nil {
		return nil, ErrActivityDisabled
	}
	if _, err := s.engine.GetUser(userID); err != nil {
		return nil, err
	}
	list, err := s.activities.ListByActor(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity for %s: %w", userID, err)
	}
	return list, nil
}
