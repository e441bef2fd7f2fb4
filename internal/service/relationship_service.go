package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/internal/model"
)

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, fromUserID, toUserID string) error
	Unfollow(ctx context.Context, fromUserID, toUserID string) error
	ListFollowing(ctx context.Context, userID string) ([]model.UserView, error)
	ListFollowers(ctx context.Context, userID string) ([]model.UserView, error)
}

type relationshipService struct{ base }

func NewRelationshipService(engine *graph.Engine, replicator *ActivityReplicator, m *metrics.Metrics) RelationshipService {
	return &relationshipService{base: base{engine: engine, replicator: replicator, metrics: m}}
}

func (s *relationshipService) Follow(ctx context.Context, fromUserID, toUserID string) error {
	_, done := s.track(ctx, "follow",
		attribute.String("from_user_id", fromUserID),
		attribute.String("to_user_id", toUserID),
	)
	err := s.engine.Follow(fromUserID, toUserID)
	done(err)
	if err != nil {
		return err
	}
	s.replicator.Enqueue(model.ActivityFollowCreated, fromUserID, toUserID)
	return nil
}

func (s *relationshipService) Unfollow(ctx context.Context, fromUserID, toUserID string) error {
	_, done := s.track(ctx, "unfollow",
		attribute.String("from_user_id", fromUserID),
		attribute.String("to_user_id", toUserID),
	)
	err := s.engine.Unfollow(fromUserID, toUserID)
	done(err)
	if err != nil {
		return err
	}
	s.replicator.Enqueue(model.ActivityFollowDeleted, fromUserID, toUserID)
	return nil
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string) ([]model.UserView, error) {
	_, done := s.track(ctx, "following", attribute.String("user_id", userID))
	list, err := s.engine.Following(userID)
	done(err)
	return list, err
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID string) ([]model.UserView, error) {
	_, done := s.track(ctx, "followers", attribute.String("user_id", userID))
	list, err := s.engine.Followers(userID)
	done(err)
	return list, err
}
