package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/internal/model"
)

// UserService 用户服务
type UserService interface {
	CreateUser(ctx context.Context, username, displayName string, bio *string) (model.UserView, error)
	GetUser(ctx context.Context, userID string) (model.UserView, error)
	UpdateUser(ctx context.Context, userID string, upd model.UserUpdate) (model.UserView, error)
}

type userService struct{ base }

func NewUserService(engine *graph.Engine, replicator *ActivityReplicator, m *metrics.Metrics) UserService {
	return &userService{base: base{engine: engine, replicator: replicator, metrics: m}}
}

func (s *userService) CreateUser(ctx context.Context, username, displayName string, bio *string) (model.UserView, error) {
	_, done := s.track(ctx, "user.create", attribute.String("username", username))
	u, err := s.engine.CreateUser(username, displayName, bio)
	done(err)
	if err != nil {
		return model.UserView{}, err
	}
	s.replicator.Enqueue(model.ActivityUserCreated, u.ID, u.ID)
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (model.UserView, error) {
	_, done := s.track(ctx, "user.get", attribute.String("user_id", userID))
	u, err := s.engine.GetUser(userID)
	done(err)
	return u, err
}

func (s *userService) UpdateUser(ctx context.Context, userID string, upd model.UserUpdate) (model.UserView, error) {
	_, done := s.track(ctx, "user.update", attribute.String("user_id", userID))
	u, err := s.engine.UpdateUser(userID, upd)
	done(err)
	if err != nil {
		return model.UserView{}, err
	}
	s.replicator.Enqueue(model.ActivityUserUpdated, userID, userID)
	return u, nil
}
