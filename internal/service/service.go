package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/pkg/logger"
)

var tracer = otel.Tracer("github.com/d60-Lab/microblog/internal/service")

// base 各服务共享的依赖：图引擎、活动外发与指标
type base struct {
	engine     *graph.Engine
	replicator *ActivityReplicator
	metrics    *metrics.Metrics
}

// track 为一次图操作开启 span，返回的 done 记录结果并结束 span
func (b *base) track(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, op)
	span.SetAttributes(attrs...)
	return ctx, func(err error) {
		b.metrics.GraphOp(op, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Debug("graph operation rejected", zap.String("op", op), zap.Error(err))
		}
		span.End()
	}
}

// Services 所有服务的集合
type Services struct {
	Users    UserService
	Relation RelationshipService
	Tweets   TweetService
	Feed     FeedService
	Engine   *graph.Engine
}

// New 基于同一个图引擎组装全部服务；replicator 与 activities 可为 nil
func New(engine *graph.Engine, replicator *ActivityReplicator, activities ActivityReader, m *metrics.Metrics, trendingLimit int) *Services {
	return &Services{
		Users:    NewUserService(engine, replicator, m),
		Relation: NewRelationshipService(engine, replicator, m),
		Tweets:   NewTweetService(engine, replicator, m),
		Feed:     NewFeedService(engine, m, activities, trendingLimit),
		Engine:   engine,
	}
}
