package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/internal/model"
)

// TweetService 帖子与点赞服务
type TweetService interface {
	Create(ctx context.Context, userID, content string) (model.PostView, error)
	Retweet(ctx context.Context, userID, tweetID string) (model.PostView, error)
	Quote(ctx context.Context, userID, tweetID, content string) (model.PostView, error)
	Get(ctx context.Context, tweetID string) (model.PostView, error)
	Delete(ctx context.Context, tweetID string) error
	Like(ctx context.Context, userID, tweetID string) (int, error)
	Unlike(ctx context.Context, userID, tweetID string) (int, error)
}

type tweetService struct{ base }

func NewTweetService(engine *graph.Engine, replicator *ActivityReplicator, m *metrics.Metrics) TweetService {
	return &tweetService{base: base{engine: engine, replicator: replicator, metrics: m}}
}

func (s *tweetService) Create(ctx context.Context, userID, content string) (model.PostView, error) {
	return s.create(ctx, "post.create", model.ActivityPostCreated, graph.Draft{
		AuthorID: userID, Kind: model.PostKindOriginal, Body: content,
	})
}

func (s *tweetService) Retweet(ctx context.Context, userID, tweetID string) (model.PostView, error) {
	return s.create(ctx, "post.retweet", model.ActivityPostRetweeted, graph.Draft{
		AuthorID: userID, Kind: model.PostKindRetweet, OriginalID: tweetID,
	})
}

func (s *tweetService) Quote(ctx context.Context, userID, tweetID, content string) (model.PostView, error) {
	return s.create(ctx, "post.quote", model.ActivityPostQuoted, graph.Draft{
		AuthorID: userID, Kind: model.PostKindQuote, OriginalID: tweetID, Body: content,
	})
}

func (s *tweetService) create(ctx context.Context, op string, typ model.ActivityType, d graph.Draft) (model.PostView, error) {
	_, done := s.track(ctx, op,
		attribute.String("user_id", d.AuthorID),
		attribute.String("original_id", d.OriginalID),
	)
	p, err := s.engine.CreatePost(d)
	done(err)
	if err != nil {
		return model.PostView{}, err
	}
	s.replicator.Enqueue(typ, d.AuthorID, p.ID)
	return p, nil
}

func (s *tweetService) Get(ctx context.Context, tweetID string) (model.PostView, error) {
	_, done := s.track(ctx, "post.get", attribute.String("tweet_id", tweetID))
	p, err := s.engine.GetPost(tweetID)
	done(err)
	return p, err
}

func (s *tweetService) Delete(ctx context.Context, tweetID string) error {
	_, done := s.track(ctx, "post.delete", attribute.String("tweet_id", tweetID))
	p, err := s.engine.DeletePost(tweetID)
	done(err)
	if err != nil {
		return err
	}
	s.replicator.Enqueue(model.ActivityPostDeleted, p.AuthorID, p.ID)
	return nil
}

func (s *tweetService) Like(ctx context.Context, userID, tweetID string) (int, error) {
	_, done := s.track(ctx, "like",
		attribute.String("user_id", userID),
		attribute.String("tweet_id", tweetID),
	)
	n, err := s.engine.Like(userID, tweetID)
	done(err)
	if err != nil {
		return 0, err
	}
	s.replicator.Enqueue(model.ActivityLikeCreated, userID, tweetID)
	return n, nil
}

func (s *tweetService) Unlike(ctx context.Context, userID, tweetID string) (int, error) {
	_, done := s.track(ctx, "unlike",
		attribute.String("user_id", userID),
		attribute.String("tweet_id", tweetID),
	)
	n, err := s.engine.Unlike(userID, tweetID)
	done(err)
	if err != nil {
		return 0, err
	}
	s.replicator.Enqueue(model.ActivityLikeDeleted, userID, tweetID)
	return n, nil
}
