package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/microblog/internal/model"
)

type redisStreamSink struct {
	rdb    redis.UniversalClient
	stream string
	maxLen int64
}

// NewRedisStreamSink 以 XADD 追加到 stream，按 maxLen 近似裁剪
func NewRedisStreamSink(rdb redis.UniversalClient, stream string, maxLen int64) ActivitySink {
	return &redisStreamSink{rdb: rdb, stream: stream, maxLen: maxLen}
}

func (s *redisStreamSink) Name() string { return "redis" }

func (s *redisStreamSink) Append(ctx context.Context, a *model.Activity) error {
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"id":         a.ID,
			"type":       string(a.Type),
			"actor_id":   a.ActorID,
			"subject_id": a.SubjectID,
			"created_at": a.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	return s.rdb.XAdd(ctx, args).Err()
}

func (s *redisStreamSink) Close() error { return s.rdb.Close() }
