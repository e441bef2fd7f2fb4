package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

type stubActivities struct {
	actor string
	limit int
}

func (s *stubActivities) ListByActor(_ context.Context, actorID string, limit int) ([]*model.Activity, error) {
	s.actor, s.limit = actorID, limit
	return []*model.Activity{{ID: "a1", Type: model.ActivityFollowCreated, ActorID: actorID}}, nil
}

func newTestServices(t *testing.T, sink *memorySink, activities ActivityReader) (*Services, func()) {
	t.Helper()
	r := NewActivityReplicator([]repository.ActivitySink{sink}, 100, metrics.New())
	stop := r.Start(1)
	svc := New(graph.New(), r, activities, metrics.New(), 3)
	return svc, func() { require.NoError(t, stop(context.Background())) }
}

func TestServices_EmitActivities(t *testing.T) {
	sink := &memorySink{name: "mem"}
	svc, stop := newTestServices(t, sink, nil)
	ctx := context.Background()

	alice, err := svc.Users.CreateUser(ctx, "alice", "Alice", nil)
	require.NoError(t, err)
	bob, err := svc.Users.CreateUser(ctx, "bob", "Bob", nil)
	require.NoError(t, err)
	name := "Bobby"
	_, err = svc.Users.UpdateUser(ctx, bob.ID, model.UserUpdate{DisplayName: &name})
	require.NoError(t, err)

	require.NoError(t, svc.Relation.Follow(ctx, alice.ID, bob.ID))
	p, err := svc.Tweets.Create(ctx, bob.ID, "hello #go")
	require.NoError(t, err)
	_, err = svc.Tweets.Retweet(ctx, alice.ID, p.ID)
	require.NoError(t, err)
	_, err = svc.Tweets.Quote(ctx, alice.ID, p.ID, "nice")
	require.NoError(t, err)
	n, err := svc.Tweets.Like(ctx, alice.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = svc.Tweets.Unlike(ctx, alice.ID, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, svc.Tweets.Delete(ctx, p.ID))
	require.NoError(t, svc.Relation.Unfollow(ctx, alice.ID, bob.ID))

	// 被拒绝的写不产生活动
	assert.ErrorIs(t, svc.Relation.Follow(ctx, alice.ID, alice.ID), graph.ErrSelfFollow)
	_, err = svc.Tweets.Like(ctx, alice.ID, p.ID)
	assert.ErrorIs(t, err, graph.ErrNotFound)

	stop()
	assert.Equal(t, []model.ActivityType{
		model.ActivityUserCreated,
		model.ActivityUserCreated,
		model.ActivityUserUpdated,
		model.ActivityFollowCreated,
		model.ActivityPostCreated,
		model.ActivityPostRetweeted,
		model.ActivityPostQuoted,
		model.ActivityLikeCreated,
		model.ActivityLikeDeleted,
		model.ActivityPostDeleted,
		model.ActivityFollowDeleted,
	}, sink.types())

	deleted := sink.got[9]
	assert.Equal(t, bob.ID, deleted.ActorID)
	assert.Equal(t, p.ID, deleted.SubjectID)
}

func TestFeedService(t *testing.T) {
	sink := &memorySink{name: "mem"}
	svc, stop := newTestServices(t, sink, nil)
	defer stop()
	ctx := context.Background()

	a, _ := svc.Users.CreateUser(ctx, "a", "A", nil)
	b, _ := svc.Users.CreateUser(ctx, "b", "B", nil)
	require.NoError(t, svc.Relation.Follow(ctx, a.ID, b.ID))
	for _, body := range []string{"#one @a", "#two", "#three", "#four", "#one"} {
		_, err := svc.Tweets.Create(ctx, b.ID, body)
		require.NoError(t, err)
	}

	tl, err := svc.Feed.Timeline(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, tl, 5)

	mentions, err := svc.Feed.Mentions(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, mentions, 1)

	byAuthor, err := svc.Feed.PostsByAuthor(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 5)

	assert.Len(t, svc.Feed.PostsByHashtag(ctx, "#ONE"), 2)

	// 未指定 limit 时使用配置的默认值
	trending := svc.Feed.Trending(ctx, 0)
	require.Len(t, trending, 3)
	assert.Equal(t, model.TrendingItem{Hashtag: "one", Count: 2}, trending[0])
	assert.Len(t, svc.Feed.Trending(ctx, 10), 4)

	followers, err := svc.Relation.ListFollowers(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	following, err := svc.Relation.ListFollowing(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)

	_, err = svc.Feed.Activity(ctx, a.ID, 10)
	assert.ErrorIs(t, err, ErrActivityDisabled)
}

func TestFeedService_Activity(t *testing.T) {
	stub := &stubActivities{}
	svc, stop := newTestServices(t, &memorySink{name: "mem"}, stub)
	defer stop()
	ctx := context.Background()

	u, err := svc.Users.CreateUser(ctx, "alice", "Alice", nil)
	require.NoError(t, err)

	list, err := svc.Feed.Activity(ctx, u.ID, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, u.ID, stub.actor)
	assert.Equal(t, 20, stub.limit)

	_, err = svc.Feed.Activity(ctx, "ghost", 20)
	assert.ErrorIs(t, err, graph.ErrNotFound)
}
