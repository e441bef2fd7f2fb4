package graph

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/microblog/internal/model"
)

// newTestEngine 使用递增 ID 和每次前进 1 秒的时钟
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	var n int
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return New(
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%03d", n) }),
		WithClock(func() time.Time { return base.Add(time.Duration(n) * time.Second) }),
	)
}

func mustUser(t *testing.T, e *Engine, username string) model.UserView {
	t.Helper()
	u, err := e.CreateUser(username, strings.ToUpper(username), nil)
	require.NoError(t, err)
	return u
}

func mustPost(t *testing.T, e *Engine, authorID, body string) model.PostView {
	t.Helper()
	p, err := e.CreatePost(Draft{AuthorID: authorID, Kind: model.PostKindOriginal, Body: body})
	require.NoError(t, err)
	return p
}

func mustRetweet(t *testing.T, e *Engine, authorID, originalID string) model.PostView {
	t.Helper()
	p, err := e.CreatePost(Draft{AuthorID: authorID, Kind: model.PostKindRetweet, OriginalID: originalID})
	require.NoError(t, err)
	return p
}

func mustQuote(t *testing.T, e *Engine, authorID, originalID, body string) model.PostView {
	t.Helper()
	p, err := e.CreatePost(Draft{AuthorID: authorID, Kind: model.PostKindQuote, OriginalID: originalID, Body: body})
	require.NoError(t, err)
	return p
}

func ids(views []model.PostView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func TestCreateUser(t *testing.T) {
	e := newTestEngine(t)
	bio := "gopher"
	u, err := e.CreateUser("  alice ", " Alice ", &bio)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "Alice", u.DisplayName)
	require.NotNil(t, u.Bio)
	assert.Equal(t, "gopher", *u.Bio)
	assert.Zero(t, u.FollowersCount)
	assert.Zero(t, u.FollowingCount)
	assert.Zero(t, u.TweetCount)
	assert.False(t, u.CreatedAt.IsZero())

	bio = "changed"
	got, err := e.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "gopher", *got.Bio, "stored bio must not alias the caller's string")
}

func TestCreateUser_CaseInsensitiveUnique(t *testing.T) {
	e := newTestEngine(t)
	mustUser(t, e, "alice")
	_, err := e.CreateUser("ALICE", "Other", nil)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	_, err = e.CreateUser("Alice", "Other", nil)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, 1, e.Stats().Users)
}

func TestCreateUser_Blank(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CreateUser("   ", "Name", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.CreateUser("bob", "  ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, e.Stats().Users)
}

func TestGetUser_NotFound(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.GetUser("missing")
	require.ErrorIs(t, err, ErrNotFound)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, EntityUser, nf.Kind)
	assert.Equal(t, "missing", nf.ID)
}

func TestUpdateUser_Partial(t *testing.T) {
	e := newTestEngine(t)
	bio := "original bio"
	u, err := e.CreateUser("alice", "Alice", &bio)
	require.NoError(t, err)

	name := "Alice Liddell"
	got, err := e.UpdateUser(u.ID, model.UserUpdate{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", got.DisplayName)
	assert.Equal(t, "original bio", *got.Bio)

	newBio := "rabbit hole"
	got, err = e.UpdateUser(u.ID, model.UserUpdate{Bio: &newBio})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", got.DisplayName)
	assert.Equal(t, "rabbit hole", *got.Bio)
	assert.Equal(t, "alice", got.Username)

	blank := " "
	_, err = e.UpdateUser(u.ID, model.UserUpdate{DisplayName: &blank, Bio: &bio})
	assert.ErrorIs(t, err, ErrInvalidInput)
	got, _ = e.GetUser(u.ID)
	assert.Equal(t, "rabbit hole", *got.Bio, "rejected update must not partially apply")

	_, err = e.UpdateUser("missing", model.UserUpdate{DisplayName: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePost(t *testing.T) {
	e := newTestEngine(t)
	u := mustUser(t, e, "alice")
	p := mustPost(t, e, u.ID, "Learning #Go with @Bob and #go again")

	assert.Equal(t, model.PostKindOriginal, p.Type)
	assert.Equal(t, u.ID, p.UserID)
	require.NotNil(t, p.Content)
	assert.Equal(t, "Learning #Go with @Bob and #go again", *p.Content)
	assert.Equal(t, []string{"go"}, p.Hashtags)
	assert.Equal(t, []string{"Bob"}, p.Mentions)
	assert.Nil(t, p.OriginalTweetID)
	assert.Nil(t, p.OriginalTweet)
	require.NotNil(t, p.Author)
	assert.Equal(t, 1, p.Author.TweetCount)
	assert.Zero(t, p.LikeCount)
	assert.Zero(t, p.RetweetCount)
	assert.Zero(t, p.QuoteCount)

	plain := mustPost(t, e, u.ID, "plain")
	assert.Equal(t, []string{}, plain.Hashtags)
	assert.Equal(t, []string{}, plain.Mentions)
}

func TestCreatePost_BodyBoundary(t *testing.T) {
	e := newTestEngine(t)
	u := mustUser(t, e, "alice")

	_, err := e.CreatePost(Draft{AuthorID: u.ID, Kind: model.PostKindOriginal, Body: strings.Repeat("a", 280)})
	assert.NoError(t, err)
	_, err = e.CreatePost(Draft{AuthorID: u.ID, Kind: model.PostKindOriginal, Body: strings.Repeat("a", 281)})
	assert.ErrorIs(t, err, ErrBodyTooLong)

	// 按码点计数，而非字节
	_, err = e.CreatePost(Draft{AuthorID: u.ID, Kind: model.PostKindOriginal, Body: strings.Repeat("é", 280)})
	assert.NoError(t, err)
	_, err = e.CreatePost(Draft{AuthorID: u.ID, Kind: model.PostKindOriginal, Body: strings.Repeat("界", 281)})
	assert.ErrorIs(t, err, ErrBodyTooLong)

	orig := mustPost(t, e, u.ID, "orig")
	_, err = e.CreatePost(Draft{AuthorID: u.ID, Kind: model.PostKindQuote, OriginalID: orig.ID, Body: strings.Repeat("q", 281)})
	assert.ErrorIs(t, err, ErrBodyTooLong)
	assert.Equal(t, 3, e.Stats().Posts)
}

func TestCreatePost_Rejections(t *testing.T) {
	e := newTestEngine(t)
	u := mustUser(t, e, "alice")
	orig := mustPost(t, e, u.ID, "orig")

	_, err := e.CreatePost(Draft{AuthorID: "ghost", Kind: model.PostKindOriginal, Body: "hi"})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, EntityUser, nf.Kind)

	_, err = e.CreatePost(Draft{AuthorID: u.ID, Kind: model.PostKindRetweet, OriginalID: "nope"})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, EntityPost, nf.Kind)

	// 原帖优先于作者校验
	_, err = e.CreatePost(Draft{AuthorID: "ghost", Kind: model.PostKindQuote, OriginalID: "nope", Body: "x"})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, EntityPost, nf.Kind)

	_, err = e.CreatePost(Draft{AuthorID: u.ID, Kind: model.PostKindRetweet, OriginalID: orig.ID, Body: "sneaky"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.CreatePost(Draft{AuthorID: u.ID, Kind: "reply", Body: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 1, e.Stats().Posts)
}

func TestRetweetAndQuote(t *testing.T) {
	e := newTestEngine(t)
	author := mustUser(t, e, "author")
	rt1 := mustUser(t, e, "rt1")
	rt2 := mustUser(t, e, "rt2")
	orig := mustPost(t, e, author.ID, "Viral #content")

	r := mustRetweet(t, e, rt1.ID, orig.ID)
	assert.Equal(t, model.PostKindRetweet, r.Type)
	assert.Nil(t, r.Content)
	assert.Equal(t, []string{}, r.Hashtags)
	require.NotNil(t, r.OriginalTweetID)
	assert.Equal(t, orig.ID, *r.OriginalTweetID)
	require.NotNil(t, r.OriginalTweet)
	assert.Equal(t, orig.ID, r.OriginalTweet.ID)
	assert.Equal(t, 1, r.OriginalTweet.RetweetCount)

	mustRetweet(t, e, rt2.ID, orig.ID)
	q := mustQuote(t, e, rt2.ID, orig.ID, "So true #content @author")
	assert.Equal(t, model.PostKindQuote, q.Type)
	assert.Equal(t, "So true #content @author", *q.Content)
	assert.Equal(t, []string{"content"}, q.Hashtags)

	got, err := e.GetPost(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.RetweetCount)
	assert.Equal(t, 1, got.QuoteCount)
	assert.Equal(t, []string{orig.ID, q.ID}, e.PostsForHashtag("content"))
}

func TestNestingCap(t *testing.T) {
	e := newTestEngine(t)
	u := mustUser(t, e, "alice")
	orig := mustPost(t, e, u.ID, "root")
	q1 := mustQuote(t, e, u.ID, orig.ID, "first quote")
	rt := mustRetweet(t, e, u.ID, q1.ID)
	q2 := mustQuote(t, e, u.ID, rt.ID, "quote of a retweet")

	got, err := e.GetPost(q2.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OriginalTweet)
	assert.Equal(t, rt.ID, got.OriginalTweet.ID)
	// 嵌入的原帖只保留引用 ID，不再展开
	require.NotNil(t, got.OriginalTweet.OriginalTweetID)
	assert.Equal(t, q1.ID, *got.OriginalTweet.OriginalTweetID)
}

func TestDeletePost(t *testing.T) {
	e := newTestEngine(t)
	u := mustUser(t, e, "alice")
	fan := mustUser(t, e, "fan")
	p := mustPost(t, e, u.ID, "#temp post")
	_, err := e.Like(fan.ID, p.ID)
	require.NoError(t, err)

	deleted, err := e.DeletePost(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)
	assert.Equal(t, u.ID, deleted.AuthorID)

	_, err = e.GetPost(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.DeletePost(p.ID)
	assert.ErrorIs(t, err, ErrNotFound, "second delete reports not found")

	assert.Empty(t, e.PostsForHashtag("temp"))
	assert.Empty(t, e.Trending(10))
	_, err = e.LikeCount(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.Like(fan.ID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, _ := e.GetUser(u.ID)
	assert.Zero(t, got.TweetCount)
}

func TestDeletePost_DanglingOriginal(t *testing.T) {
	e := newTestEngine(t)
	u := mustUser(t, e, "alice")
	orig := mustPost(t, e, u.ID, "original")
	rt := mustRetweet(t, e, u.ID, orig.ID)
	q := mustQuote(t, e, u.ID, orig.ID, "quoted")

	_, err := e.DeletePost(orig.ID)
	require.NoError(t, err)

	for _, id := range []string{rt.ID, q.ID} {
		got, err := e.GetPost(id)
		require.NoError(t, err, "references survive deletion of the original")
		require.NotNil(t, got.OriginalTweetID)
		assert.Equal(t, orig.ID, *got.OriginalTweetID)
		assert.Nil(t, got.OriginalTweet)
	}
}

func TestFollow(t *testing.T) {
	e := newTestEngine(t)
	a := mustUser(t, e, "a")
	b := mustUser(t, e, "b")

	assert.ErrorIs(t, e.Follow(a.ID, a.ID), ErrSelfFollow)
	assert.ErrorIs(t, e.Follow(a.ID, "ghost"), ErrNotFound)
	assert.ErrorIs(t, e.Follow("ghost", a.ID), ErrNotFound)
	// 存在性校验先于自关注校验
	assert.ErrorIs(t, e.Follow("ghost", "ghost"), ErrNotFound)

	require.NoError(t, e.Follow(a.ID, b.ID))
	assert.ErrorIs(t, e.Follow(a.ID, b.ID), ErrAlreadyFollowing)
	assert.True(t, e.IsFollowing(a.ID, b.ID))
	assert.False(t, e.IsFollowing(b.ID, a.ID))

	following, err := e.Following(a.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, b.ID, following[0].ID)
	assert.Equal(t, 1, following[0].FollowersCount)

	followers, err := e.Followers(b.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, a.ID, followers[0].ID)

	ua, _ := e.GetUser(a.ID)
	ub, _ := e.GetUser(b.ID)
	assert.Equal(t, 1, ua.FollowingCount)
	assert.Equal(t, 1, ub.FollowersCount)

	assert.ErrorIs(t, e.Unfollow(b.ID, a.ID), ErrNotFollowing)
	assert.ErrorIs(t, e.Unfollow(a.ID, "ghost"), ErrNotFound)
	require.NoError(t, e.Unfollow(a.ID, b.ID))
	assert.ErrorIs(t, e.Unfollow(a.ID, b.ID), ErrNotFollowing)

	_, err = e.Followers("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, e.rel.checkMirror())
}

func TestFollowing_SortedByUsername(t *testing.T) {
	e := newTestEngine(t)
	me := mustUser(t, e, "me")
	for _, name := range []string{"Charlie", "alice", "Bob"} {
		u := mustUser(t, e, name)
		require.NoError(t, e.Follow(me.ID, u.ID))
	}
	list, err := e.Following(me.ID)
	require.NoError(t, err)
	var names []string
	for _, u := range list {
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{"alice", "Bob", "Charlie"}, names)
}

func TestFollowGraphSymmetry_RandomOps(t *testing.T) {
	e := newTestEngine(t)
	users := make([]string, 8)
	for i := range users {
		users[i] = mustUser(t, e, fmt.Sprintf("user%d", i)).ID
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		a, b := users[rng.Intn(len(users))], users[rng.Intn(len(users))]
		if rng.Intn(2) == 0 {
			_ = e.Follow(a, b)
		} else {
			_ = e.Unfollow(a, b)
		}
		require.NoError(t, e.rel.checkMirror(), "after op %d", i)
	}

	for _, a := range users {
		following, err := e.Following(a)
		require.NoError(t, err)
		for _, b := range following {
			followers, err := e.Followers(b.ID)
			require.NoError(t, err)
			var found bool
			for _, f := range followers {
				found = found || f.ID == a
			}
			assert.True(t, found, "%s follows %s but is not in its followers", a, b.ID)
		}
	}
}

func TestLikes(t *testing.T) {
	e := newTestEngine(t)
	u := mustUser(t, e, "alice")
	p := mustPost(t, e, u.ID, "like me")

	n, err := e.Like("u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = e.Like("u2", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = e.Like("u1", p.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	n, err = e.Unlike("u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = e.Unlike("u1", p.ID)
	assert.ErrorIs(t, err, ErrNotLiked)

	n, err = e.Like("u1", p.ID)
	require.NoError(t, err, "re-like after unlike")
	assert.Equal(t, 2, n)

	count, err := e.LikeCount(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	got, _ := e.GetPost(p.ID)
	assert.Equal(t, 2, got.LikeCount)

	_, err = e.Unlike("u1", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimeline(t *testing.T) {
	t.Run("follower sees followee post", func(t *testing.T) {
		e := newTestEngine(t)
		a := mustUser(t, e, "a")
		b := mustUser(t, e, "b")
		require.NoError(t, e.Follow(a.ID, b.ID))
		p := mustPost(t, e, b.ID, "hello #x")

		tl, err := e.Timeline(a.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{p.ID}, ids(tl))
	})

	t.Run("retweet embeds original", func(t *testing.T) {
		e := newTestEngine(t)
		a := mustUser(t, e, "a")
		b := mustUser(t, e, "b")
		c := mustUser(t, e, "c")
		o := mustPost(t, e, b.ID, "original")
		rt := mustRetweet(t, e, c.ID, o.ID)
		require.NoError(t, e.Follow(a.ID, c.ID))

		tl, err := e.Timeline(a.ID)
		require.NoError(t, err)
		require.Equal(t, []string{rt.ID}, ids(tl))
		require.NotNil(t, tl[0].OriginalTweet)
		assert.Equal(t, o.ID, tl[0].OriginalTweet.ID)
		assert.Equal(t, 1, tl[0].OriginalTweet.RetweetCount)
	})

	t.Run("own posts excluded and newest first", func(t *testing.T) {
		e := newTestEngine(t)
		a := mustUser(t, e, "a")
		b := mustUser(t, e, "b")
		c := mustUser(t, e, "c")
		require.NoError(t, e.Follow(a.ID, b.ID))
		require.NoError(t, e.Follow(a.ID, c.ID))
		p1 := mustPost(t, e, b.ID, "one")
		mustPost(t, e, a.ID, "mine")
		p2 := mustPost(t, e, c.ID, "two")
		p3 := mustPost(t, e, b.ID, "three")

		tl, err := e.Timeline(a.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{p3.ID, p2.ID, p1.ID}, ids(tl))
	})

	t.Run("empty when following nobody", func(t *testing.T) {
		e := newTestEngine(t)
		a := mustUser(t, e, "a")
		mustPost(t, e, a.ID, "mine")
		tl, err := e.Timeline(a.ID)
		require.NoError(t, err)
		assert.NotNil(t, tl)
		assert.Empty(t, tl)
	})

	t.Run("unknown user", func(t *testing.T) {
		e := newTestEngine(t)
		_, err := e.Timeline("ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNewestFirst_EqualTimestamps(t *testing.T) {
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := New(WithClock(func() time.Time { return frozen }))
	u, err := e.CreateUser("alice", "Alice", nil)
	require.NoError(t, err)

	var want []string
	for i := 0; i < 20; i++ {
		p := mustPost(t, e, u.ID, fmt.Sprintf("post %d #same", i))
		want = append([]string{p.ID}, want...)
	}
	for i := 0; i < 5; i++ {
		got, err := e.PostsByAuthor(u.ID)
		require.NoError(t, err)
		assert.Equal(t, want, ids(got))
		assert.Equal(t, want, ids(e.PostsByHashtag("same")))
	}
}

func TestPostsByHashtag(t *testing.T) {
	e := newTestEngine(t)
	u := mustUser(t, e, "alice")
	p1 := mustPost(t, e, u.ID, "I love #Golang")
	p2 := mustPost(t, e, u.ID, "#golang again")
	mustPost(t, e, u.ID, "#rust")

	assert.Equal(t, []string{p2.ID, p1.ID}, ids(e.PostsByHashtag("GoLang")))
	assert.Equal(t, []string{p2.ID, p1.ID}, ids(e.PostsByHashtag("#golang")))
	assert.Empty(t, e.PostsByHashtag("unknown"))
	assert.NotNil(t, e.PostsByHashtag("unknown"))

	_, err := e.DeletePost(p1.ID)
	require.NoError(t, err)
	_, err = e.DeletePost(p2.ID)
	require.NoError(t, err)
	assert.Empty(t, e.PostsByHashtag("golang"))
	assert.NotContains(t, e.HashtagLiveCounts(), "golang")
}

func TestMentionsOf(t *testing.T) {
	e := newTestEngine(t)
	alice := mustUser(t, e, "alice")
	bob := mustUser(t, e, "bob")
	p1 := mustPost(t, e, bob.ID, "hi @ALICE")
	mustPost(t, e, bob.ID, "hi @alicex")
	p3 := mustQuote(t, e, bob.ID, p1.ID, "again @Alice")

	got, err := e.MentionsOf(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p3.ID, p1.ID}, ids(got))

	none, err := e.MentionsOf(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = e.MentionsOf("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostsByAuthor(t *testing.T) {
	e := newTestEngine(t)
	a := mustUser(t, e, "a")
	b := mustUser(t, e, "b")
	o := mustPost(t, e, b.ID, "theirs")
	p1 := mustPost(t, e, a.ID, "mine")
	rt := mustRetweet(t, e, a.ID, o.ID)

	got, err := e.PostsByAuthor(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{rt.ID, p1.ID}, ids(got))

	_, err = e.PostsByAuthor("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrending(t *testing.T) {
	e := newTestEngine(t)
	u := mustUser(t, e, "alice")
	for i := 0; i < 3; i++ {
		mustPost(t, e, u.ID, fmt.Sprintf("#popular %d", i))
	}
	for i := 0; i < 2; i++ {
		mustPost(t, e, u.ID, fmt.Sprintf("#medium %d", i))
	}
	mustPost(t, e, u.ID, "#rare")

	assert.Equal(t, []model.TrendingItem{
		{Hashtag: "popular", Count: 3},
		{Hashtag: "medium", Count: 2},
		{Hashtag: "rare", Count: 1},
	}, e.Trending(0))

	assert.Len(t, e.Trending(2), 2)
}

func TestTrending_TieBreakAndLimit(t *testing.T) {
	e := newTestEngine(t)
	u := mustUser(t, e, "alice")
	for i := 0; i < 12; i++ {
		mustPost(t, e, u.ID, fmt.Sprintf("#tag%02d", 11-i))
	}
	got := e.Trending(DefaultTrendingLimit)
	require.Len(t, got, 10)
	for i, item := range got {
		assert.Equal(t, fmt.Sprintf("tag%02d", i), item.Hashtag)
		assert.Equal(t, 1, item.Count)
	}
	assert.Empty(t, New().Trending(10))
}

func TestConcurrentAccess(t *testing.T) {
	e := New()
	const workers = 8
	users := make([]string, workers)
	for i := range users {
		users[i] = mustUser(t, e, fmt.Sprintf("user%d", i)).ID
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			me := users[w]
			for i := 0; i < 200; i++ {
				other := users[(w+i+1)%workers]
				_ = e.Follow(me, other)
				p, err := e.CreatePost(Draft{AuthorID: me, Kind: model.PostKindOriginal, Body: "#load test"})
				if err == nil {
					_, _ = e.Like(other, p.ID)
					if i%3 == 0 {
						_, _ = e.DeletePost(p.ID)
					}
				}
				_, _ = e.Timeline(me)
				_ = e.Trending(5)
				if i%2 == 0 {
					_ = e.Unfollow(me, other)
				}
			}
		}(w)
	}
	wg.Wait()

	e.mu.RLock()
	defer e.mu.RUnlock()
	require.NoError(t, e.rel.checkMirror())
	for id := range e.rel.likes {
		_, ok := e.store.posts[id]
		assert.True(t, ok, "like set for deleted post %s", id)
	}
}
