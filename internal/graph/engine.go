// Package graph is the in-memory social graph: users, posts, the follow graph,
// like sets and the hashtag index, plus the read views derived from them.
//
// All state is owned by an Engine and guarded by a single reader/writer lock.
// Writes validate fully before mutating, so a rejected call leaves no trace.
// Counts are never stored; every view recomputes them from the relations.
package graph

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/microblog/internal/model"
)

// DefaultTrendingLimit 热门话题默认返回条数
const DefaultTrendingLimit = 10

// Option 配置 Engine
type Option func(*Engine)

// WithClock 替换时间源（测试用）
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.store.now = now }
}

// WithIDGenerator 替换 ID 生成器
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.store.newID = gen }
}

// Engine 图引擎门面：组合实体存储、关系链、话题索引与视图构建
type Engine struct {
	mu    sync.RWMutex
	store *store
	rel   *relations
	tags  *hashtagIndex
}

// New 创建一个空的图引擎
func New(opts ...Option) *Engine {
	e := &Engine{
		store: newStore(func() time.Time { return time.Now().UTC() }, uuid.NewString),
		rel:   newRelations(),
		tags:  newHashtagIndex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats 引擎内实体数量快照
type Stats struct {
	Users    int `json:"users"`
	Posts    int `json:"posts"`
	Hashtags int `json:"hashtags"`
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Users:    len(e.store.users),
		Posts:    len(e.store.posts),
		Hashtags: len(e.tags.liveCounts(e.alive)),
	}
}

// ---- users ----

// CreateUser 注册用户；用户名大小写不敏感唯一
func (e *Engine) CreateUser(username, displayName string, bio *string) (model.UserView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, err := e.store.createUser(username, displayName, bio)
	if err != nil {
		return model.UserView{}, err
	}
	e.rel.addUser(u.ID)
	return e.viewer().user(u), nil
}

func (e *Engine) GetUser(id string) (model.UserView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, err := e.store.user(id)
	if err != nil {
		return model.UserView{}, err
	}
	return e.viewer().user(u), nil
}

// UpdateUser 部分更新 display name / bio
func (e *Engine) UpdateUser(id string, upd model.UserUpdate) (model.UserView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, err := e.store.updateUser(id, upd)
	if err != nil {
		return model.UserView{}, err
	}
	return e.viewer().user(u), nil
}

// ---- posts ----

// CreatePost 创建原创、转发或引用帖子，并写入点赞集合与话题索引
func (e *Engine) CreatePost(d Draft) (model.PostView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.store.createPost(d)
	if err != nil {
		return model.PostView{}, err
	}
	e.rel.addPost(p.ID)
	e.tags.add(p.ID, p.Hashtags())
	return e.viewer().post(p), nil
}

func (e *Engine) GetPost(id string) (model.PostView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, err := e.store.post(id)
	if err != nil {
		return model.PostView{}, err
	}
	return e.viewer().post(p), nil
}

// DeletePost 删除帖子并清理其索引与点赞；引用它的转发/引用帖保留，原帖引用悬空。
// 返回被删除的记录。
func (e *Engine) DeletePost(id string) (model.Post, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.store.deletePost(id)
	if err != nil {
		return model.Post{}, err
	}
	e.tags.remove(p.ID, p.Hashtags())
	e.rel.removePost(p.ID)
	return copyPost(p), nil
}

// ---- relations ----

// Follow 建立关注
func (e *Engine) Follow(followerID, followeeID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireUsers(followerID, followeeID); err != nil {
		return err
	}
	return e.rel.follow(followerID, followeeID)
}

// Unfollow 取消关注
func (e *Engine) Unfollow(followerID, followeeID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireUsers(followerID, followeeID); err != nil {
		return err
	}
	return e.rel.unfollow(followerID, followeeID)
}

// IsFollowing 是否存在关注边
func (e *Engine) IsFollowing(followerID, followeeID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rel.isFollowing(followerID, followeeID)
}

// Followers 粉丝列表快照
func (e *Engine) Followers(userID string) ([]model.UserView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.requireUsers(userID); err != nil {
		return nil, err
	}
	return e.viewer().users(e.rel.followersOf(userID)), nil
}

// Following 关注列表快照
func (e *Engine) Following(userID string) ([]model.UserView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.requireUsers(userID); err != nil {
		return nil, err
	}
	return e.viewer().users(e.rel.followingOf(userID)), nil
}

// Like 点赞，返回点赞后的计数。点赞用户本身不做存在性校验。
func (e *Engine) Like(userID, postID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.store.post(postID); err != nil {
		return 0, err
	}
	return e.rel.like(userID, postID)
}

// Unlike 取消点赞，返回取消后的计数
func (e *Engine) Unlike(userID, postID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.store.post(postID); err != nil {
		return 0, err
	}
	return e.rel.unlike(userID, postID)
}

func (e *Engine) LikeCount(postID string) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if _, err := e.store.post(postID); err != nil {
		return 0, err
	}
	return e.rel.likeCount(postID), nil
}

// ---- derived reads ----

// Timeline 关注的人发布的所有存活帖子，时间倒序；不含自己的帖子
func (e *Engine) Timeline(userID string) ([]model.PostView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.requireUsers(userID); err != nil {
		return nil, err
	}
	followed := e.rel.followingOf(userID)
	if len(followed) == 0 {
		return []model.PostView{}, nil
	}
	ps := e.store.livePosts(func(p *model.Post) bool {
		_, ok := followed[p.AuthorID]
		return ok
	})
	return e.viewer().posts(ps), nil
}

// PostsByAuthor 某用户的全部存活帖子（含转发与引用），时间倒序
func (e *Engine) PostsByAuthor(userID string) ([]model.PostView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.requireUsers(userID); err != nil {
		return nil, err
	}
	ps := e.store.livePosts(func(p *model.Post) bool { return p.AuthorID == userID })
	return e.viewer().posts(ps), nil
}

// MentionsOf 提及该用户（大小写不敏感）的存活帖子，时间倒序
func (e *Engine) MentionsOf(userID string) ([]model.PostView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, err := e.store.user(userID)
	if err != nil {
		return nil, err
	}
	target := foldUsername(u.Username)
	ps := e.store.livePosts(func(p *model.Post) bool {
		return slices.ContainsFunc(p.Mentions(), func(m string) bool {
			return foldUsername(m) == target
		})
	})
	return e.viewer().posts(ps), nil
}

// PostsByHashtag 含该话题的存活帖子，时间倒序；未知话题返回空列表
func (e *Engine) PostsByHashtag(tag string) []model.PostView {
	tag = NormalizeHashtag(tag)
	e.mu.RLock()
	defer e.mu.RUnlock()
	var ps []*model.Post
	for _, id := range e.tags.postIDs(tag) {
		p, ok := e.store.posts[id]
		if ok && slices.Contains(p.Hashtags(), tag) {
			ps = append(ps, p)
		}
	}
	return e.viewer().posts(ps)
}

// PostsForHashtag 话题索引中的原始 ID 列表（可能含已删除帖子）
func (e *Engine) PostsForHashtag(tag string) []string {
	tag = NormalizeHashtag(tag)
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tags.postIDs(tag)
}

// HashtagLiveCounts 每个话题的存活帖子数；计数为 0 的话题不出现
func (e *Engine) HashtagLiveCounts() map[string]int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tags.liveCounts(e.alive)
}

// Trending 热门话题：计数降序，计数相同按 tag 字典序，截取前 limit 条
func (e *Engine) Trending(limit int) []model.TrendingItem {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	counts := e.HashtagLiveCounts()
	items := make([]model.TrendingItem, 0, len(counts))
	for tag, n := range counts {
		items = append(items, model.TrendingItem{Hashtag: tag, Count: n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Hashtag < items[j].Hashtag
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// NormalizeHashtag 去掉可选的 # 前缀并转小写
func NormalizeHashtag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}

func (e *Engine) viewer() *viewer { return newViewer(e.store, e.rel) }

func (e *Engine) alive(postID string) bool {
	_, ok := e.store.posts[postID]
	return ok
}

func (e *Engine) requireUsers(ids ...string) error {
	for _, id := range ids {
		if !e.store.hasUser(id) {
			return userNotFound(id)
		}
	}
	return nil
}

func copyPost(p *model.Post) model.Post {
	cp := *p
	switch c := p.Content.(type) {
	case model.Original:
		c.Text = cloneText(c.Text)
		cp.Content = c
	case model.Quote:
		c.Text = cloneText(c.Text)
		cp.Content = c
	}
	return cp
}

func cloneText(t model.Text) model.Text {
	t.Hashtags = slices.Clone(t.Hashtags)
	t.Mentions = slices.Clone(t.Mentions)
	return t
}
