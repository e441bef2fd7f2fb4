package graph

import (
	"slices"
	"sort"

	"github.com/d60-Lab/microblog/internal/model"
)

type refCount struct {
	retweets int
	quotes   int
}

// viewer 单次读操作内的视图构建器。
// 计数在首次需要时对当前帖子集合做一次全量统计，不跨读操作保存。
type viewer struct {
	s *store
	r *relations

	tallied  bool
	refs     map[string]refCount // original post id -> live retweets/quotes
	authored map[string]int      // author id -> live posts
}

func newViewer(s *store, r *relations) *viewer {
	return &viewer{s: s, r: r}
}

func (v *viewer) tally() {
	if v.tallied {
		return
	}
	v.refs = make(map[string]refCount)
	v.authored = make(map[string]int)
	for _, p := range v.s.posts {
		v.authored[p.AuthorID]++
		origID, ok := p.OriginalID()
		if !ok {
			continue
		}
		rc := v.refs[origID]
		if p.Kind() == model.PostKindRetweet {
			rc.retweets++
		} else {
			rc.quotes++
		}
		v.refs[origID] = rc
	}
	v.tallied = true
}

func (v *viewer) user(u *model.User) model.UserView {
	v.tally()
	return model.UserView{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Bio:            cloneString(u.Bio),
		FollowersCount: len(v.r.followersOf(u.ID)),
		FollowingCount: len(v.r.followingOf(u.ID)),
		TweetCount:     v.authored[u.ID],
		CreatedAt:      u.CreatedAt,
	}
}

// users 将 ID 集合转为用户视图，按折叠后的用户名排序；已不存在的 ID 跳过
func (v *viewer) users(ids idSet) []model.UserView {
	found := make([]*model.User, 0, len(ids))
	for id := range ids {
		if u, ok := v.s.users[id]; ok {
			found = append(found, u)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		a, b := foldUsername(found[i].Username), foldUsername(found[j].Username)
		if a != b {
			return a < b
		}
		return found[i].ID < found[j].ID
	})
	out := make([]model.UserView, len(found))
	for i, u := range found {
		out[i] = v.user(u)
	}
	return out
}

func (v *viewer) summary(p *model.Post) model.PostSummary {
	v.tally()
	rc := v.refs[p.ID]
	ps := model.PostSummary{
		ID:           p.ID,
		Type:         p.Kind(),
		UserID:       p.AuthorID,
		CreatedAt:    p.CreatedAt,
		Hashtags:     cloneList(p.Hashtags()),
		Mentions:     cloneList(p.Mentions()),
		LikeCount:    v.r.likeCount(p.ID),
		RetweetCount: rc.retweets,
		QuoteCount:   rc.quotes,
	}
	if body, ok := p.Body(); ok {
		ps.Content = &body
	}
	if origID, ok := p.OriginalID(); ok {
		ps.OriginalTweetID = &origID
	}
	if author, ok := v.s.users[p.AuthorID]; ok {
		uv := v.user(author)
		ps.Author = &uv
	}
	return ps
}

// post 构建帖子视图；原帖仍存在时嵌入一层原帖摘要
func (v *viewer) post(p *model.Post) model.PostView {
	pv := model.PostView{PostSummary: v.summary(p)}
	if origID, ok := p.OriginalID(); ok {
		if orig, ok := v.s.posts[origID]; ok {
			embedded := v.summary(orig)
			pv.OriginalTweet = &embedded
		}
	}
	return pv
}

// posts 按时间倒序构建视图列表
func (v *viewer) posts(ps []*model.Post) []model.PostView {
	sortNewestFirst(ps)
	out := make([]model.PostView, len(ps))
	for i, p := range ps {
		out[i] = v.post(p)
	}
	return out
}

// sortNewestFirst 创建时间倒序；时间相同按插入序号倒序，保证全序
func sortNewestFirst(ps []*model.Post) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].Seq > ps[j].Seq
	})
}

func cloneList(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}
