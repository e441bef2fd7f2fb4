package graph

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/d60-Lab/microblog/internal/model"
)

// MaxBodyLength 正文最大长度（按 Unicode 码点计）
const MaxBodyLength = 280

// Draft 创建帖子的输入。Retweet 不允许携带正文。
type Draft struct {
	AuthorID   string
	Kind       model.PostKind
	Body       string
	OriginalID string
}

// store 实体存储：用户、用户名映射与帖子。不自带锁，由 Engine 串行化访问。
type store struct {
	users     map[string]*model.User
	usernames map[string]string // folded username -> user id
	posts     map[string]*model.Post
	seq       uint64

	now   func() time.Time
	newID func() string
}

func newStore(now func() time.Time, newID func() string) *store {
	return &store{
		users:     make(map[string]*model.User),
		usernames: make(map[string]string),
		posts:     make(map[string]*model.Post),
		now:       now,
		newID:     newID,
	}
}

// foldUsername 用户名大小写折叠；cases.Caser 有状态，每次新建以便并发读
func foldUsername(s string) string { return cases.Fold().String(s) }

func (s *store) createUser(username, displayName string, bio *string) (*model.User, error) {
	username = strings.TrimSpace(username)
	displayName = strings.TrimSpace(displayName)
	if username == "" {
		return nil, invalid("username must not be empty")
	}
	if displayName == "" {
		return nil, invalid("display_name must not be empty")
	}
	key := foldUsername(username)
	if _, taken := s.usernames[key]; taken {
		return nil, ErrDuplicateUsername
	}
	u := &model.User{
		ID:          s.newID(),
		Username:    username,
		DisplayName: displayName,
		Bio:         cloneString(bio),
		CreatedAt:   s.now(),
	}
	s.users[u.ID] = u
	s.usernames[key] = u.ID
	return u, nil
}

func (s *store) user(id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, userNotFound(id)
	}
	return u, nil
}

func (s *store) hasUser(id string) bool {
	_, ok := s.users[id]
	return ok
}

func (s *store) updateUser(id string, upd model.UserUpdate) (*model.User, error) {
	u, err := s.user(id)
	if err != nil {
		return nil, err
	}
	// 先校验再写入，失败时不做部分更新
	if upd.DisplayName != nil && strings.TrimSpace(*upd.DisplayName) == "" {
		return nil, invalid("display_name must not be empty")
	}
	if upd.DisplayName != nil {
		u.DisplayName = strings.TrimSpace(*upd.DisplayName)
	}
	if upd.Bio != nil {
		u.Bio = cloneString(upd.Bio)
	}
	return u, nil
}

func (s *store) createPost(d Draft) (*model.Post, error) {
	if !d.Kind.Valid() {
		return nil, invalid("unknown post kind %q", d.Kind)
	}
	if d.Kind != model.PostKindOriginal {
		if _, ok := s.posts[d.OriginalID]; !ok {
			return nil, postNotFound(d.OriginalID)
		}
	}
	if !s.hasUser(d.AuthorID) {
		return nil, userNotFound(d.AuthorID)
	}

	var content model.Content
	switch d.Kind {
	case model.PostKindRetweet:
		if d.Body != "" {
			return nil, invalid("retweet must not carry content")
		}
		content = model.Retweet{OriginalID: d.OriginalID}
	case model.PostKindOriginal, model.PostKindQuote:
		if utf8.RuneCountInString(d.Body) > MaxBodyLength {
			return nil, ErrBodyTooLong
		}
		text := model.Text{
			Body:     d.Body,
			Hashtags: ExtractHashtags(d.Body),
			Mentions: ExtractMentions(d.Body),
		}
		if d.Kind == model.PostKindQuote {
			content = model.Quote{Text: text, OriginalID: d.OriginalID}
		} else {
			content = model.Original{Text: text}
		}
	}

	s.seq++
	p := &model.Post{
		ID:        s.newID(),
		AuthorID:  d.AuthorID,
		CreatedAt: s.now(),
		Seq:       s.seq,
		Content:   content,
	}
	s.posts[p.ID] = p
	return p, nil
}

func (s *store) post(id string) (*model.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, postNotFound(id)
	}
	return p, nil
}

func (s *store) deletePost(id string) (*model.Post, error) {
	p, err := s.post(id)
	if err != nil {
		return nil, err
	}
	delete(s.posts, id)
	return p, nil
}

// livePosts 返回满足条件的存活帖子（无序）
func (s *store) livePosts(keep func(*model.Post) bool) []*model.Post {
	var out []*model.Post
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
