package model

import "time"

// PostKind 内容类型，取值与对外 JSON 的 type 字段一致
type PostKind string

const (
	PostKindOriginal PostKind = "tweet"
	PostKindRetweet  PostKind = "retweet"
	PostKindQuote    PostKind = "quote"
)

// Valid 是否为已知类型
func (k PostKind) Valid() bool {
	switch k {
	case PostKindOriginal, PostKindRetweet, PostKindQuote:
		return true
	}
	return false
}

// Content 内容体（和类型）：Original / Retweet / Quote 三选一。
// 只有本包内的类型能实现该接口。
type Content interface {
	Kind() PostKind
	sealed()
}

// Text 带正文的内容共用部分（原创与引用）
type Text struct {
	Body     string
	Hashtags []string // 小写，去重，保持首次出现顺序
	Mentions []string // 保留原始大小写，去重
}

// Original 原创推文
type Original struct {
	Text
}

// Retweet 纯转发，无正文
type Retweet struct {
	OriginalID string
}

// Quote 引用转发：自带正文并引用原帖
type Quote struct {
	Text
	OriginalID string
}

func (Original) Kind() PostKind { return PostKindOriginal }
func (Retweet) Kind() PostKind { return PostKindRetweet }
func (Quote) Kind() PostKind { return PostKindQuote }

func (Original) sealed() {}
func (Retweet) sealed() {}
func (Quote) sealed() {}

// Post 内容主体。Seq 为引擎内插入序号，仅用于同一时间戳下的稳定排序。
type Post struct {
	ID        string
	AuthorID  string
	CreatedAt time.Time
	Seq       uint64
	Content   Content
}

// Kind 返回帖子类型
func (p *Post) Kind() PostKind { return p.Content.Kind() }

// Body 返回正文；Retweet 没有正文
func (p *Post) Body() (string, bool) {
	if t, ok := p.text(); ok {
		return t.Body, true
	}
	return "", false
}

// Hashtags 返回提取出的话题标签（无正文时为空）
func (p *Post) Hashtags() []string {
	if t, ok := p.text(); ok {
		return t.Hashtags
	}
	return nil
}

// Mentions 返回提取出的 @ 提及（无正文时为空）
func (p *Post) Mentions() []string {
	if t, ok := p.text(); ok {
		return t.Mentions
	}
	return nil
}

// OriginalID 返回被转发/引用的原帖 ID
func (p *Post) OriginalID() (string, bool) {
	switch c := p.Content.(type) {
	case Retweet:
		return c.OriginalID, true
	case Quote:
		return c.OriginalID, true
	}
	return "", false
}

func (p *Post) text() (Text, bool) {
	switch c := p.Content.(type) {
	case Original:
		return c.Text, true
	case Quote:
		return c.Text, true
	}
	return Text{}, false
}

// PostSummary 帖子视图中不含嵌套原帖的部分。
// 嵌入的原帖只能是 PostSummary，因此嵌套层级在类型上被限制为一层。
type PostSummary struct {
	ID              string    `json:"id"`
	Type            PostKind  `json:"type"`
	UserID          string    `json:"user_id"`
	Content         *string   `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
	Hashtags        []string  `json:"hashtags"`
	Mentions        []string  `json:"mentions"`
	LikeCount       int       `json:"like_count"`
	RetweetCount    int       `json:"retweet_count"`
	QuoteCount      int       `json:"quote_count"`
	OriginalTweetID *string   `json:"original_tweet_id"`
	Author          *UserView `json:"author"`
}

// PostView 帖子对外视图
type PostView struct {
	PostSummary
	OriginalTweet *PostSummary `json:"original_tweet"`
}

// TrendingItem 热门话题条目
type TrendingItem struct {
	Hashtag string `json:"hashtag"`
	Count   int    `json:"count"`
}
