package graph

// hashtagIndex 话题倒排索引：小写 tag -> 按创建顺序排列的帖子 ID。
// 列表可能含已删除帖子的 ID，读取时由调用方按存活过滤。
type hashtagIndex struct {
	tags map[string][]string
}

func newHashtagIndex() *hashtagIndex {
	return &hashtagIndex{tags: make(map[string][]string)}
}

func (ix *hashtagIndex) add(postID string, hashtags []string) {
	for _, tag := range hashtags {
		ix.tags[tag] = append(ix.tags[tag], postID)
	}
}

func (ix *hashtagIndex) remove(postID string, hashtags []string) {
	for _, tag := range hashtags {
		ids := ix.tags[tag]
		for i, id := range ids {
			if id == postID {
				ix.tags[tag] = append(ids[:i:i], ids[i+1:]...)
				break
			}
		}
	}
}

// postIDs 返回 tag 的原始 ID 列表副本
func (ix *hashtagIndex) postIDs(tag string) []string {
	ids := ix.tags[tag]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// liveCounts 统计每个 tag 仍存活的帖子数，计数为 0 的 tag 不返回
func (ix *hashtagIndex) liveCounts(alive func(postID string) bool) map[string]int {
	counts := make(map[string]int)
	for tag, ids := range ix.tags {
		n := 0
		for _, id := range ids {
			if alive(id) {
				n++
			}
		}
		if n > 0 {
			counts[tag] = n
		}
	}
	return counts
}
