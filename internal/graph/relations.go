package graph

import "fmt"

type idSet map[string]struct{}

// relations 关系链：关注（following）与粉丝（followers）两份镜像邻接表，以及点赞集合。
// 两份邻接表必须始终一致：b ∈ following[a] ⟺ a ∈ followers[b]。
type relations struct {
	following map[string]idSet // follower -> followees
	followers map[string]idSet // followee -> followers
	likes     map[string]idSet // post -> likers
}

func newRelations() *relations {
	return &relations{
		following: make(map[string]idSet),
		followers: make(map[string]idSet),
		likes:     make(map[string]idSet),
	}
}

func (r *relations) addUser(id string) {
	r.following[id] = make(idSet)
	r.followers[id] = make(idSet)
}

// follow 调用方需已确认两个用户都存在
func (r *relations) follow(followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	if _, ok := r.following[followerID][followeeID]; ok {
		return ErrAlreadyFollowing
	}
	r.outgoing(followerID)[followeeID] = struct{}{}
	r.incoming(followeeID)[followerID] = struct{}{}
	return nil
}

func (r *relations) unfollow(followerID, followeeID string) error {
	if _, ok := r.following[followerID][followeeID]; !ok {
		return ErrNotFollowing
	}
	delete(r.following[followerID], followeeID)
	delete(r.followers[followeeID], followerID)
	return nil
}

func (r *relations) isFollowing(followerID, followeeID string) bool {
	_, ok := r.following[followerID][followeeID]
	return ok
}

func (r *relations) followingOf(id string) idSet { return r.following[id] }

func (r *relations) followersOf(id string) idSet { return r.followers[id] }

func (r *relations) outgoing(id string) idSet {
	s, ok := r.following[id]
	if !ok {
		s = make(idSet)
		r.following[id] = s
	}
	return s
}

func (r *relations) incoming(id string) idSet {
	s, ok := r.followers[id]
	if !ok {
		s = make(idSet)
		r.followers[id] = s
	}
	return s
}

func (r *relations) addPost(postID string) { r.likes[postID] = make(idSet) }

func (r *relations) removePost(postID string) { delete(r.likes, postID) }

// like 调用方需已确认帖子存在
func (r *relations) like(userID, postID string) (int, error) {
	likers := r.likers(postID)
	if _, ok := likers[userID]; ok {
		return 0, ErrAlreadyLiked
	}
	likers[userID] = struct{}{}
	return len(likers), nil
}

func (r *relations) unlike(userID, postID string) (int, error) {
	likers := r.likes[postID]
	if _, ok := likers[userID]; !ok {
		return 0, ErrNotLiked
	}
	delete(likers, userID)
	return len(likers), nil
}

func (r *relations) likeCount(postID string) int { return len(r.likes[postID]) }

func (r *relations) likers(postID string) idSet {
	s, ok := r.likes[postID]
	if !ok {
		s = make(idSet)
		r.likes[postID] = s
	}
	return s
}

// checkMirror 校验两份邻接表一致，仅供测试断言使用
func (r *relations) checkMirror() error {
	for a, out := range r.following {
		for b := range out {
			if _, ok := r.followers[b][a]; !ok {
				return fmt.Errorf("edge %s->%s missing from followers of %s", a, b, b)
			}
		}
	}
	for b, in := range r.followers {
		for a := range in {
			if _, ok := r.following[a][b]; !ok {
				return fmt.Errorf("edge %s->%s missing from following of %s", a, b, a)
			}
		}
	}
	return nil
}
