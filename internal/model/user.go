package model

import "time"

// User 用户主体；Username 创建后不可变，DisplayName/Bio 可修改
type User struct {
	ID          string
	Username    string
	DisplayName string
	Bio         *string
	CreatedAt   time.Time
}

// UserView 用户对外视图，所有计数均在读取时实时计算
type UserView struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Bio            *string   `json:"bio"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	TweetCount     int       `json:"tweet_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserUpdate 部分更新；nil 字段保持不变
type UserUpdate struct {
	DisplayName *string
	Bio         *string
}
