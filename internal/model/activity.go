package model

import "time"

// ActivityType 领域事件类型
type ActivityType string

const (
	ActivityUserCreated   ActivityType = "user.created"
	ActivityUserUpdated   ActivityType = "user.updated"
	ActivityPostCreated   ActivityType = "post.created"
	ActivityPostRetweeted ActivityType = "post.retweeted"
	ActivityPostQuoted    ActivityType = "post.quoted"
	ActivityPostDeleted   ActivityType = "post.deleted"
	ActivityFollowCreated ActivityType = "follow.created"
	ActivityFollowDeleted ActivityType = "follow.deleted"
	ActivityLikeCreated   ActivityType = "like.created"
	ActivityLikeDeleted   ActivityType = "like.deleted"
)

// Activity 事件外发记录（写成功后异步导出，图状态从不从这里回读）
type Activity struct {
	ID        string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Type      ActivityType `json:"type" gorm:"type:varchar(32);index"`
	ActorID   string       `json:"actor_id" gorm:"type:varchar(36);index:idx_activity_actor;not null"`
	SubjectID string       `json:"subject_id" gorm:"type:varchar(36)"`
	CreatedAt time.Time    `json:"created_at" gorm:"index:idx_activity_actor"`
}

func (Activity) TableName() string { return "activities" }
