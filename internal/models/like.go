package models

import "github.com/google/uuid"

// Like 点赞，每个用户对同一帖子最多一条
type Like struct {
	User uuid.UUID `json:"user"`
}
