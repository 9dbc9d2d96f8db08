package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment 评论，嵌在 Post.Comments 里
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	HTML      string    `json:"html"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// NewComment snapshots the author's name and avatar.
func NewComment(author *User, text string) Comment {
	return Comment{
		ID:        uuid.New(),
		UserID:    author.ID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: time.Now(),
	}
}
